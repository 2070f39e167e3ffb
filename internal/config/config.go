package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	Shop      ShopConfig      `toml:"shop"`
	Mail      MailConfig      `toml:"mail"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig настройки кэша настроек сайта
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr"`
	Password        string `toml:"password"`
	DB              int    `toml:"db"`
	SettingsTTLSecs int    `toml:"settings_ttl"`
}

// SettingsTTL время жизни закэшированных настроек
func (c RedisConfig) SettingsTTL() time.Duration {
	return time.Duration(c.SettingsTTLSecs) * time.Second
}

// AuthConfig настройки администраторской аутентификации
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenTTLMinutes   int    `toml:"token_ttl_minutes"`
	BootstrapEmail    string `toml:"bootstrap_email"`
	BootstrapPassword string `toml:"bootstrap_password"`
}

// ShopConfig параметры салона, не редактируемые через админку
type ShopConfig struct {
	Timezone        string `toml:"timezone"`
	SlotStepMinutes int    `toml:"slot_step_minutes"`
	MaxAdvanceDays  int    `toml:"max_advance_days"`
}

// Location таймзона салона
func (c ShopConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// MailConfig транспорт уведомлений
// transport: relay (HTTP relay), smtp (прямая отправка), sendgrid, log (только лог)
type MailConfig struct {
	Transport      string `toml:"transport"`
	RelayURL       string `toml:"relay_url"`
	RelayTimeout   int    `toml:"relay_timeout"`
	SendGridAPIKey string `toml:"sendgrid_api_key"`
	SendTimeout    int    `toml:"send_timeout"`
	ExposeRelay    bool   `toml:"expose_relay"`
}

// RateLimitConfig ограничение публичных запросов на запись
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
	// TrustProxy брать IP клиента из X-Forwarded-For (только за доверенным обратным прокси)
	TrustProxy bool `toml:"trusted_proxy"`
}

// Load загружает конфигурацию из TOML файла и переменных окружения
// Переменные окружения (в том числе из .env) перекрывают секреты из файла
func Load(path string) (*Config, error) {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("auth.jwt_secret must be at least 16 characters")
	}
	if c.Shop.SlotStepMinutes <= 0 {
		return fmt.Errorf("shop.slot_step_minutes must be positive")
	}
	if _, err := c.Shop.Location(); err != nil {
		return fmt.Errorf("shop.timezone: %w", err)
	}
	switch c.Mail.Transport {
	case "relay":
		if c.Mail.RelayURL == "" {
			return fmt.Errorf("mail.relay_url is required for relay transport")
		}
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("mail.sendgrid_api_key is required for sendgrid transport")
		}
	case "smtp", "log":
	default:
		return fmt.Errorf("unknown mail.transport %q", c.Mail.Transport)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "salon-booking-service",
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			SettingsTTLSecs: 300,
		},
		Auth: AuthConfig{TokenTTLMinutes: 720},
		Shop: ShopConfig{
			Timezone:        "UTC",
			SlotStepMinutes: 30,
		},
		Mail: MailConfig{
			Transport:    "smtp",
			RelayTimeout: 10,
			SendTimeout:  15,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			Burst:             5,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.DBName = getEnv("DB_NAME", cfg.Database.DBName)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.BootstrapEmail = getEnv("ADMIN_BOOTSTRAP_EMAIL", cfg.Auth.BootstrapEmail)
	cfg.Auth.BootstrapPassword = getEnv("ADMIN_BOOTSTRAP_PASSWORD", cfg.Auth.BootstrapPassword)
	cfg.Mail.SendGridAPIKey = getEnv("SENDGRID_API_KEY", cfg.Mail.SendGridAPIKey)
	cfg.Mail.RelayURL = getEnv("MAIL_RELAY_URL", cfg.Mail.RelayURL)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
