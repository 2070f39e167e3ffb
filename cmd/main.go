package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	authHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/auth"
	blockedSlotsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/blocked_slots"
	cancelBookingHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/cancel_booking"
	categoriesHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/categories"
	checkSlotHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_customer_bookings"
	getSettingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/list_bookings"
	mailRelayHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/mail_relay"
	reportsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/reports"
	servicesHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/services"
	updateBookingStatusHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/salon-booking-service/internal/api/handlers/update_settings"
	"github.com/m04kA/salon-booking-service/internal/api/middleware"
	"github.com/m04kA/salon-booking-service/internal/config"
	settingsCache "github.com/m04kA/salon-booking-service/internal/infra/cache/settings"
	adminRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/admin"
	blockedSlotRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/blockedslot"
	bookingRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	"github.com/m04kA/salon-booking-service/internal/integrations/mailer"
	authService "github.com/m04kA/salon-booking-service/internal/service/auth"
	blocksService "github.com/m04kA/salon-booking-service/internal/service/blocks"
	bookingsService "github.com/m04kA/salon-booking-service/internal/service/bookings"
	catalogService "github.com/m04kA/salon-booking-service/internal/service/catalog"
	notificationsService "github.com/m04kA/salon-booking-service/internal/service/notifications"
	reportsService "github.com/m04kA/salon-booking-service/internal/service/reports"
	settingsService "github.com/m04kA/salon-booking-service/internal/service/settings"
	checkSlotUC "github.com/m04kA/salon-booking-service/internal/usecase/check_slot"
	createBookingUC "github.com/m04kA/salon-booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/logger"
	"github.com/m04kA/salon-booking-service/pkg/metrics"
	"github.com/m04kA/salon-booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting salon-booking-service...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Invalid shop timezone %q: %v", cfg.Shop.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка с метриками; без метрик запросы идут напрямую (nil коллектор игнорируется)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	blockedSlotRepository := blockedSlotRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	adminRepository := adminRepo.NewRepository(wrappedDB)

	// Кэш настроек сайта (необязателен)
	var cache settingsService.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis is unavailable, settings will be read from database: addr=%s, error=%v", cfg.Redis.Addr, err)
		}
		cache = settingsCache.NewCache(redisClient, cfg.Redis.SettingsTTL())
		log.Info("Settings cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.SettingsTTL())
	}

	settingsSvc := settingsService.NewService(settingsRepository, cache, log)

	// Транспорт почты
	var sender notificationsService.Sender
	sendTimeout := time.Duration(cfg.Mail.SendTimeout) * time.Second
	switch cfg.Mail.Transport {
	case "relay":
		sender = mailer.NewRelayClient(cfg.Mail.RelayURL, time.Duration(cfg.Mail.RelayTimeout)*time.Second, log)
	case "smtp":
		sender = mailer.NewSMTPSender(sendTimeout, log)
	case "sendgrid":
		sender = mailer.NewSendGridSender(cfg.Mail.SendGridAPIKey, log)
	default:
		sender = mailer.NewLogSender(log)
	}
	log.Info("Mail transport initialized (transport=%s)", cfg.Mail.Transport)

	notifier := notificationsService.NewService(sender, settingsSvc, metricsCollector, log, sendTimeout)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, notifier, location, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)
	blocksSvc := blocksService.NewService(blockedSlotRepository, bookingRepository, location, log)
	reportsSvc := reportsService.NewService(bookingRepository, txMgr, log)
	authSvc := authService.NewService(
		adminRepository,
		txMgr,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		log,
	)

	// Первый администратор из конфигурации
	if cfg.Auth.BootstrapEmail != "" {
		if err := authSvc.EnsureBootstrap(context.Background(), cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword); err != nil {
			log.Fatal("Failed to bootstrap admin: %v", err)
		}
	}

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		blockedSlotRepository,
		catalogRepository,
		settingsSvc,
		getAvailableSlotsUC.Config{
			Location:        location,
			SlotStepMinutes: cfg.Shop.SlotStepMinutes,
			MaxAdvanceDays:  cfg.Shop.MaxAdvanceDays,
		},
		log,
	)

	checkSlotUseCase := checkSlotUC.NewUseCase(
		bookingRepository,
		blockedSlotRepository,
		catalogRepository,
		settingsSvc,
		checkSlotUC.Config{
			Location:       location,
			MaxAdvanceDays: cfg.Shop.MaxAdvanceDays,
		},
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockedSlotRepository,
		catalogRepository,
		settingsSvc,
		txMgr,
		notifier,
		metricsCollector,
		createBookingUC.Config{
			Location:       location,
			MaxAdvanceDays: cfg.Shop.MaxAdvanceDays,
		},
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(checkSlotUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	services := servicesHandler.NewHandler(catalogSvc, log)
	categories := categoriesHandler.NewHandler(catalogSvc, log)
	blockedSlots := blockedSlotsHandler.NewHandler(blocksSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	reports := reportsHandler.NewHandler(reportsSvc, log)
	auth := authHandler.NewHandler(authSvc, log)
	// Relay сам доставляет письма по SMTP из тела запроса
	mailRelay := mailRelayHandler.NewHandler(mailer.NewSMTPSender(sendTimeout, log), log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/services", services.HandleListPublic).Methods(http.MethodGet)
	api.HandleFunc("/services/{id}", services.HandleGetPublic).Methods(http.MethodGet)
	api.HandleFunc("/categories", categories.HandleList).Methods(http.MethodGet)

	// --- Доступность ---
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/check", checkSlot.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	createBookingRoute := http.Handler(http.HandlerFunc(createBooking.Handle))
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
		createBookingRoute = limiter.Middleware(log)(createBookingRoute)
		log.Info("Rate limit enabled for booking creation (rpm=%d, burst=%d, trusted_proxy=%t)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}
	api.Handle("/bookings", createBookingRoute).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Настройки сайта ---
	api.HandleFunc("/settings/public", getSettings.HandlePublic).Methods(http.MethodGet)

	// --- Вход администратора ---
	api.HandleFunc("/admin/bootstrap", auth.HandleBootstrap).Methods(http.MethodPost)
	api.HandleFunc("/admin/login", auth.HandleLogin).Methods(http.MethodPost)

	// --- Почтовый relay (только для внутренней сети) ---
	if cfg.Mail.ExposeRelay {
		api.HandleFunc("/internal/mail/send", mailRelay.Handle).Methods(http.MethodPost)
		log.Info("Mail relay endpoint exposed at /api/v1/internal/mail/send")
	}

	// ============================================================
	// ADMIN ROUTES (требуют Bearer токен)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authSvc, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", getBooking.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/customers/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// --- Каталог ---
	admin.HandleFunc("/services", services.HandleListAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/services", services.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{id}", services.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{id}", services.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", categories.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/categories", categories.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", categories.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", categories.HandleDelete).Methods(http.MethodDelete)

	// --- Блокировки времени ---
	admin.HandleFunc("/blocked-slots", blockedSlots.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-slots", blockedSlots.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-slots/{id}", blockedSlots.HandleGet).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-slots/{id}", blockedSlots.HandleDelete).Methods(http.MethodDelete)

	// --- Настройки сайта ---
	admin.HandleFunc("/settings", getSettings.HandleAdmin).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{section}", getSettings.HandleSection).Methods(http.MethodGet)
	admin.HandleFunc("/settings/{section}", updateSettings.Handle).Methods(http.MethodPut)

	// --- Отчеты ---
	admin.HandleFunc("/reports/summary", reports.HandleSummary).Methods(http.MethodGet)
	admin.HandleFunc("/reports/bookings.csv", reports.HandleCSV).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки уведомлений, начатых до остановки
	notifier.Wait()
	log.Info("Pending notifications flushed")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
