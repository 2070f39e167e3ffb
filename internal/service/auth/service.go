package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	adminRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/admin"
	"github.com/m04kA/salon-booking-service/internal/service/auth/models"
)

const (
	minPasswordLength = 8
	// bcrypt игнорирует байты после 72-го
	maxPasswordLength = 72
)

// Service сервис аутентификации администратора
type Service struct {
	adminRepo    AdminRepository
	txManager    TxManager
	secret       []byte
	tokenTTL     time.Duration
	bcryptCost   int
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(
	adminRepo AdminRepository,
	txManager TxManager,
	secret string,
	tokenTTL time.Duration,
	logger Logger,
) *Service {
	return &Service{
		adminRepo:    adminRepo,
		txManager:    txManager,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
		bcryptCost:   bcrypt.DefaultCost,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Bootstrap создает единственного администратора
// Срабатывает один раз: если администратор уже есть, возвращает ErrAlreadyBootstrapped
func (s *Service) Bootstrap(ctx context.Context, req *models.CredentialsRequest) (*models.AdminResponse, error) {
	email, err := validateCredentials(req)
	if err != nil {
		s.logger.Warn("Bootstrap: validation failed: %v", err)
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Bootstrap: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Bootstrap - hash password: %v", ErrInternal, err)
	}

	var created *domain.AdminUser
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Проверяем, что администраторов еще нет (таблица блокируется до конца транзакции)
		count, err := s.adminRepo.Count(ctx)
		if err != nil {
			return fmt.Errorf("%w: Bootstrap - count admins: %v", ErrInternal, err)
		}
		if count > 0 {
			return ErrAlreadyBootstrapped
		}

		// 2. Создаем администратора
		created, err = s.adminRepo.Create(ctx, &domain.AdminUser{
			Email:        email,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, adminRepo.ErrDuplicateEmail) {
				return ErrAlreadyBootstrapped
			}
			return fmt.Errorf("%w: Bootstrap - create admin: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyBootstrapped) {
			s.logger.Warn("Bootstrap: admin already exists")
			return nil, err
		}
		s.logger.Error("Bootstrap: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Bootstrap - transaction: %v", ErrInternal, err)
	}

	s.logger.Info("Bootstrap: created admin id=%d, email=%s", created.ID, created.Email)
	return models.FromDomainAdmin(created), nil
}

// EnsureBootstrap создает администратора из конфигурации при старте, если его еще нет
func (s *Service) EnsureBootstrap(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	_, err := s.Bootstrap(ctx, &models.CredentialsRequest{Email: email, Password: password})
	if errors.Is(err, ErrAlreadyBootstrapped) {
		return nil
	}
	return err
}

// Login проверяет пароль и выдает подписанный токен
func (s *Service) Login(ctx context.Context, req *models.CredentialsRequest) (*models.TokenResponse, error) {
	admin, err := s.adminRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown email %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for admin id=%d", admin.ID)
		return nil, ErrInvalidCredentials
	}

	now := s.timeProvider.Now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &Claims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(admin.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("Login: failed to sign token: %v", err)
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin id=%d logged in", admin.ID)
	return &models.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *Service) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := claims.AdminID(); err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return claims, nil
}

func validateCredentials(req *models.CredentialsRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return "", fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(req.Password) > maxPasswordLength {
		return "", fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordLength)
	}
	return email, nil
}
