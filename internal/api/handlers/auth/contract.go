package auth

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/service/auth/models"
)

type AuthService interface {
	Bootstrap(ctx context.Context, req *models.CredentialsRequest) (*models.AdminResponse, error)
	Login(ctx context.Context, req *models.CredentialsRequest) (*models.TokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
