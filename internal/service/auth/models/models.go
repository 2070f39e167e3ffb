package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// CredentialsRequest email и пароль администратора
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminResponse администратор без хеша пароля
type AdminResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenResponse выданный токен доступа
type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// FromDomainAdmin конвертирует domain модель в DTO
func FromDomainAdmin(a *domain.AdminUser) *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
	}
}
