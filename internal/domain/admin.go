package domain

import "time"

// AdminUser учетная запись администратора салона
type AdminUser struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
