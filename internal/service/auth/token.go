package auth

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "salon-booking-service"

// Claims содержимое токена администратора
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AdminID идентификатор администратора из subject
func (c *Claims) AdminID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}
