package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims описывает данные, хранящиеся в JWT.
type CustomClaims struct {
	UserID               string `json:"id"` // Идентификатор пользователя
	jwt.RegisteredClaims        // ExpiresAt, IssuedAt и пр.
}
