package utils

import (
	"errors"
	"time"

	"khazina/internal/config"
	"khazina/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenTTL = 7 * 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(config.GetEnv("JWT_SECRET", "khazina-dev-secret"))
}

// GenerateToken issues a signed session token for the given claims.
func GenerateToken(claims *models.UserClaims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates a session token and returns its claims.
func ParseToken(tokenString string) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
