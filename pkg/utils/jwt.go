package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret = []byte("secret")

// SetSecret allows injecting the secret from config
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// SessionClaims is the payload of the session token issued by the external
// auth service.
type SessionClaims struct {
	UserID         string `json:"user_id"`
	ActiveLocation string `json:"active_location"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session token. Only used by tests and local tooling;
// production tokens come from the auth service.
func GenerateToken(userID, activeLocation string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID:         userID,
		ActiveLocation: activeLocation,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.UserID == "" {
		return nil, errors.New("token carries no user_id")
	}
	return claims, nil
}
