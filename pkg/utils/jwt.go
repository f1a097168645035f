package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionSubject is the subject claim of every session token. The gate is a
// single shared passkey, so there is exactly one logical principal.
const SessionSubject = "operator"

// SessionManager issues and validates the session tokens handed out after a
// successful passkey check.
type SessionManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewSessionManager creates a new session manager
func NewSessionManager(secret string, expiry time.Duration) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// Generate issues a new signed session token.
func (m *SessionManager) Generate() (string, error) {
	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Issuer:    "invoice-api",
		Subject:   SessionSubject,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Validate checks a session token and returns its claims.
func (m *SessionManager) Validate(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject != SessionSubject {
		return nil, errors.New("invalid token subject")
	}

	return claims, nil
}
