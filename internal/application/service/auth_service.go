package service

import (
	"context"

	"github.com/lnprasad/invoice-api/internal/domain/repository"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"github.com/lnprasad/invoice-api/pkg/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService gates the API behind a shared passkey. A successful check
// issues a short-lived session token.
type AuthService struct {
	passkeyRepo repository.PasskeyRepository
	sessions    *utils.SessionManager
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(passkeyRepo repository.PasskeyRepository, sessions *utils.SessionManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		passkeyRepo: passkeyRepo,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login verifies the submitted passkey against the stored hashes and returns
// a session token on a match. Which passkeys exist, and the reason for a
// failed check, are never revealed to the caller.
func (s *AuthService) Login(ctx context.Context, passkey string) (string, error) {
	if passkey == "" {
		return "", apperror.ErrInvalidPasskey
	}

	passkeys, err := s.passkeyRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to load passkeys", zap.Error(err))
		return "", apperror.ErrInternalServer
	}

	for _, stored := range passkeys {
		if bcrypt.CompareHashAndPassword([]byte(stored.KeyHash), []byte(passkey)) == nil {
			token, err := s.sessions.Generate()
			if err != nil {
				s.logger.Error("failed to issue session token", zap.Error(err))
				return "", apperror.ErrInternalServer
			}
			return token, nil
		}
	}

	s.logger.Warn("rejected login attempt")
	return "", apperror.ErrInvalidPasskey
}
