package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"github.com/lnprasad/invoice-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// stubPasskeyRepo is an in-memory PasskeyRepository for testing.
type stubPasskeyRepo struct {
	passkeys []entity.Passkey
	failList bool
}

func (r *stubPasskeyRepo) Create(_ context.Context, passkey *entity.Passkey) error {
	r.passkeys = append(r.passkeys, *passkey)
	return nil
}

func (r *stubPasskeyRepo) List(_ context.Context) ([]entity.Passkey, error) {
	if r.failList {
		return nil, errors.New("database down")
	}
	return r.passkeys, nil
}

func (r *stubPasskeyRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.passkeys)), nil
}

func hashedPasskey(t *testing.T, passkey string) entity.Passkey {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(passkey), bcrypt.MinCost)
	require.NoError(t, err)
	return entity.Passkey{KeyHash: string(hash)}
}

func TestLoginIssuesValidSession(t *testing.T) {
	repo := &stubPasskeyRepo{passkeys: []entity.Passkey{hashedPasskey(t, "stone-works-2025")}}
	sessions := utils.NewSessionManager("test-secret", time.Hour)
	svc := NewAuthService(repo, sessions, zap.NewNop())

	token, err := svc.Login(context.Background(), "stone-works-2025")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, utils.SessionSubject, claims.Subject)
}

func TestLoginMatchesAnyStoredPasskey(t *testing.T) {
	repo := &stubPasskeyRepo{passkeys: []entity.Passkey{
		hashedPasskey(t, "old-key"),
		hashedPasskey(t, "new-key"),
	}}
	sessions := utils.NewSessionManager("test-secret", time.Hour)
	svc := NewAuthService(repo, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), "new-key")
	assert.NoError(t, err)
}

func TestLoginRejectsWrongPasskey(t *testing.T) {
	repo := &stubPasskeyRepo{passkeys: []entity.Passkey{hashedPasskey(t, "stone-works-2025")}}
	sessions := utils.NewSessionManager("test-secret", time.Hour)
	svc := NewAuthService(repo, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), "guess")
	assert.ErrorIs(t, err, apperror.ErrInvalidPasskey)
}

func TestLoginRejectsEmptyPasskey(t *testing.T) {
	repo := &stubPasskeyRepo{}
	sessions := utils.NewSessionManager("test-secret", time.Hour)
	svc := NewAuthService(repo, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrInvalidPasskey)
}

func TestLoginRepoFailure(t *testing.T) {
	repo := &stubPasskeyRepo{failList: true}
	sessions := utils.NewSessionManager("test-secret", time.Hour)
	svc := NewAuthService(repo, sessions, zap.NewNop())

	_, err := svc.Login(context.Background(), "anything")
	require.Error(t, err)
	assert.Equal(t, 500, apperror.GetAppError(err).Code)
}
