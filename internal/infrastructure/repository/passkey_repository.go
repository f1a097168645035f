package repository

import (
	"context"

	"github.com/lnprasad/invoice-api/internal/domain/entity"
	domainRepo "github.com/lnprasad/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type passkeyRepository struct {
	db *gorm.DB
}

// NewPasskeyRepository creates a new passkey repository
func NewPasskeyRepository(db *gorm.DB) domainRepo.PasskeyRepository {
	return &passkeyRepository{db: db}
}

func (r *passkeyRepository) Create(ctx context.Context, passkey *entity.Passkey) error {
	return r.db.WithContext(ctx).Create(passkey).Error
}

func (r *passkeyRepository) List(ctx context.Context) ([]entity.Passkey, error) {
	var passkeys []entity.Passkey
	err := r.db.WithContext(ctx).Find(&passkeys).Error
	return passkeys, err
}

func (r *passkeyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Passkey{}).Count(&count).Error
	return count, err
}
