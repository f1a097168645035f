package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	domainRepo "github.com/lnprasad/invoice-api/internal/domain/repository"
	"gorm.io/gorm"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository
func NewAddressRepository(db *gorm.DB) domainRepo.AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) List(ctx context.Context) ([]entity.Address, error) {
	var addresses []entity.Address
	err := r.db.WithContext(ctx).Order("label ASC").Find(&addresses).Error
	return addresses, err
}

func (r *addressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Address{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
