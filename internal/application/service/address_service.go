package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/repository"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"go.uber.org/zap"
)

// AddressService manages the saved shipping-address book.
type AddressService struct {
	addressRepo repository.AddressRepository
	logger      *zap.Logger
}

// NewAddressService creates a new address service
func NewAddressService(addressRepo repository.AddressRepository, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// SaveAddress stores a new address-book entry. The address text is required;
// a blank or whitespace-only value is rejected before the repository is
// touched.
func (s *AddressService) SaveAddress(ctx context.Context, address *entity.Address) (*entity.Address, error) {
	address.Label = strings.TrimSpace(address.Label)
	address.Address = strings.TrimSpace(address.Address)

	var fieldErrors []apperror.FieldError
	if address.Label == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "label", Message: "label is required",
		})
	}
	if address.Address == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "address", Message: "address is required",
		})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}

	s.logger.Info("address saved", zap.String("label", address.Label))
	return address, nil
}

// ListAddresses returns all saved addresses ordered by label.
func (s *AddressService) ListAddresses(ctx context.Context) ([]entity.Address, error) {
	addresses, err := s.addressRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []entity.Address{}
	}
	return addresses, nil
}

// DeleteAddress removes a saved address by ID.
func (s *AddressService) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	err := s.addressRepo.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperror.NewNotFoundError("Address")
		}
		return err
	}

	s.logger.Info("address deleted", zap.String("id", id.String()))
	return nil
}
