package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
)

// InvoiceRepository defines the interface for invoice data operations.
type InvoiceRepository interface {
	// Create inserts a stored invoice. A uniqueness violation on
	// (company_type, invoice_no) is reported as apperror.ErrDuplicateInvoiceNo.
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetLatest returns the most recently created invoice for a company, or
	// nil when the company has none.
	GetLatest(ctx context.Context, company enum.CompanyType) (*entity.Invoice, error)
	// List returns invoices ordered by creation time descending, optionally
	// filtered to one company.
	List(ctx context.Context, company *enum.CompanyType) ([]entity.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AddressRepository defines the interface for saved-address data operations.
type AddressRepository interface {
	Create(ctx context.Context, address *entity.Address) error
	// List returns all addresses ordered by label ascending.
	List(ctx context.Context) ([]entity.Address, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PasskeyRepository defines the interface for access-gate secrets.
type PasskeyRepository interface {
	Create(ctx context.Context, passkey *entity.Passkey) error
	List(ctx context.Context) ([]entity.Passkey, error)
	Count(ctx context.Context) (int64, error)
}
