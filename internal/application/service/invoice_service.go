package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/config"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/internal/domain/gst"
	"github.com/lnprasad/invoice-api/internal/domain/repository"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"go.uber.org/zap"
)

// FirstInvoiceNo is the number allocated when a company has no invoices yet.
const FirstInvoiceNo = "INV/0001"

// InvoiceService handles invoice computation, numbering and persistence.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	defaults    config.InvoiceConfig
	logger      *zap.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, defaults config.InvoiceConfig, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		defaults:    defaults,
		logger:      logger,
	}
}

// NextInvoiceNo derives the next sequential invoice number for a company from
// persisted history: INV/ followed by a zero-padded sequence (at least four
// digits, growing naturally past 9999). Allocation never fails: a repository
// error or an unparseable prior number degrades to the first number.
func (s *InvoiceService) NextInvoiceNo(ctx context.Context, company enum.CompanyType) string {
	latest, err := s.invoiceRepo.GetLatest(ctx, company)
	if err != nil {
		s.logger.Warn("failed to fetch last invoice, falling back to first number",
			zap.String("company", company.String()),
			zap.Error(err))
		return FirstInvoiceNo
	}
	if latest == nil {
		return FirstInvoiceNo
	}

	return formatInvoiceNo(parseInvoiceSeq(latest.InvoiceNo) + 1)
}

// parseInvoiceSeq extracts the numeric sequence from an invoice number such
// as "INV/0042": the digits after the last slash, with any stray non-digit
// characters stripped. Malformed input yields 0 so allocation degrades to
// re-deriving the first number instead of failing.
func parseInvoiceSeq(invoiceNo string) int {
	suffix := invoiceNo
	if idx := strings.LastIndex(invoiceNo, "/"); idx >= 0 {
		suffix = invoiceNo[idx+1:]
	}

	n := 0
	sawDigit := false
	for _, r := range suffix {
		if r < '0' || r > '9' {
			continue
		}
		sawDigit = true
		n = n*10 + int(r-'0')
	}
	if !sawDigit {
		return 0
	}
	return n
}

func formatInvoiceNo(seq int) string {
	return fmt.Sprintf("INV/%04d", seq)
}

// SaveInvoice converts a working invoice into a stored record. Totals are
// always recomputed server-side from the line items. The insert first uses
// the caller's invoice number (or a freshly allocated one when blank); on a
// uniqueness violation the number is recomputed from history and the insert
// retried exactly once. If the recomputed number matches the rejected one the
// failure is surfaced rather than looping.
func (s *InvoiceService) SaveInvoice(ctx context.Context, w *entity.WorkingInvoice) (*entity.Invoice, error) {
	if err := validateWorkingInvoice(w); err != nil {
		return nil, err
	}

	// Stone sales nearly always share one HSN code and unit, so blanks get
	// the configured defaults instead of being rejected.
	if strings.TrimSpace(w.HSN) == "" {
		w.HSN = s.defaults.DefaultHSN
	}
	for i := range w.Items {
		if strings.TrimSpace(w.Items[i].Unit) == "" {
			w.Items[i].Unit = s.defaults.DefaultUnit
		}
	}

	totals := gst.ComputeTotals(w.Items, w.StateCode)

	desired := strings.TrimSpace(w.InvoiceNo)
	if desired == "" {
		desired = s.NextInvoiceNo(ctx, w.Company)
	}

	invoice, err := entity.NewInvoice(w, desired, totals)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	err = s.invoiceRepo.Create(ctx, invoice)
	if err == nil {
		s.logger.Info("invoice saved",
			zap.String("company", w.Company.String()),
			zap.String("invoice_no", invoice.InvoiceNo))
		return invoice, nil
	}
	if !errors.Is(err, apperror.ErrDuplicateInvoiceNo) {
		return nil, err
	}

	recomputed := s.NextInvoiceNo(ctx, w.Company)
	if recomputed == desired {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Invoice number %s is already taken and could not be reallocated", desired))
	}

	s.logger.Info("invoice number collision, retrying with recomputed number",
		zap.String("company", w.Company.String()),
		zap.String("rejected", desired),
		zap.String("recomputed", recomputed))

	retry, err := entity.NewInvoice(w, recomputed, totals)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	if err := s.invoiceRepo.Create(ctx, retry); err != nil {
		return nil, err
	}
	return retry, nil
}

// ListInvoices returns stored invoices most-recent first, optionally
// filtered to one company. A backend failure is reported alongside an empty
// result so a caller's listing flow stays responsive.
func (s *InvoiceService) ListInvoices(ctx context.Context, company *enum.CompanyType) ([]entity.Invoice, error) {
	invoices, err := s.invoiceRepo.List(ctx, company)
	if err != nil {
		s.logger.Error("failed to list invoices", zap.Error(err))
		return []entity.Invoice{}, err
	}
	if invoices == nil {
		invoices = []entity.Invoice{}
	}
	return invoices, nil
}

// GetInvoice retrieves a stored invoice by ID.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// DeleteInvoice removes a stored invoice by ID. Deleting an unknown ID is a
// reported failure, not a silent no-op.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	err := s.invoiceRepo.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return apperror.NewNotFoundError("Invoice")
		}
		return err
	}

	s.logger.Info("invoice deleted", zap.String("id", id.String()))
	return nil
}

func validateWorkingInvoice(w *entity.WorkingInvoice) error {
	var fieldErrors []apperror.FieldError

	if !w.Company.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "company", Message: "unknown company type",
		})
	}
	if len(w.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field: "items", Message: "at least one line item is required",
		})
	}
	for idx, item := range w.Items {
		if item.Quantity < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].quantity", idx), Message: "must not be negative",
			})
		}
		if item.Rate < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field: fmt.Sprintf("items[%d].rate", idx), Message: "must not be negative",
			})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
