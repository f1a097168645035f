package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/application/export"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/internal/domain/gst"
	"github.com/lnprasad/invoice-api/internal/domain/repository"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"go.uber.org/zap"
)

// Document download content types.
const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Document is a rendered export ready to be sent as a file download.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders stored invoices into downloadable documents.
type ExportService struct {
	invoiceRepo repository.InvoiceRepository
	logger      *zap.Logger
}

// NewExportService creates a new export service
func NewExportService(invoiceRepo repository.InvoiceRepository, logger *zap.Logger) *ExportService {
	return &ExportService{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// InvoicePDF renders a stored invoice as a letterhead PDF.
func (s *ExportService) InvoicePDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	w, totals, err := s.loadWorking(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := export.InvoicePDF(w, totals)
	if err != nil {
		s.logger.Error("failed to render invoice pdf",
			zap.String("id", id.String()), zap.Error(err))
		return nil, apperror.ErrInternalServer
	}

	return &Document{
		Filename:    export.PDFFilename(w.InvoiceNo, w.CustomerName),
		ContentType: ContentTypePDF,
		Content:     content,
	}, nil
}

// InvoiceExcel renders a stored invoice as a detailed single-sheet workbook.
func (s *ExportService) InvoiceExcel(ctx context.Context, id uuid.UUID) (*Document, error) {
	w, totals, err := s.loadWorking(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := export.InvoiceWorkbook(w, totals, time.Now())
	if err != nil {
		s.logger.Error("failed to render invoice workbook",
			zap.String("id", id.String()), zap.Error(err))
		return nil, apperror.ErrInternalServer
	}

	return &Document{
		Filename:    export.ExcelFilename(w.InvoiceNo, w.CustomerName),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

// AllInvoicesExcel renders the bulk workbook over every stored invoice,
// optionally restricted to one company.
func (s *ExportService) AllInvoicesExcel(ctx context.Context, company *enum.CompanyType) (*Document, error) {
	invoices, err := s.invoiceRepo.List(ctx, company)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	content, err := export.AllInvoicesWorkbook(invoices, now)
	if err != nil {
		s.logger.Error("failed to render bulk workbook", zap.Error(err))
		return nil, apperror.ErrInternalServer
	}

	return &Document{
		Filename:    export.BulkExcelFilename(now),
		ContentType: ContentTypeXLSX,
		Content:     content,
	}, nil
}

// loadWorking fetches a stored invoice and reconstructs its working form and
// totals. Totals are recomputed from the line items, not read back from the
// stored columns, so every export shows the same arithmetic the save did.
func (s *ExportService) loadWorking(ctx context.Context, id uuid.UUID) (*entity.WorkingInvoice, entity.Totals, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, entity.Totals{}, err
	}
	if invoice == nil {
		return nil, entity.Totals{}, apperror.NewNotFoundError("Invoice")
	}

	w, err := invoice.ToWorking()
	if err != nil {
		if errors.Is(err, entity.ErrMalformedItems) {
			s.logger.Error("stored invoice has undecodable items",
				zap.String("id", id.String()), zap.Error(err))
			return nil, entity.Totals{}, apperror.NewMalformedDataError(
				fmt.Sprintf("Invoice %s has malformed line items and cannot be exported", invoice.InvoiceNo))
		}
		return nil, entity.Totals{}, err
	}

	return w, gst.ComputeTotals(w.Items, w.StateCode), nil
}
