package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/config"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubInvoiceRepo is an in-memory InvoiceRepository for testing.
type stubInvoiceRepo struct {
	invoices    []*entity.Invoice
	failLatest  bool
	failList    bool
	alwaysClash bool
	createCalls int
}

func (r *stubInvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.createCalls++
	if r.alwaysClash {
		return apperror.ErrDuplicateInvoiceNo
	}
	for _, stored := range r.invoices {
		if stored.CompanyType == invoice.CompanyType && stored.InvoiceNo == invoice.InvoiceNo {
			return apperror.ErrDuplicateInvoiceNo
		}
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	invoice.CreatedAt = time.Now().Add(time.Duration(len(r.invoices)) * time.Second)
	r.invoices = append(r.invoices, invoice)
	return nil
}

func (r *stubInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	for _, stored := range r.invoices {
		if stored.ID == id {
			return stored, nil
		}
	}
	return nil, nil
}

func (r *stubInvoiceRepo) GetLatest(_ context.Context, company enum.CompanyType) (*entity.Invoice, error) {
	if r.failLatest {
		return nil, errors.New("database down")
	}
	var latest *entity.Invoice
	for _, stored := range r.invoices {
		if stored.CompanyType != company {
			continue
		}
		if latest == nil || stored.CreatedAt.After(latest.CreatedAt) {
			latest = stored
		}
	}
	return latest, nil
}

func (r *stubInvoiceRepo) List(_ context.Context, company *enum.CompanyType) ([]entity.Invoice, error) {
	if r.failList {
		return nil, errors.New("database down")
	}
	var out []entity.Invoice
	for i := len(r.invoices) - 1; i >= 0; i-- {
		if company != nil && r.invoices[i].CompanyType != *company {
			continue
		}
		out = append(out, *r.invoices[i])
	}
	return out, nil
}

func (r *stubInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, stored := range r.invoices {
		if stored.ID == id {
			r.invoices = append(r.invoices[:i], r.invoices[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func newTestInvoiceService(repo *stubInvoiceRepo) *InvoiceService {
	defaults := config.InvoiceConfig{DefaultHSN: "25171010", DefaultUnit: "CFT"}
	return NewInvoiceService(repo, defaults, zap.NewNop())
}

func validWorking() *entity.WorkingInvoice {
	return &entity.WorkingInvoice{
		Company:      enum.CompanyMaaDurga,
		InvoiceDate:  "2025-11-03",
		CustomerName: "Ram Kumar Traders",
		HSN:          "25171010",
		State:        "JHARKHAND",
		StateCode:    "20",
		Items: []entity.LineItem{
			{ID: "1", Product: "Stone Chips", Quantity: 10, Unit: "CFT", Rate: 100},
		},
	}
}

func seedInvoice(t *testing.T, svc *InvoiceService, w *entity.WorkingInvoice) *entity.Invoice {
	t.Helper()
	invoice, err := svc.SaveInvoice(context.Background(), w)
	require.NoError(t, err)
	return invoice
}

func TestNextInvoiceNoEmptyHistory(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{})
	assert.Equal(t, "INV/0001", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestNextInvoiceNoIncrements(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.InvoiceNo = "INV/0007"
	seedInvoice(t, svc, w)

	assert.Equal(t, "INV/0008", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestNextInvoiceNoGrowsPastPadding(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.InvoiceNo = "INV/9999"
	seedInvoice(t, svc, w)

	assert.Equal(t, "INV/10000", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestNextInvoiceNoMalformedLatest(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.InvoiceNo = "scribbled by hand"
	seedInvoice(t, svc, w)

	assert.Equal(t, "INV/0001", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestNextInvoiceNoRepoFailure(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{failLatest: true})
	assert.Equal(t, "INV/0001", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestNextInvoiceNoPerCompany(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.InvoiceNo = "INV/0005"
	seedInvoice(t, svc, w)

	// The other company's sequence is untouched.
	assert.Equal(t, "INV/0001", svc.NextInvoiceNo(context.Background(), enum.CompanyBhagwati))
	assert.Equal(t, "INV/0006", svc.NextInvoiceNo(context.Background(), enum.CompanyMaaDurga))
}

func TestSaveInvoiceAllocatesNumberAndComputesTotals(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	invoice, err := svc.SaveInvoice(context.Background(), validWorking())
	require.NoError(t, err)

	assert.Equal(t, "INV/0001", invoice.InvoiceNo)
	assert.InDelta(t, 1000.0, invoice.Subtotal, 0.001)
	require.NotNil(t, invoice.CGST)
	require.NotNil(t, invoice.SGST)
	assert.InDelta(t, 25.0, *invoice.CGST, 0.001)
	assert.InDelta(t, 25.0, *invoice.SGST, 0.001)
	assert.Nil(t, invoice.IGST)
	assert.InDelta(t, 1050.0, invoice.TotalAmount, 0.001)
}

func TestSaveInvoiceInterStateTotals(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.State = "MAHARASHTRA"
	w.StateCode = "27"

	invoice, err := svc.SaveInvoice(context.Background(), w)
	require.NoError(t, err)

	assert.Nil(t, invoice.CGST)
	assert.Nil(t, invoice.SGST)
	require.NotNil(t, invoice.IGST)
	assert.InDelta(t, 50.0, *invoice.IGST, 0.001)
}

func TestSaveInvoiceAppliesDefaults(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	w := validWorking()
	w.HSN = ""
	w.Items[0].Unit = ""

	invoice, err := svc.SaveInvoice(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, "25171010", invoice.HSN)
	items, err := invoice.LineItems()
	require.NoError(t, err)
	assert.Equal(t, "CFT", items[0].Unit)
}

func TestSaveInvoiceDuplicateRetriesOnce(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	seedInvoice(t, svc, validWorking()) // takes INV/0001

	w := validWorking()
	w.InvoiceNo = "INV/0001" // stale number from a second device
	repo.createCalls = 0

	invoice, err := svc.SaveInvoice(context.Background(), w)
	require.NoError(t, err)

	assert.Equal(t, "INV/0002", invoice.InvoiceNo)
	assert.Equal(t, 2, repo.createCalls)
}

func TestSaveInvoiceRetryCollisionEscalates(t *testing.T) {
	repo := &stubInvoiceRepo{alwaysClash: true}
	svc := newTestInvoiceService(repo)

	_, err := svc.SaveInvoice(context.Background(), validWorking())
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	// No third attempt.
	assert.Equal(t, 1, repo.createCalls)
}

func TestSaveInvoiceValidation(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	cases := map[string]func(w *entity.WorkingInvoice){
		"unknown company": func(w *entity.WorkingInvoice) { w.Company = "someone-else" },
		"no items":        func(w *entity.WorkingInvoice) { w.Items = nil },
		"negative qty":    func(w *entity.WorkingInvoice) { w.Items[0].Quantity = -1 },
		"negative rate":   func(w *entity.WorkingInvoice) { w.Items[0].Rate = -5 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			w := validWorking()
			mutate(w)

			_, err := svc.SaveInvoice(context.Background(), w)
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
		})
	}
	assert.Zero(t, repo.createCalls)
}

func TestSaveInvoiceBadDate(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{})

	w := validWorking()
	w.InvoiceDate = "03-11-2025"

	_, err := svc.SaveInvoice(context.Background(), w)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestListInvoicesNewestFirst(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	first := validWorking()
	first.InvoiceNo = "INV/0001"
	seedInvoice(t, svc, first)

	second := validWorking()
	second.InvoiceNo = "INV/0002"
	seedInvoice(t, svc, second)

	invoices, err := svc.ListInvoices(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	assert.Equal(t, "INV/0002", invoices[0].InvoiceNo)
	assert.Equal(t, "INV/0001", invoices[1].InvoiceNo)
}

func TestListInvoicesDegradesToEmpty(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{failList: true})

	invoices, err := svc.ListInvoices(context.Background(), nil)
	assert.Error(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}

func TestDeleteInvoice(t *testing.T) {
	repo := &stubInvoiceRepo{}
	svc := newTestInvoiceService(repo)

	invoice := seedInvoice(t, svc, validWorking())

	require.NoError(t, svc.DeleteInvoice(context.Background(), invoice.ID))

	invoices, err := svc.ListInvoices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, invoices)
}

func TestDeleteInvoiceUnknownID(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{})

	err := svc.DeleteInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestGetInvoiceUnknownID(t *testing.T) {
	svc := newTestInvoiceService(&stubInvoiceRepo{})

	_, err := svc.GetInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
