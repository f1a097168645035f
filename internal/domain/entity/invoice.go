package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"gorm.io/gorm"
)

// InvoiceDateLayout is the calendar-date format used on the working invoice.
const InvoiceDateLayout = "2006-01-02"

// ErrMalformedItems is returned when a stored items payload cannot be decoded
// into a line-item list in either the canonical or the legacy encoding.
var ErrMalformedItems = errors.New("invoice items payload is not decodable")

// LineItem is one row of an invoice. Amount is always derived, never stored.
type LineItem struct {
	ID       string  `json:"id"`
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
}

// Amount returns quantity × rate for the line.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.Rate
}

// Totals is the computed tax breakdown for a set of line items.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	CGST       float64 `json:"cgst"`
	SGST       float64 `json:"sgst"`
	IGST       float64 `json:"igst"`
	Total      float64 `json:"total"`
	IntraState bool    `json:"intra_state"`
}

// WorkingInvoice is the transient, editable form of an invoice. It is either
// discarded or converted into a stored Invoice via the save protocol.
type WorkingInvoice struct {
	Company         enum.CompanyType `json:"company"`
	InvoiceNo       string           `json:"invoice_no"`
	InvoiceDate     string           `json:"invoice_date"` // YYYY-MM-DD
	CustomerName    string           `json:"customer_name"`
	HSN             string           `json:"hsn"`
	GSTIN           string           `json:"gstin"`
	VehicleNo       string           `json:"vehicle_no"`
	PermitNo        string           `json:"permit_no"`
	ShippingAddress string           `json:"shipping_address"`
	State           string           `json:"state"`
	StateCode       string           `json:"state_code"`
	Items           []LineItem       `json:"items"`
}

// Invoice is the persisted form of an invoice. Once written it is read-only
// except for deletion.
type Invoice struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CompanyType     enum.CompanyType `gorm:"size:50;not null;uniqueIndex:idx_invoices_company_invoice_no" json:"company_type"`
	InvoiceNo       string           `gorm:"size:100;not null;uniqueIndex:idx_invoices_company_invoice_no" json:"invoice_no"`
	InvoiceDate     time.Time        `gorm:"type:date;not null" json:"invoice_date"`
	CustomerName    string           `gorm:"size:255;not null" json:"customer_name"`
	HSN             string           `gorm:"size:50" json:"hsn"`
	GSTIN           string           `gorm:"size:50" json:"gstin"`
	VehicleNo       *string          `gorm:"size:100" json:"vehicle_no,omitempty"`
	PermitNo        *string          `gorm:"size:100" json:"permit_no,omitempty"`
	ShippingAddress *string          `gorm:"type:text" json:"shipping_address,omitempty"`
	State           string           `gorm:"size:100" json:"state"`
	StateCode       string           `gorm:"size:10" json:"state_code"`
	Items           json.RawMessage  `gorm:"type:jsonb;not null" json:"items"`
	Subtotal        float64          `gorm:"type:numeric(14,2);not null" json:"subtotal"`
	CGST            *float64         `gorm:"type:numeric(14,2)" json:"cgst"`
	SGST            *float64         `gorm:"type:numeric(14,2)" json:"sgst"`
	IGST            *float64         `gorm:"type:numeric(14,2)" json:"igst"`
	TotalAmount     float64          `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// EncodeLineItems produces the canonical stored encoding of a line-item list:
// a plain JSON array with numeric quantity and rate.
func EncodeLineItems(items []LineItem) (json.RawMessage, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	return raw, nil
}

// LineItems decodes the stored items payload. The canonical encoding is a JSON
// array; records written by older clients hold a JSON string that itself
// contains the array, so that form is accepted as a compatibility shim.
// Anything else fails with ErrMalformedItems.
func (i *Invoice) LineItems() ([]LineItem, error) {
	if len(i.Items) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedItems)
	}

	var items []LineItem
	if err := json.Unmarshal(i.Items, &items); err == nil {
		return items, nil
	}

	// Legacy form: the column holds a JSON string wrapping the array.
	var wrapped string
	if err := json.Unmarshal(i.Items, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedItems, compactForError(i.Items))
	}
	if err := json.Unmarshal([]byte(wrapped), &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedItems, compactForError(i.Items))
	}
	return items, nil
}

// TaxTotal returns the summed tax portion of the invoice.
func (i *Invoice) TaxTotal() float64 {
	var tax float64
	for _, v := range []*float64{i.CGST, i.SGST, i.IGST} {
		if v != nil {
			tax += *v
		}
	}
	return tax
}

// NewInvoice builds the persisted shape from a working invoice and its
// computed totals. Zero tax components are stored as NULL so that exactly one
// of {CGST&SGST, IGST} is set on any record.
func NewInvoice(w *WorkingInvoice, invoiceNo string, t Totals) (*Invoice, error) {
	date, err := time.Parse(InvoiceDateLayout, w.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("parse invoice date %q: %w", w.InvoiceDate, err)
	}

	items, err := EncodeLineItems(w.Items)
	if err != nil {
		return nil, err
	}

	return &Invoice{
		CompanyType:     w.Company,
		InvoiceNo:       invoiceNo,
		InvoiceDate:     date,
		CustomerName:    w.CustomerName,
		HSN:             w.HSN,
		GSTIN:           w.GSTIN,
		VehicleNo:       optional(w.VehicleNo),
		PermitNo:        optional(w.PermitNo),
		ShippingAddress: optional(w.ShippingAddress),
		State:           w.State,
		StateCode:       w.StateCode,
		Items:           items,
		Subtotal:        t.Subtotal,
		CGST:            optionalAmount(t.CGST),
		SGST:            optionalAmount(t.SGST),
		IGST:            optionalAmount(t.IGST),
		TotalAmount:     t.Total,
	}, nil
}

// ToWorking reconstructs a working invoice from a stored record for
// re-display or re-export. The stored record is never mutated.
func (i *Invoice) ToWorking() (*WorkingInvoice, error) {
	items, err := i.LineItems()
	if err != nil {
		return nil, err
	}

	return &WorkingInvoice{
		Company:         i.CompanyType,
		InvoiceNo:       i.InvoiceNo,
		InvoiceDate:     i.InvoiceDate.Format(InvoiceDateLayout),
		CustomerName:    i.CustomerName,
		HSN:             i.HSN,
		GSTIN:           i.GSTIN,
		VehicleNo:       deref(i.VehicleNo),
		PermitNo:        deref(i.PermitNo),
		ShippingAddress: deref(i.ShippingAddress),
		State:           i.State,
		StateCode:       i.StateCode,
		Items:           items,
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalAmount(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func compactForError(raw json.RawMessage) string {
	const max = 64
	s := string(raw)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
