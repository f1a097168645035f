package request

import (
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
)

// LineItemRequest represents one invoice line in a save request
type LineItemRequest struct {
	ID       string  `json:"id"`
	Product  string  `json:"product" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
}

// SaveInvoiceRequest represents an invoice save request. InvoiceNo is
// optional; when blank the server allocates the next number.
type SaveInvoiceRequest struct {
	Company         string            `json:"company" binding:"required"`
	InvoiceNo       string            `json:"invoice_no"`
	InvoiceDate     string            `json:"invoice_date" binding:"required"`
	CustomerName    string            `json:"customer_name" binding:"required"`
	HSN             string            `json:"hsn"`
	GSTIN           string            `json:"gstin"`
	VehicleNo       string            `json:"vehicle_no"`
	PermitNo        string            `json:"permit_no"`
	ShippingAddress string            `json:"shipping_address"`
	State           string            `json:"state"`
	StateCode       string            `json:"state_code"`
	Items           []LineItemRequest `json:"items" binding:"required"`
}

// ToWorking converts the request into the domain's working-invoice form.
func (r *SaveInvoiceRequest) ToWorking() *entity.WorkingInvoice {
	items := make([]entity.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, entity.LineItem{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Rate:     item.Rate,
		})
	}

	return &entity.WorkingInvoice{
		Company:         enum.CompanyType(r.Company),
		InvoiceNo:       r.InvoiceNo,
		InvoiceDate:     r.InvoiceDate,
		CustomerName:    r.CustomerName,
		HSN:             r.HSN,
		GSTIN:           r.GSTIN,
		VehicleNo:       r.VehicleNo,
		PermitNo:        r.PermitNo,
		ShippingAddress: r.ShippingAddress,
		State:           r.State,
		StateCode:       r.StateCode,
		Items:           items,
	}
}
