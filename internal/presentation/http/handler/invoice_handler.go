package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/application/service"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/request"
	"github.com/lnprasad/invoice-api/internal/presentation/http/dto/response"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, exportService *service.ExportService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		exportService:  exportService,
	}
}

// List handles listing stored invoices, optionally filtered by company.
// A backend failure degrades to an empty, unsuccessful listing instead of an
// error status so history views stay usable.
func (h *InvoiceHandler) List(c *gin.Context) {
	company, ok := optionalCompany(c)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), company)
	if err != nil {
		response.SoftFail(c, "Failed to load invoices", []entity.Invoice{})
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// Create handles saving a working invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.SaveInvoice(c.Request.Context(), req.ToWorking())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("Invoice %s saved successfully", invoice.InvoiceNo), invoice)
}

// Get handles getting a single stored invoice along with its editable form
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	working, err := invoice.ToWorking()
	if err != nil {
		// The stored record is still returned so the caller can at least
		// inspect and delete it.
		response.OK(c, "Invoice retrieved with undecodable items", gin.H{
			"invoice": invoice,
		})
		return
	}

	response.OK(c, "Invoice retrieved successfully", gin.H{
		"invoice": invoice,
		"working": working,
	})
}

// Delete handles deleting a stored invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// NextNumber handles previewing the next invoice number for a company
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	company, err := enum.ParseCompanyType(c.Query("company"))
	if err != nil {
		response.BadRequest(c, "Invalid company")
		return
	}

	invoiceNo := h.invoiceService.NextInvoiceNo(c.Request.Context(), company)
	response.OK(c, "Next invoice number computed", gin.H{
		"invoice_no": invoiceNo,
	})
}

// PDF handles downloading a stored invoice as a letterhead PDF
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	doc, err := h.exportService.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendDocument(c, doc)
}

// Excel handles downloading a stored invoice as a detailed workbook
func (h *InvoiceHandler) Excel(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}

	doc, err := h.exportService.InvoiceExcel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendDocument(c, doc)
}

// Export handles downloading the bulk workbook over all stored invoices
func (h *InvoiceHandler) Export(c *gin.Context) {
	company, ok := optionalCompany(c)
	if !ok {
		return
	}

	doc, err := h.exportService.AllInvoicesExcel(c.Request.Context(), company)
	if err != nil {
		response.Error(c, err)
		return
	}

	sendDocument(c, doc)
}

func invoiceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return uuid.Nil, false
	}
	return id, true
}

func optionalCompany(c *gin.Context) (*enum.CompanyType, bool) {
	raw := c.Query("company")
	if raw == "" {
		return nil, true
	}
	company, err := enum.ParseCompanyType(raw)
	if err != nil {
		response.BadRequest(c, "Invalid company")
		return nil, false
	}
	return &company, true
}

func sendDocument(c *gin.Context, doc *service.Document) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(200, doc.ContentType, doc.Content)
}
