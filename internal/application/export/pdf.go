package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
)

// InvoicePDF renders a working invoice as an A4 tax invoice on the seller's
// letterhead. Currency is written as "Rs." because the built-in PDF fonts
// have no rupee glyph.
func InvoicePDF(w *entity.WorkingInvoice, totals entity.Totals) ([]byte, error) {
	profile := entity.ProfileFor(w.Company)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30 // total margins = 30mm

	// Letterhead
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 8, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, profile.Name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if profile.Proprietor != "" {
		pdf.CellFormat(contentW, 5, "Proprietor: "+profile.Proprietor, "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, profile.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("%s, %s - %s", profile.City, profile.State, profile.PIN), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Email: "+profile.Email, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "GSTIN: "+profile.GSTIN, "", 1, "C", false, 0, "")

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(4)

	// Invoice fields
	half := contentW / 2
	labelled := func(width float64, label, value string, lineBreak int) {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(width*0.38, 6, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(width*0.62, 6, value, "", lineBreak, "L", false, 0, "")
	}

	labelled(half, "Invoice No:", w.InvoiceNo, 0)
	labelled(half, "Invoice Date:", displayDate(w.InvoiceDate), 1)
	labelled(half, "Customer:", w.CustomerName, 0)
	labelled(half, "HSN:", w.HSN, 1)
	labelled(half, "GSTIN:", w.GSTIN, 0)
	labelled(half, "Vehicle No:", w.VehicleNo, 1)
	labelled(half, "Permit No:", w.PermitNo, 0)
	labelled(half, "State:", fmt.Sprintf("%s (%s)", w.State, w.StateCode), 1)

	if w.ShippingAddress != "" {
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Shipping Address:", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.MultiCell(contentW, 5, w.ShippingAddress, "", "L", false)
	}

	pdf.Ln(4)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Itemized List:", "", 1, "L", false, 0, "")

	col1 := contentW * 0.40 // product
	col2 := contentW * 0.20 // qty + unit
	col3 := contentW * 0.18 // rate
	col4 := contentW * 0.22 // amount

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range w.Items {
		pdf.CellFormat(col1, 6, item.Product, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, formatQuantity(item.Quantity)+" "+item.Unit, "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, pdfRupees(item.Rate), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, pdfRupees(item.Amount()), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// Tax breakdown: CGST+SGST for a home-state buyer, IGST otherwise
	pdf.SetFont("Helvetica", "", 9)
	if totals.IntraState {
		pdf.CellFormat(col1+col2+col3, 6, "CGST (2.5%):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, pdfRupees(totals.CGST), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2+col3, 6, "SGST (2.5%):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, pdfRupees(totals.SGST), "", 1, "R", false, 0, "")
	} else {
		pdf.CellFormat(col1+col2+col3, 6, "IGST (5%):", "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, pdfRupees(totals.IGST), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "Total Amount:", "T", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, pdfRupees(totals.Total), "T", 1, "R", false, 0, "")

	// Signature block
	pdf.Ln(20)
	sigW := contentW * 0.35
	pdf.SetX(pageW - 15 - sigW)
	pdf.CellFormat(sigW, 5, "", "B", 1, "C", false, 0, "")
	pdf.SetX(pageW - 15 - sigW)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(sigW, 5, "Authorized Signature", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func pdfRupees(v float64) string {
	return fmt.Sprintf("Rs.%.2f", v)
}

func displayDate(isoDate string) string {
	t, err := time.Parse(entity.InvoiceDateLayout, isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format(exportDateLayout)
}
