package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/lnprasad/invoice-api/internal/domain/gst"
	"github.com/xuri/excelize/v2"
)

const (
	invoiceSheetName = "Invoice Details"
	summarySheetName = "Summary"
)

// bulkSheetNames maps each seller to its sheet in the all-invoices workbook.
var bulkSheetNames = map[enum.CompanyType]string{
	enum.CompanyMaaDurga: "MAA DURGA",
	enum.CompanyBhagwati: "BHAGWATI",
}

const exportTimestampLayout = "02/01/2006 15:04:05"
const exportDateLayout = "02/01/2006"

// InvoiceWorkbook renders one invoice as a single-sheet workbook with the
// header fields, an itemized breakdown and a tax summary.
func InvoiceWorkbook(w *entity.WorkingInvoice, totals entity.Totals, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", invoiceSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, invoiceSheetName, InvoiceDetailRows(w, totals, now)); err != nil {
		return nil, err
	}
	setColumnWidths(f, invoiceSheetName, []float64{8, 25, 10, 8, 12, 12, 12, 20, 12, 12})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoiceDetailRows builds the row grid of the single-invoice sheet.
func InvoiceDetailRows(w *entity.WorkingInvoice, totals entity.Totals, now time.Time) [][]interface{} {
	rows := [][]interface{}{
		{"INVOICE DETAILS"},
		{"Invoice No", w.InvoiceNo, "Company", strings.ToUpper(w.Company.String()), "Date", w.InvoiceDate},
		{"Customer Name", w.CustomerName, "HSN Code", w.HSN, "GSTIN", w.GSTIN},
		{"Vehicle No", w.VehicleNo, "Permit No", w.PermitNo, "State", w.State, "State Code", w.StateCode},
		{"Shipping Address", w.ShippingAddress},
		{},
		{"ITEMIZED BREAKDOWN"},
		{"S.No", "Product Name", "Quantity", "Unit", "Rate (₹)", "Amount (₹)", "HSN", "Tax Rate", "Tax Amount", "Total"},
	}

	rateLabel := gst.RateLabel(w.StateCode)
	for idx, item := range w.Items {
		amount := item.Amount()
		tax := amount * gst.CombinedRate
		rows = append(rows, []interface{}{
			strconv.Itoa(idx + 1),
			item.Product,
			formatQuantity(item.Quantity),
			item.Unit,
			rupees(item.Rate),
			rupees(amount),
			w.HSN,
			rateLabel,
			rupees(tax),
			rupees(amount + tax),
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"TAX SUMMARY"},
		[]interface{}{"Subtotal (Before Tax)", rupees(totals.Subtotal)},
	)
	if totals.IntraState {
		rows = append(rows,
			[]interface{}{"CGST (2.5%)", rupees(totals.CGST)},
			[]interface{}{"SGST (2.5%)", rupees(totals.SGST)},
		)
	} else {
		rows = append(rows, []interface{}{"IGST (5%)", rupees(totals.IGST)})
	}
	rows = append(rows,
		[]interface{}{"GRAND TOTAL", rupees(totals.Total)},
		[]interface{}{},
		[]interface{}{"Export Date", now.Format(exportTimestampLayout)},
	)
	return rows
}

// AllInvoicesWorkbook renders the bulk report: a Summary sheet over every
// invoice, plus one detailed sheet per seller that has invoices.
func AllInvoicesWorkbook(invoices []entity.Invoice, now time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, summarySheetName, SummaryRows(invoices, now)); err != nil {
		return nil, err
	}
	setColumnWidths(f, summarySheetName, []float64{6, 15, 25, 12, 20, 12, 18, 12, 10, 12, 12, 10})

	for _, company := range enum.AllCompanyTypes() {
		var own []entity.Invoice
		for _, inv := range invoices {
			if inv.CompanyType == company {
				own = append(own, inv)
			}
		}
		if len(own) == 0 {
			continue
		}

		sheet := bulkSheetNames[company]
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", sheet, err)
		}
		if err := writeRows(f, sheet, CompanyReportRows(entity.ProfileFor(company), own, now)); err != nil {
			return nil, err
		}
		setColumnWidths(f, sheet, []float64{15, 12, 20, 12, 18, 12, 12, 15, 8, 10, 12, 10, 10, 10, 12, 12})
	}

	idx, err := f.GetSheetIndex(summarySheetName)
	if err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryRows builds the Summary sheet of the bulk report: one line per
// invoice and a grand-totals footer.
func SummaryRows(invoices []entity.Invoice, now time.Time) [][]interface{} {
	rows := [][]interface{}{
		{"ALL INVOICES SUMMARY"},
		{"Export Date", now.Format(exportTimestampLayout)},
		{"Total Invoices", strconv.Itoa(len(invoices))},
		{},
		{"S.No", "Invoice No", "Company", "Date", "Customer", "Vehicle No", "State", "Subtotal", "Tax", "Total Amount", "Created On", "Status"},
	}

	var subtotalSum, taxSum, totalSum float64
	for idx, inv := range invoices {
		tax := inv.TaxTotal()
		subtotalSum += inv.Subtotal
		taxSum += tax
		totalSum += inv.TotalAmount

		rows = append(rows, []interface{}{
			strconv.Itoa(idx + 1),
			inv.InvoiceNo,
			entity.ProfileFor(inv.CompanyType).Name,
			inv.InvoiceDate.Format(exportDateLayout),
			inv.CustomerName,
			orNA(inv.VehicleNo),
			fmt.Sprintf("%s (%s)", inv.State, inv.StateCode),
			rupees(inv.Subtotal),
			rupees(tax),
			rupees(inv.TotalAmount),
			inv.CreatedAt.Format(exportDateLayout),
			"Completed",
		})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"TOTALS", "", "", "", "", "", "", rupees(subtotalSum), rupees(taxSum), rupees(totalSum)},
	)
	return rows
}

// CompanyReportRows builds one seller's detailed sheet: a header block, then
// per invoice a summary line followed by its items breakdown. An invoice
// whose stored items cannot be decoded is reported with a zero items count
// and no breakdown rather than aborting the whole export.
func CompanyReportRows(profile entity.CompanyProfile, invoices []entity.Invoice, now time.Time) [][]interface{} {
	rows := [][]interface{}{
		{profile.Name + " - DETAILED INVOICE REPORT"},
		{"Export Date", now.Format(exportTimestampLayout)},
		{"Total Invoices", strconv.Itoa(len(invoices))},
		{},
		{"Invoice No", "Date", "Customer", "HSN", "GSTIN", "Vehicle No", "Permit No", "State", "State Code", "Items Count", "Subtotal", "CGST", "SGST", "IGST", "Total", "Created On"},
	}

	for _, inv := range invoices {
		items, err := inv.LineItems()
		if err != nil {
			items = nil
		}

		rows = append(rows, []interface{}{
			inv.InvoiceNo,
			inv.InvoiceDate.Format(exportDateLayout),
			inv.CustomerName,
			inv.HSN,
			inv.GSTIN,
			orNA(inv.VehicleNo),
			orNA(inv.PermitNo),
			inv.State,
			inv.StateCode,
			strconv.Itoa(len(items)),
			rupees(inv.Subtotal),
			rupees(derefAmount(inv.CGST)),
			rupees(derefAmount(inv.SGST)),
			rupees(derefAmount(inv.IGST)),
			rupees(inv.TotalAmount),
			inv.CreatedAt.Format(exportDateLayout),
		})

		if len(items) == 0 {
			continue
		}
		rows = append(rows, []interface{}{"ITEMS BREAKDOWN:"})
		for idx, item := range items {
			rows = append(rows, []interface{}{
				fmt.Sprintf("  %d. %s", idx+1, item.Product),
				"Qty: " + formatQuantity(item.Quantity),
				item.Unit,
				"Rate: " + rupees(item.Rate),
				"Amount: " + rupees(item.Amount()),
			})
		}
		rows = append(rows, []interface{}{})
	}

	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}

func setColumnWidths(f *excelize.File, sheet string, widths []float64) {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		// Width failures degrade the layout, not the data.
		_ = f.SetColWidth(sheet, col, col, width)
	}
}

func rupees(v float64) string {
	return "₹" + gst.FormatAmount(v)
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func derefAmount(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
