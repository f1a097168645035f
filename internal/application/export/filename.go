// Package export renders stored invoices into downloadable documents: a
// letterhead PDF, a single-invoice Excel workbook and a bulk Excel report.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// baseName builds the shared filename stem for single-invoice documents:
// slashes in the invoice number and whitespace runs in the customer name
// both become underscores.
func baseName(invoiceNo, customerName string) string {
	no := strings.ReplaceAll(invoiceNo, "/", "_")
	customer := whitespaceRun.ReplaceAllString(strings.TrimSpace(customerName), "_")
	return no + "_" + customer
}

// PDFFilename returns the download name for a single-invoice PDF.
func PDFFilename(invoiceNo, customerName string) string {
	return baseName(invoiceNo, customerName) + ".pdf"
}

// ExcelFilename returns the download name for a single-invoice workbook.
func ExcelFilename(invoiceNo, customerName string) string {
	return baseName(invoiceNo, customerName) + "_detailed.xlsx"
}

// BulkExcelFilename returns the download name for the all-invoices workbook,
// stamped with the export date.
func BulkExcelFilename(now time.Time) string {
	return fmt.Sprintf("All_Invoices_%s.xlsx", now.Format("2006-01-02"))
}
