// Package gst computes the GST split for an invoice's line items.
//
// The rule is the two-branch India GST scheme the sellers operate under:
// a buyer in the home state (Jharkhand, state code 20) pays CGST+SGST at
// 2.5% each; any other buyer pays IGST at 5%. Amounts are computed in
// float64 and rounded to two decimals only for display, see FormatAmount.
package gst

import (
	"fmt"

	"github.com/lnprasad/invoice-api/internal/domain/entity"
)

// HomeStateCode is the sellers' home state (Jharkhand). Fixed policy data
// for both seller entities.
const HomeStateCode = "20"

// CombinedRate is the total tax burden on a sale. It is the same in both
// regimes: 2.5% CGST + 2.5% SGST intra-state, 5% IGST inter-state.
const CombinedRate = 0.05

const intraStateRate = CombinedRate / 2 // CGST and SGST, each

// ComputeTotals derives subtotal, tax breakdown and grand total from the
// line items and the buyer's state code. It is pure and never fails; the
// data-model invariants (non-negative quantity/rate) are the caller's
// responsibility.
func ComputeTotals(items []entity.LineItem, buyerStateCode string) entity.Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount()
	}

	t := entity.Totals{
		Subtotal:   subtotal,
		IntraState: buyerStateCode == HomeStateCode,
	}

	if t.IntraState {
		t.CGST = subtotal * intraStateRate
		t.SGST = subtotal * intraStateRate
	} else {
		t.IGST = subtotal * CombinedRate
	}

	t.Total = subtotal + t.CGST + t.SGST + t.IGST
	return t
}

// RateLabel describes the applicable tax rate for display on exports.
func RateLabel(buyerStateCode string) string {
	if buyerStateCode == HomeStateCode {
		return "2.5% CGST + 2.5% SGST"
	}
	return "5% IGST"
}

// FormatAmount renders a money value at two decimal places for display.
// Internal arithmetic stays in float64 with no intermediate rounding.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
