package gst

import (
	"testing"

	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsIntraState(t *testing.T) {
	items := []entity.LineItem{
		{Product: "Stone Chips", Quantity: 10, Unit: "CFT", Rate: 100},
	}

	totals := ComputeTotals(items, "20")

	assert.True(t, totals.IntraState)
	assert.InDelta(t, 1000.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 25.0, totals.CGST, 0.001)
	assert.InDelta(t, 25.0, totals.SGST, 0.001)
	assert.Zero(t, totals.IGST)
	assert.InDelta(t, 1050.0, totals.Total, 0.001)
}

func TestComputeTotalsInterState(t *testing.T) {
	items := []entity.LineItem{
		{Product: "Stone Chips", Quantity: 2, Unit: "CFT", Rate: 500},
		{Product: "Boulders", Quantity: 1, Unit: "CFT", Rate: 1000},
	}

	totals := ComputeTotals(items, "27")

	assert.False(t, totals.IntraState)
	assert.InDelta(t, 2000.0, totals.Subtotal, 0.001)
	assert.Zero(t, totals.CGST)
	assert.Zero(t, totals.SGST)
	assert.InDelta(t, 100.0, totals.IGST, 0.001)
	assert.InDelta(t, 2100.0, totals.Total, 0.001)
}

func TestComputeTotalsNoItems(t *testing.T) {
	totals := ComputeTotals(nil, "20")

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.Total)
	assert.True(t, totals.IntraState)
}

func TestComputeTotalsFractionalQuantities(t *testing.T) {
	items := []entity.LineItem{
		{Product: "Dust", Quantity: 12.5, Unit: "CFT", Rate: 42.4},
	}

	totals := ComputeTotals(items, "10")

	assert.InDelta(t, 530.0, totals.Subtotal, 0.001)
	assert.InDelta(t, 26.5, totals.IGST, 0.001)
	assert.InDelta(t, 556.5, totals.Total, 0.001)
}

func TestRateLabel(t *testing.T) {
	assert.Equal(t, "2.5% CGST + 2.5% SGST", RateLabel("20"))
	assert.Equal(t, "5% IGST", RateLabel("27"))
	assert.Equal(t, "5% IGST", RateLabel(""))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "25.00", FormatAmount(25))
	assert.Equal(t, "1050.50", FormatAmount(1050.499999))
}
