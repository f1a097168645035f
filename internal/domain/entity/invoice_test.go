package entity

import (
	"encoding/json"
	"testing"

	"github.com/lnprasad/invoice-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWorking() *WorkingInvoice {
	return &WorkingInvoice{
		Company:         enum.CompanyMaaDurga,
		InvoiceNo:       "INV/0042",
		InvoiceDate:     "2025-11-03",
		CustomerName:    "Ram Kumar Traders",
		HSN:             "25171010",
		GSTIN:           "20AAAAA0000A1Z5",
		VehicleNo:       "JH17A1234",
		ShippingAddress: "NH-33, Ranchi",
		State:           "JHARKHAND",
		StateCode:       "20",
		Items: []LineItem{
			{ID: "1", Product: "Stone Chips", Quantity: 10, Unit: "CFT", Rate: 100},
		},
	}
}

func TestNewInvoiceRoundTrip(t *testing.T) {
	w := sampleWorking()
	totals := Totals{Subtotal: 1000, CGST: 25, SGST: 25, Total: 1050, IntraState: true}

	invoice, err := NewInvoice(w, w.InvoiceNo, totals)
	require.NoError(t, err)

	back, err := invoice.ToWorking()
	require.NoError(t, err)
	assert.Equal(t, w, back)
}

func TestNewInvoiceOptionalFields(t *testing.T) {
	w := sampleWorking()
	w.StateCode = "27"
	w.State = "MAHARASHTRA"
	w.VehicleNo = ""
	w.ShippingAddress = ""
	totals := Totals{Subtotal: 1000, IGST: 50, Total: 1050}

	invoice, err := NewInvoice(w, w.InvoiceNo, totals)
	require.NoError(t, err)

	assert.Nil(t, invoice.VehicleNo)
	assert.Nil(t, invoice.PermitNo)
	assert.Nil(t, invoice.ShippingAddress)

	// Zero tax components persist as NULL, never 0.00.
	assert.Nil(t, invoice.CGST)
	assert.Nil(t, invoice.SGST)
	require.NotNil(t, invoice.IGST)
	assert.InDelta(t, 50.0, *invoice.IGST, 0.001)
	assert.InDelta(t, 50.0, invoice.TaxTotal(), 0.001)
}

func TestNewInvoiceRejectsBadDate(t *testing.T) {
	w := sampleWorking()
	w.InvoiceDate = "03/11/2025"

	_, err := NewInvoice(w, w.InvoiceNo, Totals{})
	assert.Error(t, err)
}

func TestLineItemsCanonicalEncoding(t *testing.T) {
	invoice := &Invoice{
		Items: json.RawMessage(`[{"id":"1","product":"Dust","quantity":5,"unit":"CFT","rate":40}]`),
	}

	items, err := invoice.LineItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dust", items[0].Product)
	assert.InDelta(t, 200.0, items[0].Amount(), 0.001)
}

func TestLineItemsLegacyStringEncoding(t *testing.T) {
	// Older clients stored the array wrapped in a JSON string.
	invoice := &Invoice{
		Items: json.RawMessage(`"[{\"id\":\"1\",\"product\":\"Boulders\",\"quantity\":2,\"unit\":\"CFT\",\"rate\":750}]"`),
	}

	items, err := invoice.LineItems()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Boulders", items[0].Product)
	assert.InDelta(t, 1500.0, items[0].Amount(), 0.001)
}

func TestLineItemsMalformed(t *testing.T) {
	cases := map[string]json.RawMessage{
		"empty payload":   nil,
		"not json":        json.RawMessage(`{{`),
		"wrong shape":     json.RawMessage(`{"product":"Dust"}`),
		"string not json": json.RawMessage(`"not an array"`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			invoice := &Invoice{Items: raw}
			_, err := invoice.LineItems()
			assert.ErrorIs(t, err, ErrMalformedItems)
		})
	}
}
