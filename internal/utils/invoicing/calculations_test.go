package invoicing_test

import (
	"testing"

	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/pausalko/pausal-backend/internal/utils/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(qty, price, discount string) models.InvoiceItem {
	return models.InvoiceItem{
		Quantity: decimal.RequireFromString(qty),
		Price:    decimal.RequireFromString(price),
		Discount: decimal.RequireFromString(discount),
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name string
		item models.InvoiceItem
		want string
	}{
		{"no discount", item("2", "100", "0"), "200"},
		{"ten percent discount", item("2", "100", "10"), "180"},
		{"full discount", item("2", "100", "100"), "0"},
		{"fractional quantity", item("1.5", "80", "0"), "120"},
		{"zero quantity", item("0", "100", "10"), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoicing.LineTotal(tt.item)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTotalInvoice(t *testing.T) {
	items := []models.InvoiceItem{
		item("2", "100", "10"), // 180, subtotal 200
		item("1", "50", "0"),   // 50, subtotal 50
	}
	rate := decimal.RequireFromString("117.2")

	totals := invoicing.TotalInvoice(items, rate)

	assert.True(t, totals.Subtotal.Equal(decimal.RequireFromString("250")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountTotal.Equal(decimal.RequireFromString("20")), "discount %s", totals.DiscountTotal)
	assert.True(t, totals.Total.Equal(decimal.RequireFromString("230")), "total %s", totals.Total)
	assert.True(t, totals.TotalRSD.Equal(decimal.RequireFromString("26956")), "rsd %s", totals.TotalRSD)
}

func TestTotalInvoice_Empty(t *testing.T) {
	totals := invoicing.TotalInvoice(nil, decimal.NewFromInt(1))

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Total.IsZero())
	assert.True(t, totals.TotalRSD.IsZero())
}

// Totaling is additive: the total of a combined item list equals the sum of the
// per-list totals.
func TestTotalInvoice_Additive(t *testing.T) {
	a := []models.InvoiceItem{item("2", "100", "10")}
	b := []models.InvoiceItem{item("3", "40", "25")}
	rate := decimal.RequireFromString("108.5")

	combined := invoicing.TotalInvoice(append(append([]models.InvoiceItem{}, a...), b...), rate)
	separate := invoicing.TotalInvoice(a, rate).TotalRSD.Add(invoicing.TotalInvoice(b, rate).TotalRSD)

	assert.True(t, combined.TotalRSD.Equal(separate), "combined %s, separate %s", combined.TotalRSD, separate)
}
