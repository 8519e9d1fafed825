// Package invoicing holds the pure invoice totaling arithmetic, kept separate
// from the service layer so it is trivially testable.
package invoicing

import (
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals is the aggregate of an invoice's line items. Total is in the invoice
// currency; TotalRSD applies the exchange rate snapshotted on the invoice.
type Totals struct {
	Subtotal      decimal.Decimal // pre-discount sum of quantity x price
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
	TotalRSD      decimal.Decimal
}

// LineTotal computes quantity x price x (1 - discount/100) for one item.
// Negative quantities or prices are not rejected here; validation belongs to
// the request layer.
func LineTotal(item models.InvoiceItem) decimal.Decimal {
	return item.Quantity.Mul(item.Price).Mul(hundred.Sub(item.Discount)).Div(hundred)
}

// TotalInvoice aggregates line items into invoice totals using the given
// exchange rate snapshot.
func TotalInvoice(items []models.InvoiceItem, exchangeRate decimal.Decimal) Totals {
	var subtotal, total decimal.Decimal
	for _, item := range items {
		subtotal = subtotal.Add(item.Quantity.Mul(item.Price))
		total = total.Add(LineTotal(item))
	}
	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: subtotal.Sub(total),
		Total:         total,
		TotalRSD:      total.Mul(exchangeRate),
	}
}
