package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPOEntry is one row of the KPO income book: a non-draft invoice with the
// customer and a summary of what was invoiced.
type KPOEntry struct {
	Ordinal       int             `json:"ordinal"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	TradingDate   time.Time       `json:"tradingDate"`
	CustomerName  string          `json:"customerName"`
	Description   string          `json:"description"`
	Currency      string          `json:"currency"`
	TotalRSD      decimal.Decimal `json:"totalRSD"`
	RunningTotal  decimal.Decimal `json:"runningTotal"`
}
