package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is a flat enum; no transition graph is enforced.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "draft"
	StatusSent    InvoiceStatus = "sent"
	StatusPaid    InvoiceStatus = "paid"
	StatusOverdue InvoiceStatus = "overdue"
)

// Invoice is the document issued to a customer. ExchangeRate is a snapshot taken
// at save time: TotalRSD is derived from it on every create/update and is never
// recomputed when the stored daily rates change afterwards.
type Invoice struct {
	InvoiceID       string          `json:"invoiceID"`
	InvoiceNumber   string          `json:"invoiceNumber"` // unique, "NNN/YYYY"
	InvoiceDate     time.Time       `json:"invoiceDate"`
	TradingDate     time.Time       `json:"tradingDate"`
	CustomerID      string          `json:"customerID"`
	BankAccountID   string          `json:"bankAccountID,omitempty"` // optional
	Currency        string          `json:"currency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	PaymentDeadline int             `json:"paymentDeadline"` // days
	Notes           string          `json:"notes"`
	TotalRSD        decimal.Decimal `json:"totalRSD"`
	Status          InvoiceStatus   `json:"status"`
	AuditFields

	// Denormalized customer fields populated by list/get queries.
	CustomerName    string `json:"customerName,omitempty"`
	CustomerCompany string `json:"customerCompany,omitempty"`
}

// InvoiceItem is a single invoice line. Items are owned exclusively by one
// invoice and are fully replaced whenever the invoice is updated.
type InvoiceItem struct {
	ItemID      string          `json:"itemID"`
	InvoiceID   string          `json:"invoiceID"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"` // unit of measure, defaults to "kom"
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"` // percent, 0-100
}
