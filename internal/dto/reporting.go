package dto

import (
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// KPOEntryResponse is one row of the KPO income book.
type KPOEntryResponse struct {
	Ordinal       int             `json:"ordinal"`
	InvoiceNumber string          `json:"invoiceNumber"`
	InvoiceDate   string          `json:"invoiceDate"`
	TradingDate   string          `json:"tradingDate"`
	CustomerName  string          `json:"customerName"`
	Description   string          `json:"description"`
	Currency      string          `json:"currency"`
	TotalRSD      decimal.Decimal `json:"totalRSD"`
	RunningTotal  decimal.Decimal `json:"runningTotal"`
}

// KPOBookResponse is the KPO book for one calendar year.
type KPOBookResponse struct {
	Year    int                `json:"year"`
	Entries []KPOEntryResponse `json:"entries"`
	Total   decimal.Decimal    `json:"total"`
}

// ToKPOEntryResponse converts a models.KPOEntry to its DTO.
func ToKPOEntryResponse(e *models.KPOEntry) KPOEntryResponse {
	return KPOEntryResponse{
		Ordinal:       e.Ordinal,
		InvoiceNumber: e.InvoiceNumber,
		InvoiceDate:   e.InvoiceDate.Format(dateLayout),
		TradingDate:   e.TradingDate.Format(dateLayout),
		CustomerName:  e.CustomerName,
		Description:   e.Description,
		Currency:      e.Currency,
		TotalRSD:      e.TotalRSD,
		RunningTotal:  e.RunningTotal,
	}
}
