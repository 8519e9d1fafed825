package dto

import (
	"time"

	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/pausalko/pausal-backend/internal/utils/invoicing"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of an invoice create/update payload.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Discount    decimal.Decimal `json:"discount"`
}

// SaveInvoiceRequest defines the data needed to create or update an invoice.
// Items fully replace any existing ones on update. ExchangeRate, when omitted,
// defaults to 1; it is snapshotted on the invoice at save time.
type SaveInvoiceRequest struct {
	InvoiceNumber   string               `json:"invoiceNumber" binding:"required"`
	InvoiceDate     string               `json:"invoiceDate" binding:"required,isodate"`
	TradingDate     string               `json:"tradingDate" binding:"required,isodate"`
	CustomerID      string               `json:"customerID" binding:"required"`
	BankAccountID   string               `json:"bankAccountID"`
	Currency        string               `json:"currency" binding:"omitempty,len=3,uppercase"`
	ExchangeRate    *decimal.Decimal     `json:"exchangeRate"`
	PaymentDeadline *int                 `json:"paymentDeadline"`
	Notes           string               `json:"notes"`
	Status          string               `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	Items           []InvoiceItemRequest `json:"items" binding:"dive"`
}

// InvoiceItemResponse is one invoice line in API responses.
type InvoiceItemResponse struct {
	ItemID      string          `json:"itemID"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string                `json:"invoiceID"`
	InvoiceNumber   string                `json:"invoiceNumber"`
	InvoiceDate     string                `json:"invoiceDate"`
	TradingDate     string                `json:"tradingDate"`
	CustomerID      string                `json:"customerID"`
	CustomerName    string                `json:"customerName,omitempty"`
	CustomerCompany string                `json:"customerCompany,omitempty"`
	BankAccountID   string                `json:"bankAccountID,omitempty"`
	Currency        string                `json:"currency"`
	ExchangeRate    decimal.Decimal       `json:"exchangeRate"`
	PaymentDeadline int                   `json:"paymentDeadline"`
	Notes           string                `json:"notes"`
	TotalRSD        decimal.Decimal       `json:"totalRSD"`
	Status          string                `json:"status"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// GenerateNumberResponse returns the next free invoice number.
type GenerateNumberResponse struct {
	InvoiceNumber string `json:"invoiceNumber"`
}

const dateLayout = "2006-01-02"

// ToInvoiceItemResponse converts a models.InvoiceItem to its DTO, including
// the derived line total.
func ToInvoiceItemResponse(item *models.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ItemID:      item.ItemID,
		Description: item.Description,
		Unit:        item.Unit,
		Quantity:    item.Quantity,
		Price:       item.Price,
		Discount:    item.Discount,
		Total:       invoicing.LineTotal(*item),
	}
}

// ToInvoiceResponse converts a models.Invoice (plus optional items) to its DTO.
func ToInvoiceResponse(inv *models.Invoice, items []models.InvoiceItem) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceDate:     inv.InvoiceDate.Format(dateLayout),
		TradingDate:     inv.TradingDate.Format(dateLayout),
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		CustomerCompany: inv.CustomerCompany,
		BankAccountID:   inv.BankAccountID,
		Currency:        inv.Currency,
		ExchangeRate:    inv.ExchangeRate,
		PaymentDeadline: inv.PaymentDeadline,
		Notes:           inv.Notes,
		TotalRSD:        inv.TotalRSD,
		Status:          string(inv.Status),
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
	if len(items) > 0 {
		resp.Items = make([]InvoiceItemResponse, len(items))
		for i := range items {
			resp.Items[i] = ToInvoiceItemResponse(&items[i])
		}
	}
	return resp
}

// ToListInvoiceResponse converts a slice of models.Invoice to DTOs without items.
func ToListInvoiceResponse(invoices []models.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i], nil)
	}
	return res
}
