package dto

import (
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is one stored NBS daily quote.
type ExchangeRateResponse struct {
	CurrencyCode string              `json:"currencyCode"`
	CurrencyName string              `json:"currencyName"`
	BuyRate      decimal.NullDecimal `json:"buyRate"`
	MiddleRate   decimal.NullDecimal `json:"middleRate"`
	SellRate     decimal.NullDecimal `json:"sellRate"`
	RateDate     string              `json:"rateDate"`
	Unit         int                 `json:"unit"`
}

// ResolvedRateResponse is the authoritative rate picked for a currency,
// tagged with its provenance.
type ResolvedRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
	Unit         int             `json:"unit"`
	RateDate     string          `json:"rateDate"`
	Source       string          `json:"source"`
}

// ConvertRequest defines a currency conversion payload.
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	FromCurrency string          `json:"fromCurrency" binding:"required,len=3,uppercase"`
	ToCurrency   string          `json:"toCurrency" binding:"required,len=3,uppercase"`
	Date         string          `json:"date" binding:"omitempty,isodate"`
}

// ConvertResponse returns a conversion result rounded to 4 decimal places.
type ConvertResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	Date            string          `json:"date"`
}

// UpdateRatesResponse reports the result of a forced rate refresh.
type UpdateRatesResponse struct {
	Message string                 `json:"message"`
	Count   int                    `json:"count"`
	Rates   []ExchangeRateResponse `json:"rates"`
}

// ToExchangeRateResponse converts a models.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *models.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		CurrencyCode: r.CurrencyCode,
		CurrencyName: r.CurrencyName,
		BuyRate:      r.BuyRate,
		MiddleRate:   r.MiddleRate,
		SellRate:     r.SellRate,
		RateDate:     r.RateDate.Format(dateLayout),
		Unit:         r.Unit,
	}
}

// ToListExchangeRateResponse converts a slice of models.ExchangeRate to DTOs.
func ToListExchangeRateResponse(rates []models.ExchangeRate) []ExchangeRateResponse {
	res := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		res[i] = ToExchangeRateResponse(&rates[i])
	}
	return res
}

// ToResolvedRateResponse converts a models.ResolvedRate to its DTO.
func ToResolvedRateResponse(r models.ResolvedRate) ResolvedRateResponse {
	return ResolvedRateResponse{
		CurrencyCode: r.CurrencyCode,
		Rate:         r.MiddleRate,
		Unit:         r.Unit,
		RateDate:     r.RateDate.Format(dateLayout),
		Source:       string(r.Source),
	}
}
