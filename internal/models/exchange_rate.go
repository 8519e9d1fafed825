package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one NBS daily quote for a currency, uniquely identified by
// (CurrencyCode, RateDate). Rows are upserted by the fetcher and never deleted.
// Buy/middle/sell rates are nullable: the NBS feed occasionally omits or
// publishes unparsable values and a single bad field must not drop the batch.
// Unit is the divisor the quoted rate applies to (e.g. rate per 100 JPY).
type ExchangeRate struct {
	ExchangeRateID string              `json:"exchangeRateID"`
	CurrencyCode   string              `json:"currencyCode"`
	CurrencyName   string              `json:"currencyName"`
	BuyRate        decimal.NullDecimal `json:"buyRate"`
	MiddleRate     decimal.NullDecimal `json:"middleRate"`
	SellRate       decimal.NullDecimal `json:"sellRate"`
	RateDate       time.Time           `json:"rateDate"`
	Unit           int                 `json:"unit"`
	AuditFields
}

// RateSource tags where a resolved rate came from so callers can tell a real
// quote apart from a degraded fallback.
type RateSource string

const (
	RateSourceCached   RateSource = "cached"   // exact or most-recent row from the store
	RateSourceFetched  RateSource = "fetched"  // fetched from NBS during resolution
	RateSourceFallback RateSource = "fallback" // static fallback table
	RateSourceDefault  RateSource = "default"  // unknown currency, neutral 1:1
	RateSourceUnit     RateSource = "unit"     // RSD itself, 1:1 by definition
)

// ResolvedRate is the authoritative rate picked for a conversion.
type ResolvedRate struct {
	CurrencyCode string          `json:"currencyCode"`
	MiddleRate   decimal.Decimal `json:"middleRate"`
	Unit         int             `json:"unit"`
	RateDate     time.Time       `json:"rateDate"`
	Source       RateSource      `json:"source"`
}

// PerUnit returns the rate normalized to a single unit of the currency.
func (r ResolvedRate) PerUnit() decimal.Decimal {
	if r.Unit <= 1 {
		return r.MiddleRate
	}
	return r.MiddleRate.Div(decimal.NewFromInt(int64(r.Unit)))
}
