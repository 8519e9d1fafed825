package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// CurrencyRSD is the dinar, the pivot currency. It always resolves to a unit
// rate and never touches the store.
const CurrencyRSD = "RSD"

// maxDateWalkback caps the backward walk over non-trading days so a prolonged
// source outage cannot regress indefinitely.
const maxDateWalkback = 10

// convertPrecision is the number of decimal places conversion results are
// rounded to.
const convertPrecision = 4

var one = decimal.NewFromInt(1)

// ExchangeRateService implements rate fetching, resolution and currency
// conversion on top of the rate store and the NBS client.
type ExchangeRateService struct {
	rateRepo ports.ExchangeRateRepository
	nbs      ports.NBSClient
	now      func() time.Time
}

// ExchangeRateOption configures an ExchangeRateService.
type ExchangeRateOption func(*ExchangeRateService)

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) ExchangeRateOption {
	return func(s *ExchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo ports.ExchangeRateRepository, nbs ports.NBSClient, opts ...ExchangeRateOption) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo: rateRepo,
		nbs:      nbs,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ExchangeRateService) today() time.Time {
	return dateOnly(s.now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FetchRates returns the rate list for the given date (today when nil),
// preferring rows already in the store, otherwise fetching from NBS and
// persisting the batch. Non-trading days walk back one day at a time, bounded
// by maxDateWalkback. Network or parse failures degrade to the static fallback
// table; a store write failure is the only error that propagates.
func (s *ExchangeRateService) FetchRates(ctx context.Context, date *time.Time) ([]models.ExchangeRate, error) {
	rates, _, err := s.fetchRates(ctx, date)
	return rates, err
}

// fetchRates is FetchRates plus the provenance of the returned list, so the
// resolver can tag rates it picks from a fetch result.
func (s *ExchangeRateService) fetchRates(ctx context.Context, date *time.Time) ([]models.ExchangeRate, models.RateSource, error) {
	target := s.today()
	if date != nil {
		target = dateOnly(*date)
	}

	for range maxDateWalkback {
		cached, err := s.rateRepo.FindByDate(ctx, target)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read cached rates: %w", err)
		}
		if len(cached) > 0 {
			return cached, models.RateSourceCached, nil
		}

		fetched, err := s.nbs.FetchDaily(ctx, target)
		if err == nil {
			now := s.now()
			for i := range fetched {
				fetched[i].ExchangeRateID = uuid.NewString()
				fetched[i].CreatedAt = now
				fetched[i].UpdatedAt = now
			}
			if err := s.rateRepo.SaveRates(ctx, fetched); err != nil {
				return nil, "", fmt.Errorf("failed to store fetched rates: %w", err)
			}
			return fetched, models.RateSourceFetched, nil
		}
		if errors.Is(err, ports.ErrNoRatesForDate) {
			target = target.AddDate(0, 0, -1)
			continue
		}
		// Source unavailable: degrade to the fallback table instead of failing.
		return s.fallbackRates(), models.RateSourceFallback, nil
	}
	return s.fallbackRates(), models.RateSourceFallback, nil
}

// ResolveRate returns the authoritative rate for a currency, trying in order:
// exact-date row, fetch-for-date (only when an explicit date missed), most
// recent row for the currency, static fallback, neutral 1:1. A stale rate is
// always preferred over a hard failure.
func (s *ExchangeRateService) ResolveRate(ctx context.Context, currencyCode string, date *time.Time) (models.ResolvedRate, error) {
	code := strings.ToUpper(currencyCode)
	target := s.today()
	if date != nil {
		target = dateOnly(*date)
	}

	if code == CurrencyRSD {
		return models.ResolvedRate{
			CurrencyCode: CurrencyRSD,
			MiddleRate:   one,
			Unit:         1,
			RateDate:     target,
			Source:       models.RateSourceUnit,
		}, nil
	}

	row, err := s.rateRepo.FindByCodeAndDate(ctx, code, target)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return models.ResolvedRate{}, fmt.Errorf("failed to look up rate for %s: %w", code, err)
	}
	if row != nil && row.MiddleRate.Valid {
		return resolvedFromRow(row, models.RateSourceCached), nil
	}

	if date != nil {
		rates, source, fetchErr := s.fetchRates(ctx, date)
		if fetchErr == nil {
			for i := range rates {
				if rates[i].CurrencyCode == code && rates[i].MiddleRate.Valid {
					return resolvedFromRow(&rates[i], source), nil
				}
			}
		}
		// A failed fetch is not fatal here; fall through to staler sources.
	}

	latest, err := s.rateRepo.FindLatestByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return models.ResolvedRate{}, fmt.Errorf("failed to look up latest rate for %s: %w", code, err)
	}
	if latest != nil && latest.MiddleRate.Valid {
		return resolvedFromRow(latest, models.RateSourceCached), nil
	}

	for _, fb := range s.fallbackRates() {
		if fb.CurrencyCode == code {
			return resolvedFromRow(&fb, models.RateSourceFallback), nil
		}
	}

	// Unknown currency: neutral rate rather than a hard error.
	return models.ResolvedRate{
		CurrencyCode: code,
		MiddleRate:   one,
		Unit:         1,
		RateDate:     target,
		Source:       models.RateSourceDefault,
	}, nil
}

// Convert converts an amount between two currencies, pivoting through RSD when
// neither side is RSD. Results are rounded to 4 decimal places.
func (s *ExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, date *time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	if from == to {
		return amount, nil
	}

	var result decimal.Decimal
	switch {
	case to == CurrencyRSD:
		rate, err := s.ResolveRate(ctx, from, date)
		if err != nil {
			return decimal.Zero, err
		}
		result = amount.Mul(rate.PerUnit())
	case from == CurrencyRSD:
		rate, err := s.ResolveRate(ctx, to, date)
		if err != nil {
			return decimal.Zero, err
		}
		result = amount.Div(rate.PerUnit())
	default:
		fromRate, err := s.ResolveRate(ctx, from, date)
		if err != nil {
			return decimal.Zero, err
		}
		toRate, err := s.ResolveRate(ctx, to, date)
		if err != nil {
			return decimal.Zero, err
		}
		result = amount.Mul(fromRate.PerUnit()).Div(toRate.PerUnit())
	}

	return result.Round(convertPrecision), nil
}

// LatestRates returns the most recent stored rate list, fetching from NBS when
// the store is empty.
func (s *ExchangeRateService) LatestRates(ctx context.Context) ([]models.ExchangeRate, error) {
	rates, err := s.rateRepo.FindLatestDateRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest rates: %w", err)
	}
	if len(rates) > 0 {
		return rates, nil
	}
	return s.FetchRates(ctx, nil)
}

// RateHistory returns stored rates for a currency within a date range.
func (s *ExchangeRateService) RateHistory(ctx context.Context, currencyCode string, from, to time.Time) ([]models.ExchangeRate, error) {
	rates, err := s.rateRepo.FindHistory(ctx, strings.ToUpper(currencyCode), dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to read rate history: %w", err)
	}
	return rates, nil
}

func resolvedFromRow(row *models.ExchangeRate, source models.RateSource) models.ResolvedRate {
	return models.ResolvedRate{
		CurrencyCode: row.CurrencyCode,
		MiddleRate:   row.MiddleRate.Decimal,
		Unit:         row.Unit,
		RateDate:     row.RateDate,
		Source:       source,
	}
}

// fallbackRates is the static table used when NBS is unreachable and the store
// has nothing usable. Values are approximate and dated today.
func (s *ExchangeRateService) fallbackRates() []models.ExchangeRate {
	today := s.today()
	mk := func(code, name, buy, middle, sell string) models.ExchangeRate {
		return models.ExchangeRate{
			CurrencyCode: code,
			CurrencyName: name,
			BuyRate:      decimal.NullDecimal{Decimal: decimal.RequireFromString(buy), Valid: true},
			MiddleRate:   decimal.NullDecimal{Decimal: decimal.RequireFromString(middle), Valid: true},
			SellRate:     decimal.NullDecimal{Decimal: decimal.RequireFromString(sell), Valid: true},
			RateDate:     today,
			Unit:         1,
		}
	}
	return []models.ExchangeRate{
		mk("EUR", "Euro", "116.8", "117.2", "117.6"),
		mk("USD", "US Dollar", "108.1", "108.5", "108.9"),
		mk("GBP", "British Pound", "136.5", "137.2", "137.9"),
		mk("CHF", "Swiss Franc", "120.1", "120.8", "121.5"),
	}
}
