package nbs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/platform/nbs"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"exchangeRateListModels": [
		{
			"currencyCode": "EUR",
			"currencyNameSerLatin": "Evro",
			"buyingRate": "116,8546",
			"middleRate": "117,2061",
			"sellingRate": "117,5576",
			"unit": "1"
		},
		{
			"currencyCode": "JPY",
			"currencyNameEng": "Japanese Yen",
			"buyingRate": "73,1",
			"middleRate": "73,5",
			"sellingRate": "73,9",
			"unit": "100"
		},
		{
			"currencyCode": "HUF",
			"currencyNameEng": "Hungarian Forint",
			"buyingRate": "0,29",
			"middleRate": "0,30",
			"sellingRate": "0,31",
			"unit": "100"
		}
	],
	"message": ""
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *nbs.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return nbs.NewClient(srv.URL, 5*time.Second, []string{"EUR", "USD", "JPY"})
}

func TestFetchDaily_ParsesAndFilters(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	})

	date := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	rates, err := client.FetchDaily(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, "date=2026-03-16", gotQuery)

	// HUF is not on the allow-list and must be dropped.
	require.Len(t, rates, 2)

	eur := rates[0]
	assert.Equal(t, "EUR", eur.CurrencyCode)
	assert.Equal(t, "Evro", eur.CurrencyName)
	assert.True(t, eur.MiddleRate.Valid)
	assert.True(t, eur.MiddleRate.Decimal.Equal(decimal.RequireFromString("117.2061")))
	assert.Equal(t, 1, eur.Unit)
	assert.Equal(t, date, eur.RateDate)

	jpy := rates[1]
	assert.Equal(t, "JPY", jpy.CurrencyCode)
	assert.Equal(t, 100, jpy.Unit)
	assert.True(t, jpy.MiddleRate.Decimal.Equal(decimal.RequireFromString("73.5")))
}

func TestFetchDaily_EmptyListIsNoRatesForDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"exchangeRateListModels": [], "message": "No data for date"}`))
	})

	_, err := client.FetchDaily(context.Background(), time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrNoRatesForDate)
	assert.Contains(t, err.Error(), "No data for date")
}

func TestFetchDaily_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchDaily(context.Background(), time.Now())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrNoRatesForDate)
}

func TestFetchDaily_UnparsableRateBecomesNull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"exchangeRateListModels": [
				{"currencyCode": "EUR", "buyingRate": "n/a", "middleRate": "117,2", "sellingRate": "", "unit": "1"}
			]
		}`))
	})

	rates, err := client.FetchDaily(context.Background(), time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.False(t, rates[0].BuyRate.Valid)
	assert.False(t, rates[0].SellRate.Valid)
	assert.True(t, rates[0].MiddleRate.Valid)
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"117,2061", "117.2061", true},
		{"117.2061", "117.2061", true},
		{" 108,5 ", "108.5", true},
		{"", "", false},
		{"null", "", false},
		{"abc", "", false},
	}
	for _, tt := range tests {
		got := nbs.ParseRate(tt.in)
		assert.Equal(t, tt.valid, got.Valid, "input %q", tt.in)
		if tt.valid {
			assert.True(t, got.Decimal.Equal(decimal.RequireFromString(tt.want)), "input %q: got %s", tt.in, got.Decimal)
		}
	}
}
