// Package nbs implements a client for the National Bank of Serbia daily
// exchange rate API.
package nbs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by the NBS API.
const DateLayout = "2006-01-02"

// Client calls the NBS daily exchange rate endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	allowed    map[string]struct{}
}

// NewClient creates a Client. currencies is the allow-list of currency codes to
// keep from the response; everything else is silently dropped.
func NewClient(baseURL string, timeout time.Duration, currencies []string) *Client {
	allowed := make(map[string]struct{}, len(currencies))
	for _, code := range currencies {
		allowed[strings.ToUpper(code)] = struct{}{}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		allowed:    allowed,
	}
}

// rateField tolerates both JSON numbers and strings; NBS has been observed to
// quote rates and to use a comma as the decimal separator.
type rateField string

func (f *rateField) UnmarshalJSON(b []byte) error {
	*f = rateField(strings.Trim(string(b), `"`))
	return nil
}

type rateListModel struct {
	CurrencyCode            string    `json:"currencyCode"`
	CurrencyNameSerCyrillic string    `json:"currencyNameSerCyrillic"`
	CurrencyNameSerLatin    string    `json:"currencyNameSerLatin"`
	CurrencyNameEng         string    `json:"currencyNameEng"`
	BuyingRate              rateField `json:"buyingRate"`
	MiddleRate              rateField `json:"middleRate"`
	SellingRate             rateField `json:"sellingRate"`
	Unit                    rateField `json:"unit"`
}

type dailyRateResponse struct {
	ExchangeRateListModels []rateListModel `json:"exchangeRateListModels"`
	Message                string          `json:"message"`
}

// FetchDaily retrieves the exchange rate list for the given date. It returns
// ports.ErrNoRatesForDate when the API reports a non-trading day.
func (c *Client) FetchDaily(ctx context.Context, date time.Time) ([]models.ExchangeRate, error) {
	dateStr := date.Format(DateLayout)
	url := fmt.Sprintf("%s?date=%s", c.baseURL, dateStr)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build NBS request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NBS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NBS returned unexpected status %d", resp.StatusCode)
	}

	var body dailyRateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode NBS response: %w", err)
	}

	if len(body.ExchangeRateListModels) == 0 {
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ports.ErrNoRatesForDate, body.Message, dateStr)
		}
		return nil, fmt.Errorf("%w: %s", ports.ErrNoRatesForDate, dateStr)
	}

	rateDate, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid rate date %q: %w", dateStr, err)
	}

	var rates []models.ExchangeRate
	for _, m := range body.ExchangeRateListModels {
		code := strings.ToUpper(m.CurrencyCode)
		if _, ok := c.allowed[code]; !ok {
			continue
		}
		rates = append(rates, models.ExchangeRate{
			CurrencyCode: code,
			CurrencyName: currencyName(m),
			BuyRate:      ParseRate(string(m.BuyingRate)),
			MiddleRate:   ParseRate(string(m.MiddleRate)),
			SellRate:     ParseRate(string(m.SellingRate)),
			RateDate:     rateDate,
			Unit:         parseUnit(string(m.Unit)),
		})
	}
	return rates, nil
}

// ParseRate parses an NBS rate value, normalizing a comma decimal separator.
// Unparsable values become null rather than failing the whole batch.
func ParseRate(s string) decimal.NullDecimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || s == "null" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func parseUnit(s string) int {
	u, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || u < 1 {
		return 1
	}
	return u
}

func currencyName(m rateListModel) string {
	for _, name := range []string{m.CurrencyNameSerCyrillic, m.CurrencyNameSerLatin, m.CurrencyNameEng} {
		if name != "" {
			return name
		}
	}
	return m.CurrencyCode
}
