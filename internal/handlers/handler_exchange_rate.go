package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/middleware"
)

const rateDateLayout = "2006-01-02"

// exchangeRateHandler handles HTTP requests related to daily exchange rates.
type exchangeRateHandler struct {
	rateService ports.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs ports.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates. The
// static /latest, /update and /convert routes come before /:currency so gin
// does not capture them as currency codes.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService ports.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("/latest", h.latestRates)
		rates.POST("/update", h.updateRates)
		rates.POST("/convert", h.convert)
		rates.GET("/:currency", h.getRate)
		rates.GET("/:currency/history", h.rateHistory)
	}
}

// parseOptionalDate reads an optional ?date=YYYY-MM-DD query parameter.
// A nil result means "today".
func parseOptionalDate(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	date, err := time.Parse(rateDateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &date, true
}

// latestRates godoc
// @Summary Latest exchange rates
// @Description Retrieves all rates of the most recent stored date, fetching from NBS when the store is empty
// @Tags exchange-rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} ErrorResponse "Failed to retrieve rates"
// @Security BearerAuth
// @Router /exchange-rates/latest [get]
func (h *exchangeRateHandler) latestRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.LatestRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to get latest rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// updateRates godoc
// @Summary Force a rate refresh
// @Description Fetches the daily rate list from NBS for the given date (default today) and stores it
// @Tags exchange-rates
// @Produce  json
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.UpdateRatesResponse
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 500 {object} ErrorResponse "Failed to update rates"
// @Security BearerAuth
// @Router /exchange-rates/update [post]
func (h *exchangeRateHandler) updateRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, ok := parseOptionalDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	rates, err := h.rateService.FetchRates(c.Request.Context(), date)
	if err != nil {
		logger.Error("Failed to update rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update rates"})
		return
	}

	logger.Info("Exchange rates updated", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.UpdateRatesResponse{
		Message: "Exchange rates updated",
		Count:   len(rates),
		Rates:   dto.ToListExchangeRateResponse(rates),
	})
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts through the RSD pivot using the resolved middle rates; result is rounded to 4 decimals
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to convert"
// @Security BearerAuth
// @Router /exchange-rates/convert [post]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := time.Parse(rateDateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
			return
		}
		date = &parsed
	}

	converted, err := h.rateService.Convert(c.Request.Context(), req.Amount, req.FromCurrency, req.ToCurrency, date)
	if err != nil {
		logger.Error("Failed to convert amount", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to convert"})
		return
	}

	respDate := req.Date
	if respDate == "" {
		respDate = time.Now().Format(rateDateLayout)
	}
	c.JSON(http.StatusOK, dto.ConvertResponse{
		OriginalAmount:  req.Amount,
		FromCurrency:    req.FromCurrency,
		ToCurrency:      req.ToCurrency,
		ConvertedAmount: converted,
		Date:            respDate,
	})
}

// getRate godoc
// @Summary Resolve a rate for one currency
// @Description Resolves the authoritative middle rate for a currency and date, tagged with its provenance
// @Tags exchange-rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)"
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to resolve rate"
// @Security BearerAuth
// @Router /exchange-rates/{currency} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := strings.ToUpper(c.Param("currency"))

	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency code must be 3 letters"})
		return
	}

	date, ok := parseOptionalDate(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	resolved, err := h.rateService.ResolveRate(c.Request.Context(), currency, date)
	if err != nil {
		logger.Error("Failed to resolve rate", slog.String("currency", currency), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to resolve rate"})
		return
	}

	c.JSON(http.StatusOK, dto.ToResolvedRateResponse(resolved))
}

// rateHistory godoc
// @Summary Rate history for one currency
// @Description Retrieves stored rates for a currency over a date range, newest first; the range defaults to the last 30 days
// @Tags exchange-rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)"
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to retrieve history"
// @Security BearerAuth
// @Router /exchange-rates/{currency}/history [get]
func (h *exchangeRateHandler) rateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currency := strings.ToUpper(c.Param("currency"))

	if len(currency) != 3 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Currency code must be 3 letters"})
		return
	}

	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(rateDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(rateDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid to date, expected YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	history, err := h.rateService.RateHistory(c.Request.Context(), currency, from, to)
	if err != nil {
		logger.Error("Failed to get rate history", slog.String("currency", currency), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve history"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(history))
}
