package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingHandler handles HTTP requests for the KPO income book.
type reportingHandler struct {
	reportingService ports.ReportingSvcFacade
}

func newReportingHandler(rs ports.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService ports.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/kpo", h.kpoBook)
	}
}

// kpoBook godoc
// @Summary KPO income book
// @Description Retrieves the KPO book for one calendar year: non-draft invoices with ordinals and a running total
// @Tags reports
// @Produce  json
// @Param   year query int false "Calendar year, defaults to the current year"
// @Success 200 {object} dto.KPOBookResponse
// @Failure 400 {object} ErrorResponse "Invalid year"
// @Failure 500 {object} ErrorResponse "Failed to build KPO book"
// @Security BearerAuth
// @Router /reports/kpo [get]
func (h *reportingHandler) kpoBook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
			return
		}
		year = parsed
	}

	entries, err := h.reportingService.KPOBook(c.Request.Context(), year)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to build KPO book", slog.Int("year", year), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build KPO book"})
		return
	}

	responses := make([]dto.KPOEntryResponse, len(entries))
	total := decimal.Zero
	for i := range entries {
		responses[i] = dto.ToKPOEntryResponse(&entries[i])
		total = total.Add(entries[i].TotalRSD)
	}

	c.JSON(http.StatusOK, dto.KPOBookResponse{
		Year:    year,
		Entries: responses,
		Total:   total,
	})
}
