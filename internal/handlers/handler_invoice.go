package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService ports.InvoiceSvcFacade
}

func newInvoiceHandler(is ports.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers routes related to invoices. The static
// /generate/number route must come before the /:id routes so gin does not
// treat "generate" as an invoice ID.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService ports.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("/generate/number", h.generateInvoiceNumber)
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoiceByID)
		invoices.GET("/:id/items", h.listInvoiceItems)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates an invoice with its line items; totals are computed server-side from the snapshotted exchange rate
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.SaveInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Invoice number already exists"
// @Failure 500 {object} ErrorResponse "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	invoice, items, err := h.invoiceService.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create invoice in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create invoice"})
		return
	}

	logger.Info("Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, items))
}

// listInvoices godoc
// @Summary List all invoices
// @Description Retrieves all invoices, newest first, without line items
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Failure 500 {object} ErrorResponse "Failed to list invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list invoices from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list invoices"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// getInvoiceByID godoc
// @Summary Get an invoice by ID
// @Description Retrieves an invoice with its line items
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoiceByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	invoice, items, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
			return
		}
		logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve invoice"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, items))
}

// listInvoiceItems godoc
// @Summary List invoice line items
// @Description Retrieves the line items of one invoice
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {array} dto.InvoiceItemResponse
// @Failure 500 {object} ErrorResponse "Failed to list invoice items"
// @Security BearerAuth
// @Router /invoices/{id}/items [get]
func (h *invoiceHandler) listInvoiceItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	items, err := h.invoiceService.ListInvoiceItems(c.Request.Context(), invoiceID)
	if err != nil {
		logger.Error("Failed to list invoice items from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list invoice items"})
		return
	}

	responses := make([]dto.InvoiceItemResponse, len(items))
	for i := range items {
		responses[i] = dto.ToInvoiceItemResponse(&items[i])
	}
	c.JSON(http.StatusOK, responses)
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice; line items are fully replaced and totals recomputed
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   invoice body dto.SaveInvoiceRequest true "Invoice details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice number already exists"
// @Failure 500 {object} ErrorResponse "Failed to update invoice"
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	var req dto.SaveInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	invoice, items, err := h.invoiceService.UpdateInvoice(c.Request.Context(), invoiceID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to update invoice in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update invoice"})
		return
	}

	logger.Info("Invoice updated successfully", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, items))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Deletes an invoice together with its line items
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 500 {object} ErrorResponse "Failed to delete invoice"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	invoiceID := c.Param("id")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
			return
		}
		logger.Error("Failed to delete invoice in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete invoice"})
		return
	}

	logger.Info("Invoice deleted successfully", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}

// generateInvoiceNumber godoc
// @Summary Generate the next invoice number
// @Description Proposes the next free sequential "NNN/YYYY" number for the current year
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.GenerateNumberResponse
// @Failure 500 {object} ErrorResponse "Failed to generate invoice number"
// @Security BearerAuth
// @Router /invoices/generate/number [get]
func (h *invoiceHandler) generateInvoiceNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	number, err := h.invoiceService.GenerateInvoiceNumber(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate invoice number", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate invoice number"})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateNumberResponse{InvoiceNumber: number})
}
