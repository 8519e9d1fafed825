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

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService ports.CustomerSvcFacade
}

func newCustomerHandler(cs ports.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: cs}
}

// registerCustomerRoutes registers routes related to customers.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService ports.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomerByID)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a new customer
// @Description Adds a new customer that invoices can be issued to
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   customer body dto.SaveCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to create customer"
// @Security BearerAuth
// @Router /customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create customer in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create customer"})
		return
	}

	logger.Info("Customer created successfully", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List all customers
// @Description Retrieves all customers ordered by name
// @Tags customers
// @Produce  json
// @Success 200 {array} dto.CustomerResponse
// @Failure 500 {object} ErrorResponse "Failed to list customers"
// @Security BearerAuth
// @Router /customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	customers, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list customers from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list customers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCustomerResponse(customers))
}

// getCustomerByID godoc
// @Summary Get a customer by ID
// @Description Retrieves details for a specific customer
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve customer"
// @Security BearerAuth
// @Router /customers/{id} [get]
func (h *customerHandler) getCustomerByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to get customer from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve customer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates an existing customer's details
// @Tags customers
// @Accept  json
// @Produce  json
// @Param   id path string true "Customer ID"
// @Param   customer body dto.SaveCustomerRequest true "Customer details"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse "Failed to update customer"
// @Security BearerAuth
// @Router /customers/{id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	var req dto.SaveCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		logger.Error("Failed to update customer in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update customer"})
		return
	}

	logger.Info("Customer updated successfully", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Delete a customer
// @Description Deletes a customer; refused while invoices still reference it
// @Tags customers
// @Produce  json
// @Param   id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Customer still has invoices"
// @Failure 404 {object} ErrorResponse "Customer not found"
// @Failure 500 {object} ErrorResponse "Failed to delete customer"
// @Security BearerAuth
// @Router /customers/{id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("id")

	err := h.customerService.DeleteCustomer(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Customer not found"})
			return
		}
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to delete customer in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete customer"})
		return
	}

	logger.Info("Customer deleted successfully", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}
