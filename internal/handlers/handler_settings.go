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

// settingsHandler handles HTTP requests for company settings and bank accounts.
type settingsHandler struct {
	settingsService ports.SettingsSvcFacade
}

func newSettingsHandler(ss ports.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

// registerSettingsRoutes registers routes for settings and bank accounts.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService ports.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.saveSettings)
	}

	accounts := rg.Group("/bank-accounts")
	{
		accounts.POST("", h.createBankAccount)
		accounts.GET("", h.listBankAccounts)
		accounts.DELETE("/:id", h.deleteBankAccount)
	}
}

// getSettings godoc
// @Summary Get company settings
// @Description Retrieves the issuer details printed on invoices
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Failure 404 {object} ErrorResponse "Settings not configured yet"
// @Failure 500 {object} ErrorResponse "Failed to retrieve settings"
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Settings not configured yet"})
			return
		}
		logger.Error("Failed to get settings from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve settings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// saveSettings godoc
// @Summary Save company settings
// @Description Creates the settings singleton the first time and updates it afterwards
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.SaveSettingsRequest true "Company settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to save settings"
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) saveSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for saveSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.settingsService.SaveSettings(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to save settings in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save settings"})
		return
	}

	logger.Info("Settings saved successfully")
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// createBankAccount godoc
// @Summary Add a bank account
// @Description Adds an issuer bank account; marking it default clears the flag elsewhere
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateBankAccountRequest true "Bank account details"
// @Success 201 {object} dto.BankAccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Failed to create bank account"
// @Security BearerAuth
// @Router /bank-accounts [post]
func (h *settingsHandler) createBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBankAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.settingsService.CreateBankAccount(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to create bank account in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create bank account"})
		return
	}

	logger.Info("Bank account created successfully", slog.String("bank_account_id", account.BankAccountID))
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary List bank accounts
// @Description Retrieves all issuer bank accounts, default first
// @Tags settings
// @Produce  json
// @Success 200 {array} dto.BankAccountResponse
// @Failure 500 {object} ErrorResponse "Failed to list bank accounts"
// @Security BearerAuth
// @Router /bank-accounts [get]
func (h *settingsHandler) listBankAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.settingsService.ListBankAccounts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list bank accounts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list bank accounts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// deleteBankAccount godoc
// @Summary Delete a bank account
// @Description Removes an issuer bank account
// @Tags settings
// @Produce  json
// @Param   id path string true "Bank Account ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse "Bank account not found"
// @Failure 500 {object} ErrorResponse "Failed to delete bank account"
// @Security BearerAuth
// @Router /bank-accounts/{id} [delete]
func (h *settingsHandler) deleteBankAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankAccountID := c.Param("id")

	if err := h.settingsService.DeleteBankAccount(c.Request.Context(), bankAccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Bank account not found"})
			return
		}
		logger.Error("Failed to delete bank account in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete bank account"})
		return
	}

	logger.Info("Bank account deleted successfully", slog.String("bank_account_id", bankAccountID))
	c.Status(http.StatusNoContent)
}
