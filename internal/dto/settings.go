package dto

import (
	"time"

	"github.com/pausalko/pausal-backend/internal/models"
)

// SaveSettingsRequest defines the company settings payload. The settings row is
// a singleton: saving creates it the first time and updates it afterwards.
type SaveSettingsRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Address     string `json:"address" binding:"required"`
	City        string `json:"city" binding:"required"`
	PIB         string `json:"pib" binding:"required"`
	MB          string `json:"mb" binding:"required"`
	IBAN        string `json:"iban"`
	SWIFT       string `json:"swift"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
	LogoURL     string `json:"logoURL"`
}

// SettingsResponse defines the data returned for company settings.
type SettingsResponse struct {
	SettingsID  string    `json:"settingsID"`
	CompanyName string    `json:"companyName"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PIB         string    `json:"pib"`
	MB          string    `json:"mb"`
	IBAN        string    `json:"iban"`
	SWIFT       string    `json:"swift"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	LogoURL     string    `json:"logoURL"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToSettingsResponse converts models.CompanySettings to its DTO.
func ToSettingsResponse(s *models.CompanySettings) SettingsResponse {
	return SettingsResponse{
		SettingsID:  s.SettingsID,
		CompanyName: s.CompanyName,
		Address:     s.Address,
		City:        s.City,
		PIB:         s.PIB,
		MB:          s.MB,
		IBAN:        s.IBAN,
		SWIFT:       s.SWIFT,
		Email:       s.Email,
		Phone:       s.Phone,
		Website:     s.Website,
		LogoURL:     s.LogoURL,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// CreateBankAccountRequest defines the data needed to add a bank account.
type CreateBankAccountRequest struct {
	AccountName string `json:"accountName" binding:"required"`
	IBAN        string `json:"iban" binding:"required"`
	SWIFT       string `json:"swift"`
	BankName    string `json:"bankName"`
	IsDefault   bool   `json:"isDefault"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID string    `json:"bankAccountID"`
	AccountName   string    `json:"accountName"`
	IBAN          string    `json:"iban"`
	SWIFT         string    `json:"swift"`
	BankName      string    `json:"bankName"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToBankAccountResponse converts a models.BankAccount to its DTO.
func ToBankAccountResponse(a *models.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		AccountName:   a.AccountName,
		IBAN:          a.IBAN,
		SWIFT:         a.SWIFT,
		BankName:      a.BankName,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
	}
}

// ToListBankAccountResponse converts a slice of models.BankAccount to DTOs.
func ToListBankAccountResponse(accounts []models.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
