package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/dto"
	"github.com/pausalko/pausal-backend/internal/models"
)

// SettingsService provides business logic for the company settings singleton
// and the issuer's bank accounts.
type SettingsService struct {
	settingsRepo    ports.SettingsRepository
	bankAccountRepo ports.BankAccountRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo ports.SettingsRepository, bankAccountRepo ports.BankAccountRepository) *SettingsService {
	return &SettingsService{
		settingsRepo:    settingsRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// GetSettings returns the company settings, or ErrNotFound when never saved.
func (s *SettingsService) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// SaveSettings creates the settings row the first time and updates it after.
func (s *SettingsService) SaveSettings(ctx context.Context, req dto.SaveSettingsRequest) (*models.CompanySettings, error) {
	settings := models.CompanySettings{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		City:        req.City,
		PIB:         req.PIB,
		MB:          req.MB,
		IBAN:        req.IBAN,
		SWIFT:       req.SWIFT,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
	}

	saved, err := s.settingsRepo.SaveSettings(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return saved, nil
}

// ListBankAccounts returns all bank accounts, default first.
func (s *SettingsService) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	accounts, err := s.bankAccountRepo.ListBankAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	if accounts == nil {
		return []models.BankAccount{}, nil
	}
	return accounts, nil
}

// CreateBankAccount adds a bank account. Marking it default clears the flag on
// every other account.
func (s *SettingsService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest) (*models.BankAccount, error) {
	now := time.Now()
	account := models.BankAccount{
		BankAccountID: uuid.NewString(),
		AccountName:   req.AccountName,
		IBAN:          req.IBAN,
		SWIFT:         req.SWIFT,
		BankName:      req.BankName,
		IsDefault:     req.IsDefault,
		AuditFields: models.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}
	return &account, nil
}

// DeleteBankAccount removes a bank account.
func (s *SettingsService) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	if err := s.bankAccountRepo.DeleteBankAccount(ctx, bankAccountID); err != nil {
		return fmt.Errorf("failed to delete bank account: %w", err)
	}
	return nil
}
