package services

import (
	"context"
	"fmt"

	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ReportingService builds the KPO income book over non-draft invoices.
type ReportingService struct {
	reportingRepo ports.ReportingRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo ports.ReportingRepository) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo}
}

// KPOBook returns the KPO entries for one calendar year with ordinals and a
// running cumulative total assigned. Draft invoices are excluded.
func (s *ReportingService) KPOBook(ctx context.Context, year int) ([]models.KPOEntry, error) {
	if year < 2000 || year > 2200 {
		return nil, fmt.Errorf("%w: year %d out of range", apperrors.ErrValidation, year)
	}

	entries, err := s.reportingRepo.FindKPOEntries(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load KPO entries: %w", err)
	}

	running := decimal.Zero
	for i := range entries {
		entries[i].Ordinal = i + 1
		running = running.Add(entries[i].TotalRSD)
		entries[i].RunningTotal = running
	}
	if entries == nil {
		return []models.KPOEntry{}, nil
	}
	return entries, nil
}
