package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/robfig/cron/v3"
)

// refreshTimeout bounds one scheduled refresh run.
const refreshTimeout = 30 * time.Second

// RateRefresher runs the daily NBS rate fetch on a cron schedule. NBS
// publishes its list on working days, so the default schedule skips weekends.
type RateRefresher struct {
	cron        *cron.Cron
	rateService ports.ExchangeRateSvcFacade
	logger      *slog.Logger
}

// NewRateRefresher creates a refresher with the schedule evaluated in the
// given timezone.
func NewRateRefresher(rateService ports.ExchangeRateSvcFacade, timezone string, logger *slog.Logger) (*RateRefresher, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", timezone, err)
	}
	return &RateRefresher{
		cron:        cron.New(cron.WithLocation(loc)),
		rateService: rateService,
		logger:      logger,
	}, nil
}

// Start registers the refresh job under the given cron spec and starts the
// scheduler in its own goroutine.
func (s *RateRefresher) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("failed to schedule rate refresh: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Rate refresh scheduled", slog.String("cron", spec))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *RateRefresher) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Refresh fetches today's rates once, outside the schedule. Used at startup to
// warm the cache.
func (s *RateRefresher) Refresh(ctx context.Context) {
	rates, err := s.rateService.FetchRates(ctx, nil)
	if err != nil {
		s.logger.Error("Rate refresh failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Rate refresh complete", slog.Int("count", len(rates)))
}

func (s *RateRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	s.Refresh(ctx)
}
