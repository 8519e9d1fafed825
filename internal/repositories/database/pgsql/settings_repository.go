package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSettingsRepository creates a new repository for the company settings
// singleton.
func NewPgxSettingsRepository(pool *pgxpool.Pool) ports.SettingsRepository {
	return &PgxSettingsRepository{pool: pool}
}

const selectSettingsQuery = `
	SELECT settings_id, company_name, address, city, pib, mb, iban, swift, email, phone, website, logo_url, created_at, updated_at
	FROM settings
	ORDER BY created_at
	LIMIT 1;
`

func scanSettings(row pgx.Row) (models.CompanySettings, error) {
	var s models.CompanySettings
	err := row.Scan(
		&s.SettingsID,
		&s.CompanyName,
		&s.Address,
		&s.City,
		&s.PIB,
		&s.MB,
		&s.IBAN,
		&s.SWIFT,
		&s.Email,
		&s.Phone,
		&s.Website,
		&s.LogoURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

// FindSettings retrieves the settings row, or ErrNotFound when never saved.
func (r *PgxSettingsRepository) FindSettings(ctx context.Context) (*models.CompanySettings, error) {
	settings, err := scanSettings(r.pool.QueryRow(ctx, selectSettingsQuery))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings: %w", err)
	}
	return &settings, nil
}

// SaveSettings inserts the row on first save and updates it afterwards, keeping
// exactly one row in the table.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings models.CompanySettings) (*models.CompanySettings, error) {
	now := time.Now()

	existing, err := scanSettings(r.pool.QueryRow(ctx, selectSettingsQuery))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("failed to load settings for save: %w", err)
		}
		settings.SettingsID = uuid.NewString()
		settings.CreatedAt = now
		settings.UpdatedAt = now

		query := `
			INSERT INTO settings (settings_id, company_name, address, city, pib, mb, iban, swift, email, phone, website, logo_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
		`
		if _, err := r.pool.Exec(ctx, query,
			settings.SettingsID, settings.CompanyName, settings.Address, settings.City,
			settings.PIB, settings.MB, settings.IBAN, settings.SWIFT,
			settings.Email, settings.Phone, settings.Website, settings.LogoURL,
			settings.CreatedAt, settings.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to insert settings: %w", err)
		}
		return &settings, nil
	}

	settings.SettingsID = existing.SettingsID
	settings.CreatedAt = existing.CreatedAt
	settings.UpdatedAt = now

	query := `
		UPDATE settings
		SET company_name = $2, address = $3, city = $4, pib = $5, mb = $6, iban = $7, swift = $8,
			email = $9, phone = $10, website = $11, logo_url = $12, updated_at = $13
		WHERE settings_id = $1;
	`
	if _, err := r.pool.Exec(ctx, query,
		settings.SettingsID, settings.CompanyName, settings.Address, settings.City,
		settings.PIB, settings.MB, settings.IBAN, settings.SWIFT,
		settings.Email, settings.Phone, settings.Website, settings.LogoURL,
		settings.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return &settings, nil
}
