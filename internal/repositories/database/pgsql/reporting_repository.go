package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// NewPgxReportingRepository creates a new repository for KPO book queries.
func NewPgxReportingRepository(pool *pgxpool.Pool) ports.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

// FindKPOEntries returns the non-draft invoices of one year ordered by invoice
// date, each with the customer name and the line item descriptions joined into
// a single summary. Ordinals and running totals are assigned by the caller.
func (r *PgxReportingRepository) FindKPOEntries(ctx context.Context, year int) ([]models.KPOEntry, error) {
	query := `
		SELECT
			i.invoice_number, i.invoice_date, i.trading_date,
			COALESCE(NULLIF(c.company, ''), c.name),
			COALESCE(string_agg(it.description, ', ' ORDER BY it.item_id), ''),
			i.currency, i.total_rsd
		FROM invoices i
		JOIN customers c ON c.customer_id = i.customer_id
		LEFT JOIN invoice_items it ON it.invoice_id = i.invoice_id
		WHERE i.status <> 'draft' AND EXTRACT(YEAR FROM i.invoice_date) = $1
		GROUP BY i.invoice_id, c.customer_id
		ORDER BY i.invoice_date, i.invoice_number;
	`
	rows, err := r.pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query KPO entries: %w", err)
	}
	defer rows.Close()

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.KPOEntry, error) {
		var entry models.KPOEntry
		err := row.Scan(
			&entry.InvoiceNumber,
			&entry.InvoiceDate,
			&entry.TradingDate,
			&entry.CustomerName,
			&entry.Description,
			&entry.Currency,
			&entry.TotalRSD,
		)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan KPO entries: %w", err)
	}
	return entries, nil
}
