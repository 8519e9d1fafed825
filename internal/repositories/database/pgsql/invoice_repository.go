package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxInvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxInvoiceRepository creates a new repository for invoice data.
func NewPgxInvoiceRepository(pool *pgxpool.Pool) ports.InvoiceRepository {
	return &PgxInvoiceRepository{pool: pool}
}

const insertItemQuery = `
	INSERT INTO invoice_items (item_id, invoice_id, description, unit, quantity, price, discount)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
`

// SaveInvoice inserts an invoice and its line items in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO invoices (
			invoice_id, invoice_number, invoice_date, trading_date, customer_id, bank_account_id,
			currency, exchange_rate, payment_deadline, notes, total_rsd, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.InvoiceDate,
		invoice.TradingDate,
		invoice.CustomerID,
		invoice.BankAccountID,
		invoice.Currency,
		invoice.ExchangeRate,
		invoice.PaymentDeadline,
		invoice.Notes,
		invoice.TotalRSD,
		invoice.Status,
		invoice.CreatedAt,
		invoice.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("invoice number %s already exists: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
	}

	for _, item := range items {
		if _, err := tx.Exec(ctx, insertItemQuery,
			item.ItemID, item.InvoiceID, item.Description, item.Unit, item.Quantity, item.Price, item.Discount,
		); err != nil {
			return fmt.Errorf("failed to save invoice item %s: %w", item.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice save: %w", err)
	}
	return nil
}

// UpdateInvoice updates an invoice and replaces all of its line items in one
// transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice models.Invoice, items []models.InvoiceItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE invoices
		SET invoice_number = $2, invoice_date = $3, trading_date = $4, customer_id = $5,
			bank_account_id = NULLIF($6, ''), currency = $7, exchange_rate = $8, payment_deadline = $9,
			notes = $10, total_rsd = $11, status = $12, updated_at = $13
		WHERE invoice_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		invoice.InvoiceID,
		invoice.InvoiceNumber,
		invoice.InvoiceDate,
		invoice.TradingDate,
		invoice.CustomerID,
		invoice.BankAccountID,
		invoice.Currency,
		invoice.ExchangeRate,
		invoice.PaymentDeadline,
		invoice.Notes,
		invoice.TotalRSD,
		invoice.Status,
		invoice.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("invoice number %s already exists: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID); err != nil {
		return fmt.Errorf("failed to clear invoice items for %s: %w", invoice.InvoiceID, err)
	}
	for _, item := range items {
		if _, err := tx.Exec(ctx, insertItemQuery,
			item.ItemID, item.InvoiceID, item.Description, item.Unit, item.Quantity, item.Price, item.Discount,
		); err != nil {
			return fmt.Errorf("failed to save invoice item %s: %w", item.ItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit invoice update: %w", err)
	}
	return nil
}

const selectInvoiceColumns = `
	i.invoice_id, i.invoice_number, i.invoice_date, i.trading_date, i.customer_id,
	COALESCE(i.bank_account_id, ''), i.currency, i.exchange_rate, i.payment_deadline,
	i.notes, i.total_rsd, i.status, i.created_at, i.updated_at,
	c.name, c.company
`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var invoice models.Invoice
	err := row.Scan(
		&invoice.InvoiceID,
		&invoice.InvoiceNumber,
		&invoice.InvoiceDate,
		&invoice.TradingDate,
		&invoice.CustomerID,
		&invoice.BankAccountID,
		&invoice.Currency,
		&invoice.ExchangeRate,
		&invoice.PaymentDeadline,
		&invoice.Notes,
		&invoice.TotalRSD,
		&invoice.Status,
		&invoice.CreatedAt,
		&invoice.UpdatedAt,
		&invoice.CustomerName,
		&invoice.CustomerCompany,
	)
	return invoice, err
}

// FindInvoiceByID retrieves an invoice with denormalized customer fields.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	query := `
		SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN customers c ON c.customer_id = i.customer_id
		WHERE i.invoice_id = $1;
	`
	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by id %s: %w", invoiceID, err)
	}
	return &invoice, nil
}

// FindItemsByInvoiceID retrieves the line items of one invoice.
func (r *PgxInvoiceRepository) FindItemsByInvoiceID(ctx context.Context, invoiceID string) ([]models.InvoiceItem, error) {
	query := `
		SELECT item_id, invoice_id, description, unit, quantity, price, discount
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.InvoiceItem, error) {
		var item models.InvoiceItem
		err := row.Scan(
			&item.ItemID,
			&item.InvoiceID,
			&item.Description,
			&item.Unit,
			&item.Quantity,
			&item.Price,
			&item.Discount,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoice items: %w", err)
	}
	return items, nil
}

// ListInvoices retrieves all invoices, newest first, without items.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	query := `
		SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN customers c ON c.customer_id = i.customer_id
		ORDER BY i.invoice_date DESC, i.invoice_number DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invoices: %w", err)
	}
	return invoices, nil
}

// DeleteInvoice removes an invoice; items go with it via ON DELETE CASCADE.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountByCustomer returns how many invoices reference a customer.
func (r *PgxInvoiceRepository) CountByCustomer(ctx context.Context, customerID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE customer_id = $1;`, customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count invoices for customer %s: %w", customerID, err)
	}
	return count, nil
}

// FindLastInvoiceNumber returns the highest sequential number issued in a year.
// Numbers follow the "NNN/YYYY" pattern so the sequence is ordered numerically
// on the part before the slash.
func (r *PgxInvoiceRepository) FindLastInvoiceNumber(ctx context.Context, year int) (string, error) {
	query := `
		SELECT invoice_number
		FROM invoices
		WHERE invoice_number LIKE '%/' || $1::text
		ORDER BY split_part(invoice_number, '/', 1)::int DESC
		LIMIT 1;
	`
	var number string
	err := r.pool.QueryRow(ctx, query, year).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to find last invoice number for %d: %w", year, err)
	}
	return number, nil
}
