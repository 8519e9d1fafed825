package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pausalko/pausal-backend/internal/apperrors"
	"github.com/pausalko/pausal-backend/internal/core/ports"
	"github.com/pausalko/pausal-backend/internal/models"
)

type PgxBankAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxBankAccountRepository creates a new repository for bank accounts.
func NewPgxBankAccountRepository(pool *pgxpool.Pool) ports.BankAccountRepository {
	return &PgxBankAccountRepository{pool: pool}
}

// SaveBankAccount inserts a bank account. When the new account is the default,
// the flag is cleared on every other account in the same transaction.
func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account models.BankAccount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if account.IsDefault {
		if _, err := tx.Exec(ctx, `UPDATE bank_accounts SET is_default = FALSE WHERE is_default;`); err != nil {
			return fmt.Errorf("failed to clear default bank account: %w", err)
		}
	}

	query := `
		INSERT INTO bank_accounts (bank_account_id, account_name, iban, swift, bank_name, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	if _, err := tx.Exec(ctx, query,
		account.BankAccountID,
		account.AccountName,
		account.IBAN,
		account.SWIFT,
		account.BankName,
		account.IsDefault,
		account.CreatedAt,
		account.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bank account save: %w", err)
	}
	return nil
}

// ListBankAccounts retrieves all bank accounts, default first.
func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	query := `
		SELECT bank_account_id, account_name, iban, swift, bank_name, is_default, created_at, updated_at
		FROM bank_accounts
		ORDER BY is_default DESC, created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BankAccount, error) {
		var account models.BankAccount
		err := row.Scan(
			&account.BankAccountID,
			&account.AccountName,
			&account.IBAN,
			&account.SWIFT,
			&account.BankName,
			&account.IsDefault,
			&account.CreatedAt,
			&account.UpdatedAt,
		)
		return account, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan bank accounts: %w", err)
	}
	return accounts, nil
}

// DeleteBankAccount removes a bank account.
func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, bankAccountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM bank_accounts WHERE bank_account_id = $1;`, bankAccountID)
	if err != nil {
		return fmt.Errorf("failed to delete bank account %s: %w", bankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
