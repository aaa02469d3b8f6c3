package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/account"
	"centime/internal/domain/transaction"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *DB
}

func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, name, type, currency, initial_balance, current_balance,
       icon, color, is_excluded_from_total, bank_connected, bank_connection_id, created_at`

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (
			id, owner_email, name, type, currency, initial_balance, current_balance,
			icon, color, is_excluded_from_total, bank_connected, bank_connection_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		a.ID, a.OwnerEmail, a.Name, a.Type, a.Currency, a.InitialBalance, a.CurrentBalance,
		a.Icon, a.Color, a.IsExcludedFromTotal, a.BankConnected, nullString(a.BankConnectionID), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) ListByOwner(ctx context.Context, owner string) ([]account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []account.Account{}
	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.OwnerEmail = owner
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, owner, id string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE owner_email = $1 AND id = $2`

	a, err := scanAccount(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	a.OwnerEmail = owner
	return a, nil
}

func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, type = $4, currency = $5, initial_balance = $6, current_balance = $7,
		    icon = $8, color = $9, is_excluded_from_total = $10, bank_connected = $11,
		    bank_connection_id = $12
		WHERE owner_email = $1 AND id = $2
	`

	result, err := r.db.ExecContext(
		ctx, query,
		a.OwnerEmail, a.ID, a.Name, a.Type, a.Currency, a.InitialBalance, a.CurrentBalance,
		a.Icon, a.Color, a.IsExcludedFromTotal, a.BankConnected, nullString(a.BankConnectionID),
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireRow(result, account.ErrAccountNotFound)
}

func (r *AccountRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRow(result, account.ErrAccountNotFound)
}

// ApplyTransfer writes both balances and both legs in one transaction.
// Rows are locked in id order to avoid deadlock between concurrent
// opposite-direction transfers.
func (r *AccountRepository) ApplyTransfer(ctx context.Context, from, to *account.Account, legs [2]transaction.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback()

	first, second := from, to
	if second.ID < first.ID {
		first, second = second, first
	}
	for _, a := range []*account.Account{first, second} {
		var locked string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM accounts WHERE owner_email = $1 AND id = $2 FOR UPDATE`,
			a.OwnerEmail, a.ID,
		).Scan(&locked)
		if err == sql.ErrNoRows {
			return account.ErrAccountNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock account: %w", err)
		}
	}

	for _, a := range []*account.Account{from, to} {
		if _, err := tx.ExecContext(ctx,
			`UPDATE accounts SET current_balance = $3 WHERE owner_email = $1 AND id = $2`,
			a.OwnerEmail, a.ID, a.CurrentBalance,
		); err != nil {
			return fmt.Errorf("failed to update balance: %w", err)
		}
	}

	for _, leg := range legs {
		if err := insertTransactionTx(ctx, tx, &leg); err != nil {
			return fmt.Errorf("failed to record transfer leg: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}
	return nil
}

func scanAccount(scan func(dest ...any) error) (*account.Account, error) {
	var a account.Account
	var bankConnectionID sql.NullString

	err := scan(
		&a.ID, &a.Name, &a.Type, &a.Currency, &a.InitialBalance, &a.CurrentBalance,
		&a.Icon, &a.Color, &a.IsExcludedFromTotal, &a.BankConnected, &bankConnectionID, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.BankConnectionID = stringPtr(bankConnectionID)
	return &a, nil
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
