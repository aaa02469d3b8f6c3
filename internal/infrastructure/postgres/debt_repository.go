package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/debt"
	"centime/internal/domain/transaction"
)

// DebtRepository implements the debt.Repository interface for PostgreSQL
type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, name, total_amount, remaining_amount, interest_rate, creditor,
       due_date, payments, account_id, created_at`

func (r *DebtRepository) Create(ctx context.Context, d *debt.Debt) error {
	payments, err := toJSONB(d.Payments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO debts (
			id, owner_email, name, total_amount, remaining_amount, interest_rate,
			creditor, due_date, payments, account_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(
		ctx, query,
		d.ID, d.OwnerEmail, d.Name, d.TotalAmount, d.RemainingAmount, d.InterestRate,
		d.Creditor, nullTime(d.DueDate), payments, nullString(d.AccountID), d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

func (r *DebtRepository) ListByOwner(ctx context.Context, owner string) ([]debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	debts := []debt.Debt{}
	for rows.Next() {
		d, err := scanDebt(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		d.OwnerEmail = owner
		debts = append(debts, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debts: %w", err)
	}
	return debts, nil
}

func (r *DebtRepository) GetByID(ctx context.Context, owner, id string) (*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE owner_email = $1 AND id = $2`

	d, err := scanDebt(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	d.OwnerEmail = owner
	return d, nil
}

func (r *DebtRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return requireRow(result, debt.ErrDebtNotFound)
}

// Mutate locks the debt row, applies fn, and writes the updated record
// plus any linked transaction before releasing the lock.
func (r *DebtRepository) Mutate(ctx context.Context, owner, id string, fn func(*debt.Debt) (*transaction.Transaction, error)) (*debt.Debt, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin debt mutation: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + debtColumns + ` FROM debts WHERE owner_email = $1 AND id = $2 FOR UPDATE`
	d, err := scanDebt(tx.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, debt.ErrDebtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock debt: %w", err)
	}
	d.OwnerEmail = owner

	linked, err := fn(d)
	if err != nil {
		return nil, err
	}

	payments, err := toJSONB(d.Payments)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE debts
		SET name = $3, total_amount = $4, remaining_amount = $5, interest_rate = $6,
		    creditor = $7, due_date = $8, payments = $9, account_id = $10
		WHERE owner_email = $1 AND id = $2
	`,
		owner, id, d.Name, d.TotalAmount, d.RemainingAmount, d.InterestRate,
		d.Creditor, nullTime(d.DueDate), payments, nullString(d.AccountID),
	); err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	if linked != nil {
		if err := insertTransactionTx(ctx, tx, linked); err != nil {
			return nil, fmt.Errorf("failed to record linked transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit debt mutation: %w", err)
	}
	return d, nil
}

func scanDebt(scan func(dest ...any) error) (*debt.Debt, error) {
	var d debt.Debt
	var dueDate sql.NullTime
	var accountID sql.NullString
	var payments []byte

	err := scan(
		&d.ID, &d.Name, &d.TotalAmount, &d.RemainingAmount, &d.InterestRate,
		&d.Creditor, &dueDate, &payments, &accountID, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fromJSONB(payments, &d.Payments); err != nil {
		return nil, err
	}
	d.DueDate = timePtr(dueDate)
	d.AccountID = stringPtr(accountID)
	return &d, nil
}
