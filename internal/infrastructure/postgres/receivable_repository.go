package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/receivable"
	"centime/internal/domain/transaction"
)

// ReceivableRepository implements the receivable.Repository interface for PostgreSQL
type ReceivableRepository struct {
	db *DB
}

func NewReceivableRepository(db *DB) *ReceivableRepository {
	return &ReceivableRepository{db: db}
}

const receivableColumns = `id, name, total_amount, remaining_amount, debtor,
       due_date, payments, account_id, is_paid, created_at`

func (r *ReceivableRepository) Create(ctx context.Context, rec *receivable.Receivable) error {
	payments, err := toJSONB(rec.Payments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO receivables (
			id, owner_email, name, total_amount, remaining_amount, debtor,
			due_date, payments, account_id, is_paid, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(
		ctx, query,
		rec.ID, rec.OwnerEmail, rec.Name, rec.TotalAmount, rec.RemainingAmount, rec.Debtor,
		nullTime(rec.DueDate), payments, nullString(rec.AccountID), rec.IsPaid, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}
	return nil
}

func (r *ReceivableRepository) ListByOwner(ctx context.Context, owner string) ([]receivable.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	receivables := []receivable.Receivable{}
	for rows.Next() {
		rec, err := scanReceivable(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receivable: %w", err)
		}
		rec.OwnerEmail = owner
		receivables = append(receivables, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receivables: %w", err)
	}
	return receivables, nil
}

func (r *ReceivableRepository) GetByID(ctx context.Context, owner, id string) (*receivable.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE owner_email = $1 AND id = $2`

	rec, err := scanReceivable(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, receivable.ErrReceivableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receivable: %w", err)
	}
	rec.OwnerEmail = owner
	return rec, nil
}

func (r *ReceivableRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM receivables WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete receivable: %w", err)
	}
	return requireRow(result, receivable.ErrReceivableNotFound)
}

func (r *ReceivableRepository) Mutate(ctx context.Context, owner, id string, fn func(*receivable.Receivable) (*transaction.Transaction, error)) (*receivable.Receivable, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin receivable mutation: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE owner_email = $1 AND id = $2 FOR UPDATE`
	rec, err := scanReceivable(tx.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, receivable.ErrReceivableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock receivable: %w", err)
	}
	rec.OwnerEmail = owner

	linked, err := fn(rec)
	if err != nil {
		return nil, err
	}

	payments, err := toJSONB(rec.Payments)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE receivables
		SET name = $3, total_amount = $4, remaining_amount = $5, debtor = $6,
		    due_date = $7, payments = $8, account_id = $9, is_paid = $10
		WHERE owner_email = $1 AND id = $2
	`,
		owner, id, rec.Name, rec.TotalAmount, rec.RemainingAmount, rec.Debtor,
		nullTime(rec.DueDate), payments, nullString(rec.AccountID), rec.IsPaid,
	); err != nil {
		return nil, fmt.Errorf("failed to update receivable: %w", err)
	}

	if linked != nil {
		if err := insertTransactionTx(ctx, tx, linked); err != nil {
			return nil, fmt.Errorf("failed to record linked transaction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit receivable mutation: %w", err)
	}
	return rec, nil
}

func scanReceivable(scan func(dest ...any) error) (*receivable.Receivable, error) {
	var rec receivable.Receivable
	var dueDate sql.NullTime
	var accountID sql.NullString
	var payments []byte

	err := scan(
		&rec.ID, &rec.Name, &rec.TotalAmount, &rec.RemainingAmount, &rec.Debtor,
		&dueDate, &payments, &accountID, &rec.IsPaid, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fromJSONB(payments, &rec.Payments); err != nil {
		return nil, err
	}
	rec.DueDate = timePtr(dueDate)
	rec.AccountID = stringPtr(accountID)
	return &rec, nil
}
