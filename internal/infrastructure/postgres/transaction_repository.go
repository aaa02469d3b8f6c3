package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"centime/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const transactionColumns = `id, owner_email, account_id, to_account_id, type, amount, currency,
       category, subcategory, description, date, payee, tags, notes, splits,
       is_recurring, recurring_frequency, recurring_next_date,
       linked_debt_id, linked_receivable_id, linked_investment_id, created_at`

func insertTransactionTx(ctx context.Context, e execer, t *transaction.Transaction) error {
	splits, err := toJSONB(t.Splits)
	if err != nil {
		return err
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	_, err = e.ExecContext(
		ctx, query,
		t.ID, t.OwnerEmail, t.AccountID, nullString(t.ToAccountID), t.Type, t.Amount, t.Currency,
		t.Category, nullString(t.Subcategory), t.Description, t.Date, nullString(t.Payee),
		pq.Array(tags), nullString(t.Notes), splits,
		t.IsRecurring, nullString(t.RecurringFrequency), nullString(t.RecurringNextDate),
		nullString(t.LinkedDebtID), nullString(t.LinkedReceivableID), nullString(t.LinkedInvestmentID),
		t.CreatedAt,
	)
	return err
}

// Create inserts the transaction, returning the already-stored record
// when the id was seen before so client retries stay idempotent.
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	existing, err := r.GetByID(ctx, t.OwnerEmail, t.ID)
	if err == nil {
		return existing, nil
	}
	if err != transaction.ErrTransactionNotFound {
		return nil, err
	}

	if err := insertTransactionTx(ctx, r.db, t); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) List(ctx context.Context, owner string, filter transaction.Filter) ([]transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_email = $1`
	args := []any{owner}

	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		query += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 || limit > transaction.MaxListLimit {
		limit = transaction.MaxListLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, owner, id string) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_email = $1 AND id = $2`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	splits, err := toJSONB(t.Splits)
	if err != nil {
		return err
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		UPDATE transactions
		SET account_id = $3, to_account_id = $4, type = $5, amount = $6, currency = $7,
		    category = $8, subcategory = $9, description = $10, date = $11, payee = $12,
		    tags = $13, notes = $14, splits = $15, is_recurring = $16,
		    recurring_frequency = $17, recurring_next_date = $18,
		    linked_debt_id = $19, linked_receivable_id = $20, linked_investment_id = $21
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(
		ctx, query,
		t.OwnerEmail, t.ID, t.AccountID, nullString(t.ToAccountID), t.Type, t.Amount, t.Currency,
		t.Category, nullString(t.Subcategory), t.Description, t.Date, nullString(t.Payee),
		pq.Array(tags), nullString(t.Notes), splits, t.IsRecurring,
		nullString(t.RecurringFrequency), nullString(t.RecurringNextDate),
		nullString(t.LinkedDebtID), nullString(t.LinkedReceivableID), nullString(t.LinkedInvestmentID),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireRow(result, transaction.ErrTransactionNotFound)
}

func (r *TransactionRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireRow(result, transaction.ErrTransactionNotFound)
}

// CreateIfAbsent inserts unless a row with the same statement identity
// already exists. The duplicate probe and the insert run in one
// transaction so concurrent imports of the same statement cannot both
// insert.
func (r *TransactionRepository) CreateIfAbsent(ctx context.Context, t *transaction.Transaction) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin import insert: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM transactions
			WHERE owner_email = $1 AND account_id = $2 AND date = $3 AND amount = $4 AND description = $5
		)
	`, t.OwnerEmail, t.AccountID, t.Date, t.Amount, t.Description).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := insertTransactionTx(ctx, tx, t); err != nil {
		return false, fmt.Errorf("failed to insert imported transaction: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit import insert: %w", err)
	}
	return true, nil
}

func (r *TransactionRepository) DueRecurring(ctx context.Context, now time.Time) ([]transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE is_recurring AND recurring_next_date IS NOT NULL AND recurring_next_date <= $1`

	rows, err := r.db.QueryContext(ctx, query, now.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list due recurring transactions: %w", err)
	}
	defer rows.Close()

	due := []transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring transaction: %w", err)
		}
		due = append(due, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring transactions: %w", err)
	}
	return due, nil
}

func (r *TransactionRepository) AdvanceRecurring(ctx context.Context, owner, id string, next string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET recurring_next_date = $3 WHERE owner_email = $1 AND id = $2 AND is_recurring`,
		owner, id, next,
	)
	if err != nil {
		return fmt.Errorf("failed to advance recurring transaction: %w", err)
	}
	return requireRow(result, transaction.ErrTransactionNotFound)
}

func scanTransaction(scan func(dest ...any) error) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var toAccountID, subcategory, payee, notes sql.NullString
	var recurringFrequency, recurringNextDate sql.NullString
	var linkedDebtID, linkedReceivableID, linkedInvestmentID sql.NullString
	var splits []byte

	err := scan(
		&t.ID, &t.OwnerEmail, &t.AccountID, &toAccountID, &t.Type, &t.Amount, &t.Currency,
		&t.Category, &subcategory, &t.Description, &t.Date, &payee,
		pq.Array(&t.Tags), &notes, &splits,
		&t.IsRecurring, &recurringFrequency, &recurringNextDate,
		&linkedDebtID, &linkedReceivableID, &linkedInvestmentID, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ToAccountID = stringPtr(toAccountID)
	t.Subcategory = stringPtr(subcategory)
	t.Payee = stringPtr(payee)
	t.Notes = stringPtr(notes)
	t.RecurringFrequency = stringPtr(recurringFrequency)
	t.RecurringNextDate = stringPtr(recurringNextDate)
	t.LinkedDebtID = stringPtr(linkedDebtID)
	t.LinkedReceivableID = stringPtr(linkedReceivableID)
	t.LinkedInvestmentID = stringPtr(linkedInvestmentID)
	if err := fromJSONB(splits, &t.Splits); err != nil {
		return nil, err
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}
