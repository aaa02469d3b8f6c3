package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/investment"
)

// InvestmentRepository implements the investment.Repository interface for PostgreSQL
type InvestmentRepository struct {
	db *DB
}

func NewInvestmentRepository(db *DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

const investmentColumns = `id, name, symbol, type, quantity, average_price, current_price, currency,
       operations, purchase_date, initial_value, depreciation_rate, monthly_costs,
       linked_transaction_id, created_at`

func (r *InvestmentRepository) Create(ctx context.Context, i *investment.Investment) error {
	operations, err := toJSONB(i.Operations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO investments (
			id, owner_email, name, symbol, type, quantity, average_price, current_price, currency,
			operations, purchase_date, initial_value, depreciation_rate, monthly_costs,
			linked_transaction_id, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = r.db.ExecContext(
		ctx, query,
		i.ID, i.OwnerEmail, i.Name, i.Symbol, i.Type, i.Quantity, i.AveragePrice, i.CurrentPrice,
		i.Currency, operations, nullTime(i.PurchaseDate), nullFloat(i.InitialValue),
		nullFloat(i.DepreciationRate), nullFloat(i.MonthlyCosts),
		nullString(i.LinkedTransactionID), i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create investment: %w", err)
	}
	return nil
}

func (r *InvestmentRepository) ListByOwner(ctx context.Context, owner string) ([]investment.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	investments := []investment.Investment{}
	for rows.Next() {
		i, err := scanInvestment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		i.OwnerEmail = owner
		investments = append(investments, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investments: %w", err)
	}
	return investments, nil
}

func (r *InvestmentRepository) GetByID(ctx context.Context, owner, id string) (*investment.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE owner_email = $1 AND id = $2`

	i, err := scanInvestment(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, investment.ErrInvestmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investment: %w", err)
	}
	i.OwnerEmail = owner
	return i, nil
}

func (r *InvestmentRepository) Update(ctx context.Context, i *investment.Investment) error {
	result, err := r.execUpdate(ctx, r.db, i)
	if err != nil {
		return err
	}
	return requireRow(result, investment.ErrInvestmentNotFound)
}

func (r *InvestmentRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM investments WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return requireRow(result, investment.ErrInvestmentNotFound)
}

// Mutate re-reads the row under FOR UPDATE, applies fn, and writes the
// result before releasing the lock, so concurrent operation edits
// serialize instead of losing updates.
func (r *InvestmentRepository) Mutate(ctx context.Context, owner, id string, fn func(*investment.Investment) error) (*investment.Investment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin investment mutation: %w", err)
	}
	defer tx.Rollback()

	query := `SELECT ` + investmentColumns + ` FROM investments WHERE owner_email = $1 AND id = $2 FOR UPDATE`
	i, err := scanInvestment(tx.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, investment.ErrInvestmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock investment: %w", err)
	}
	i.OwnerEmail = owner

	if err := fn(i); err != nil {
		return nil, err
	}

	result, err := r.execUpdate(ctx, tx, i)
	if err != nil {
		return nil, err
	}
	if err := requireRow(result, investment.ErrInvestmentNotFound); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit investment mutation: %w", err)
	}
	return i, nil
}

func (r *InvestmentRepository) execUpdate(ctx context.Context, e execer, i *investment.Investment) (sql.Result, error) {
	operations, err := toJSONB(i.Operations)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE investments
		SET name = $3, symbol = $4, type = $5, quantity = $6, average_price = $7,
		    current_price = $8, currency = $9, operations = $10, purchase_date = $11,
		    initial_value = $12, depreciation_rate = $13, monthly_costs = $14,
		    linked_transaction_id = $15
		WHERE owner_email = $1 AND id = $2
	`
	result, err := e.ExecContext(
		ctx, query,
		i.OwnerEmail, i.ID, i.Name, i.Symbol, i.Type, i.Quantity, i.AveragePrice,
		i.CurrentPrice, i.Currency, operations, nullTime(i.PurchaseDate),
		nullFloat(i.InitialValue), nullFloat(i.DepreciationRate), nullFloat(i.MonthlyCosts),
		nullString(i.LinkedTransactionID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update investment: %w", err)
	}
	return result, nil
}

func scanInvestment(scan func(dest ...any) error) (*investment.Investment, error) {
	var i investment.Investment
	var operations []byte
	var purchaseDate sql.NullTime
	var initialValue, depreciationRate, monthlyCosts sql.NullFloat64
	var linkedTransactionID sql.NullString

	err := scan(
		&i.ID, &i.Name, &i.Symbol, &i.Type, &i.Quantity, &i.AveragePrice, &i.CurrentPrice,
		&i.Currency, &operations, &purchaseDate, &initialValue, &depreciationRate,
		&monthlyCosts, &linkedTransactionID, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fromJSONB(operations, &i.Operations); err != nil {
		return nil, err
	}
	i.PurchaseDate = timePtr(purchaseDate)
	i.InitialValue = floatPtr(initialValue)
	i.DepreciationRate = floatPtr(depreciationRate)
	i.MonthlyCosts = floatPtr(monthlyCosts)
	i.LinkedTransactionID = stringPtr(linkedTransactionID)
	return &i, nil
}
