package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/payee"
)

// PayeeRepository implements the payee.Repository interface for PostgreSQL
type PayeeRepository struct {
	db *DB
}

func NewPayeeRepository(db *DB) *PayeeRepository {
	return &PayeeRepository{db: db}
}

const payeeColumns = `id, name, type, default_category_id, notes, created_at`

func (r *PayeeRepository) Create(ctx context.Context, p *payee.Payee) error {
	query := `
		INSERT INTO payees (id, owner_email, name, type, default_category_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(
		ctx, query,
		p.ID, p.OwnerEmail, p.Name, p.Type, nullString(p.DefaultCategoryID), nullString(p.Notes), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payee: %w", err)
	}
	return nil
}

func (r *PayeeRepository) ListByOwner(ctx context.Context, owner string) ([]payee.Payee, error) {
	query := `SELECT ` + payeeColumns + ` FROM payees WHERE owner_email = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list payees: %w", err)
	}
	defer rows.Close()

	payees := []payee.Payee{}
	for rows.Next() {
		p, err := scanPayee(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payee: %w", err)
		}
		p.OwnerEmail = owner
		payees = append(payees, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payees: %w", err)
	}
	return payees, nil
}

func (r *PayeeRepository) GetByID(ctx context.Context, owner, id string) (*payee.Payee, error) {
	query := `SELECT ` + payeeColumns + ` FROM payees WHERE owner_email = $1 AND id = $2`

	p, err := scanPayee(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, payee.ErrPayeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}
	p.OwnerEmail = owner
	return p, nil
}

func (r *PayeeRepository) Update(ctx context.Context, p *payee.Payee) error {
	query := `
		UPDATE payees
		SET name = $3, type = $4, default_category_id = $5, notes = $6
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(
		ctx, query,
		p.OwnerEmail, p.ID, p.Name, p.Type, nullString(p.DefaultCategoryID), nullString(p.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to update payee: %w", err)
	}
	return requireRow(result, payee.ErrPayeeNotFound)
}

func (r *PayeeRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payees WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete payee: %w", err)
	}
	return requireRow(result, payee.ErrPayeeNotFound)
}

func scanPayee(scan func(dest ...any) error) (*payee.Payee, error) {
	var p payee.Payee
	var defaultCategoryID, notes sql.NullString

	err := scan(&p.ID, &p.Name, &p.Type, &defaultCategoryID, &notes, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.DefaultCategoryID = stringPtr(defaultCategoryID)
	p.Notes = stringPtr(notes)
	return &p, nil
}
