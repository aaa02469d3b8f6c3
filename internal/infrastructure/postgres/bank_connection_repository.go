package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"centime/internal/domain/bankconnection"
)

// BankConnectionRepository implements the bankconnection.Repository interface for PostgreSQL
type BankConnectionRepository struct {
	db *DB
}

func NewBankConnectionRepository(db *DB) *BankConnectionRepository {
	return &BankConnectionRepository{db: db}
}

const bankConnectionColumns = `id, bank_name, account_id, connection_status, last_sync, access_token, created_at`

func (r *BankConnectionRepository) Create(ctx context.Context, c *bankconnection.Connection) error {
	query := `
		INSERT INTO bank_connections (id, owner_email, bank_name, account_id, connection_status, last_sync, access_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.OwnerEmail, c.BankName, c.AccountID, c.ConnectionStatus,
		nullTime(c.LastSync), nullString(c.AccessToken), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bank connection: %w", err)
	}
	return nil
}

func (r *BankConnectionRepository) ListByOwner(ctx context.Context, owner string) ([]bankconnection.Connection, error) {
	query := `SELECT ` + bankConnectionColumns + ` FROM bank_connections WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank connections: %w", err)
	}
	defer rows.Close()

	connections := []bankconnection.Connection{}
	for rows.Next() {
		c, err := scanBankConnection(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank connection: %w", err)
		}
		c.OwnerEmail = owner
		connections = append(connections, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank connections: %w", err)
	}
	return connections, nil
}

func (r *BankConnectionRepository) GetByID(ctx context.Context, owner, id string) (*bankconnection.Connection, error) {
	query := `SELECT ` + bankConnectionColumns + ` FROM bank_connections WHERE owner_email = $1 AND id = $2`

	c, err := scanBankConnection(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, bankconnection.ErrConnectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bank connection: %w", err)
	}
	c.OwnerEmail = owner
	return c, nil
}

func (r *BankConnectionRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bank_connections WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete bank connection: %w", err)
	}
	return requireRow(result, bankconnection.ErrConnectionNotFound)
}

func (r *BankConnectionRepository) MarkSynced(ctx context.Context, owner, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bank_connections SET last_sync = $3 WHERE owner_email = $1 AND id = $2`,
		owner, id, at,
	)
	if err != nil {
		return fmt.Errorf("failed to mark bank connection synced: %w", err)
	}
	return requireRow(result, bankconnection.ErrConnectionNotFound)
}

func scanBankConnection(scan func(dest ...any) error) (*bankconnection.Connection, error) {
	var c bankconnection.Connection
	var lastSync sql.NullTime
	var accessToken sql.NullString

	err := scan(&c.ID, &c.BankName, &c.AccountID, &c.ConnectionStatus, &lastSync, &accessToken, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.LastSync = timePtr(lastSync)
	c.AccessToken = stringPtr(accessToken)
	return &c, nil
}
