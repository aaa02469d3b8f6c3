package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"centime/internal/domain/user"
)

// UserRepository implements the user.Repository interface for PostgreSQL
type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	query := `
		INSERT INTO users (email, name, picture, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING email, name, picture, password_hash, created_at
	`

	var u user.User
	var picture, passwordHash sql.NullString

	err := r.db.QueryRowContext(
		ctx, query,
		params.Email, params.Name, nullString(params.Picture), nullString(params.PasswordHash),
	).Scan(&u.Email, &u.Name, &picture, &passwordHash, &u.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return nil, user.ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	u.Picture = stringPtr(picture)
	u.PasswordHash = stringPtr(passwordHash)
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT email, name, picture, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var u user.User
	var picture, passwordHash sql.NullString

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.Email, &u.Name, &picture, &passwordHash, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Picture = stringPtr(picture)
	u.PasswordHash = stringPtr(passwordHash)
	return &u, nil
}
