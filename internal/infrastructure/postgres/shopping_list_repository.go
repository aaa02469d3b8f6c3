package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/shoppinglist"
)

// ShoppingListRepository implements the shoppinglist.Repository interface for PostgreSQL
type ShoppingListRepository struct {
	db *DB
}

func NewShoppingListRepository(db *DB) *ShoppingListRepository {
	return &ShoppingListRepository{db: db}
}

const shoppingListColumns = `id, name, items, completed, created_at`

func (r *ShoppingListRepository) Create(ctx context.Context, l *shoppinglist.List) error {
	items, err := toJSONB(l.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO shopping_lists (id, owner_email, name, items, completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query, l.ID, l.OwnerEmail, l.Name, items, l.Completed, l.CreatedAt); err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	return nil
}

func (r *ShoppingListRepository) ListByOwner(ctx context.Context, owner string) ([]shoppinglist.List, error) {
	query := `SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer rows.Close()

	lists := []shoppinglist.List{}
	for rows.Next() {
		l, err := scanShoppingList(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		l.OwnerEmail = owner
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping lists: %w", err)
	}
	return lists, nil
}

func (r *ShoppingListRepository) GetByID(ctx context.Context, owner, id string) (*shoppinglist.List, error) {
	query := `SELECT ` + shoppingListColumns + ` FROM shopping_lists WHERE owner_email = $1 AND id = $2`

	l, err := scanShoppingList(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, shoppinglist.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}
	l.OwnerEmail = owner
	return l, nil
}

func (r *ShoppingListRepository) Update(ctx context.Context, l *shoppinglist.List) error {
	items, err := toJSONB(l.Items)
	if err != nil {
		return err
	}

	query := `
		UPDATE shopping_lists
		SET name = $3, items = $4, completed = $5
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(ctx, query, l.OwnerEmail, l.ID, l.Name, items, l.Completed)
	if err != nil {
		return fmt.Errorf("failed to update shopping list: %w", err)
	}
	return requireRow(result, shoppinglist.ErrListNotFound)
}

func (r *ShoppingListRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return requireRow(result, shoppinglist.ErrListNotFound)
}

func scanShoppingList(scan func(dest ...any) error) (*shoppinglist.List, error) {
	var l shoppinglist.List
	var items []byte

	err := scan(&l.ID, &l.Name, &items, &l.Completed, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := fromJSONB(items, &l.Items); err != nil {
		return nil, err
	}
	if l.Items == nil {
		l.Items = []shoppinglist.Item{}
	}
	return &l, nil
}
