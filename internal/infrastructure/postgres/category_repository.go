package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/category"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, name, type, icon, color, budget, parent_id, created_at`

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	query := `
		INSERT INTO categories (id, owner_email, name, type, icon, color, budget, parent_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(
		ctx, query,
		c.ID, c.OwnerEmail, c.Name, c.Type, c.Icon, c.Color,
		nullFloat(c.Budget), nullString(c.ParentID), c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByOwner(ctx context.Context, owner string) ([]category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_email = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.OwnerEmail = owner
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, owner, id string) (*category.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE owner_email = $1 AND id = $2`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	c.OwnerEmail = owner
	return c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	query := `
		UPDATE categories
		SET name = $3, type = $4, icon = $5, color = $6, budget = $7, parent_id = $8
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(
		ctx, query,
		c.OwnerEmail, c.ID, c.Name, c.Type, c.Icon, c.Color,
		nullFloat(c.Budget), nullString(c.ParentID),
	)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRow(result, category.ErrCategoryNotFound)
}

func (r *CategoryRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRow(result, category.ErrCategoryNotFound)
}

func scanCategory(scan func(dest ...any) error) (*category.Category, error) {
	var c category.Category
	var budget sql.NullFloat64
	var parentID sql.NullString

	err := scan(&c.ID, &c.Name, &c.Type, &c.Icon, &c.Color, &budget, &parentID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Budget = floatPtr(budget)
	c.ParentID = stringPtr(parentID)
	return &c, nil
}
