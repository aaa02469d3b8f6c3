package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/goal"
)

// GoalRepository implements the goal.Repository interface for PostgreSQL
type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, name, target_amount, current_amount, deadline, category, color, created_at`

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (id, owner_email, name, target_amount, current_amount, deadline, category, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(
		ctx, query,
		g.ID, g.OwnerEmail, g.Name, g.TargetAmount, g.CurrentAmount,
		nullTime(g.Deadline), g.Category, g.Color, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) ListByOwner(ctx context.Context, owner string) ([]goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []goal.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.OwnerEmail = owner
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, owner, id string) (*goal.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_email = $1 AND id = $2`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	g.OwnerEmail = owner
	return g, nil
}

func (r *GoalRepository) Update(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET name = $3, target_amount = $4, current_amount = $5, deadline = $6, category = $7, color = $8
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(
		ctx, query,
		g.OwnerEmail, g.ID, g.Name, g.TargetAmount, g.CurrentAmount,
		nullTime(g.Deadline), g.Category, g.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRow(result, goal.ErrGoalNotFound)
}

func (r *GoalRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRow(result, goal.ErrGoalNotFound)
}

func scanGoal(scan func(dest ...any) error) (*goal.Goal, error) {
	var g goal.Goal
	var deadline sql.NullTime

	err := scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &g.Category, &g.Color, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	g.Deadline = timePtr(deadline)
	return &g, nil
}
