package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"centime/internal/domain/task"
)

// TaskRepository implements the task.Repository interface for PostgreSQL
type TaskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, quadrant, estimated_cost, priority, due_date, completed, tags, linked_transaction_id, created_at`

func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	query := `
		INSERT INTO tasks (id, owner_email, title, description, quadrant, estimated_cost, priority, due_date, completed, tags, linked_transaction_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.OwnerEmail, t.Title, nullString(t.Description), nullString(t.Quadrant),
		nullFloat(t.EstimatedCost), t.Priority, nullTime(t.DueDate), t.Completed,
		pq.Array(t.Tags), nullString(t.LinkedTransactionID), t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner string) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_email = $1 ORDER BY priority DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.OwnerEmail = owner
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, owner, id string) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_email = $1 AND id = $2`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, task.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	t.OwnerEmail = owner
	return t, nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, quadrant = $5, estimated_cost = $6,
		    priority = $7, due_date = $8, completed = $9, tags = $10, linked_transaction_id = $11
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(ctx, query,
		t.OwnerEmail, t.ID, t.Title, nullString(t.Description), nullString(t.Quadrant),
		nullFloat(t.EstimatedCost), t.Priority, nullTime(t.DueDate), t.Completed,
		pq.Array(t.Tags), nullString(t.LinkedTransactionID),
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result, task.ErrTaskNotFound)
}

func (r *TaskRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result, task.ErrTaskNotFound)
}

func scanTask(scan func(dest ...any) error) (*task.Task, error) {
	var t task.Task
	var description, quadrant, linkedTx sql.NullString
	var estimatedCost sql.NullFloat64
	var dueDate sql.NullTime

	err := scan(&t.ID, &t.Title, &description, &quadrant, &estimatedCost,
		&t.Priority, &dueDate, &t.Completed, pq.Array(&t.Tags), &linkedTx, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	t.Description = stringPtr(description)
	t.Quadrant = stringPtr(quadrant)
	t.EstimatedCost = floatPtr(estimatedCost)
	t.DueDate = timePtr(dueDate)
	t.LinkedTransactionID = stringPtr(linkedTx)
	if t.Tags == nil {
		t.Tags = []string{}
	}
	return &t, nil
}
