package task

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidQuadrant = errors.New("invalid quadrant")
)

// Eisenhower matrix quadrants. A nil quadrant means uncategorized.
const (
	QuadrantUrgentImportant       = "urgent_important"
	QuadrantNotUrgentImportant    = "not_urgent_important"
	QuadrantUrgentNotImportant    = "urgent_not_important"
	QuadrantNotUrgentNotImportant = "not_urgent_not_important"
)

// ValidQuadrant reports whether q names a matrix quadrant.
func ValidQuadrant(q string) bool {
	switch q {
	case QuadrantUrgentImportant, QuadrantNotUrgentImportant,
		QuadrantUrgentNotImportant, QuadrantNotUrgentNotImportant:
		return true
	}
	return false
}

// Task is a to-do with an optional cost estimate, so planned expenses
// can sit next to planned work.
type Task struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Description         *string    `json:"description,omitempty"`
	Quadrant            *string    `json:"quadrant,omitempty"`
	EstimatedCost       *float64   `json:"estimated_cost,omitempty"`
	Priority            int        `json:"priority"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	Completed           bool       `json:"completed"`
	Tags                []string   `json:"tags"`
	LinkedTransactionID *string    `json:"linked_transaction_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	OwnerEmail          string     `json:"-"`
}

type CreateParams struct {
	Title         string     `json:"title"`
	Description   *string    `json:"description"`
	Quadrant      *string    `json:"quadrant"`
	EstimatedCost *float64   `json:"estimated_cost"`
	Priority      int        `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	Tags          []string   `json:"tags"`
}

type UpdateParams struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	Quadrant      *string    `json:"quadrant"`
	EstimatedCost *float64   `json:"estimated_cost"`
	Priority      *int       `json:"priority"`
	DueDate       *time.Time `json:"due_date"`
	Completed     *bool      `json:"completed"`
	Tags          []string   `json:"tags"`
}

func (p UpdateParams) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.Quadrant != nil {
		t.Quadrant = p.Quadrant
	}
	if p.EstimatedCost != nil {
		t.EstimatedCost = p.EstimatedCost
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Tags != nil {
		t.Tags = p.Tags
	}
}

// Repository persists tasks scoped by owner.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	ListByOwner(ctx context.Context, owner string) ([]Task, error)
	GetByID(ctx context.Context, owner, id string) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, owner, id string) error
}
