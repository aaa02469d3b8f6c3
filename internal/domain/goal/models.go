package goal

import (
	"context"
	"errors"
	"time"
)

var ErrGoalNotFound = errors.New("goal not found")

// Goal is a savings target. CurrentAmount is user-maintained, not
// derived from transactions.
type Goal struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Category      string     `json:"category"`
	Color         string     `json:"color"`
	CreatedAt     time.Time  `json:"created_at"`
	OwnerEmail    string     `json:"-"`
}

type CreateParams struct {
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline"`
	Category      string     `json:"category"`
	Color         string     `json:"color"`
}

func (p *CreateParams) Defaults() {
	if p.Category == "" {
		p.Category = "savings"
	}
	if p.Color == "" {
		p.Color = "#10b981"
	}
}

type UpdateParams struct {
	Name          *string    `json:"name"`
	TargetAmount  *float64   `json:"target_amount"`
	CurrentAmount *float64   `json:"current_amount"`
	Deadline      *time.Time `json:"deadline"`
	Category      *string    `json:"category"`
	Color         *string    `json:"color"`
}

func (p UpdateParams) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.CurrentAmount != nil {
		g.CurrentAmount = *p.CurrentAmount
	}
	if p.Deadline != nil {
		g.Deadline = p.Deadline
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
}

// Repository persists goals scoped by owner.
type Repository interface {
	Create(ctx context.Context, g *Goal) error
	ListByOwner(ctx context.Context, owner string) ([]Goal, error)
	GetByID(ctx context.Context, owner, id string) (*Goal, error)
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, owner, id string) error
}
