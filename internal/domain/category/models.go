package category

import (
	"context"
	"errors"
	"time"
)

var ErrCategoryNotFound = errors.New("category not found")

// Category labels transactions. ParentID marks subcategories; the
// reference is never validated against an existing category.
type Category struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Icon       string    `json:"icon"`
	Color      string    `json:"color"`
	Budget     *float64  `json:"budget,omitempty"`
	ParentID   *string   `json:"parent_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	OwnerEmail string    `json:"-"`
}

type CreateParams struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	Budget   *float64 `json:"budget"`
	ParentID *string  `json:"parent_id"`
}

func (p *CreateParams) Defaults() {
	if p.Type == "" {
		p.Type = "expense"
	}
	if p.Icon == "" {
		p.Icon = "tag"
	}
	if p.Color == "" {
		p.Color = "#6366f1"
	}
}

type UpdateParams struct {
	Name     *string  `json:"name"`
	Type     *string  `json:"type"`
	Icon     *string  `json:"icon"`
	Color    *string  `json:"color"`
	Budget   *float64 `json:"budget"`
	ParentID *string  `json:"parent_id"`
}

func (p UpdateParams) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Budget != nil {
		c.Budget = p.Budget
	}
	if p.ParentID != nil {
		c.ParentID = p.ParentID
	}
}

// Repository persists categories scoped by owner.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	ListByOwner(ctx context.Context, owner string) ([]Category, error)
	GetByID(ctx context.Context, owner, id string) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, owner, id string) error
}
