package payee

import (
	"context"
	"errors"
	"time"
)

var ErrPayeeNotFound = errors.New("payee not found")

// Payee is a merchant, company or person money moves to or from.
type Payee struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	DefaultCategoryID *string   `json:"default_category_id,omitempty"`
	Notes             *string   `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	OwnerEmail        string    `json:"-"`
}

type CreateParams struct {
	Name              string  `json:"name"`
	Type              string  `json:"type"`
	DefaultCategoryID *string `json:"default_category_id"`
	Notes             *string `json:"notes"`
}

func (p *CreateParams) Defaults() {
	if p.Type == "" {
		p.Type = "merchant"
	}
}

type UpdateParams struct {
	Name              *string `json:"name"`
	Type              *string `json:"type"`
	DefaultCategoryID *string `json:"default_category_id"`
	Notes             *string `json:"notes"`
}

func (p UpdateParams) Apply(e *Payee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.DefaultCategoryID != nil {
		e.DefaultCategoryID = p.DefaultCategoryID
	}
	if p.Notes != nil {
		e.Notes = p.Notes
	}
}

// Repository persists payees scoped by owner.
type Repository interface {
	Create(ctx context.Context, p *Payee) error
	ListByOwner(ctx context.Context, owner string) ([]Payee, error)
	GetByID(ctx context.Context, owner, id string) (*Payee, error)
	Update(ctx context.Context, p *Payee) error
	Delete(ctx context.Context, owner, id string) error
}
