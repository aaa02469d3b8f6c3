package debt

import (
	"context"

	"centime/internal/domain/transaction"
)

// Repository persists debts scoped by owner.
type Repository interface {
	Create(ctx context.Context, d *Debt) error
	ListByOwner(ctx context.Context, owner string) ([]Debt, error)
	GetByID(ctx context.Context, owner, id string) (*Debt, error)
	Delete(ctx context.Context, owner, id string) error

	// Mutate loads the debt under a row lock, applies fn, and writes
	// the result in the same storage transaction. When fn returns a
	// non-nil linked transaction it is inserted atomically with the
	// debt update.
	Mutate(ctx context.Context, owner, id string, fn func(*Debt) (*transaction.Transaction, error)) (*Debt, error)
}
