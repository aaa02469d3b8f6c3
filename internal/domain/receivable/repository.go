package receivable

import (
	"context"

	"centime/internal/domain/transaction"
)

// Repository persists receivables scoped by owner.
type Repository interface {
	Create(ctx context.Context, r *Receivable) error
	ListByOwner(ctx context.Context, owner string) ([]Receivable, error)
	GetByID(ctx context.Context, owner, id string) (*Receivable, error)
	Delete(ctx context.Context, owner, id string) error

	// Mutate loads the receivable under a row lock, applies fn, and
	// writes the result in the same storage transaction, along with
	// the linked transaction when fn returns one.
	Mutate(ctx context.Context, owner, id string, fn func(*Receivable) (*transaction.Transaction, error)) (*Receivable, error)
}
