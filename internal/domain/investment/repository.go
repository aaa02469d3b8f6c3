package investment

import "context"

// Repository persists investments scoped by owner.
type Repository interface {
	Create(ctx context.Context, i *Investment) error
	ListByOwner(ctx context.Context, owner string) ([]Investment, error)
	GetByID(ctx context.Context, owner, id string) (*Investment, error)
	Update(ctx context.Context, i *Investment) error
	Delete(ctx context.Context, owner, id string) error

	// Mutate loads the investment under a row lock, applies fn, and
	// writes the result in the same storage transaction. An error from
	// fn aborts the write and is returned unchanged.
	Mutate(ctx context.Context, owner, id string, fn func(*Investment) error) (*Investment, error)
}
