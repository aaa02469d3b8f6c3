package transaction

import (
	"context"
	"time"
)

// Repository persists transactions scoped by owner.
type Repository interface {
	// Create inserts the transaction. When a record with the same id
	// already exists for the owner, the existing record is returned
	// unchanged so retried client submissions stay idempotent.
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)

	List(ctx context.Context, owner string, filter Filter) ([]Transaction, error)
	GetByID(ctx context.Context, owner, id string) (*Transaction, error)
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, owner, id string) error

	// CreateIfAbsent inserts the transaction unless one with the same
	// owner, account, date, amount and description already exists.
	// Reports whether a row was inserted. Used by CSV import dedupe.
	CreateIfAbsent(ctx context.Context, tx *Transaction) (bool, error)

	// DueRecurring returns recurring transactions across all owners
	// whose next occurrence is on or before the given instant.
	DueRecurring(ctx context.Context, now time.Time) ([]Transaction, error)

	// AdvanceRecurring moves a recurring template's next occurrence.
	AdvanceRecurring(ctx context.Context, owner, id string, next string) error
}
