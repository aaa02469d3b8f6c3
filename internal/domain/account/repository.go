package account

import (
	"context"

	"centime/internal/domain/transaction"
)

// Repository persists accounts scoped by owner.
type Repository interface {
	Create(ctx context.Context, a *Account) error
	ListByOwner(ctx context.Context, owner string) ([]Account, error)
	GetByID(ctx context.Context, owner, id string) (*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, owner, id string) error

	// ApplyTransfer writes both updated balances and both transfer
	// legs atomically. A concurrent transfer against either account
	// must not be able to overwrite the balance updates.
	ApplyTransfer(ctx context.Context, from, to *Account, legs [2]transaction.Transaction) error
}
