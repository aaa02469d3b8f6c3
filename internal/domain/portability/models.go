// Package portability covers bulk JSON export, import and data wipe.
package portability

import (
	"context"

	"centime/internal/domain/account"
	"centime/internal/domain/bankconnection"
	"centime/internal/domain/debt"
	"centime/internal/domain/goal"
	"centime/internal/domain/investment"
	"centime/internal/domain/product"
	"centime/internal/domain/receivable"
	"centime/internal/domain/shoppinglist"
	"centime/internal/domain/transaction"
)

// Archive is the full portable snapshot of a user's data.
type Archive struct {
	Accounts        []account.Account           `json:"accounts"`
	Transactions    []transaction.Transaction   `json:"transactions"`
	Investments     []investment.Investment     `json:"investments"`
	Goals           []goal.Goal                 `json:"goals"`
	Debts           []debt.Debt                 `json:"debts"`
	Receivables     []receivable.Receivable     `json:"receivables"`
	Products        []product.Product           `json:"products"`
	ShoppingLists   []shoppinglist.List         `json:"shopping_lists"`
	BankConnections []bankconnection.Connection `json:"bank_connections"`
}

// Repository moves whole archives in and out of storage.
type Repository interface {
	// ExportAll snapshots every collection for the owner.
	ExportAll(ctx context.Context, owner string) (*Archive, error)

	// ImportAll replaces the owner's data collection by collection:
	// each collection present in the archive is wiped then reloaded.
	// Returns the number of records imported per collection.
	ImportAll(ctx context.Context, owner string, archive *Archive) (map[string]int, error)

	// WipeAll deletes every record the owner has, across all
	// collections including tasks, categories, payees, preferences
	// and the user record itself.
	WipeAll(ctx context.Context, owner string) error
}
