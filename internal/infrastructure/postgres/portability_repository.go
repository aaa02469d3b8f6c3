package postgres

import (
	"context"
	"fmt"

	"centime/internal/domain/portability"
	"centime/internal/domain/transaction"
)

// PortabilityRepository implements the portability.Repository interface
// for PostgreSQL by composing the per-entity repositories.
type PortabilityRepository struct {
	db              *DB
	accounts        *AccountRepository
	transactions    *TransactionRepository
	investments     *InvestmentRepository
	goals           *GoalRepository
	debts           *DebtRepository
	receivables     *ReceivableRepository
	products        *ProductRepository
	shoppingLists   *ShoppingListRepository
	bankConnections *BankConnectionRepository
}

func NewPortabilityRepository(db *DB) *PortabilityRepository {
	return &PortabilityRepository{
		db:              db,
		accounts:        NewAccountRepository(db),
		transactions:    NewTransactionRepository(db),
		investments:     NewInvestmentRepository(db),
		goals:           NewGoalRepository(db),
		debts:           NewDebtRepository(db),
		receivables:     NewReceivableRepository(db),
		products:        NewProductRepository(db),
		shoppingLists:   NewShoppingListRepository(db),
		bankConnections: NewBankConnectionRepository(db),
	}
}

func (r *PortabilityRepository) ExportAll(ctx context.Context, owner string) (*portability.Archive, error) {
	archive := &portability.Archive{}
	var err error

	if archive.Accounts, err = r.accounts.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.Transactions, err = r.transactions.List(ctx, owner, transaction.Filter{}); err != nil {
		return nil, err
	}
	if archive.Investments, err = r.investments.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.Goals, err = r.goals.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.Debts, err = r.debts.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.Receivables, err = r.receivables.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.Products, err = r.products.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.ShoppingLists, err = r.shoppingLists.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	if archive.BankConnections, err = r.bankConnections.ListByOwner(ctx, owner); err != nil {
		return nil, err
	}
	return archive, nil
}

// ImportAll replaces the owner's data collection by collection. Only
// collections present in the archive are touched.
func (r *PortabilityRepository) ImportAll(ctx context.Context, owner string, archive *portability.Archive) (map[string]int, error) {
	counts := map[string]int{}

	if len(archive.Accounts) > 0 {
		if err := r.wipeTable(ctx, "accounts", owner); err != nil {
			return nil, err
		}
		for i := range archive.Accounts {
			archive.Accounts[i].OwnerEmail = owner
			if err := r.accounts.Create(ctx, &archive.Accounts[i]); err != nil {
				return nil, err
			}
		}
		counts["accounts"] = len(archive.Accounts)
	}

	if len(archive.Transactions) > 0 {
		if err := r.wipeTable(ctx, "transactions", owner); err != nil {
			return nil, err
		}
		for i := range archive.Transactions {
			archive.Transactions[i].OwnerEmail = owner
			if err := insertTransactionTx(ctx, r.db, &archive.Transactions[i]); err != nil {
				return nil, fmt.Errorf("failed to import transaction: %w", err)
			}
		}
		counts["transactions"] = len(archive.Transactions)
	}

	if len(archive.Investments) > 0 {
		if err := r.wipeTable(ctx, "investments", owner); err != nil {
			return nil, err
		}
		for i := range archive.Investments {
			archive.Investments[i].OwnerEmail = owner
			if err := r.investments.Create(ctx, &archive.Investments[i]); err != nil {
				return nil, err
			}
		}
		counts["investments"] = len(archive.Investments)
	}

	if len(archive.Goals) > 0 {
		if err := r.wipeTable(ctx, "goals", owner); err != nil {
			return nil, err
		}
		for i := range archive.Goals {
			archive.Goals[i].OwnerEmail = owner
			if err := r.goals.Create(ctx, &archive.Goals[i]); err != nil {
				return nil, err
			}
		}
		counts["goals"] = len(archive.Goals)
	}

	if len(archive.Debts) > 0 {
		if err := r.wipeTable(ctx, "debts", owner); err != nil {
			return nil, err
		}
		for i := range archive.Debts {
			archive.Debts[i].OwnerEmail = owner
			if err := r.debts.Create(ctx, &archive.Debts[i]); err != nil {
				return nil, err
			}
		}
		counts["debts"] = len(archive.Debts)
	}

	if len(archive.Receivables) > 0 {
		if err := r.wipeTable(ctx, "receivables", owner); err != nil {
			return nil, err
		}
		for i := range archive.Receivables {
			archive.Receivables[i].OwnerEmail = owner
			if err := r.receivables.Create(ctx, &archive.Receivables[i]); err != nil {
				return nil, err
			}
		}
		counts["receivables"] = len(archive.Receivables)
	}

	if len(archive.Products) > 0 {
		if err := r.wipeTable(ctx, "products", owner); err != nil {
			return nil, err
		}
		for i := range archive.Products {
			archive.Products[i].OwnerEmail = owner
			if err := r.products.Create(ctx, &archive.Products[i]); err != nil {
				return nil, err
			}
		}
		counts["products"] = len(archive.Products)
	}

	if len(archive.ShoppingLists) > 0 {
		if err := r.wipeTable(ctx, "shopping_lists", owner); err != nil {
			return nil, err
		}
		for i := range archive.ShoppingLists {
			archive.ShoppingLists[i].OwnerEmail = owner
			if err := r.shoppingLists.Create(ctx, &archive.ShoppingLists[i]); err != nil {
				return nil, err
			}
		}
		counts["shopping_lists"] = len(archive.ShoppingLists)
	}

	if len(archive.BankConnections) > 0 {
		if err := r.wipeTable(ctx, "bank_connections", owner); err != nil {
			return nil, err
		}
		for i := range archive.BankConnections {
			archive.BankConnections[i].OwnerEmail = owner
			if err := r.bankConnections.Create(ctx, &archive.BankConnections[i]); err != nil {
				return nil, err
			}
		}
		counts["bank_connections"] = len(archive.BankConnections)
	}

	return counts, nil
}

// WipeAll deletes everything the owner has, the account record and its
// sessions included, in one transaction.
func (r *PortabilityRepository) WipeAll(ctx context.Context, owner string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin wipe: %w", err)
	}
	defer tx.Rollback()

	tables := []string{
		"transactions", "accounts", "investments", "goals", "debts", "receivables",
		"products", "shopping_lists", "bank_connections", "tasks", "categories",
		"payees", "preferences",
	}
	for _, table := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE owner_email = $1`, owner); err != nil {
			return fmt.Errorf("failed to wipe %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE email = $1`, owner); err != nil {
		return fmt.Errorf("failed to wipe sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE email = $1`, owner); err != nil {
		return fmt.Errorf("failed to wipe user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wipe: %w", err)
	}
	return nil
}

func (r *PortabilityRepository) wipeTable(ctx context.Context, table, owner string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE owner_email = $1`, owner); err != nil {
		return fmt.Errorf("failed to clear %s before import: %w", table, err)
	}
	return nil
}
