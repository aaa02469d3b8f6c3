// Package search implements the cross-entity quick search box.
package search

import (
	"context"
	"strings"

	"centime/internal/domain/account"
	"centime/internal/domain/category"
	"centime/internal/domain/goal"
	"centime/internal/domain/investment"
	"centime/internal/domain/product"
	"centime/internal/domain/transaction"
)

// Results groups matches per entity family, capped per family.
type Results struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Investments  []investment.Investment   `json:"investments"`
	Accounts     []account.Account         `json:"accounts"`
	Goals        []goal.Goal               `json:"goals"`
	Products     []product.Product         `json:"products"`
	Categories   []category.Category       `json:"categories"`
}

const maxPerFamily = 10

type Sources struct {
	Transactions interface {
		List(ctx context.Context, owner string, filter transaction.Filter) ([]transaction.Transaction, error)
	}
	Investments interface {
		ListByOwner(ctx context.Context, owner string) ([]investment.Investment, error)
	}
	Accounts interface {
		ListByOwner(ctx context.Context, owner string) ([]account.Account, error)
	}
	Goals interface {
		ListByOwner(ctx context.Context, owner string) ([]goal.Goal, error)
	}
	Products interface {
		ListByOwner(ctx context.Context, owner string) ([]product.Product, error)
	}
	Categories interface {
		ListByOwner(ctx context.Context, owner string) ([]category.Category, error)
	}
}

// Service scans each family in memory with a case-insensitive
// substring match. Fine at personal-finance volumes.
type Service struct {
	sources Sources
}

func NewService(sources Sources) *Service {
	return &Service{sources: sources}
}

func (s *Service) Search(ctx context.Context, owner, query string) (*Results, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := &Results{
		Transactions: []transaction.Transaction{},
		Investments:  []investment.Investment{},
		Accounts:     []account.Account{},
		Goals:        []goal.Goal{},
		Products:     []product.Product{},
		Categories:   []category.Category{},
	}
	if q == "" {
		return out, nil
	}

	if txs, err := s.sources.Transactions.List(ctx, owner, transaction.Filter{}); err == nil {
		for _, tx := range txs {
			if matches(q, tx.Description, tx.Category) {
				out.Transactions = append(out.Transactions, tx)
				if len(out.Transactions) == maxPerFamily {
					break
				}
			}
		}
	}

	if invs, err := s.sources.Investments.ListByOwner(ctx, owner); err == nil {
		for _, inv := range invs {
			if matches(q, inv.Name, inv.Symbol) {
				out.Investments = append(out.Investments, inv)
				if len(out.Investments) == maxPerFamily {
					break
				}
			}
		}
	}

	if accs, err := s.sources.Accounts.ListByOwner(ctx, owner); err == nil {
		for _, acc := range accs {
			if matches(q, acc.Name) {
				out.Accounts = append(out.Accounts, acc)
				if len(out.Accounts) == maxPerFamily {
					break
				}
			}
		}
	}

	if goals, err := s.sources.Goals.ListByOwner(ctx, owner); err == nil {
		for _, g := range goals {
			if matches(q, g.Name) {
				out.Goals = append(out.Goals, g)
				if len(out.Goals) == maxPerFamily {
					break
				}
			}
		}
	}

	if products, err := s.sources.Products.ListByOwner(ctx, owner); err == nil {
		for _, p := range products {
			if matches(q, p.Name, p.Category) {
				out.Products = append(out.Products, p)
				if len(out.Products) == maxPerFamily {
					break
				}
			}
		}
	}

	if cats, err := s.sources.Categories.ListByOwner(ctx, owner); err == nil {
		for _, c := range cats {
			if matches(q, c.Name) {
				out.Categories = append(out.Categories, c)
				if len(out.Categories) == maxPerFamily {
					break
				}
			}
		}
	}

	return out, nil
}

func matches(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
