package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"centime/internal/domain/account"
	"centime/internal/domain/debt"
	"centime/internal/domain/goal"
	"centime/internal/domain/investment"
	"centime/internal/domain/ledger"
	"centime/internal/domain/transaction"
)

// Narrow read-side views over the entity repositories. Each repository
// satisfies its source interface directly.
type AccountSource interface {
	ListByOwner(ctx context.Context, owner string) ([]account.Account, error)
}

type TransactionSource interface {
	List(ctx context.Context, owner string, filter transaction.Filter) ([]transaction.Transaction, error)
}

type InvestmentSource interface {
	ListByOwner(ctx context.Context, owner string) ([]investment.Investment, error)
}

type GoalSource interface {
	ListByOwner(ctx context.Context, owner string) ([]goal.Goal, error)
}

type DebtSource interface {
	ListByOwner(ctx context.Context, owner string) ([]debt.Debt, error)
}

// Service computes the dashboard summary by re-scanning the user's
// data on every call. Volumes are personal-finance scale, so a full
// scan stays cheap.
type Service struct {
	accounts     AccountSource
	transactions TransactionSource
	investments  InvestmentSource
	goals        GoalSource
	debts        DebtSource
	now          func() time.Time
}

func NewService(accounts AccountSource, transactions TransactionSource, investments InvestmentSource, goals GoalSource, debts DebtSource) *Service {
	return &Service{
		accounts:     accounts,
		transactions: transactions,
		investments:  investments,
		goals:        goals,
		debts:        debts,
		now:          time.Now,
	}
}

const trendWindows = 6

// Summary aggregates net worth, trailing-30-day flows, top expense
// categories and a six-window trend, oldest window first.
func (s *Service) Summary(ctx context.Context, owner string) (*Summary, error) {
	accounts, err := s.accounts.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	transactions, err := s.transactions.List(ctx, owner, transaction.Filter{})
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	investments, err := s.investments.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading investments: %w", err)
	}
	goals, err := s.goals.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}
	debts, err := s.debts.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading debts: %w", err)
	}

	var totalBalance float64
	for _, a := range accounts {
		if !a.IsExcludedFromTotal {
			totalBalance += a.CurrentBalance
		}
	}

	var totalInvestments, totalInvested float64
	for _, inv := range investments {
		totalInvestments += inv.CurrentValue()
		for _, op := range inv.Operations {
			switch op.Type {
			case ledger.OpBuy:
				totalInvested += op.Total
			case ledger.OpSell:
				totalInvested -= op.Total
			}
		}
	}

	var investmentGains, investmentGainsPercent float64
	if totalInvested > 0 {
		investmentGains = totalInvestments - totalInvested
		investmentGainsPercent = investmentGains / totalInvested * 100
	}

	var totalDebts float64
	for _, d := range debts {
		totalDebts += d.RemainingAmount
	}

	now := s.now().UTC()
	monthAgo := now.AddDate(0, 0, -30)

	var monthlyIncome, monthlyExpenses float64
	categoryExpenses := make(map[string]float64)
	var categoryOrder []string
	for _, tx := range transactions {
		if tx.Type == transaction.TypeExpense {
			cat := tx.Category
			if cat == "" {
				cat = "Autre"
			}
			if _, seen := categoryExpenses[cat]; !seen {
				categoryOrder = append(categoryOrder, cat)
			}
			categoryExpenses[cat] += tx.Amount
		}
		if !tx.Date.After(monthAgo) {
			continue
		}
		switch tx.Type {
		case transaction.TypeIncome:
			monthlyIncome += tx.Amount
		case transaction.TypeExpense:
			monthlyExpenses += tx.Amount
		}
	}

	var savingsRate float64
	if monthlyIncome > 0 {
		savingsRate = (monthlyIncome - monthlyExpenses) / monthlyIncome
	}

	// Stable sort so equal amounts keep first-seen order.
	sort.SliceStable(categoryOrder, func(i, j int) bool {
		return categoryExpenses[categoryOrder[i]] > categoryExpenses[categoryOrder[j]]
	})
	if len(categoryOrder) > 5 {
		categoryOrder = categoryOrder[:5]
	}
	topCategories := make([]CategoryTotal, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		topCategories = append(topCategories, CategoryTotal{Name: cat, Amount: categoryExpenses[cat]})
	}

	trends := make([]TrendPoint, trendWindows)
	for i := 0; i < trendWindows; i++ {
		start := now.AddDate(0, 0, -30*(i+1))
		end := now.AddDate(0, 0, -30*i)

		point := TrendPoint{Month: end.Format("Jan 2006")}
		for _, tx := range transactions {
			if !tx.Date.After(start) || tx.Date.After(end) {
				continue
			}
			switch tx.Type {
			case transaction.TypeIncome:
				point.Income += tx.Amount
			case transaction.TypeExpense:
				point.Expenses += tx.Amount
			}
		}
		point.Savings = point.Income - point.Expenses
		trends[trendWindows-1-i] = point
	}

	return &Summary{
		NetWorth:               totalBalance + totalInvestments - totalDebts,
		TotalBalance:           totalBalance,
		TotalInvestments:       totalInvestments,
		TotalInvested:          totalInvested,
		InvestmentGains:        investmentGains,
		InvestmentGainsPercent: investmentGainsPercent,
		TotalDebts:             totalDebts,
		MonthlyIncome:          monthlyIncome,
		MonthlyExpenses:        monthlyExpenses,
		SavingsRate:            savingsRate,
		AccountsCount:          len(accounts),
		GoalsCount:             len(goals),
		ActiveInvestments:      len(investments),
		TopCategories:          topCategories,
		Trends:                 trends,
	}, nil
}
