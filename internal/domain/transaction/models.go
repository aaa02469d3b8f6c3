package transaction

import (
	"errors"
	"time"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction types.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Split divides a transaction amount across categories.
type Split struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
}

// Transaction is one ledger entry. Transfer entries come in pairs that
// reference each other through ToAccountID.
type Transaction struct {
	ID                  string    `json:"id"`
	AccountID           string    `json:"account_id"`
	ToAccountID         *string   `json:"to_account_id,omitempty"`
	Type                string    `json:"type"`
	Amount              float64   `json:"amount"`
	Currency            string    `json:"currency"`
	Category            string    `json:"category"`
	Subcategory         *string   `json:"subcategory,omitempty"`
	Description         string    `json:"description"`
	Date                time.Time `json:"date"`
	Payee               *string   `json:"payee,omitempty"`
	Tags                []string  `json:"tags"`
	Notes               *string   `json:"notes,omitempty"`
	Splits              []Split   `json:"splits,omitempty"`
	IsRecurring         bool      `json:"is_recurring"`
	RecurringFrequency  *string   `json:"recurring_frequency,omitempty"`
	RecurringNextDate      *string   `json:"recurring_next_date,omitempty"`
	LinkedDebtID        *string   `json:"linked_debt_id,omitempty"`
	LinkedReceivableID  *string   `json:"linked_receivable_id,omitempty"`
	LinkedInvestmentID  *string   `json:"linked_investment_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	OwnerEmail          string    `json:"-"`
}

// Recurring frequencies accepted on recurring transactions.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"
)

// Filter narrows a transaction listing. Limit is capped by the repository.
type Filter struct {
	AccountID string
	Type      string
	Limit     int
}

// MaxListLimit bounds a single listing query.
const MaxListLimit = 50000
