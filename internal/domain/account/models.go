package account

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSameAccount     = errors.New("source and destination accounts are the same")
)

// Account is a money container. CurrentBalance moves with transactions
// and transfers; InitialBalance is the opening value and never changes.
type Account struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Currency            string    `json:"currency"`
	InitialBalance      float64   `json:"initial_balance"`
	CurrentBalance      float64   `json:"current_balance"`
	Icon                string    `json:"icon"`
	Color               string    `json:"color"`
	IsExcludedFromTotal bool      `json:"is_excluded_from_total"`
	BankConnected       bool      `json:"bank_connected"`
	BankConnectionID    *string   `json:"bank_connection_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	OwnerEmail          string    `json:"-"`
}

// CreateParams carries the client-supplied fields for a new account.
type CreateParams struct {
	Name                string  `json:"name"`
	Type                string  `json:"type"`
	Currency            string  `json:"currency"`
	InitialBalance      float64 `json:"initial_balance"`
	Icon                string  `json:"icon"`
	Color               string  `json:"color"`
	IsExcludedFromTotal bool    `json:"is_excluded_from_total"`
}

// Defaults fills the optional cosmetic fields the way the web client expects.
func (p *CreateParams) Defaults() {
	if p.Type == "" {
		p.Type = "checking"
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
	if p.Icon == "" {
		p.Icon = "wallet"
	}
	if p.Color == "" {
		p.Color = "#4f46e5"
	}
}

// UpdateParams carries a partial update. Nil fields are left untouched.
type UpdateParams struct {
	Name                *string  `json:"name"`
	Type                *string  `json:"type"`
	Currency            *string  `json:"currency"`
	InitialBalance      *float64 `json:"initial_balance"`
	CurrentBalance      *float64 `json:"current_balance"`
	Icon                *string  `json:"icon"`
	Color               *string  `json:"color"`
	IsExcludedFromTotal *bool    `json:"is_excluded_from_total"`
	BankConnected       *bool    `json:"bank_connected"`
	BankConnectionID    *string  `json:"bank_connection_id"`
}

// Apply copies the non-nil fields onto the account.
func (p UpdateParams) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Currency != nil {
		a.Currency = *p.Currency
	}
	if p.InitialBalance != nil {
		a.InitialBalance = *p.InitialBalance
	}
	if p.CurrentBalance != nil {
		a.CurrentBalance = *p.CurrentBalance
	}
	if p.Icon != nil {
		a.Icon = *p.Icon
	}
	if p.Color != nil {
		a.Color = *p.Color
	}
	if p.IsExcludedFromTotal != nil {
		a.IsExcludedFromTotal = *p.IsExcludedFromTotal
	}
	if p.BankConnected != nil {
		a.BankConnected = *p.BankConnected
	}
	if p.BankConnectionID != nil {
		a.BankConnectionID = p.BankConnectionID
	}
}

// TransferParams describes a money movement between two owned accounts.
type TransferParams struct {
	FromAccountID string  `json:"from_account_id"`
	ToAccountID   string  `json:"to_account_id"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
}

// TransferResult echoes both sides of a completed transfer.
type TransferResult struct {
	Message         string  `json:"message"`
	FromAccount     string  `json:"from_account"`
	ToAccount       string  `json:"to_account"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
}
