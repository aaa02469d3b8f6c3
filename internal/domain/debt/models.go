package debt

import (
	"errors"
	"time"

	"centime/internal/domain/ledger"
)

var (
	ErrDebtNotFound    = errors.New("debt not found")
	ErrPaymentNotFound = errors.New("payment not found")
)

// Debt is money owed by the user. RemainingAmount is derived from the
// payment log and the total; clients cannot set it directly.
type Debt struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	TotalAmount     float64          `json:"total_amount"`
	RemainingAmount float64          `json:"remaining_amount"`
	InterestRate    float64          `json:"interest_rate"`
	Creditor        string           `json:"creditor"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	Payments        []ledger.Payment `json:"payments"`
	AccountID       *string          `json:"account_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	OwnerEmail      string           `json:"-"`
}

// CreateParams carries the client-supplied fields for a new debt.
type CreateParams struct {
	Name         string     `json:"name"`
	TotalAmount  float64    `json:"total_amount"`
	InterestRate float64    `json:"interest_rate"`
	Creditor     string     `json:"creditor"`
	DueDate      *time.Time `json:"due_date"`
	AccountID    *string    `json:"account_id"`
}

// UpdateParams is a partial update. Changing the total re-derives the
// remaining amount against the existing payment log.
type UpdateParams struct {
	Name         *string    `json:"name"`
	TotalAmount  *float64   `json:"total_amount"`
	InterestRate *float64   `json:"interest_rate"`
	Creditor     *string    `json:"creditor"`
	DueDate      *time.Time `json:"due_date"`
	AccountID    *string    `json:"account_id"`
}

func (p UpdateParams) Apply(d *Debt) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.TotalAmount != nil {
		d.TotalAmount = *p.TotalAmount
	}
	if p.InterestRate != nil {
		d.InterestRate = *p.InterestRate
	}
	if p.Creditor != nil {
		d.Creditor = *p.Creditor
	}
	if p.DueDate != nil {
		d.DueDate = p.DueDate
	}
	if p.AccountID != nil {
		d.AccountID = p.AccountID
	}
}

// PaymentParams carries a client-submitted payment.
type PaymentParams struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Notes  *string   `json:"notes"`
}
