package receivable

import (
	"errors"
	"time"

	"centime/internal/domain/ledger"
)

var (
	ErrReceivableNotFound = errors.New("receivable not found")
	ErrPaymentNotFound    = errors.New("payment not found")
)

// Receivable is money owed to the user. RemainingAmount is derived from
// the payment log and the total; clients cannot set it directly.
type Receivable struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	TotalAmount     float64          `json:"total_amount"`
	RemainingAmount float64          `json:"remaining_amount"`
	Debtor          string           `json:"debtor"`
	DueDate         *time.Time       `json:"due_date,omitempty"`
	Payments        []ledger.Payment `json:"payments"`
	AccountID       *string          `json:"account_id,omitempty"`
	IsPaid          bool             `json:"is_paid"`
	CreatedAt       time.Time        `json:"created_at"`
	OwnerEmail      string           `json:"-"`
}

type CreateParams struct {
	Name        string     `json:"name"`
	TotalAmount float64    `json:"total_amount"`
	Debtor      string     `json:"debtor"`
	DueDate     *time.Time `json:"due_date"`
	AccountID   *string    `json:"account_id"`
}

type UpdateParams struct {
	Name        *string    `json:"name"`
	TotalAmount *float64   `json:"total_amount"`
	Debtor      *string    `json:"debtor"`
	DueDate     *time.Time `json:"due_date"`
	AccountID   *string    `json:"account_id"`
	IsPaid      *bool      `json:"is_paid"`
}

func (p UpdateParams) Apply(r *Receivable) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.TotalAmount != nil {
		r.TotalAmount = *p.TotalAmount
	}
	if p.Debtor != nil {
		r.Debtor = *p.Debtor
	}
	if p.DueDate != nil {
		r.DueDate = p.DueDate
	}
	if p.AccountID != nil {
		r.AccountID = p.AccountID
	}
	if p.IsPaid != nil {
		r.IsPaid = *p.IsPaid
	}
}

type PaymentParams struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
	Notes  *string   `json:"notes"`
}
