package debt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/ledger"
	"centime/internal/domain/transaction"
)

// Service owns debt lifecycle and the payment log. The remaining amount
// is always re-derived from the full log, never patched incrementally.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, owner string, params CreateParams) (*Debt, error) {
	d := &Debt{
		ID:              uuid.NewString(),
		Name:            params.Name,
		TotalAmount:     params.TotalAmount,
		RemainingAmount: params.TotalAmount,
		InterestRate:    params.InterestRate,
		Creditor:        params.Creditor,
		DueDate:         params.DueDate,
		Payments:        []ledger.Payment{},
		AccountID:       params.AccountID,
		CreatedAt:       s.now().UTC(),
		OwnerEmail:      owner,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("creating debt: %w", err)
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]Debt, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*Debt, error) {
	return s.repo.GetByID(ctx, owner, id)
}

func (s *Service) Update(ctx context.Context, owner, id string, params UpdateParams) (*Debt, error) {
	return s.repo.Mutate(ctx, owner, id, func(d *Debt) (*transaction.Transaction, error) {
		params.Apply(d)
		d.RemainingAmount = ledger.Remaining(d.TotalAmount, d.Payments)
		return nil, nil
	})
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// AddPayment appends to the payment log. When the debt is linked to an
// account, an expense transaction is recorded on that account in the
// same storage transaction.
func (s *Service) AddPayment(ctx context.Context, owner, id string, params PaymentParams) (*Debt, error) {
	return s.repo.Mutate(ctx, owner, id, func(d *Debt) (*transaction.Transaction, error) {
		payment := ledger.Payment{
			Date:   params.Date,
			Amount: params.Amount,
			Notes:  params.Notes,
		}

		var linked *transaction.Transaction
		if d.AccountID != nil {
			linked = &transaction.Transaction{
				ID:           uuid.NewString(),
				AccountID:    *d.AccountID,
				Type:         transaction.TypeExpense,
				Amount:       params.Amount,
				Category:     "Debt Payment",
				Description:  fmt.Sprintf("Payment for %s", d.Name),
				Date:         params.Date,
				Tags:         []string{},
				LinkedDebtID: &d.ID,
				CreatedAt:    s.now().UTC(),
				OwnerEmail:   owner,
			}
			payment.LinkedTransactionID = &linked.ID
		}

		d.Payments = append(d.Payments, payment)
		d.RemainingAmount = ledger.Remaining(d.TotalAmount, d.Payments)
		return linked, nil
	})
}

func (s *Service) UpdatePayment(ctx context.Context, owner, id string, index int, params PaymentParams) (*Debt, error) {
	return s.repo.Mutate(ctx, owner, id, func(d *Debt) (*transaction.Transaction, error) {
		if index < 0 || index >= len(d.Payments) {
			return nil, ErrPaymentNotFound
		}
		existing := d.Payments[index]
		d.Payments[index] = ledger.Payment{
			Date:                params.Date,
			Amount:              params.Amount,
			Notes:               params.Notes,
			LinkedTransactionID: existing.LinkedTransactionID,
		}
		d.RemainingAmount = ledger.Remaining(d.TotalAmount, d.Payments)
		return nil, nil
	})
}

func (s *Service) DeletePayment(ctx context.Context, owner, id string, index int) (*Debt, error) {
	return s.repo.Mutate(ctx, owner, id, func(d *Debt) (*transaction.Transaction, error) {
		if index < 0 || index >= len(d.Payments) {
			return nil, ErrPaymentNotFound
		}
		d.Payments = append(d.Payments[:index], d.Payments[index+1:]...)
		d.RemainingAmount = ledger.Remaining(d.TotalAmount, d.Payments)
		return nil, nil
	})
}
