package receivable

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/ledger"
	"centime/internal/domain/transaction"
)

// Service mirrors the debt service on the asset side: same derived
// remaining amount, but linked transactions are income instead of
// expense.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, owner string, params CreateParams) (*Receivable, error) {
	r := &Receivable{
		ID:              uuid.NewString(),
		Name:            params.Name,
		TotalAmount:     params.TotalAmount,
		RemainingAmount: params.TotalAmount,
		Debtor:          params.Debtor,
		DueDate:         params.DueDate,
		Payments:        []ledger.Payment{},
		AccountID:       params.AccountID,
		CreatedAt:       s.now().UTC(),
		OwnerEmail:      owner,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("creating receivable: %w", err)
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]Receivable, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*Receivable, error) {
	return s.repo.GetByID(ctx, owner, id)
}

func (s *Service) Update(ctx context.Context, owner, id string, params UpdateParams) (*Receivable, error) {
	return s.repo.Mutate(ctx, owner, id, func(r *Receivable) (*transaction.Transaction, error) {
		params.Apply(r)
		r.RemainingAmount = ledger.Remaining(r.TotalAmount, r.Payments)
		return nil, nil
	})
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// AddPayment appends to the payment log and records an income
// transaction on the linked account, if any.
func (s *Service) AddPayment(ctx context.Context, owner, id string, params PaymentParams) (*Receivable, error) {
	return s.repo.Mutate(ctx, owner, id, func(r *Receivable) (*transaction.Transaction, error) {
		payment := ledger.Payment{
			Date:   params.Date,
			Amount: params.Amount,
			Notes:  params.Notes,
		}

		var linked *transaction.Transaction
		if r.AccountID != nil {
			linked = &transaction.Transaction{
				ID:                 uuid.NewString(),
				AccountID:          *r.AccountID,
				Type:               transaction.TypeIncome,
				Amount:             params.Amount,
				Category:           "Receivable Payment",
				Description:        fmt.Sprintf("Payment for %s", r.Name),
				Date:               params.Date,
				Tags:               []string{},
				LinkedReceivableID: &r.ID,
				CreatedAt:          s.now().UTC(),
				OwnerEmail:         owner,
			}
			payment.LinkedTransactionID = &linked.ID
		}

		r.Payments = append(r.Payments, payment)
		r.RemainingAmount = ledger.Remaining(r.TotalAmount, r.Payments)
		return linked, nil
	})
}

func (s *Service) UpdatePayment(ctx context.Context, owner, id string, index int, params PaymentParams) (*Receivable, error) {
	return s.repo.Mutate(ctx, owner, id, func(r *Receivable) (*transaction.Transaction, error) {
		if index < 0 || index >= len(r.Payments) {
			return nil, ErrPaymentNotFound
		}
		existing := r.Payments[index]
		r.Payments[index] = ledger.Payment{
			Date:                params.Date,
			Amount:              params.Amount,
			Notes:               params.Notes,
			LinkedTransactionID: existing.LinkedTransactionID,
		}
		r.RemainingAmount = ledger.Remaining(r.TotalAmount, r.Payments)
		return nil, nil
	})
}

func (s *Service) DeletePayment(ctx context.Context, owner, id string, index int) (*Receivable, error) {
	return s.repo.Mutate(ctx, owner, id, func(r *Receivable) (*transaction.Transaction, error) {
		if index < 0 || index >= len(r.Payments) {
			return nil, ErrPaymentNotFound
		}
		r.Payments = append(r.Payments[:index], r.Payments[index+1:]...)
		r.RemainingAmount = ledger.Remaining(r.TotalAmount, r.Payments)
		return nil, nil
	})
}
