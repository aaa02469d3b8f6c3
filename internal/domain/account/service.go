package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/transaction"
)

// Service owns account lifecycle and inter-account transfers.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Create opens a new account. The current balance starts at the initial
// balance and only moves through transfers afterwards.
func (s *Service) Create(ctx context.Context, owner string, params CreateParams) (*Account, error) {
	params.Defaults()

	a := &Account{
		ID:                  uuid.NewString(),
		Name:                params.Name,
		Type:                params.Type,
		Currency:            params.Currency,
		InitialBalance:      params.InitialBalance,
		CurrentBalance:      params.InitialBalance,
		Icon:                params.Icon,
		Color:               params.Color,
		IsExcludedFromTotal: params.IsExcludedFromTotal,
		CreatedAt:           s.now().UTC(),
		OwnerEmail:          owner,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]Account, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*Account, error) {
	return s.repo.GetByID(ctx, owner, id)
}

func (s *Service) Update(ctx context.Context, owner, id string, params UpdateParams) (*Account, error) {
	a, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	params.Apply(a)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// Transfer moves money between two owned accounts, converting across
// currencies with the static rate table. It debits the source by the
// requested amount, credits the destination by the converted amount,
// and records one transaction leg on each account.
func (s *Service) Transfer(ctx context.Context, owner string, params TransferParams) (*TransferResult, error) {
	if params.FromAccountID == params.ToAccountID {
		return nil, ErrSameAccount
	}

	from, err := s.repo.GetByID(ctx, owner, params.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.repo.GetByID(ctx, owner, params.ToAccountID)
	if err != nil {
		return nil, err
	}

	converted := ConvertAmount(params.Amount, from.Currency, to.Currency)
	from.CurrentBalance -= params.Amount
	to.CurrentBalance += converted

	description := params.Description
	if description == "" {
		description = "Transfer"
	}
	date := s.now().UTC()
	if params.Date != "" {
		if parsed, err := time.Parse("2006-01-02", params.Date); err == nil {
			date = parsed
		}
	}
	now := s.now().UTC()

	legs := [2]transaction.Transaction{
		{
			ID:          uuid.NewString(),
			AccountID:   from.ID,
			ToAccountID: &to.ID,
			Type:        transaction.TypeTransfer,
			Amount:      params.Amount,
			Currency:    from.Currency,
			Category:    "Transfer",
			Description: fmt.Sprintf("%s (to %s)", description, to.Name),
			Date:        date,
			Tags:        []string{},
			CreatedAt:   now,
			OwnerEmail:  owner,
		},
		{
			ID:          uuid.NewString(),
			AccountID:   to.ID,
			ToAccountID: &from.ID,
			Type:        transaction.TypeTransfer,
			Amount:      converted,
			Currency:    to.Currency,
			Category:    "Transfer",
			Description: fmt.Sprintf("%s (from %s)", description, from.Name),
			Date:        date,
			Tags:        []string{},
			CreatedAt:   now,
			OwnerEmail:  owner,
		},
	}

	if err := s.repo.ApplyTransfer(ctx, from, to, legs); err != nil {
		return nil, fmt.Errorf("applying transfer: %w", err)
	}

	return &TransferResult{
		Message:         "Transfer completed successfully",
		FromAccount:     from.Name,
		ToAccount:       to.Name,
		Amount:          params.Amount,
		ConvertedAmount: converted,
		FromCurrency:    from.Currency,
		ToCurrency:      to.Currency,
	}, nil
}
