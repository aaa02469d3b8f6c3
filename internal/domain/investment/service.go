package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/ledger"
)

// Service owns investment lifecycle and the operation log. Every log
// mutation re-derives quantity and average price from the full log
// before the write lands.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, owner string, params CreateParams) (*Investment, error) {
	params.Defaults()

	i := &Investment{
		ID:               uuid.NewString(),
		Name:             params.Name,
		Symbol:           params.Symbol,
		Type:             params.Type,
		Currency:         params.Currency,
		Operations:       []ledger.Operation{},
		PurchaseDate:     params.PurchaseDate,
		InitialValue:     params.InitialValue,
		DepreciationRate: params.DepreciationRate,
		MonthlyCosts:     params.MonthlyCosts,
		CreatedAt:        s.now().UTC(),
		OwnerEmail:       owner,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, fmt.Errorf("creating investment: %w", err)
	}
	return i, nil
}

func (s *Service) List(ctx context.Context, owner string) ([]Investment, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*Investment, error) {
	return s.repo.GetByID(ctx, owner, id)
}

func (s *Service) Update(ctx context.Context, owner, id string, params UpdateParams) (*Investment, error) {
	return s.repo.Mutate(ctx, owner, id, func(i *Investment) error {
		params.Apply(i)
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// AddOperation appends to the log. If the current price is still unset
// after the derivation, it is seeded from the average price so a fresh
// position shows a non-zero value immediately.
func (s *Service) AddOperation(ctx context.Context, owner, id string, params OperationParams) (*Investment, error) {
	return s.repo.Mutate(ctx, owner, id, func(i *Investment) error {
		i.Operations = append(i.Operations, buildOperation(params))
		rederive(i)
		if i.CurrentPrice == 0 {
			i.CurrentPrice = i.AveragePrice
		}
		return nil
	})
}

func (s *Service) UpdateOperation(ctx context.Context, owner, id string, index int, params OperationParams) (*Investment, error) {
	return s.repo.Mutate(ctx, owner, id, func(i *Investment) error {
		if index < 0 || index >= len(i.Operations) {
			return ErrOperationNotFound
		}
		i.Operations[index] = buildOperation(params)
		rederive(i)
		return nil
	})
}

func (s *Service) DeleteOperation(ctx context.Context, owner, id string, index int) (*Investment, error) {
	return s.repo.Mutate(ctx, owner, id, func(i *Investment) error {
		if index < 0 || index >= len(i.Operations) {
			return ErrOperationNotFound
		}
		i.Operations = append(i.Operations[:index], i.Operations[index+1:]...)
		rederive(i)
		return nil
	})
}

func buildOperation(params OperationParams) ledger.Operation {
	return ledger.Operation{
		Date:     params.Date,
		Type:     params.Type,
		Quantity: params.Quantity,
		Price:    params.Price,
		Fees:     params.Fees,
		Total:    ledger.OperationTotal(params.Quantity, params.Price, params.Fees),
		Notes:    params.Notes,
	}
}

func rederive(i *Investment) {
	h := ledger.DeriveHoldings(i.Operations)
	i.Quantity = h.Quantity
	i.AveragePrice = h.AveragePrice
}
