package investment

import (
	"context"
	"errors"
	"testing"
	"time"

	"centime/internal/domain/ledger"
)

// memRepository keeps investments in a map and runs Mutate callbacks
// against the stored copy, mirroring the locked read-modify-write.
type memRepository struct {
	investments map[string]*Investment
}

func newMemRepository() *memRepository {
	return &memRepository{investments: make(map[string]*Investment)}
}

func (m *memRepository) Create(ctx context.Context, i *Investment) error {
	cp := *i
	m.investments[i.ID] = &cp
	return nil
}

func (m *memRepository) ListByOwner(ctx context.Context, owner string) ([]Investment, error) {
	var out []Investment
	for _, i := range m.investments {
		if i.OwnerEmail == owner {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (m *memRepository) GetByID(ctx context.Context, owner, id string) (*Investment, error) {
	i, ok := m.investments[id]
	if !ok || i.OwnerEmail != owner {
		return nil, ErrInvestmentNotFound
	}
	cp := *i
	return &cp, nil
}

func (m *memRepository) Update(ctx context.Context, i *Investment) error {
	if _, ok := m.investments[i.ID]; !ok {
		return ErrInvestmentNotFound
	}
	cp := *i
	m.investments[i.ID] = &cp
	return nil
}

func (m *memRepository) Delete(ctx context.Context, owner, id string) error {
	i, ok := m.investments[id]
	if !ok || i.OwnerEmail != owner {
		return ErrInvestmentNotFound
	}
	delete(m.investments, id)
	return nil
}

func (m *memRepository) Mutate(ctx context.Context, owner, id string, fn func(*Investment) error) (*Investment, error) {
	i, ok := m.investments[id]
	if !ok || i.OwnerEmail != owner {
		return nil, ErrInvestmentNotFound
	}
	if err := fn(i); err != nil {
		return nil, err
	}
	cp := *i
	return &cp, nil
}

const owner = "alice@example.com"

func newTestInvestment(t *testing.T, svc *Service) *Investment {
	t.Helper()
	i, err := svc.Create(context.Background(), owner, CreateParams{Name: "Apple", Symbol: "AAPL"})
	if err != nil {
		t.Fatalf("creating investment: %v", err)
	}
	return i
}

func TestCreateDefaults(t *testing.T) {
	svc := NewService(newMemRepository())
	i := newTestInvestment(t, svc)

	if i.Type != TypeStock || i.Currency != "EUR" {
		t.Errorf("defaults not applied: %+v", i)
	}
	if i.Quantity != 0 || i.AveragePrice != 0 {
		t.Errorf("new investment should hold nothing: %+v", i)
	}
}

func TestAddOperationDerivesHoldings(t *testing.T) {
	svc := NewService(newMemRepository())
	i := newTestInvestment(t, svc)

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	i, err := svc.AddOperation(context.Background(), owner, i.ID, OperationParams{
		Date: day, Type: ledger.OpBuy, Quantity: 10, Price: 150, Fees: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Quantity != 10 {
		t.Errorf("expected quantity 10, got %v", i.Quantity)
	}
	if i.AveragePrice != 150.5 {
		t.Errorf("expected average price 150.5, got %v", i.AveragePrice)
	}
	if i.Operations[0].Total != 1505 {
		t.Errorf("expected server-computed total 1505, got %v", i.Operations[0].Total)
	}
	// A fresh position seeds the current price from the average.
	if i.CurrentPrice != 150.5 {
		t.Errorf("expected current price seeded to 150.5, got %v", i.CurrentPrice)
	}

	i, err = svc.AddOperation(context.Background(), owner, i.ID, OperationParams{
		Date: day.AddDate(0, 1, 0), Type: ledger.OpSell, Quantity: 4, Price: 170,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Quantity != 6 {
		t.Errorf("expected quantity 6 after sell, got %v", i.Quantity)
	}
	if i.AveragePrice != 150.5 {
		t.Errorf("sell must not move average price, got %v", i.AveragePrice)
	}
	// Price already set, must not be reseeded.
	if i.CurrentPrice != 150.5 {
		t.Errorf("current price changed unexpectedly: %v", i.CurrentPrice)
	}
}

func TestUpdateOperationRederives(t *testing.T) {
	svc := NewService(newMemRepository())
	i := newTestInvestment(t, svc)

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	i, _ = svc.AddOperation(context.Background(), owner, i.ID, OperationParams{
		Date: day, Type: ledger.OpBuy, Quantity: 10, Price: 100,
	})

	i, err := svc.UpdateOperation(context.Background(), owner, i.ID, 0, OperationParams{
		Date: day, Type: ledger.OpBuy, Quantity: 20, Price: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Quantity != 20 || i.AveragePrice != 50 {
		t.Errorf("holdings not re-derived after edit: %+v", i)
	}
}

func TestDeleteOperationRederives(t *testing.T) {
	svc := NewService(newMemRepository())
	i := newTestInvestment(t, svc)

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	i, _ = svc.AddOperation(context.Background(), owner, i.ID, OperationParams{
		Date: day, Type: ledger.OpBuy, Quantity: 10, Price: 100,
	})
	i, _ = svc.AddOperation(context.Background(), owner, i.ID, OperationParams{
		Date: day, Type: ledger.OpBuy, Quantity: 10, Price: 200,
	})

	i, err := svc.DeleteOperation(context.Background(), owner, i.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Quantity != 10 || i.AveragePrice != 200 {
		t.Errorf("holdings not re-derived after delete: %+v", i)
	}
}

func TestOperationIndexOutOfBounds(t *testing.T) {
	svc := NewService(newMemRepository())
	i := newTestInvestment(t, svc)

	if _, err := svc.DeleteOperation(context.Background(), owner, i.ID, 0); !errors.Is(err, ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound on empty log, got %v", err)
	}
	if _, err := svc.UpdateOperation(context.Background(), owner, i.ID, -1, OperationParams{}); !errors.Is(err, ErrOperationNotFound) {
		t.Errorf("expected ErrOperationNotFound on negative index, got %v", err)
	}
}

func TestMutateUnknownInvestment(t *testing.T) {
	svc := NewService(newMemRepository())
	if _, err := svc.AddOperation(context.Background(), owner, "missing", OperationParams{Type: ledger.OpBuy}); !errors.Is(err, ErrInvestmentNotFound) {
		t.Errorf("expected ErrInvestmentNotFound, got %v", err)
	}
}
