package receivable

import (
	"context"
	"testing"
	"time"

	"centime/internal/domain/transaction"
)

type memRepository struct {
	receivables map[string]*Receivable
	linked      []transaction.Transaction
}

func newMemRepository() *memRepository {
	return &memRepository{receivables: make(map[string]*Receivable)}
}

func (m *memRepository) Create(ctx context.Context, r *Receivable) error {
	cp := *r
	m.receivables[r.ID] = &cp
	return nil
}

func (m *memRepository) ListByOwner(ctx context.Context, owner string) ([]Receivable, error) {
	var out []Receivable
	for _, r := range m.receivables {
		if r.OwnerEmail == owner {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepository) GetByID(ctx context.Context, owner, id string) (*Receivable, error) {
	r, ok := m.receivables[id]
	if !ok || r.OwnerEmail != owner {
		return nil, ErrReceivableNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepository) Delete(ctx context.Context, owner, id string) error {
	r, ok := m.receivables[id]
	if !ok || r.OwnerEmail != owner {
		return ErrReceivableNotFound
	}
	delete(m.receivables, id)
	return nil
}

func (m *memRepository) Mutate(ctx context.Context, owner, id string, fn func(*Receivable) (*transaction.Transaction, error)) (*Receivable, error) {
	r, ok := m.receivables[id]
	if !ok || r.OwnerEmail != owner {
		return nil, ErrReceivableNotFound
	}
	linked, err := fn(r)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		m.linked = append(m.linked, *linked)
	}
	cp := *r
	return &cp, nil
}

func TestPaymentRecordsIncomeTransaction(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()
	owner := "alice@example.com"

	accountID := "acc-1"
	r, err := svc.Create(ctx, owner, CreateParams{Name: "Loan to Bob", TotalAmount: 500, Debtor: "Bob", AccountID: &accountID})
	if err != nil {
		t.Fatalf("creating receivable: %v", err)
	}

	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	r, err = svc.AddPayment(ctx, owner, r.ID, PaymentParams{Date: day, Amount: 200})
	if err != nil {
		t.Fatalf("adding payment: %v", err)
	}
	if r.RemainingAmount != 300 {
		t.Errorf("expected remaining 300, got %v", r.RemainingAmount)
	}

	if len(repo.linked) != 1 {
		t.Fatalf("expected one linked transaction, got %d", len(repo.linked))
	}
	tx := repo.linked[0]
	if tx.Type != transaction.TypeIncome {
		t.Errorf("linked transaction must be income, got %q", tx.Type)
	}
	if tx.Category != "Receivable Payment" || tx.Description != "Payment for Loan to Bob" {
		t.Errorf("unexpected linked transaction labels: %+v", tx)
	}
	if tx.LinkedReceivableID == nil || *tx.LinkedReceivableID != r.ID {
		t.Errorf("linked transaction missing receivable reference: %+v", tx)
	}
}

func TestUpdateRederivesRemaining(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()
	owner := "alice@example.com"

	r, _ := svc.Create(ctx, owner, CreateParams{Name: "IOU", TotalAmount: 100, Debtor: "Carol"})
	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	r, _ = svc.AddPayment(ctx, owner, r.ID, PaymentParams{Date: day, Amount: 40})

	total := 200.0
	r, err := svc.Update(ctx, owner, r.ID, UpdateParams{TotalAmount: &total})
	if err != nil {
		t.Fatalf("updating receivable: %v", err)
	}
	if r.RemainingAmount != 160 {
		t.Errorf("expected remaining 160 after total change, got %v", r.RemainingAmount)
	}
}
