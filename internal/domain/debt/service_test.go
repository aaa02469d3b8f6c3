package debt

import (
	"context"
	"errors"
	"testing"
	"time"

	"centime/internal/domain/transaction"
)

type memRepository struct {
	debts  map[string]*Debt
	linked []transaction.Transaction
}

func newMemRepository() *memRepository {
	return &memRepository{debts: make(map[string]*Debt)}
}

func (m *memRepository) Create(ctx context.Context, d *Debt) error {
	cp := *d
	m.debts[d.ID] = &cp
	return nil
}

func (m *memRepository) ListByOwner(ctx context.Context, owner string) ([]Debt, error) {
	var out []Debt
	for _, d := range m.debts {
		if d.OwnerEmail == owner {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memRepository) GetByID(ctx context.Context, owner, id string) (*Debt, error) {
	d, ok := m.debts[id]
	if !ok || d.OwnerEmail != owner {
		return nil, ErrDebtNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memRepository) Delete(ctx context.Context, owner, id string) error {
	d, ok := m.debts[id]
	if !ok || d.OwnerEmail != owner {
		return ErrDebtNotFound
	}
	delete(m.debts, id)
	return nil
}

func (m *memRepository) Mutate(ctx context.Context, owner, id string, fn func(*Debt) (*transaction.Transaction, error)) (*Debt, error) {
	d, ok := m.debts[id]
	if !ok || d.OwnerEmail != owner {
		return nil, ErrDebtNotFound
	}
	linked, err := fn(d)
	if err != nil {
		return nil, err
	}
	if linked != nil {
		m.linked = append(m.linked, *linked)
	}
	cp := *d
	return &cp, nil
}

const owner = "alice@example.com"

var day = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

func TestRemainingFollowsPaymentLog(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()

	d, err := svc.Create(ctx, owner, CreateParams{Name: "Car loan", TotalAmount: 1000, Creditor: "Bank"})
	if err != nil {
		t.Fatalf("creating debt: %v", err)
	}
	if d.RemainingAmount != 1000 {
		t.Fatalf("expected remaining 1000 on create, got %v", d.RemainingAmount)
	}

	d, err = svc.AddPayment(ctx, owner, d.ID, PaymentParams{Date: day, Amount: 200})
	if err != nil {
		t.Fatalf("adding payment: %v", err)
	}
	if d.RemainingAmount != 800 {
		t.Fatalf("expected remaining 800, got %v", d.RemainingAmount)
	}

	total := 1500.0
	d, err = svc.Update(ctx, owner, d.ID, UpdateParams{TotalAmount: &total})
	if err != nil {
		t.Fatalf("updating debt: %v", err)
	}
	if d.RemainingAmount != 1300 {
		t.Fatalf("expected remaining 1300 after total change, got %v", d.RemainingAmount)
	}

	d, err = svc.UpdatePayment(ctx, owner, d.ID, 0, PaymentParams{Date: day, Amount: 300})
	if err != nil {
		t.Fatalf("updating payment: %v", err)
	}
	if d.RemainingAmount != 1200 {
		t.Fatalf("expected remaining 1200 after payment edit, got %v", d.RemainingAmount)
	}

	d, err = svc.AddPayment(ctx, owner, d.ID, PaymentParams{Date: day.AddDate(0, 0, 7), Amount: 150})
	if err != nil {
		t.Fatalf("adding second payment: %v", err)
	}
	if d.RemainingAmount != 1050 {
		t.Fatalf("expected remaining 1050, got %v", d.RemainingAmount)
	}

	d, err = svc.DeletePayment(ctx, owner, d.ID, 0)
	if err != nil {
		t.Fatalf("deleting payment: %v", err)
	}
	if d.RemainingAmount != 1350 {
		t.Fatalf("expected remaining 1350 after delete, got %v", d.RemainingAmount)
	}
}

func TestAddPaymentRecordsLinkedTransaction(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()

	accountID := "acc-1"
	d, err := svc.Create(ctx, owner, CreateParams{Name: "Mortgage", TotalAmount: 5000, AccountID: &accountID})
	if err != nil {
		t.Fatalf("creating debt: %v", err)
	}

	d, err = svc.AddPayment(ctx, owner, d.ID, PaymentParams{Date: day, Amount: 400})
	if err != nil {
		t.Fatalf("adding payment: %v", err)
	}

	if len(repo.linked) != 1 {
		t.Fatalf("expected one linked transaction, got %d", len(repo.linked))
	}
	tx := repo.linked[0]
	if tx.AccountID != "acc-1" || tx.Type != transaction.TypeExpense || tx.Amount != 400 {
		t.Errorf("unexpected linked transaction: %+v", tx)
	}
	if tx.Category != "Debt Payment" || tx.Description != "Payment for Mortgage" {
		t.Errorf("unexpected linked transaction labels: %+v", tx)
	}
	if tx.LinkedDebtID == nil || *tx.LinkedDebtID != d.ID {
		t.Errorf("linked transaction missing debt reference: %+v", tx)
	}
	if d.Payments[0].LinkedTransactionID == nil || *d.Payments[0].LinkedTransactionID != tx.ID {
		t.Errorf("payment missing back-reference to transaction: %+v", d.Payments[0])
	}
}

func TestAddPaymentWithoutAccountSkipsTransaction(t *testing.T) {
	repo := newMemRepository()
	svc := NewService(repo)
	ctx := context.Background()

	d, _ := svc.Create(ctx, owner, CreateParams{Name: "Personal loan", TotalAmount: 300})
	if _, err := svc.AddPayment(ctx, owner, d.ID, PaymentParams{Date: day, Amount: 100}); err != nil {
		t.Fatalf("adding payment: %v", err)
	}
	if len(repo.linked) != 0 {
		t.Errorf("expected no linked transaction, got %d", len(repo.linked))
	}
}

func TestPaymentIndexOutOfBounds(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	d, _ := svc.Create(ctx, owner, CreateParams{Name: "Loan", TotalAmount: 100})
	if _, err := svc.UpdatePayment(ctx, owner, d.ID, 0, PaymentParams{Amount: 10}); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("expected ErrPaymentNotFound, got %v", err)
	}
	if _, err := svc.DeletePayment(ctx, owner, d.ID, 5); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestOverpaymentGoesNegative(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	d, _ := svc.Create(ctx, owner, CreateParams{Name: "Loan", TotalAmount: 100})
	d, err := svc.AddPayment(ctx, owner, d.ID, PaymentParams{Date: day, Amount: 250})
	if err != nil {
		t.Fatalf("adding payment: %v", err)
	}
	if d.RemainingAmount != -150 {
		t.Errorf("expected remaining -150, got %v", d.RemainingAmount)
	}
}
