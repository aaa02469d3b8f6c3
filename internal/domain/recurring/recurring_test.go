package recurring

import (
	"context"
	"testing"
	"time"

	"centime/internal/domain/transaction"
)

func TestNextDate(t *testing.T) {
	from := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{transaction.FrequencyDaily, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{transaction.FrequencyWeekly, time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)},
		{transaction.FrequencyMonthly, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
		{transaction.FrequencyYearly, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"unknown", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			if got := NextDate(tt.frequency, from); !got.Equal(tt.want) {
				t.Errorf("NextDate(%q) = %v, want %v", tt.frequency, got, tt.want)
			}
		})
	}
}

type memRepo struct {
	templates map[string]*transaction.Transaction
	created   []transaction.Transaction
}

func (m *memRepo) Create(ctx context.Context, tx *transaction.Transaction) (*transaction.Transaction, error) {
	m.created = append(m.created, *tx)
	return tx, nil
}

func (m *memRepo) List(ctx context.Context, owner string, filter transaction.Filter) ([]transaction.Transaction, error) {
	return nil, nil
}

func (m *memRepo) GetByID(ctx context.Context, owner, id string) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}

func (m *memRepo) Update(ctx context.Context, tx *transaction.Transaction) error { return nil }

func (m *memRepo) Delete(ctx context.Context, owner, id string) error { return nil }

func (m *memRepo) CreateIfAbsent(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	return false, nil
}

func (m *memRepo) DueRecurring(ctx context.Context, now time.Time) ([]transaction.Transaction, error) {
	var due []transaction.Transaction
	for _, tmpl := range m.templates {
		if tmpl.RecurringNextDate == nil {
			continue
		}
		occ, err := time.Parse("2006-01-02", *tmpl.RecurringNextDate)
		if err == nil && !occ.After(now) {
			due = append(due, *tmpl)
		}
	}
	return due, nil
}

func (m *memRepo) AdvanceRecurring(ctx context.Context, owner, id string, next string) error {
	tmpl, ok := m.templates[id]
	if !ok {
		return transaction.ErrTransactionNotFound
	}
	tmpl.RecurringNextDate = &next
	return nil
}

func TestMaterializeDueTemplates(t *testing.T) {
	freq := transaction.FrequencyMonthly
	dueDate := "2025-07-01"
	futureDate := "2025-09-15"

	repo := &memRepo{templates: map[string]*transaction.Transaction{
		"t1": {
			ID: "t1", AccountID: "acc-1", Type: transaction.TypeExpense,
			Amount: 900, Category: "Loyer", Description: "Loyer mensuel",
			IsRecurring: true, RecurringFrequency: &freq, RecurringNextDate: &dueDate,
			OwnerEmail: "alice@example.com",
		},
		"t2": {
			ID: "t2", AccountID: "acc-1", Type: transaction.TypeExpense,
			Amount: 50, Category: "Abonnements",
			IsRecurring: true, RecurringFrequency: &freq, RecurringNextDate: &futureDate,
			OwnerEmail: "alice@example.com",
		},
	}}

	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2025, 7, 2, 1, 0, 0, 0, time.UTC) }

	created, err := svc.Materialize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 1 {
		t.Fatalf("expected 1 materialized occurrence, got %d", created)
	}

	occ := repo.created[0]
	if occ.ID == "t1" {
		t.Error("materialized occurrence must get a fresh id")
	}
	if occ.IsRecurring || occ.RecurringFrequency != nil || occ.RecurringNextDate != nil {
		t.Errorf("occurrence must not itself recur: %+v", occ)
	}
	if occ.Amount != 900 || occ.Category != "Loyer" {
		t.Errorf("occurrence must copy the template fields: %+v", occ)
	}
	if !occ.Date.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("occurrence dated %v, want the due date", occ.Date)
	}

	if next := *repo.templates["t1"].RecurringNextDate; next != "2025-08-01" {
		t.Errorf("template not advanced, next occurrence %q", next)
	}
	if next := *repo.templates["t2"].RecurringNextDate; next != "2025-09-15" {
		t.Errorf("future template must stay untouched, next occurrence %q", next)
	}
}
