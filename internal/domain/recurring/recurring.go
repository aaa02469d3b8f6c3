// Package recurring materializes recurring transaction templates into
// concrete ledger entries when their next occurrence comes due.
package recurring

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/transaction"
)

// NextDate advances an occurrence date by one period. Unknown
// frequencies advance by a month.
func NextDate(frequency string, from time.Time) time.Time {
	switch frequency {
	case transaction.FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case transaction.FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case transaction.FrequencyYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}

// Service sweeps due recurring templates and writes one materialized
// transaction per due occurrence.
type Service struct {
	repo transaction.Repository
	now  func() time.Time
}

func NewService(repo transaction.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Materialize processes every template across all owners whose next
// occurrence is due. Each due template yields a plain transaction
// dated at the occurrence and has its next occurrence advanced by one
// period. A failing template is logged and skipped so one bad record
// cannot stall the sweep.
func (s *Service) Materialize(ctx context.Context) (int, error) {
	now := s.now().UTC()
	due, err := s.repo.DueRecurring(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing due recurring transactions: %w", err)
	}

	created := 0
	for _, tmpl := range due {
		if tmpl.RecurringNextDate == nil || tmpl.RecurringFrequency == nil {
			continue
		}
		occurrence, err := time.Parse("2006-01-02", *tmpl.RecurringNextDate)
		if err != nil {
			log.Printf("recurring: skipping %s: bad next occurrence %q", tmpl.ID, *tmpl.RecurringNextDate)
			continue
		}

		materialized := tmpl
		materialized.ID = uuid.NewString()
		materialized.Date = occurrence
		materialized.IsRecurring = false
		materialized.RecurringFrequency = nil
		materialized.RecurringNextDate = nil
		materialized.CreatedAt = now

		if _, err := s.repo.Create(ctx, &materialized); err != nil {
			log.Printf("recurring: creating occurrence for %s: %v", tmpl.ID, err)
			continue
		}

		next := NextDate(*tmpl.RecurringFrequency, occurrence).Format("2006-01-02")
		if err := s.repo.AdvanceRecurring(ctx, tmpl.OwnerEmail, tmpl.ID, next); err != nil {
			log.Printf("recurring: advancing %s: %v", tmpl.ID, err)
			continue
		}
		created++
	}
	return created, nil
}
