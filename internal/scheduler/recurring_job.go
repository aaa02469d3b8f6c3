package scheduler

import (
	"context"
	"log"

	"centime/internal/domain/recurring"
)

// RecurringJob materializes due recurring transaction templates.
type RecurringJob struct {
	service *recurring.Service
}

func NewRecurringJob(service *recurring.Service) *RecurringJob {
	return &RecurringJob{service: service}
}

func (j *RecurringJob) Execute(ctx context.Context) error {
	created, err := j.service.Materialize(ctx)
	if err != nil {
		return err
	}
	if created > 0 {
		log.Printf("Materialized %d recurring transactions", created)
	}
	return nil
}

func (j *RecurringJob) Description() string {
	return "recurring transaction materialization"
}
