package scheduler

import "context"

// Job is a unit of background work executed by the worker pool.
type Job interface {
	// Execute runs the job. The context carries the execution timeout.
	Execute(ctx context.Context) error

	// Description names the job for logging.
	Description() string
}
