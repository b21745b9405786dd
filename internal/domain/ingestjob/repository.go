package ingestjob

import "context"

// Repository defines job-status persistence operations.
type Repository interface {
	Create(ctx context.Context, job *Job) error
	Update(ctx context.Context, job *Job) error

	// GetByID returns nil, nil when the job id is unknown.
	GetByID(ctx context.Context, id string) (*Job, error)
}
