package service

import (
	"context"
	"fmt"

	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/domain/shared"
)

// ingestionRunner is the slice of the backfill runner the service needs.
type ingestionRunner interface {
	Start(ctx context.Context) (*ingestjob.Job, error)
	Stop(jobID string) bool
}

// IngestionServiceImpl implements the IngestionService interface
type IngestionServiceImpl struct {
	runner  ingestionRunner
	jobRepo ingestjob.Repository
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(runner ingestionRunner, jobRepo ingestjob.Repository) IngestionService {
	return &IngestionServiceImpl{
		runner:  runner,
		jobRepo: jobRepo,
	}
}

// Start kicks off a background ingestion run and returns its job record
func (s *IngestionServiceImpl) Start(ctx context.Context) (*ingestjob.Job, error) {
	return s.runner.Start(ctx)
}

// Status returns the job record for a run, finished or not
func (s *IngestionServiceImpl) Status(ctx context.Context, id string) (*ingestjob.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, shared.NewRecordNotFound(fmt.Sprintf("ingestion job %s does not exist", id))
	}
	return job, nil
}

// Cancel stops a running job
func (s *IngestionServiceImpl) Cancel(id string) bool {
	return s.runner.Stop(id)
}
