// Package mongo stores the ingestion job-status documents. Job records are
// operational telemetry, not ledger data, so they live outside the relational
// schema.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stock-tracking-backend/internal/domain/ingestjob"
)

// JobCollectionName is the name of the job-status collection.
const JobCollectionName = "ingestion_jobs"

// JobRepository implements ingestjob.Repository for MongoDB.
type JobRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

func NewJobRepository(logger *slog.Logger, db *mongo.Database) ingestjob.Repository {
	return &JobRepository{db: db, logger: logger}
}

func (r *JobRepository) Create(ctx context.Context, job *ingestjob.Job) error {
	_, err := r.db.Collection(JobCollectionName).InsertOne(ctx, job)
	if err != nil {
		r.logger.Error("Failed to create ingestion job record", "job_id", job.ID, "error", err)
		return fmt.Errorf("failed to create ingestion job record: %w", err)
	}
	return nil
}

func (r *JobRepository) Update(ctx context.Context, job *ingestjob.Job) error {
	filter := bson.M{"_id": job.ID}
	_, err := r.db.Collection(JobCollectionName).ReplaceOne(ctx, filter, job)
	if err != nil {
		r.logger.Error("Failed to update ingestion job record", "job_id", job.ID, "error", err)
		return fmt.Errorf("failed to update ingestion job record: %w", err)
	}
	return nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*ingestjob.Job, error) {
	filter := bson.M{"_id": id}

	var job ingestjob.Job
	err := r.db.Collection(JobCollectionName).FindOne(ctx, filter).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("Failed to get ingestion job record", "job_id", id, "error", err)
		return nil, fmt.Errorf("failed to get ingestion job record: %w", err)
	}
	return &job, nil
}
