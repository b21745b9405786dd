// Package ingestjob defines the status records of background short-interest
// ingestion runs. A job document is created when a run starts and updated as
// the loop advances, giving the fire-and-forget loop a monitorable lifecycle.
package ingestjob

import "time"

// Job states.
const (
	StateRunning   = "RUNNING"
	StateCompleted = "COMPLETED"
	StateFailed    = "FAILED"
	StateCancelled = "CANCELLED"
)

// Job is one ingestion run.
type Job struct {
	ID             string     `json:"id" bson:"_id"`
	State          string     `json:"state" bson:"state"`
	FromDate       time.Time  `json:"from_date" bson:"from_date"`
	ToDate         time.Time  `json:"to_date" bson:"to_date"`
	DatesProcessed int        `json:"dates_processed" bson:"dates_processed"`
	RowsWritten    int        `json:"rows_written" bson:"rows_written"`
	Failures       int        `json:"failures" bson:"failures"`
	LastError      string     `json:"last_error,omitempty" bson:"last_error,omitempty"`
	StartedAt      time.Time  `json:"started_at" bson:"started_at"`
	FinishedAt     *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
}
