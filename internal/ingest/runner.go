package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/stock-tracking-backend/internal/config"
	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
	"github.com/stock-tracking-backend/internal/platform/messaging/producers"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// Runner executes backfill jobs on a worker pool. A job walks the dates since
// the latest stored reporting date, one fetch and one insert batch per date,
// pacing iterations with a fixed delay. Iteration failures are recorded and
// skipped; only cancellation or exhaustion ends a run.
type Runner struct {
	logger *slog.Logger
	source Source
	shorts shortdata.Repository
	jobs   ingestjob.Repository
	events producers.MessagePublisher
	pool   *ants.Pool

	delay    time.Duration
	maxDates int

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

// Event is the per-iteration message published to the ingestion topic.
type Event struct {
	JobID string `json:"job_id"`
	Date  string `json:"date"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

func NewRunner(
	logger *slog.Logger,
	cfg *config.Config,
	source Source,
	shorts shortdata.Repository,
	jobs ingestjob.Repository,
	events producers.MessagePublisher,
) (*Runner, error) {
	pool, err := ants.NewPool(cfg.WorkerPool.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingestion worker pool: %w", err)
	}

	return &Runner{
		logger:   logger,
		source:   source,
		shorts:   shorts,
		jobs:     jobs,
		events:   events,
		pool:     pool,
		delay:    cfg.Ingestion.IterationDelay,
		maxDates: cfg.Ingestion.MaxDatesPerRun,
		cancels:  make(map[string]context.CancelFunc),
	}, nil
}

// Start anchors a new run on the latest stored reporting date and submits it
// to the pool. It returns as soon as the job record exists; the HTTP caller
// gets the job id while the loop keeps running on its own context.
func (r *Runner) Start(ctx context.Context) (*ingestjob.Job, error) {
	latest, err := r.shorts.LatestReportingDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, shared.NewRecordMissingData("no short-interest rows exist to anchor an incremental fetch from")
	}

	from := latest.AddDate(0, 0, 1)
	to := time.Now().UTC().Truncate(24 * time.Hour)
	if capped := from.AddDate(0, 0, r.maxDates-1); capped.Before(to) {
		to = capped
	}

	now := time.Now().UTC()
	job := &ingestjob.Job{
		ID:        uuid.NewString(),
		State:     ingestjob.StateRunning,
		FromDate:  from,
		ToDate:    to,
		StartedAt: now,
	}
	if err := r.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	// The run outlives the request; it gets its own cancellable context.
	runCtx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.cancels[job.ID] = cancel
	r.mu.Unlock()

	if err := r.pool.Submit(func() { r.run(runCtx, job) }); err != nil {
		r.forget(job.ID)
		return nil, fmt.Errorf("failed to submit ingestion job: %w", err)
	}

	r.logger.Info("Ingestion job started",
		"job_id", job.ID,
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"),
	)
	return job, nil
}

// Stop cancels a running job. Returns false when the id is not running.
func (r *Runner) Stop(jobID string) bool {
	r.mu.Lock()
	cancel, ok := r.cancels[jobID]
	r.mu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// Shutdown cancels every running job and releases the pool.
func (r *Runner) Shutdown() {
	r.mu.Lock()
	for _, cancel := range r.cancels {
		cancel()
	}
	r.mu.Unlock()
	r.pool.Release()
}

func (r *Runner) run(ctx context.Context, job *ingestjob.Job) {
	defer r.forget(job.ID)

	for date := job.FromDate; !date.After(job.ToDate); date = date.AddDate(0, 0, 1) {
		select {
		case <-ctx.Done():
			r.finish(job, ingestjob.StateCancelled)
			return
		default:
		}

		written, err := r.ingestDate(ctx, date)
		if err != nil {
			// One bad date never ends the run.
			job.Failures++
			job.LastError = err.Error()
			r.logger.Error("Ingestion iteration failed",
				"job_id", job.ID,
				"date", date.Format("2006-01-02"),
				"error", err,
			)
		} else {
			job.RowsWritten += written
		}
		job.DatesProcessed++

		r.publishEvent(ctx, job, date, written, err)
		if err := r.jobs.Update(ctx, job); err != nil {
			r.logger.Error("Failed to update ingestion job record", "job_id", job.ID, "error", err)
		}

		if date.Before(job.ToDate) {
			select {
			case <-ctx.Done():
				r.finish(job, ingestjob.StateCancelled)
				return
			case <-time.After(r.delay):
			}
		}
	}

	r.finish(job, ingestjob.StateCompleted)
}

// ingestDate runs one iteration: fetch the date's file, validate its rows and
// merge them one by one on the natural key, so re-ingesting a date updates
// the stored rows instead of tripping the unique index.
func (r *Runner) ingestDate(ctx context.Context, date time.Time) (int, error) {
	rows, err := r.source.FetchForDate(ctx, date)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	if report := validation.Validate(rows, shortdata.CreateRules); len(report) > 0 {
		return 0, shared.NewUnexpectedFile(
			fmt.Sprintf("file for %s failed validation on %d row(s)", date.Format("2006-01-02"), len(report)),
		)
	}

	now := time.Now().UTC()
	written := 0
	for _, row := range rows {
		target := make(map[string]any, len(shortdata.InsertColumns)+1)
		if err := sqlbuild.Project(row, shortdata.InsertColumns, target); err != nil {
			return written, err
		}
		shared.StampTouch(target, now)

		if _, err := r.shorts.Upsert(ctx, target); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (r *Runner) publishEvent(ctx context.Context, job *ingestjob.Job, date time.Time, rows int, iterErr error) {
	event := Event{
		JobID: job.ID,
		Date:  date.Format("2006-01-02"),
		Rows:  rows,
	}
	if iterErr != nil {
		event.Error = iterErr.Error()
	}

	key := fmt.Sprintf("%s/%s", job.ID, event.Date)
	if err := r.events.Publish(ctx, key, event); err != nil {
		r.logger.Error("Failed to publish ingestion event", "job_id", job.ID, "error", err)
	}
}

func (r *Runner) finish(job *ingestjob.Job, state string) {
	now := time.Now().UTC()
	job.State = state
	job.FinishedAt = &now

	// The run context may already be cancelled; the final update gets a fresh
	// short-lived one.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.jobs.Update(ctx, job); err != nil {
		r.logger.Error("Failed to record ingestion job completion", "job_id", job.ID, "error", err)
	}

	r.logger.Info("Ingestion job finished",
		"job_id", job.ID,
		"state", state,
		"dates", job.DatesProcessed,
		"rows", job.RowsWritten,
		"failures", job.Failures,
	)
}

func (r *Runner) forget(jobID string) {
	r.mu.Lock()
	delete(r.cancels, jobID)
	r.mu.Unlock()
}
