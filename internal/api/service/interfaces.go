package service

import (
	"context"

	"github.com/stock-tracking-backend/internal/domain/diary"
	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/domain/transaction"
)

// StockService defines the interface for stock operations. Keys arrive as the
// raw path strings; validation and normalization happen inside the service.
type StockService interface {
	// List returns the stocks matching the whitelisted filter params.
	// An empty result is success, not an error.
	List(ctx context.Context, params map[string]any) ([]*stock.Stock, error)

	// Get retrieves a stock by ticker code, zero-padding short input.
	// Returns a RecordNotFound error when the code is unknown.
	Get(ctx context.Context, tickerNo string) (*stock.Stock, error)

	// Create inserts a batch of new stocks. A duplicate ticker code, in the
	// batch or in the table, aborts before anything is written.
	Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error)

	// Upsert merges one stock keyed on the path ticker code.
	Upsert(ctx context.Context, tickerNo string, item map[string]any) (shared.UpsertResult, error)

	// Delete removes a stock. Deleting an absent code still reports success.
	Delete(ctx context.Context, tickerNo string) (shared.DeleteResult, error)
}

// TransactionService defines the interface for stock-transaction operations.
type TransactionService interface {
	List(ctx context.Context, params map[string]any) ([]*transaction.Transaction, error)

	Get(ctx context.Context, id string) (*transaction.Transaction, error)

	// Create inserts a batch of new transactions. Every referenced stock id
	// must exist; a missing one aborts before anything is written.
	Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error)

	Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error)

	Delete(ctx context.Context, id string) (shared.DeleteResult, error)
}

// ShortDataService defines the interface for short-interest reporting rows.
type ShortDataService interface {
	List(ctx context.Context, params map[string]any) ([]*shortdata.ShortData, error)

	Get(ctx context.Context, id string) (*shortdata.ShortData, error)

	Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error)

	// Upsert merges on the (reporting_date, ticker_no, reporter_name) natural
	// key carried in the body; the path id only names the request.
	Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error)

	Delete(ctx context.Context, id string) (shared.DeleteResult, error)
}

// DiaryService defines the interface for diary-entry operations.
type DiaryService interface {
	List(ctx context.Context, params map[string]any) ([]*diary.Entry, error)

	Get(ctx context.Context, id string) (*diary.Entry, error)

	// Create inserts a batch of new entries after resolving their stock ids.
	Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error)

	Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error)

	Delete(ctx context.Context, id string) (shared.DeleteResult, error)
}

// IngestionService starts and inspects background short-interest ingestion
// runs. Start returns as soon as the job record exists; the run itself is
// fire-and-forget.
type IngestionService interface {
	Start(ctx context.Context) (*ingestjob.Job, error)

	// Status returns a RecordNotFound error for unknown job ids.
	Status(ctx context.Context, id string) (*ingestjob.Job, error)

	// Cancel stops a running job. Returns false when the id is not running.
	Cancel(id string) bool
}
