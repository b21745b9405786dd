package shortdata

import (
	"context"
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

// Repository defines short-interest persistence operations. Reads go through
// the short_reporting_w_stocks view so rows carry the joined stock name.
type Repository interface {
	List(ctx context.Context, params map[string]any) ([]*ShortData, error)

	// GetByID returns nil, nil when the id does not exist.
	GetByID(ctx context.Context, id int64) (*ShortData, error)

	// LatestReportingDate anchors incremental ingestion. Returns nil, nil when
	// the table is empty.
	LatestReportingDate(ctx context.Context) (*time.Time, error)

	InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error)

	// Upsert merges a projected row on the (reporting_date, ticker_no,
	// reporter_name) natural key.
	Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error)

	DeleteByID(ctx context.Context, id int64) error
}
