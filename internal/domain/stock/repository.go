package stock

import (
	"context"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

// Repository defines stock persistence operations.
type Repository interface {
	// List returns the stocks matching the whitelisted filter params. An empty
	// result is success, not an error.
	List(ctx context.Context, params map[string]any) ([]*Stock, error)

	// GetByTicker returns nil, nil when no stock carries the code.
	GetByTicker(ctx context.Context, tickerNo string) (*Stock, error)

	// IDsExist returns the subset of ids that exist, for FK resolution.
	IDsExist(ctx context.Context, ids []int64) ([]int64, error)

	// InsertBatch inserts projected rows in one transaction.
	InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error)

	// Upsert merges a projected row keyed on ticker_no.
	Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error)

	// DeleteByTicker removes a stock; deleting an absent code is not an error.
	DeleteByTicker(ctx context.Context, tickerNo string) error
}
