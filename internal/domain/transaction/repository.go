package transaction

import (
	"context"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

// Repository defines stock-transaction persistence operations.
type Repository interface {
	List(ctx context.Context, params map[string]any) ([]*Transaction, error)

	// GetByID returns nil, nil when the id does not exist.
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error)

	// Upsert merges a projected row keyed on id.
	Upsert(ctx context.Context, id int64, row map[string]any) (shared.UpsertResult, error)

	DeleteByID(ctx context.Context, id int64) error
}
