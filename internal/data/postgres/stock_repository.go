package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/sqlbuild"
)

const stockSelect = `SELECT id, ticker_no, name, market, is_active, created_datetime, last_modified_datetime FROM stocks`

// StockRepository implements stock.Repository for PostgreSQL.
type StockRepository struct {
	db     DB
	logger *slog.Logger
}

func NewStockRepository(logger *slog.Logger, db DB) stock.Repository {
	return &StockRepository{db: db, logger: logger}
}

func scanStock(rows pgx.Rows) (*stock.Stock, error) {
	var s stock.Stock
	err := rows.Scan(&s.ID, &s.TickerNo, &s.Name, &s.Market, &s.IsActive, &s.CreatedAt, &s.LastModified)
	return &s, err
}

func (r *StockRepository) List(ctx context.Context, params map[string]any) ([]*stock.Stock, error) {
	query := stockSelect
	if clause := sqlbuild.Where(sqlbuild.And, stock.FilterMappings, params); clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY ticker_no"

	stocks, err := queryRows(ctx, r.db, query, sqlbuild.Args(stock.FilterMappings, params), scanStock)
	if err != nil {
		r.logger.Error("Failed to list stocks", "error", err)
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	return stocks, nil
}

func (r *StockRepository) GetByTicker(ctx context.Context, tickerNo string) (*stock.Stock, error) {
	query := stockSelect + ` WHERE ticker_no = $1`

	var s stock.Stock
	err := r.db.QueryRow(ctx, query, tickerNo).Scan(
		&s.ID, &s.TickerNo, &s.Name, &s.Market, &s.IsActive, &s.CreatedAt, &s.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get stock", "ticker_no", tickerNo, "error", err)
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}
	return &s, nil
}

func (r *StockRepository) IDsExist(ctx context.Context, ids []int64) ([]int64, error) {
	query := `SELECT id FROM stocks WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error("Failed to resolve stock ids", "error", err)
		return nil, fmt.Errorf("failed to resolve stock ids: %w", err)
	}
	defer rows.Close()

	var found []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

func (r *StockRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	query := insertSQL("stocks", sqlbuild.Columns(stock.InsertColumns))

	results, err := insertBatch(ctx, r.db, query, rows)
	if err != nil {
		r.logger.Error("Failed to insert stocks", "count", len(rows), "error", err)
		return nil, fmt.Errorf("failed to insert stocks: %w", err)
	}
	return results, nil
}

func (r *StockRepository) Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error) {
	query := upsertSQL("stocks", sqlbuild.Columns(stock.InsertColumns), []string{"ticker_no"})

	result, err := upsertRow(ctx, r.db, query, row)
	if err != nil {
		r.logger.Error("Failed to upsert stock", "error", err)
		return shared.UpsertResult{}, fmt.Errorf("failed to upsert stock: %w", err)
	}
	return result, nil
}

func (r *StockRepository) DeleteByTicker(ctx context.Context, tickerNo string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM stocks WHERE ticker_no = $1`, tickerNo)
	if err != nil {
		r.logger.Error("Failed to delete stock", "ticker_no", tickerNo, "error", err)
		return fmt.Errorf("failed to delete stock: %w", err)
	}
	return nil
}
