package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
	"github.com/stock-tracking-backend/internal/sqlbuild"
)

// Reads go through the view so each row carries the joined stock name.
const shortSelect = `SELECT id, reporting_date, ticker_no, reporter_name, short_positions, short_ratio_bps, name, created_datetime, last_modified_datetime FROM short_reporting_w_stocks`

// ShortRepository implements shortdata.Repository for PostgreSQL.
type ShortRepository struct {
	db     DB
	logger *slog.Logger
}

func NewShortRepository(logger *slog.Logger, db DB) shortdata.Repository {
	return &ShortRepository{db: db, logger: logger}
}

func scanShort(rows pgx.Rows) (*shortdata.ShortData, error) {
	var s shortdata.ShortData
	err := rows.Scan(
		&s.ID, &s.ReportingDate, &s.TickerNo, &s.ReporterName,
		&s.ShortPositions, &s.ShortRatioBps, &s.StockName, &s.CreatedAt, &s.LastModified,
	)
	return &s, err
}

func (r *ShortRepository) List(ctx context.Context, params map[string]any) ([]*shortdata.ShortData, error) {
	query := shortSelect
	if clause := sqlbuild.Where(sqlbuild.And, shortdata.FilterMappings, params); clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY reporting_date, ticker_no, reporter_name"

	data, err := queryRows(ctx, r.db, query, sqlbuild.Args(shortdata.FilterMappings, params), scanShort)
	if err != nil {
		r.logger.Error("Failed to list short data", "error", err)
		return nil, fmt.Errorf("failed to list short data: %w", err)
	}
	return data, nil
}

func (r *ShortRepository) GetByID(ctx context.Context, id int64) (*shortdata.ShortData, error) {
	query := shortSelect + ` WHERE id = $1`

	var s shortdata.ShortData
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ReportingDate, &s.TickerNo, &s.ReporterName,
		&s.ShortPositions, &s.ShortRatioBps, &s.StockName, &s.CreatedAt, &s.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get short data", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get short data: %w", err)
	}
	return &s, nil
}

func (r *ShortRepository) LatestReportingDate(ctx context.Context) (*time.Time, error) {
	query := `SELECT MAX(reporting_date) FROM short_reporting`

	var latest *time.Time
	if err := r.db.QueryRow(ctx, query).Scan(&latest); err != nil {
		r.logger.Error("Failed to read latest reporting date", "error", err)
		return nil, fmt.Errorf("failed to read latest reporting date: %w", err)
	}
	return latest, nil
}

func (r *ShortRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	query := insertSQL("short_reporting", sqlbuild.Columns(shortdata.InsertColumns))

	results, err := insertBatch(ctx, r.db, query, rows)
	if err != nil {
		r.logger.Error("Failed to insert short data", "count", len(rows), "error", err)
		return nil, fmt.Errorf("failed to insert short data: %w", err)
	}
	return results, nil
}

func (r *ShortRepository) Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error) {
	query := upsertSQL("short_reporting", sqlbuild.Columns(shortdata.InsertColumns),
		[]string{"reporting_date", "ticker_no", "reporter_name"})

	result, err := upsertRow(ctx, r.db, query, row)
	if err != nil {
		r.logger.Error("Failed to upsert short data", "error", err)
		return shared.UpsertResult{}, fmt.Errorf("failed to upsert short data: %w", err)
	}
	return result, nil
}

func (r *ShortRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM short_reporting WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete short data", "id", id, "error", err)
		return fmt.Errorf("failed to delete short data: %w", err)
	}
	return nil
}
