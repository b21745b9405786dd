package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/stock-tracking-backend/internal/domain/diary"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/sqlbuild"
)

const diarySelect = `SELECT id, stock_id, entry_date, title, body, created_datetime, last_modified_datetime FROM diary_entries`

// DiaryRepository implements diary.Repository for PostgreSQL.
type DiaryRepository struct {
	db     DB
	logger *slog.Logger
}

func NewDiaryRepository(logger *slog.Logger, db DB) diary.Repository {
	return &DiaryRepository{db: db, logger: logger}
}

func scanEntry(rows pgx.Rows) (*diary.Entry, error) {
	var e diary.Entry
	err := rows.Scan(&e.ID, &e.StockID, &e.EntryDate, &e.Title, &e.Body, &e.CreatedAt, &e.LastModified)
	return &e, err
}

func (r *DiaryRepository) List(ctx context.Context, params map[string]any) ([]*diary.Entry, error) {
	query := diarySelect
	if clause := sqlbuild.Where(sqlbuild.And, diary.FilterMappings, params); clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY entry_date, id"

	entries, err := queryRows(ctx, r.db, query, sqlbuild.Args(diary.FilterMappings, params), scanEntry)
	if err != nil {
		r.logger.Error("Failed to list diary entries", "error", err)
		return nil, fmt.Errorf("failed to list diary entries: %w", err)
	}
	return entries, nil
}

func (r *DiaryRepository) GetByID(ctx context.Context, id int64) (*diary.Entry, error) {
	query := diarySelect + ` WHERE id = $1`

	var e diary.Entry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.StockID, &e.EntryDate, &e.Title, &e.Body, &e.CreatedAt, &e.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get diary entry", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get diary entry: %w", err)
	}
	return &e, nil
}

func (r *DiaryRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	query := insertSQL("diary_entries", sqlbuild.Columns(diary.InsertColumns))

	results, err := insertBatch(ctx, r.db, query, rows)
	if err != nil {
		r.logger.Error("Failed to insert diary entries", "count", len(rows), "error", err)
		return nil, fmt.Errorf("failed to insert diary entries: %w", err)
	}
	return results, nil
}

func (r *DiaryRepository) Upsert(ctx context.Context, id int64, row map[string]any) (shared.UpsertResult, error) {
	cols := append([]string{"id"}, sqlbuild.Columns(diary.InsertColumns)...)
	query := upsertSQL("diary_entries", cols, []string{"id"})

	bound := make(map[string]any, len(row)+1)
	for k, v := range row {
		bound[k] = v
	}
	bound["id"] = id

	result, err := upsertRow(ctx, r.db, query, bound)
	if err != nil {
		r.logger.Error("Failed to upsert diary entry", "id", id, "error", err)
		return shared.UpsertResult{}, fmt.Errorf("failed to upsert diary entry: %w", err)
	}

	if err := syncIdentity(ctx, r.db, "diary_entries"); err != nil {
		r.logger.Error("Failed to sync diary entry id sequence", "id", id, "error", err)
		return shared.UpsertResult{}, err
	}
	return result, nil
}

func (r *DiaryRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM diary_entries WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete diary entry", "id", id, "error", err)
		return fmt.Errorf("failed to delete diary entry: %w", err)
	}
	return nil
}
