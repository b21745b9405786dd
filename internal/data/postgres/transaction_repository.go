package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/transaction"
	"github.com/stock-tracking-backend/internal/sqlbuild"
)

const transactionSelect = `SELECT id, stock_id, type, transaction_date, units, price, fees, currency, created_datetime, last_modified_datetime FROM stock_transactions`

// TransactionRepository implements transaction.Repository for PostgreSQL.
type TransactionRepository struct {
	db     DB
	logger *slog.Logger
}

func NewTransactionRepository(logger *slog.Logger, db DB) transaction.Repository {
	return &TransactionRepository{db: db, logger: logger}
}

func scanTransaction(rows pgx.Rows) (*transaction.Transaction, error) {
	var t transaction.Transaction
	err := rows.Scan(
		&t.ID, &t.StockID, &t.Type, &t.TransactionDate, &t.Units,
		&t.PriceUnits, &t.FeeUnits, &t.Currency, &t.CreatedAt, &t.LastModified,
	)
	return &t, err
}

func (r *TransactionRepository) List(ctx context.Context, params map[string]any) ([]*transaction.Transaction, error) {
	query := transactionSelect
	if clause := sqlbuild.Where(sqlbuild.And, transaction.FilterMappings, params); clause != "" {
		query += " WHERE " + clause
	}
	query += " ORDER BY transaction_date, id"

	transactions, err := queryRows(ctx, r.db, query, sqlbuild.Args(transaction.FilterMappings, params), scanTransaction)
	if err != nil {
		r.logger.Error("Failed to list transactions", "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := transactionSelect + ` WHERE id = $1`

	var t transaction.Transaction
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.StockID, &t.Type, &t.TransactionDate, &t.Units,
		&t.PriceUnits, &t.FeeUnits, &t.Currency, &t.CreatedAt, &t.LastModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get transaction", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	query := insertSQL("stock_transactions", sqlbuild.Columns(transaction.InsertColumns))

	results, err := insertBatch(ctx, r.db, query, rows)
	if err != nil {
		r.logger.Error("Failed to insert transactions", "count", len(rows), "error", err)
		return nil, fmt.Errorf("failed to insert transactions: %w", err)
	}
	return results, nil
}

func (r *TransactionRepository) Upsert(ctx context.Context, id int64, row map[string]any) (shared.UpsertResult, error) {
	cols := append([]string{"id"}, sqlbuild.Columns(transaction.InsertColumns)...)
	query := upsertSQL("stock_transactions", cols, []string{"id"})

	bound := make(map[string]any, len(row)+1)
	for k, v := range row {
		bound[k] = v
	}
	bound["id"] = id

	result, err := upsertRow(ctx, r.db, query, bound)
	if err != nil {
		r.logger.Error("Failed to upsert transaction", "id", id, "error", err)
		return shared.UpsertResult{}, fmt.Errorf("failed to upsert transaction: %w", err)
	}

	if err := syncIdentity(ctx, r.db, "stock_transactions"); err != nil {
		r.logger.Error("Failed to sync transaction id sequence", "id", id, "error", err)
		return shared.UpsertResult{}, err
	}
	return result, nil
}

func (r *TransactionRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM stock_transactions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete transaction", "id", id, "error", err)
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}
