package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stock-tracking-backend/internal/domain/shared"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	return mock
}

var stockColumns = []string{"id", "ticker_no", "name", "market", "is_active", "created_datetime", "last_modified_datetime"}

func TestStockRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("NoFilters", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectQuery(`SELECT id, ticker_no, name, market, is_active, created_datetime, last_modified_datetime FROM stocks ORDER BY ticker_no`).
			WillReturnRows(pgxmock.NewRows(stockColumns).
				AddRow(int64(1), "06758", "Sony Group", "TSE Prime", true, now, now).
				AddRow(int64(2), "07203", "Toyota Motor", "TSE Prime", true, now, now))

		stocks, err := repo.List(ctx, map[string]any{})

		require.NoError(t, err)
		require.Len(t, stocks, 2)
		assert.Equal(t, "06758", stocks[0].TickerNo)
		assert.Equal(t, "Toyota Motor", stocks[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FiltersBindInMappingOrder", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectQuery(`SELECT id, ticker_no, name, market, is_active, created_datetime, last_modified_datetime FROM stocks WHERE (ticker_no = $1) AND (name LIKE $2) ORDER BY ticker_no`).
			WithArgs("07203", "%Toyota%").
			WillReturnRows(pgxmock.NewRows(stockColumns).
				AddRow(int64(2), "07203", "Toyota Motor", "TSE Prime", true, now, now))

		stocks, err := repo.List(ctx, map[string]any{"ticker_no": "07203", "name": "%Toyota%"})

		require.NoError(t, err)
		require.Len(t, stocks, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("EmptyResultIsNotAnError", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectQuery(`SELECT id, ticker_no, name, market, is_active, created_datetime, last_modified_datetime FROM stocks ORDER BY ticker_no`).
			WillReturnRows(pgxmock.NewRows(stockColumns))

		stocks, err := repo.List(ctx, map[string]any{})

		assert.NoError(t, err)
		assert.Empty(t, stocks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStockRepository_GetByTicker(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	query := `SELECT id, ticker_no, name, market, is_active, created_datetime, last_modified_datetime FROM stocks WHERE ticker_no = $1`

	t.Run("Found", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectQuery(query).
			WithArgs("07203").
			WillReturnRows(pgxmock.NewRows(stockColumns).
				AddRow(int64(2), "07203", "Toyota Motor", "TSE Prime", true, now, now))

		st, err := repo.GetByTicker(ctx, "07203")

		require.NoError(t, err)
		require.NotNil(t, st)
		assert.Equal(t, int64(2), st.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AbsentIsNilNil", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectQuery(query).
			WithArgs("99999").
			WillReturnRows(pgxmock.NewRows(stockColumns))

		st, err := repo.GetByTicker(ctx, "99999")

		assert.NoError(t, err)
		assert.Nil(t, st)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStockRepository_InsertBatch(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	insert := `INSERT INTO stocks (ticker_no, name, market, is_active, created_datetime, last_modified_datetime) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	row := func(ticker, name string) map[string]any {
		return map[string]any{
			"ticker_no": ticker, "name": name, "market": "TSE Prime", "is_active": true,
			shared.ColCreated: now, shared.ColLastModified: now,
		}
	}

	t.Run("AllRowsInOneTransaction", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		mock.ExpectBegin()
		mock.ExpectQuery(insert).
			WithArgs("07203", "Toyota Motor", "TSE Prime", true, now, now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
		mock.ExpectQuery(insert).
			WithArgs("06758", "Sony Group", "TSE Prime", true, now, now).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))
		mock.ExpectCommit()

		results, err := repo.InsertBatch(ctx, []map[string]any{
			row("07203", "Toyota Motor"),
			row("06758", "Sony Group"),
		})

		require.NoError(t, err)
		assert.Equal(t, []shared.UpsertResult{{ID: 1, RowsAffected: 1}, {ID: 2, RowsAffected: 1}}, results)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("FailureRollsBackWholeBatch", func(t *testing.T) {
		mock := newMockPool(t)
		defer mock.Close()
		repo := &StockRepository{db: mock, logger: newTestLogger()}

		dbErr := errors.New("constraint violation")
		mock.ExpectBegin()
		mock.ExpectQuery(insert).
			WithArgs("07203", "Toyota Motor", "TSE Prime", true, now, now).
			WillReturnError(dbErr)
		mock.ExpectRollback()

		_, err := repo.InsertBatch(ctx, []map[string]any{row("07203", "Toyota Motor")})

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStockRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	// created_datetime binds to the last_modified placeholder and is absent
	// from the update arm, so it only lands on an actual insert.
	upsert := `INSERT INTO stocks (ticker_no, name, market, is_active, created_datetime, last_modified_datetime) VALUES ($1, $2, $3, $4, $5, $5) ON CONFLICT (ticker_no) DO UPDATE SET name = EXCLUDED.name, market = EXCLUDED.market, is_active = EXCLUDED.is_active, last_modified_datetime = EXCLUDED.last_modified_datetime RETURNING id`

	mock := newMockPool(t)
	defer mock.Close()
	repo := &StockRepository{db: mock, logger: newTestLogger()}

	mock.ExpectQuery(upsert).
		WithArgs("07203", "Toyota Motor", "TSE Prime", true, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))

	result, err := repo.Upsert(ctx, map[string]any{
		"ticker_no": "07203", "name": "Toyota Motor", "market": "TSE Prime", "is_active": true,
		shared.ColLastModified: now,
	})

	require.NoError(t, err)
	assert.Equal(t, shared.UpsertResult{ID: 2, RowsAffected: 1}, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepository_IDsExist(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	defer mock.Close()
	repo := &StockRepository{db: mock, logger: newTestLogger()}

	mock.ExpectQuery(`SELECT id FROM stocks WHERE id = ANY($1)`).
		WithArgs([]int64{1, 2, 3}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(3)))

	found, err := repo.IDsExist(ctx, []int64{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStockRepository_DeleteByTicker(t *testing.T) {
	ctx := context.Background()

	mock := newMockPool(t)
	defer mock.Close()
	repo := &StockRepository{db: mock, logger: newTestLogger()}

	// Deleting an absent code still succeeds: zero affected rows is fine.
	mock.ExpectExec(`DELETE FROM stocks WHERE ticker_no = $1`).
		WithArgs("99999").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.DeleteByTicker(ctx, "99999"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
