package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/stock-tracking-backend/internal/domain/diary"
	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/domain/transaction"
)

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) List(ctx context.Context, params map[string]any) ([]*stock.Stock, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stock.Stock), args.Error(1)
}

func (m *MockStockRepository) GetByTicker(ctx context.Context, tickerNo string) (*stock.Stock, error) {
	args := m.Called(ctx, tickerNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Stock), args.Error(1)
}

func (m *MockStockRepository) IDsExist(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockStockRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.UpsertResult), args.Error(1)
}

func (m *MockStockRepository) Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error) {
	args := m.Called(ctx, row)
	return args.Get(0).(shared.UpsertResult), args.Error(1)
}

func (m *MockStockRepository) DeleteByTicker(ctx context.Context, tickerNo string) error {
	args := m.Called(ctx, tickerNo)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) List(ctx context.Context, params map[string]any) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.UpsertResult), args.Error(1)
}

func (m *MockTransactionRepository) Upsert(ctx context.Context, id int64, row map[string]any) (shared.UpsertResult, error) {
	args := m.Called(ctx, id, row)
	return args.Get(0).(shared.UpsertResult), args.Error(1)
}

func (m *MockTransactionRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockShortDataRepository struct {
	mock.Mock
}

func (m *MockShortDataRepository) List(ctx context.Context, params map[string]any) ([]*shortdata.ShortData, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shortdata.ShortData), args.Error(1)
}

func (m *MockShortDataRepository) GetByID(ctx context.Context, id int64) (*shortdata.ShortData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shortdata.ShortData), args.Error(1)
}

func (m *MockShortDataRepository) LatestReportingDate(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockShortDataRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.UpsertResult), args.Error(1)
}

func (m *MockShortDataRepository) Upsert(ctx context.Context, row map[string]any) (shared.UpsertResult, error) {
	args := m.Called(ctx, row)
	return args.Get(0).(shared.UpsertResult), args.Error(1)
}

func (m *MockShortDataRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) List(ctx context.Context, params map[string]any) ([]*diary.Entry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*diary.Entry), args.Error(1)
}

func (m *MockDiaryRepository) GetByID(ctx context.Context, id int64) (*diary.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*diary.Entry), args.Error(1)
}

func (m *MockDiaryRepository) InsertBatch(ctx context.Context, rows []map[string]any) ([]shared.UpsertResult, error) {
	args := m.Called(ctx, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.UpsertResult), args.Error(1)
}

func (m *MockDiaryRepository) Upsert(ctx context.Context, id int64, row map[string]any) (shared.UpsertResult, error) {
	args := m.Called(ctx, id, row)
	return args.Get(0).(shared.UpsertResult), args.Error(1)
}

func (m *MockDiaryRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *ingestjob.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, job *ingestjob.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id string) (*ingestjob.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestjob.Job), args.Error(1)
}

type MockIngestionRunner struct {
	mock.Mock
}

func (m *MockIngestionRunner) Start(ctx context.Context) (*ingestjob.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestjob.Job), args.Error(1)
}

func (m *MockIngestionRunner) Stop(jobID string) bool {
	args := m.Called(jobID)
	return args.Bool(0)
}
