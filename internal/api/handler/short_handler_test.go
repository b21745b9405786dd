package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
)

type MockShortDataService struct {
	mock.Mock
}

func (m *MockShortDataService) List(ctx context.Context, params map[string]any) ([]*shortdata.ShortData, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shortdata.ShortData), args.Error(1)
}

func (m *MockShortDataService) Get(ctx context.Context, id string) (*shortdata.ShortData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shortdata.ShortData), args.Error(1)
}

func (m *MockShortDataService) Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.UpsertResult), args.Error(1)
}

func (m *MockShortDataService) Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error) {
	args := m.Called(ctx, id, item)
	return args.Get(0).(shared.UpsertResult), args.Error(1)
}

func (m *MockShortDataService) Delete(ctx context.Context, id string) (shared.DeleteResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(shared.DeleteResult), args.Error(1)
}

type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) Start(ctx context.Context) (*ingestjob.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestjob.Job), args.Error(1)
}

func (m *MockIngestionService) Status(ctx context.Context, id string) (*ingestjob.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ingestjob.Job), args.Error(1)
}

func (m *MockIngestionService) Cancel(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func TestShortHandler_StartIngestion(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("AcknowledgesWithJobRecord", func(t *testing.T) {
		mockShorts := new(MockShortDataService)
		mockIngestion := new(MockIngestionService)
		handler := NewShortHandler(logger, mockShorts, mockIngestion)

		job := &ingestjob.Job{
			ID:        "job-1",
			State:     ingestjob.StateRunning,
			StartedAt: time.Now().UTC(),
		}
		mockIngestion.On("Start", mock.Anything).Return(job, nil).Once()

		router := setupTestRouter()
		router.POST("/short/retrieve-from-source", handler.StartIngestion)

		req, _ := http.NewRequest(http.MethodPost, "/short/retrieve-from-source", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Contains(t, rr.Body.String(), `"id":"job-1"`)
		mockIngestion.AssertExpectations(t)
	})

	t.Run("NoAnchorDateIs422", func(t *testing.T) {
		mockShorts := new(MockShortDataService)
		mockIngestion := new(MockIngestionService)
		handler := NewShortHandler(logger, mockShorts, mockIngestion)

		mockIngestion.On("Start", mock.Anything).
			Return(nil, shared.NewRecordMissingData("no short-interest rows exist to anchor an incremental fetch from")).Once()

		router := setupTestRouter()
		router.POST("/short/retrieve-from-source", handler.StartIngestion)

		req, _ := http.NewRequest(http.MethodPost, "/short/retrieve-from-source", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var response Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		require.NotNil(t, response.Error)
		assert.Equal(t, "RECORD_MISSING_DATA", response.Error.Code)
		mockIngestion.AssertExpectations(t)
	})
}

func TestShortHandler_IngestionStatus(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("UnknownJobIs404", func(t *testing.T) {
		mockShorts := new(MockShortDataService)
		mockIngestion := new(MockIngestionService)
		handler := NewShortHandler(logger, mockShorts, mockIngestion)

		mockIngestion.On("Status", mock.Anything, "missing").
			Return(nil, shared.NewRecordNotFound("ingestion job missing does not exist")).Once()

		router := setupTestRouter()
		router.GET("/short/retrieve-from-source/:id", handler.IngestionStatus)

		req, _ := http.NewRequest(http.MethodGet, "/short/retrieve-from-source/missing", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockIngestion.AssertExpectations(t)
	})
}

func TestShortHandler_CancelIngestion(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("RunningJobIsCancelled", func(t *testing.T) {
		mockShorts := new(MockShortDataService)
		mockIngestion := new(MockIngestionService)
		handler := NewShortHandler(logger, mockShorts, mockIngestion)

		mockIngestion.On("Cancel", "job-1").Return(true).Once()

		router := setupTestRouter()
		router.DELETE("/short/retrieve-from-source/:id", handler.CancelIngestion)

		req, _ := http.NewRequest(http.MethodDelete, "/short/retrieve-from-source/job-1", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		mockIngestion.AssertExpectations(t)
	})

	t.Run("NotRunningIs404", func(t *testing.T) {
		mockShorts := new(MockShortDataService)
		mockIngestion := new(MockIngestionService)
		handler := NewShortHandler(logger, mockShorts, mockIngestion)

		mockIngestion.On("Cancel", "done").Return(false).Once()

		router := setupTestRouter()
		router.DELETE("/short/retrieve-from-source/:id", handler.CancelIngestion)

		req, _ := http.NewRequest(http.MethodDelete, "/short/retrieve-from-source/done", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockIngestion.AssertExpectations(t)
	})
}

func TestShortHandler_UnexpectedFileIs502(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	mockShorts := new(MockShortDataService)
	mockIngestion := new(MockIngestionService)
	handler := NewShortHandler(logger, mockShorts, mockIngestion)

	mockShorts.On("Get", mock.Anything, "1").
		Return(nil, shared.NewUnexpectedFile("file for 2024-03-15 failed validation on 2 row(s)")).Once()

	router := setupTestRouter()
	router.GET("/short/:id", handler.GetByID)

	req, _ := http.NewRequest(http.MethodGet, "/short/1", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	mockShorts.AssertExpectations(t)
}
