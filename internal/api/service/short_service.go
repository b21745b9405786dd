package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// ShortDataServiceImpl implements the ShortDataService interface
type ShortDataServiceImpl struct {
	shortRepo shortdata.Repository
}

// NewShortDataService creates a new short-interest service
func NewShortDataService(shortRepo shortdata.Repository) ShortDataService {
	return &ShortDataServiceImpl{
		shortRepo: shortRepo,
	}
}

// List validates and normalizes the filter params, then queries matching
// short-interest rows
func (s *ShortDataServiceImpl) List(ctx context.Context, params map[string]any) ([]*shortdata.ShortData, error) {
	if report := validation.ValidateOne(params, shortdata.FilterRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	normalized := make(map[string]any, len(params))
	for k, v := range params {
		normalized[k] = v
	}
	if raw, ok := normalized["ticker_no"]; ok {
		code, err := shared.ToTicker(raw)
		if err != nil {
			return nil, err
		}
		normalized["ticker_no"] = code
	}
	if raw, ok := normalized["reporter_name"].(string); ok {
		normalized["reporter_name"] = "%" + raw + "%"
	}
	dateParam(normalized, "start_date")
	dateParam(normalized, "end_date")

	return s.shortRepo.List(ctx, normalized)
}

// Get retrieves one short-interest row by id
func (s *ShortDataServiceImpl) Get(ctx context.Context, id string) (*shortdata.ShortData, error) {
	parsed, err := validateIntKey(id, shortdata.KeyRules)
	if err != nil {
		return nil, err
	}

	row, err := s.shortRepo.GetByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, shared.NewRecordNotFound(fmt.Sprintf("short-interest row %d does not exist", parsed))
	}
	return row, nil
}

// Create inserts a batch of short-interest rows
func (s *ShortDataServiceImpl) Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error) {
	if report := validation.Validate(items, shortdata.CreateRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	now := time.Now().UTC()
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := make(map[string]any, len(shortdata.InsertColumns)+2)
		if err := sqlbuild.Project(item, shortdata.InsertColumns, row); err != nil {
			return nil, err
		}
		shared.StampCreate(row, now)
		rows = append(rows, row)
	}

	return s.shortRepo.InsertBatch(ctx, rows)
}

// Upsert merges one row on its (reporting_date, ticker_no, reporter_name)
// natural key. The path id is validated for route uniformity but the merge
// target comes from the body.
func (s *ShortDataServiceImpl) Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error) {
	if _, err := validateIntKey(id, shortdata.KeyRules); err != nil {
		return shared.UpsertResult{}, err
	}

	if report := validation.ValidateOne(item, shortdata.CreateRules); len(report) > 0 {
		return shared.UpsertResult{}, shared.NewInvalidRequest(report)
	}

	row := make(map[string]any, len(shortdata.InsertColumns)+1)
	if err := sqlbuild.Project(item, shortdata.InsertColumns, row); err != nil {
		return shared.UpsertResult{}, err
	}
	shared.StampTouch(row, time.Now().UTC())

	return s.shortRepo.Upsert(ctx, row)
}

// Delete removes a short-interest row by id. Deleting an absent id reports
// success as well; that response shape is pinned.
func (s *ShortDataServiceImpl) Delete(ctx context.Context, id string) (shared.DeleteResult, error) {
	parsed, err := validateIntKey(id, shortdata.KeyRules)
	if err != nil {
		return shared.DeleteResult{}, err
	}

	if err := s.shortRepo.DeleteByID(ctx, parsed); err != nil {
		return shared.DeleteResult{}, err
	}
	return shared.DeleteResult{Key: strconv.FormatInt(parsed, 10), Status: "success"}, nil
}
