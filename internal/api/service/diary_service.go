package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stock-tracking-backend/internal/domain/diary"
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// DiaryServiceImpl implements the DiaryService interface
type DiaryServiceImpl struct {
	diaryRepo diary.Repository
	stockRepo stock.Repository
}

// NewDiaryService creates a new diary-entry service
func NewDiaryService(diaryRepo diary.Repository, stockRepo stock.Repository) DiaryService {
	return &DiaryServiceImpl{
		diaryRepo: diaryRepo,
		stockRepo: stockRepo,
	}
}

// List validates and normalizes the filter params, then queries matching
// diary entries
func (s *DiaryServiceImpl) List(ctx context.Context, params map[string]any) ([]*diary.Entry, error) {
	if report := validation.ValidateOne(params, diary.FilterRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	normalized := make(map[string]any, len(params))
	for k, v := range params {
		normalized[k] = v
	}
	if raw, ok := normalized["stock_id"]; ok {
		id, err := shared.ToInt64(raw)
		if err != nil {
			return nil, err
		}
		normalized["stock_id"] = id
	}
	if raw, ok := normalized["text"].(string); ok {
		normalized["text"] = "%" + raw + "%"
	}
	dateParam(normalized, "start_date")
	dateParam(normalized, "end_date")

	return s.diaryRepo.List(ctx, normalized)
}

// Get retrieves one diary entry by id
func (s *DiaryServiceImpl) Get(ctx context.Context, id string) (*diary.Entry, error) {
	parsed, err := validateIntKey(id, diary.KeyRules)
	if err != nil {
		return nil, err
	}

	entry, err := s.diaryRepo.GetByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, shared.NewRecordNotFound(fmt.Sprintf("diary entry %d does not exist", parsed))
	}
	return entry, nil
}

// Create inserts a batch of diary entries after resolving their stock ids
func (s *DiaryServiceImpl) Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error) {
	if report := validation.Validate(items, diary.CreateRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	if err := s.resolveStockIDs(ctx, items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := make(map[string]any, len(diary.InsertColumns)+2)
		if err := sqlbuild.Project(item, diary.InsertColumns, row); err != nil {
			return nil, err
		}
		shared.StampCreate(row, now)
		rows = append(rows, row)
	}

	return s.diaryRepo.InsertBatch(ctx, rows)
}

// Upsert merges one diary entry keyed on the path id
func (s *DiaryServiceImpl) Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error) {
	parsed, err := validateIntKey(id, diary.KeyRules)
	if err != nil {
		return shared.UpsertResult{}, err
	}

	if report := validation.ValidateOne(item, diary.CreateRules); len(report) > 0 {
		return shared.UpsertResult{}, shared.NewInvalidRequest(report)
	}
	if err := s.resolveStockIDs(ctx, []map[string]any{item}); err != nil {
		return shared.UpsertResult{}, err
	}

	row := make(map[string]any, len(diary.InsertColumns)+1)
	if err := sqlbuild.Project(item, diary.InsertColumns, row); err != nil {
		return shared.UpsertResult{}, err
	}
	shared.StampTouch(row, time.Now().UTC())

	return s.diaryRepo.Upsert(ctx, parsed, row)
}

// Delete removes a diary entry by id. Deleting an absent id reports success
// as well; that response shape is pinned.
func (s *DiaryServiceImpl) Delete(ctx context.Context, id string) (shared.DeleteResult, error) {
	parsed, err := validateIntKey(id, diary.KeyRules)
	if err != nil {
		return shared.DeleteResult{}, err
	}

	if err := s.diaryRepo.DeleteByID(ctx, parsed); err != nil {
		return shared.DeleteResult{}, err
	}
	return shared.DeleteResult{Key: strconv.FormatInt(parsed, 10), Status: "success"}, nil
}

func (s *DiaryServiceImpl) resolveStockIDs(ctx context.Context, items []map[string]any) error {
	wanted := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := shared.ToInt64(item["stock_id"])
		if err != nil {
			return err
		}
		if !wanted[id] {
			wanted[id] = true
			ids = append(ids, id)
		}
	}

	found, err := s.stockRepo.IDsExist(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range found {
		delete(wanted, id)
	}
	if len(wanted) > 0 {
		missing := make([]int64, 0, len(wanted))
		for id := range wanted {
			missing = append(missing, id)
		}
		return shared.NewRecordNotFound(fmt.Sprintf("stock id(s) %v do not exist", missing))
	}
	return nil
}
