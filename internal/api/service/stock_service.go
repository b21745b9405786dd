package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// StockServiceImpl implements the StockService interface
type StockServiceImpl struct {
	stockRepo stock.Repository
}

// NewStockService creates a new stock service
func NewStockService(stockRepo stock.Repository) StockService {
	return &StockServiceImpl{
		stockRepo: stockRepo,
	}
}

// List validates and normalizes the filter params, then queries matching stocks
func (s *StockServiceImpl) List(ctx context.Context, params map[string]any) ([]*stock.Stock, error) {
	if report := validation.ValidateOne(params, stock.FilterRules); len(report) > 0 {
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
	if raw, ok := normalized["name"].(string); ok {
		normalized["name"] = "%" + raw + "%"
	}

	return s.stockRepo.List(ctx, normalized)
}

// Get retrieves one stock by ticker code
func (s *StockServiceImpl) Get(ctx context.Context, tickerNo string) (*stock.Stock, error) {
	code, err := s.validateKey(tickerNo)
	if err != nil {
		return nil, err
	}

	st, err := s.stockRepo.GetByTicker(ctx, code)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, shared.NewRecordNotFound(fmt.Sprintf("stock %s does not exist", code))
	}
	return st, nil
}

// Create inserts a batch of stocks, rejecting duplicate ticker codes before
// anything is written
func (s *StockServiceImpl) Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error) {
	if report := validation.Validate(items, stock.CreateRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	now := time.Now().UTC()
	seen := make(map[string]bool, len(items))
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := make(map[string]any, len(stock.InsertColumns)+2)
		if err := sqlbuild.Project(item, stock.InsertColumns, row); err != nil {
			return nil, err
		}

		code, _ := row["ticker_no"].(string)
		if seen[code] {
			return nil, shared.NewDuplicateFound(fmt.Sprintf("stock %s appears more than once in the batch", code))
		}
		seen[code] = true

		existing, err := s.stockRepo.GetByTicker(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDuplicateFound(fmt.Sprintf("stock %s already exists", code))
		}

		shared.StampCreate(row, now)
		rows = append(rows, row)
	}

	return s.stockRepo.InsertBatch(ctx, rows)
}

// Upsert merges one stock keyed on the path ticker code. The path key wins
// over any ticker_no carried in the body.
func (s *StockServiceImpl) Upsert(ctx context.Context, tickerNo string, item map[string]any) (shared.UpsertResult, error) {
	doc := make(map[string]any, len(item)+1)
	for k, v := range item {
		doc[k] = v
	}
	doc["ticker_no"] = tickerNo

	if report := validation.ValidateOne(doc, stock.CreateRules); len(report) > 0 {
		return shared.UpsertResult{}, shared.NewInvalidRequest(report)
	}

	row := make(map[string]any, len(stock.InsertColumns)+1)
	if err := sqlbuild.Project(doc, stock.InsertColumns, row); err != nil {
		return shared.UpsertResult{}, err
	}
	shared.StampTouch(row, time.Now().UTC())

	return s.stockRepo.Upsert(ctx, row)
}

// Delete removes a stock by ticker code. Deleting an absent code reports
// success as well; that response shape is pinned.
func (s *StockServiceImpl) Delete(ctx context.Context, tickerNo string) (shared.DeleteResult, error) {
	code, err := s.validateKey(tickerNo)
	if err != nil {
		return shared.DeleteResult{}, err
	}

	if err := s.stockRepo.DeleteByTicker(ctx, code); err != nil {
		return shared.DeleteResult{}, err
	}
	return shared.DeleteResult{Key: code, Status: "success"}, nil
}

func (s *StockServiceImpl) validateKey(tickerNo string) (string, error) {
	key := map[string]any{"ticker_no": tickerNo}
	if report := validation.ValidateOne(key, stock.KeyRules); len(report) > 0 {
		return "", shared.NewInvalidRequest(report)
	}
	return shared.ToTicker(tickerNo)
}
