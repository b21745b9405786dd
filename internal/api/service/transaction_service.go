package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/domain/stock"
	"github.com/stock-tracking-backend/internal/domain/transaction"
	"github.com/stock-tracking-backend/internal/money"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// TransactionServiceImpl implements the TransactionService interface. Rows
// read back get their Price and Fees Money values assembled from the stored
// minor units via the currency registry.
type TransactionServiceImpl struct {
	transactionRepo transaction.Repository
	stockRepo       stock.Repository
	currencies      *money.Registry
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo transaction.Repository, stockRepo stock.Repository, currencies *money.Registry) TransactionService {
	return &TransactionServiceImpl{
		transactionRepo: transactionRepo,
		stockRepo:       stockRepo,
		currencies:      currencies,
	}
}

// List validates and normalizes the filter params, then queries matching
// transactions
func (s *TransactionServiceImpl) List(ctx context.Context, params map[string]any) ([]*transaction.Transaction, error) {
	if report := validation.ValidateOne(params, transaction.FilterRules); len(report) > 0 {
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
	dateParam(normalized, "start_date")
	dateParam(normalized, "end_date")

	txs, err := s.transactionRepo.List(ctx, normalized)
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if err := s.attachMoney(tx); err != nil {
			return nil, err
		}
	}
	return txs, nil
}

// Get retrieves one transaction by id
func (s *TransactionServiceImpl) Get(ctx context.Context, id string) (*transaction.Transaction, error) {
	parsed, err := validateIntKey(id, transaction.KeyRules)
	if err != nil {
		return nil, err
	}

	tx, err := s.transactionRepo.GetByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.NewRecordNotFound(fmt.Sprintf("transaction %d does not exist", parsed))
	}
	if err := s.attachMoney(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Create inserts a batch of transactions. Every referenced stock id is
// resolved first; a missing one aborts before anything is written.
func (s *TransactionServiceImpl) Create(ctx context.Context, items []map[string]any) ([]shared.UpsertResult, error) {
	if report := validation.Validate(items, transaction.CreateRules); len(report) > 0 {
		return nil, shared.NewInvalidRequest(report)
	}

	if err := s.resolveStockIDs(ctx, items); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]map[string]any, 0, len(items))
	for _, item := range items {
		row := make(map[string]any, len(transaction.InsertColumns)+2)
		if err := sqlbuild.Project(item, transaction.InsertColumns, row); err != nil {
			return nil, err
		}
		shared.StampCreate(row, now)
		rows = append(rows, row)
	}

	return s.transactionRepo.InsertBatch(ctx, rows)
}

// Upsert merges one transaction keyed on the path id
func (s *TransactionServiceImpl) Upsert(ctx context.Context, id string, item map[string]any) (shared.UpsertResult, error) {
	parsed, err := validateIntKey(id, transaction.KeyRules)
	if err != nil {
		return shared.UpsertResult{}, err
	}

	if report := validation.ValidateOne(item, transaction.CreateRules); len(report) > 0 {
		return shared.UpsertResult{}, shared.NewInvalidRequest(report)
	}
	if err := s.resolveStockIDs(ctx, []map[string]any{item}); err != nil {
		return shared.UpsertResult{}, err
	}

	row := make(map[string]any, len(transaction.InsertColumns)+1)
	if err := sqlbuild.Project(item, transaction.InsertColumns, row); err != nil {
		return shared.UpsertResult{}, err
	}
	shared.StampTouch(row, time.Now().UTC())

	return s.transactionRepo.Upsert(ctx, parsed, row)
}

// Delete removes a transaction by id. Deleting an absent id reports success
// as well; that response shape is pinned.
func (s *TransactionServiceImpl) Delete(ctx context.Context, id string) (shared.DeleteResult, error) {
	parsed, err := validateIntKey(id, transaction.KeyRules)
	if err != nil {
		return shared.DeleteResult{}, err
	}

	if err := s.transactionRepo.DeleteByID(ctx, parsed); err != nil {
		return shared.DeleteResult{}, err
	}
	return shared.DeleteResult{Key: strconv.FormatInt(parsed, 10), Status: "success"}, nil
}

// resolveStockIDs checks that every stock_id referenced by the items exists.
func (s *TransactionServiceImpl) resolveStockIDs(ctx context.Context, items []map[string]any) error {
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

func (s *TransactionServiceImpl) attachMoney(tx *transaction.Transaction) error {
	price, err := s.currencies.FromMinorUnits(tx.PriceUnits, tx.Currency)
	if err != nil {
		return err
	}
	fees, err := s.currencies.FromMinorUnits(tx.FeeUnits, tx.Currency)
	if err != nil {
		return err
	}
	tx.Price = price
	tx.Fees = fees
	return nil
}
