// Package transaction defines buy/sell/dividend events against a stock.
// Prices and fees are stored as integer minor units next to their ISO
// currency code; the service layer recovers exact Money values from them.
package transaction

import (
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/money"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// Transaction types.
const (
	TypeBuy      = "BUY"
	TypeSell     = "SELL"
	TypeDividend = "DIVIDEND"
)

// Transaction is one row of the stock_transactions table. Price and Fees are
// assembled from the stored minor units when the row is read back.
type Transaction struct {
	ID              int64       `json:"id"`
	StockID         int64       `json:"stock_id"`
	Type            string      `json:"type"`
	TransactionDate time.Time   `json:"transaction_date"`
	Units           int64       `json:"units"`
	PriceUnits      int64       `json:"price"`
	FeeUnits        int64       `json:"fees"`
	Currency        string      `json:"currency"`
	Price           money.Money `json:"-"`
	Fees            money.Money `json:"-"`
	CreatedAt       time.Time   `json:"created_datetime"`
	LastModified    time.Time   `json:"last_modified_datetime"`
}

// FilterMappings whitelists the list-endpoint query parameters.
var FilterMappings = []sqlbuild.FieldMapping{
	{Param: "stock_id", Column: "stock_id", Operator: sqlbuild.OpEqual},
	{Param: "type", Column: "type", Operator: sqlbuild.OpEqual},
	{Param: "start_date", Column: "transaction_date", Operator: sqlbuild.OpGTE},
	{Param: "end_date", Column: "transaction_date", Operator: sqlbuild.OpLTE},
}

// InsertColumns whitelists the body fields persisted on create and upsert.
var InsertColumns = []sqlbuild.ColumnMapping{
	sqlbuild.ColFn("stock_id", shared.IntColumn),
	sqlbuild.Col("type"),
	sqlbuild.ColFn("transaction_date", shared.DateColumn),
	sqlbuild.ColFn("units", shared.IntColumn),
	sqlbuild.ColFn("price", shared.IntColumn),
	sqlbuild.ColFn("fees", shared.WithDefault(int64(0), shared.IntColumn)),
	sqlbuild.Col("currency"),
}

// CreateRules validates create/upsert bodies. Price and fees arrive as
// integer minor units, never floating amounts.
var CreateRules = []validation.Rule{
	validation.PositiveInteger("stock_id", true),
	validation.OneOf("type", true, TypeBuy, TypeSell, TypeDividend),
	validation.ISODate("transaction_date", true),
	validation.PositiveInteger("units", true),
	validation.NonNegativeInteger("price", true),
	validation.NonNegativeInteger("fees", false),
	validation.CurrencyCode("currency", true),
}

// FilterRules validates list-endpoint query parameters.
var FilterRules = []validation.Rule{
	validation.PositiveInteger("stock_id", false),
	validation.OneOf("type", false, TypeBuy, TypeSell, TypeDividend),
	validation.ISODate("start_date", false),
	validation.ISODate("end_date", false),
}

// KeyRules validates the path key of get/upsert/delete.
var KeyRules = []validation.Rule{
	validation.PositiveInteger("id", true),
}
