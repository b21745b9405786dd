// Package diary defines free-text diary entries linked to stocks.
package diary

import (
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// Entry is one row of the diary_entries table.
type Entry struct {
	ID           int64     `json:"id"`
	StockID      int64     `json:"stock_id"`
	EntryDate    time.Time `json:"entry_date"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_datetime"`
	LastModified time.Time `json:"last_modified_datetime"`
}

// FilterMappings whitelists the list-endpoint query parameters.
var FilterMappings = []sqlbuild.FieldMapping{
	{Param: "stock_id", Column: "stock_id", Operator: sqlbuild.OpEqual},
	{Param: "text", Column: "body", Operator: sqlbuild.OpLike},
	{Param: "start_date", Column: "entry_date", Operator: sqlbuild.OpGTE},
	{Param: "end_date", Column: "entry_date", Operator: sqlbuild.OpLTE},
}

// InsertColumns whitelists the body fields persisted on create and upsert.
var InsertColumns = []sqlbuild.ColumnMapping{
	sqlbuild.ColFn("stock_id", shared.IntColumn),
	sqlbuild.ColFn("entry_date", shared.DateColumn),
	sqlbuild.ColFn("title", shared.WithDefault("", shared.TextColumn)),
	sqlbuild.Col("body"),
}

// CreateRules validates create/upsert bodies.
var CreateRules = []validation.Rule{
	validation.PositiveInteger("stock_id", true),
	validation.ISODate("entry_date", true),
	validation.StringMaxLen("title", false, 255),
	validation.NonEmptyString("body", true),
}

// FilterRules validates list-endpoint query parameters.
var FilterRules = []validation.Rule{
	validation.PositiveInteger("stock_id", false),
	validation.NonEmptyString("text", false),
	validation.ISODate("start_date", false),
	validation.ISODate("end_date", false),
}

// KeyRules validates the path key of get/upsert/delete.
var KeyRules = []validation.Rule{
	validation.PositiveInteger("id", true),
}
