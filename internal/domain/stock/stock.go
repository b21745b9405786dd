// Package stock defines the listed-security entity: its record shape, the
// whitelisted filter and projection mappings, and the validation rule sets the
// service applies before any SQL is built.
package stock

import (
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// Stock is one row of the stocks table. TickerNo is the natural key: a
// 5-character zero-padded exchange security code. IsActive distinguishes the
// current listing from superseded ones under the same code.
type Stock struct {
	ID           int64     `json:"id"`
	TickerNo     string    `json:"ticker_no"`
	Name         string    `json:"name"`
	Market       string    `json:"market"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_datetime"`
	LastModified time.Time `json:"last_modified_datetime"`
}

// FilterMappings whitelists the list-endpoint query parameters. Clause order
// follows this list.
var FilterMappings = []sqlbuild.FieldMapping{
	{Param: "ticker_no", Column: "ticker_no", Operator: sqlbuild.OpEqual},
	{Param: "name", Column: "name", Operator: sqlbuild.OpLike},
	{Param: "is_active", Column: "is_active", Operator: sqlbuild.OpEqual},
}

// InsertColumns whitelists the body fields persisted on create and upsert.
var InsertColumns = []sqlbuild.ColumnMapping{
	sqlbuild.ColFn("ticker_no", shared.TickerColumn),
	sqlbuild.Col("name"),
	sqlbuild.ColFn("market", shared.WithDefault("", shared.TextColumn)),
	sqlbuild.ColFn("is_active", shared.WithDefault(true, shared.BoolColumn)),
}

// CreateRules validates create/upsert bodies.
var CreateRules = []validation.Rule{
	validation.TickerCode("ticker_no", true),
	validation.StringMaxLen("name", true, 255),
	validation.NonEmptyString("name", true),
	validation.StringMaxLen("market", false, 100),
	validation.Boolean("is_active", false),
}

// FilterRules validates list-endpoint query parameters.
var FilterRules = []validation.Rule{
	validation.TickerCode("ticker_no", false),
	validation.NonEmptyString("name", false),
	validation.Boolean("is_active", false),
}

// KeyRules validates the path key of get/upsert/delete.
var KeyRules = []validation.Rule{
	validation.TickerCode("ticker_no", true),
}
