// Package shortdata defines the short-interest reporting rows ingested from
// the regulator's published files. Rows are keyed naturally by
// (reporting_date, ticker_no, reporter_name); re-ingesting a date merges
// instead of duplicating.
package shortdata

import (
	"time"

	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/sqlbuild"
	"github.com/stock-tracking-backend/internal/validation"
)

// ShortData is one short-position disclosure. ShortRatioBps is the disclosed
// short ratio in basis points, kept integral to avoid float storage.
// StockName is filled from the short_reporting_w_stocks view on reads and is
// nil when the ticker has no active listing.
type ShortData struct {
	ID             int64     `json:"id"`
	ReportingDate  time.Time `json:"reporting_date"`
	TickerNo       string    `json:"ticker_no"`
	ReporterName   string    `json:"reporter_name"`
	ShortPositions int64     `json:"short_positions"`
	ShortRatioBps  int64     `json:"short_ratio_bps"`
	StockName      *string   `json:"stock_name,omitempty"`
	CreatedAt      time.Time `json:"created_datetime"`
	LastModified   time.Time `json:"last_modified_datetime"`
}

// FilterMappings whitelists the list-endpoint query parameters; name matches
// the joined stock name exposed by the view.
var FilterMappings = []sqlbuild.FieldMapping{
	{Param: "ticker_no", Column: "ticker_no", Operator: sqlbuild.OpEqual},
	{Param: "name", Column: "name", Operator: sqlbuild.OpEqual},
	{Param: "reporter_name", Column: "reporter_name", Operator: sqlbuild.OpLike},
	{Param: "start_date", Column: "reporting_date", Operator: sqlbuild.OpGTE},
	{Param: "end_date", Column: "reporting_date", Operator: sqlbuild.OpLTE},
}

// InsertColumns whitelists the body fields persisted on create and upsert.
var InsertColumns = []sqlbuild.ColumnMapping{
	sqlbuild.ColFn("reporting_date", shared.DateColumn),
	sqlbuild.ColFn("ticker_no", shared.TickerColumn),
	sqlbuild.Col("reporter_name"),
	sqlbuild.ColFn("short_positions", shared.IntColumn),
	sqlbuild.ColFn("short_ratio_bps", shared.IntColumn),
}

// CreateRules validates create/upsert bodies, including pre-parsed rows handed
// over by the ingestion loop.
var CreateRules = []validation.Rule{
	validation.ISODate("reporting_date", true),
	validation.TickerCode("ticker_no", true),
	validation.NonEmptyString("reporter_name", true),
	validation.StringMaxLen("reporter_name", true, 255),
	validation.NonNegativeInteger("short_positions", true),
	validation.NonNegativeInteger("short_ratio_bps", true),
}

// FilterRules validates list-endpoint query parameters.
var FilterRules = []validation.Rule{
	validation.TickerCode("ticker_no", false),
	validation.NonEmptyString("name", false),
	validation.NonEmptyString("reporter_name", false),
	validation.ISODate("start_date", false),
	validation.ISODate("end_date", false),
}

// KeyRules validates the path key of get/delete.
var KeyRules = []validation.Rule{
	validation.PositiveInteger("id", true),
}
