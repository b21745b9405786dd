package service

import (
	"github.com/stock-tracking-backend/internal/domain/shared"
	"github.com/stock-tracking-backend/internal/validation"
)

// validateIntKey runs a numeric path key through the entity's key rules and
// parses it. Invalid keys come back as an InvalidRequest error carrying the
// validation report.
func validateIntKey(raw string, rules []validation.Rule) (int64, error) {
	key := map[string]any{"id": raw}
	if report := validation.ValidateOne(key, rules); len(report) > 0 {
		return 0, shared.NewInvalidRequest(report)
	}
	return shared.ToInt64(raw)
}

// dateParam normalizes an optional YYYY-MM-DD filter value to a time.Time,
// assuming validation already accepted it.
func dateParam(params map[string]any, name string) {
	raw, ok := params[name].(string)
	if !ok {
		return
	}
	if t := shared.ToDate(raw); t != nil {
		params[name] = *t
	}
}
