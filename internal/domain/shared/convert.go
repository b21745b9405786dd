package shared

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToDate parses a YYYY-MM-DD string into a UTC midnight time. Any malformed
// component degrades to nil rather than an error, so optional date fields can
// flow through projections as SQL NULL.
func ToDate(s string) *time.Time {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return nil
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflow such as 2024-02-31.
	if t.Day() != day || t.Month() != time.Month(month) {
		return nil
	}
	return &t
}

// ToTicker normalizes a security code to its 5-character zero-padded form.
// Non-string and over-long input is a contract violation: the document should
// already have passed validation.
func ToTicker(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("ticker code must be a string, got %T", raw)
	}
	if len(s) > 5 {
		return "", fmt.Errorf("ticker code %q is longer than 5 characters", s)
	}
	return strings.Repeat("0", 5-len(s)) + s, nil
}

// ToInt64 widens the numeric shapes a document value arrives in. Non-integral
// values are rejected.
func ToInt64(raw any) (int64, error) {
	switch t := raw.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		n := int64(t)
		if float64(n) != t {
			return 0, fmt.Errorf("value %v is not integral", t)
		}
		return n, nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", raw)
	}
}

// DateColumn is the projection transform for date fields: nil passes through
// as SQL NULL, strings parse via ToDate (degrading to NULL when malformed),
// anything else is a contract violation.
func DateColumn(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("date must be a string, got %T", raw)
	}
	if t := ToDate(s); t != nil {
		return *t, nil
	}
	return nil, nil
}

// TickerColumn is the projection transform for ticker codes.
func TickerColumn(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return ToTicker(raw)
}

// IntColumn is the projection transform for integral numeric fields.
func IntColumn(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	return ToInt64(raw)
}

// TextColumn is the projection transform for plain string fields.
func TextColumn(raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("value of type %T is not a string", raw)
	}
	return s, nil
}

// WithDefault wraps a projection transform so an absent field projects as a
// concrete default instead of SQL NULL, for columns whose entity field has no
// null state.
func WithDefault(def any, fn func(any) (any, error)) func(any) (any, error) {
	return func(raw any) (any, error) {
		if raw == nil {
			return def, nil
		}
		return fn(raw)
	}
}

// BoolColumn is the projection transform for boolean fields, accepting the
// string forms query parameters arrive in.
func BoolColumn(raw any) (any, error) {
	switch t := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return strconv.ParseBool(t)
	default:
		return nil, fmt.Errorf("value of type %T is not a boolean", raw)
	}
}
