package validation

import (
	"encoding/json"
	"regexp"
	"strconv"
	"time"
)

var (
	tickerPattern   = regexp.MustCompile(`^[0-9A-Z]{1,5}$`)
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
)

// NonEmptyString requires a string value with at least one character.
func NonEmptyString(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && s != ""
		},
		Message: "must be a non-empty string.",
	}
}

// StringMaxLen requires a string value no longer than max characters.
func StringMaxLen(field string, required bool, max int) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && len(s) <= max
		},
		Message: "exceeds the maximum length of " + strconv.Itoa(max) + " characters.",
	}
}

// TickerCode requires an exchange security code: 1 to 5 digits or uppercase
// letters. Shorter codes are zero-padded downstream, not rejected here.
func TickerCode(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && tickerPattern.MatchString(s)
		},
		Message: "must be a security code of up to 5 digits or uppercase letters.",
	}
}

// PositiveInteger requires an integral numeric value greater than zero.
func PositiveInteger(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			n, ok := asInt64(v)
			return ok && n > 0
		},
		Message: "must be a positive integer.",
	}
}

// NonNegativeInteger requires an integral numeric value of zero or more.
func NonNegativeInteger(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			n, ok := asInt64(v)
			return ok && n >= 0
		},
		Message: "must be a non-negative integer.",
	}
}

// ISODate requires a YYYY-MM-DD calendar date.
func ISODate(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			_, err := time.Parse("2006-01-02", s)
			return err == nil
		},
		Message: "must be a date in YYYY-MM-DD format.",
	}
}

// CurrencyCode requires a 3-letter uppercase ISO-4217 code.
func CurrencyCode(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			return ok && currencyPattern.MatchString(s)
		},
		Message: "must be a 3-letter ISO currency code.",
	}
}

// OneOf requires a string value drawn from a fixed set.
func OneOf(field string, required bool, allowed ...string) Rule {
	set := make(map[string]struct{}, len(allowed))
	msg := "must be one of: "
	for i, a := range allowed {
		set[a] = struct{}{}
		if i > 0 {
			msg += ", "
		}
		msg += a
	}
	msg += "."
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			_, found := set[s]
			return found
		},
		Message: msg,
	}
}

// Boolean requires a bool or its string form ("true"/"false"), the latter for
// query parameters which always arrive as strings.
func Boolean(field string, required bool) Rule {
	return Rule{
		Field:    field,
		Required: required,
		Check: func(v any) bool {
			switch t := v.(type) {
			case bool:
				return true
			case string:
				_, err := strconv.ParseBool(t)
				return err == nil
			default:
				return false
			}
		},
		Message: "must be a boolean.",
	}
}

// asInt64 widens the numeric shapes a document value can arrive in: native
// ints, JSON numbers (float64 or json.Number) and query-parameter strings.
func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		n := int64(t)
		return n, float64(n) == t
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
