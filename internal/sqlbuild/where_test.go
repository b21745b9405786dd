package sqlbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var shortMappings = []FieldMapping{
	{Param: "name", Column: "name", Operator: OpEqual},
	{Param: "start_date", Column: "reporting_date", Operator: OpGTE},
	{Param: "end_date", Column: "reporting_date", Operator: OpLTE},
}

func TestWhere_JoinsPresentParamsInMappingOrder(t *testing.T) {
	args := map[string]any{
		"end_date":   "2024-03-31",
		"name":       "Toyota Motor",
		"start_date": "2024-01-01",
	}

	clause := Where(And, shortMappings, args)

	assert.Equal(t,
		"(name = @name) AND (reporting_date >= @start_date) AND (reporting_date <= @end_date)",
		clause,
	)
}

func TestWhere_OmitsAbsentParams(t *testing.T) {
	clause := Where(And, shortMappings, map[string]any{"start_date": "2024-01-01"})

	assert.Equal(t, "(reporting_date >= @start_date)", clause)
}

func TestWhere_EmptyWhenNothingMatches(t *testing.T) {
	assert.Equal(t, "", Where(And, shortMappings, map[string]any{}))
	assert.Equal(t, "", Where(And, shortMappings, map[string]any{"unmapped": "x"}))
	assert.Equal(t, "", Where(And, nil, map[string]any{"name": "x"}))
}

func TestWhere_PresenceNotTruthiness(t *testing.T) {
	// Falsy values still emit their fragment; only key absence omits it.
	mappings := []FieldMapping{
		{Param: "is_active", Column: "is_active", Operator: OpEqual},
		{Param: "units", Column: "units", Operator: OpEqual},
	}
	args := map[string]any{"is_active": false, "units": 0}

	assert.Equal(t, "(is_active = @is_active) AND (units = @units)", Where(And, mappings, args))
}

func TestWhere_OrConnective(t *testing.T) {
	mappings := []FieldMapping{
		{Param: "a", Column: "a", Operator: OpEqual},
		{Param: "b", Column: "b", Operator: OpLike},
	}

	clause := Where(Or, mappings, map[string]any{"a": 1, "b": "%x%"})

	assert.Equal(t, "(a = @a) OR (b LIKE @b)", clause)
}

func TestWhere_AnyOfRendersAsArrayBinding(t *testing.T) {
	mappings := []FieldMapping{{Param: "types", Column: "type", Operator: OpAnyOf}}

	clause := Where(And, mappings, map[string]any{"types": []string{"BUY", "SELL"}})

	assert.Equal(t, "(type = ANY(@types))", clause)
}

func TestArgs_ExtractsOnlyMappedPresentParams(t *testing.T) {
	params := map[string]any{
		"name":     "Toyota Motor",
		"unmapped": "injection attempt",
	}

	args := Args(shortMappings, params)

	assert.Equal(t, map[string]any{"name": "Toyota Motor"}, args)
}
