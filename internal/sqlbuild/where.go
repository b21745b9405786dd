// Package sqlbuild generates the parameterized SQL fragments used by the
// repositories: boolean WHERE clauses from whitelisted query parameters and
// column/value projections from whitelisted body fields. Column and operator
// names only ever come from the declared mappings, never from request input;
// values are bound separately through pgx named arguments.
package sqlbuild

import "strings"

// Connective joins emitted predicate fragments.
type Connective string

const (
	And Connective = "AND"
	Or  Connective = "OR"
)

// Operator is the comparison applied between a column and its placeholder.
type Operator string

const (
	OpEqual Operator = "="
	OpGTE   Operator = ">="
	OpLTE   Operator = "<="
	OpLike  Operator = "LIKE"
	OpAnyOf Operator = "IN"
)

// FieldMapping declares one whitelisted filter: request parameter Param maps to
// Column under Operator. Param names must be unique within a mapping list;
// list order determines emission order.
type FieldMapping struct {
	Param    string
	Column   string
	Operator Operator
}

// Where builds a parameterized boolean expression from the mappings whose
// Param key exists in args. Values are never inspected, only key presence.
// Returns "" when nothing matches; the caller must then omit the WHERE keyword.
func Where(connective Connective, mappings []FieldMapping, args map[string]any) string {
	var fragments []string
	for _, m := range mappings {
		if _, present := args[m.Param]; !present {
			continue
		}
		fragments = append(fragments, fragment(m))
	}
	return strings.Join(fragments, " "+string(connective)+" ")
}

// Args extracts the mapped parameters present in params, producing the value
// map bound against the placeholders Where emitted. Keeping clause text and
// value binding separate is what keeps request values out of the SQL string.
func Args(mappings []FieldMapping, params map[string]any) map[string]any {
	args := make(map[string]any)
	for _, m := range mappings {
		if v, present := params[m.Param]; present {
			args[m.Param] = v
		}
	}
	return args
}

func fragment(m FieldMapping) string {
	// IN renders as = ANY so a single array placeholder can bind the list.
	if m.Operator == OpAnyOf {
		return "(" + m.Column + " = ANY(@" + m.Param + "))"
	}
	return "(" + m.Column + " " + string(m.Operator) + " @" + m.Param + ")"
}
