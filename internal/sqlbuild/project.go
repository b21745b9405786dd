package sqlbuild

import "fmt"

// ColumnMapping declares one whitelisted body field to copy into a storage row.
// Field is the request document key, Column the table column it lands in (they
// usually coincide). Transform, when set, replaces the raw value; it receives
// nil for absent fields and may reject unexpected shapes.
type ColumnMapping struct {
	Field     string
	Column    string
	Transform func(raw any) (any, error)
}

// Col declares a straight copy of field into the column of the same name.
func Col(field string) ColumnMapping {
	return ColumnMapping{Field: field, Column: field}
}

// ColFn declares a transformed copy of field into the column of the same name.
func ColFn(field string, transform func(raw any) (any, error)) ColumnMapping {
	return ColumnMapping{Field: field, Column: field, Transform: transform}
}

// Project copies every declared column from source into target, using nil when
// the source lacks the field, so the target always carries the full declared
// column set. Keys on target outside the declared set are left untouched.
//
// A transform error signals a contract violation (the document should already
// have passed validation) and aborts the projection.
func Project(source map[string]any, columns []ColumnMapping, target map[string]any) error {
	for _, col := range columns {
		raw, present := source[col.Field]
		if !present {
			raw = nil
		}
		if col.Transform != nil {
			transformed, err := col.Transform(raw)
			if err != nil {
				return fmt.Errorf("projecting field %q: %w", col.Field, err)
			}
			raw = transformed
		}
		target[col.Column] = raw
	}
	return nil
}

// Columns returns the declared column names in declaration order, for building
// INSERT column lists that stay aligned with projected rows.
func Columns(columns []ColumnMapping) []string {
	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Column
	}
	return names
}
