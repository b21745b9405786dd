package shared

import "time"

// Column names of the lifecycle timestamps every entity table carries.
const (
	ColCreated      = "created_datetime"
	ColLastModified = "last_modified_datetime"
)

// UpsertResult reports the outcome of one inserted or merged row.
type UpsertResult struct {
	ID           int64 `json:"id"`
	RowsAffected int64 `json:"rows_affected"`
}

// DeleteResult is the unconditional acknowledgment of a delete request.
// Deleting an id that no longer exists reports success as well; that shape is
// pinned by tests and must not change without a product decision.
type DeleteResult struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// StampCreate marks a projected row as newly created: both lifecycle
// timestamps are set to now.
func StampCreate(row map[string]any, now time.Time) {
	row[ColCreated] = now
	row[ColLastModified] = now
}

// StampTouch marks a projected row as a mutation: only last_modified moves.
// On upsert, created_datetime is left to the merge statement so it is only set
// when the row is actually inserted.
func StampTouch(row map[string]any, now time.Time) {
	row[ColLastModified] = now
}
