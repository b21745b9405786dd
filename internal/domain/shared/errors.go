// Package shared holds the cross-entity pieces of the domain layer: the closed
// error taxonomy every service reports through, and the value converters used
// by the projection mappings.
package shared

import "github.com/stock-tracking-backend/internal/validation"

// Kind tags the closed set of application failure categories. Business logic
// dispatches on the tag; numeric/string codes and HTTP statuses are assigned
// only at the API boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindRecordNotFound
	KindDuplicateFound
	KindRecordMissingData
	KindUnexpectedFile
)

// Code returns the stable machine-readable identifier for the kind.
func (k Kind) Code() string {
	switch k {
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	case KindRecordNotFound:
		return "RECORD_NOT_FOUND"
	case KindDuplicateFound:
		return "DUPLICATE_FOUND"
	case KindRecordMissingData:
		return "RECORD_MISSING_DATA"
	case KindUnexpectedFile:
		return "UNEXPECTED_FILE"
	default:
		return "UNKNOWN"
	}
}

// Error is the common typed failure carried from services to the API boundary.
// Details holds supporting data, e.g. the per-item validation report.
type Error struct {
	Kind    Kind
	Message string
	Details any
}

func (e *Error) Error() string { return e.Message }

// NewInvalidRequest wraps a non-empty validation report.
func NewInvalidRequest(report []validation.ItemErrors) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: "request validation failed",
		Details: report,
	}
}

func NewRecordNotFound(message string) *Error {
	return &Error{Kind: KindRecordNotFound, Message: message}
}

func NewDuplicateFound(message string) *Error {
	return &Error{Kind: KindDuplicateFound, Message: message}
}

func NewRecordMissingData(message string) *Error {
	return &Error{Kind: KindRecordMissingData, Message: message}
}

func NewUnexpectedFile(message string) *Error {
	return &Error{Kind: KindUnexpectedFile, Message: message}
}
