// pkg/export/error.go
package export

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCategory defines categories of errors during export
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryWarning
	// ErrorCategoryChildFetch covers a failed sub-collection read for one
	// parent record; recoverable, the parent degrades to "no children"
	ErrorCategoryChildFetch
	// ErrorCategoryCollectionLevel covers a failed top-level collection
	// read; fatal for the run
	ErrorCategoryCollectionLevel
	ErrorCategoryFatal
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryWarning:
		return "Warning"
	case ErrorCategoryChildFetch:
		return "ChildFetch"
	case ErrorCategoryCollectionLevel:
		return "CollectionLevel"
	case ErrorCategoryFatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// ErrorRecord represents a single error during export
type ErrorRecord struct {
	Category    ErrorCategory
	Collection  string
	ParentID    string
	Error       error
	Message     string // Derived from Error but stored for serialization
	Timestamp   time.Time
	Recoverable bool
}

// NewErrorRecord creates a new error record with current timestamp
func NewErrorRecord(err error, category ErrorCategory) ErrorRecord {
	record := ErrorRecord{
		Category:    category,
		Error:       err,
		Timestamp:   time.Now(),
		Recoverable: category < ErrorCategoryCollectionLevel,
	}

	if err != nil {
		record.Message = err.Error()
	}

	return record
}

// WithCollection adds collection information to the error record
func (r ErrorRecord) WithCollection(collection string) ErrorRecord {
	r.Collection = collection
	return r
}

// WithParent adds the parent record id to the error record
func (r ErrorRecord) WithParent(parentID string) ErrorRecord {
	r.ParentID = parentID
	return r
}

// String returns a formatted error message
func (r ErrorRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", r.Category))

	if r.Collection != "" {
		sb.WriteString(fmt.Sprintf("Collection: %s ", r.Collection))
	}

	if r.ParentID != "" {
		sb.WriteString(fmt.Sprintf("Parent: %s ", r.ParentID))
	}

	if r.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Error.Error()))
	} else if r.Message != "" {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Message))
	}

	return sb.String()
}
