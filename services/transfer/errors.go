package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat rejects JSON input whose top-level value is not an array of objects.
	ErrFormat = errors.New("invalid JSON format, expected an array")
	// ErrEmptyInput rejects blank pasted JSON.
	ErrEmptyInput = errors.New("please paste JSON data first")
	// ErrNothingToExport is returned instead of producing an empty file.
	ErrNothingToExport = errors.New("no data to export")
	ErrUnknownTemplate = errors.New("unknown template format")
)

// ParseError is malformed CSV or JSON input. It is always returned before any write.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AggregateImportError reports a bulk import where some writes failed. Rows that
// succeeded stay persisted.
type AggregateImportError struct {
	Total  int
	Failed int
	Errs   []error
}

func (e *AggregateImportError) Error() string {
	return fmt.Sprintf("%d of %d entries failed: %v", e.Failed, e.Total, e.Errs[0])
}

func (e *AggregateImportError) Unwrap() []error {
	return e.Errs
}
