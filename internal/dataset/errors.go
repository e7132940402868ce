package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceNotFound is returned when an input path is missing or cannot
	// be read.
	ErrResourceNotFound = errors.New("resource not found")
	ErrFieldCount       = errors.New("wrong field count")
)

// ParseError locates a malformed record. Line is 1-based and counts the
// header. Field is empty when the whole record is at fault.
type ParseError struct {
	Resource string
	Line     int
	Field    string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s:%d: field %s: %v", e.Resource, e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Resource, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
