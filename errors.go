// Package patron keeps library patron records: a hyphen-delimited line
// format whose name and address fields may themselves contain the
// delimiter, and an in-memory Directory offering validated create, read,
// update and delete over those records.
//
// Lines look like "1234567-Jane Doe-123 Pine St-12.50". The identifier is
// anchored at the start (seven digits) and the fine at the end (a run of
// digits and dots), so hyphens inside the name or address never confuse the
// decoder. A Directory is populated by Load, which keeps going past bad
// lines and reports them, and by Add, which rejects duplicates.
package patron

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic handling. Callers use errors.Is to
// distinguish a malformed line (ErrMalformed) from a well-shaped line with
// a bad field (ErrInvalidField), and the specific validator failure beneath
// it (ErrInvalidFormat, ErrOutOfRange, ...).
var (
	ErrMalformed      = errors.New("malformed record")
	ErrInvalidField   = errors.New("invalid field")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrNotFound       = errors.New("entry not found")
	ErrInvalidFormat  = errors.New("invalid format")
	ErrEmpty          = errors.New("value is empty")
	ErrTooShort       = errors.New("value too short")
	ErrTooLong        = errors.New("value too long")
	ErrFormatMismatch = errors.New("format mismatch")
	ErrNotANumber     = errors.New("not a number")
	ErrOutOfRange     = errors.New("out of range")
	ErrNegative       = errors.New("negative value")
	ErrInvalidPattern = errors.New("invalid regex pattern")
	ErrDecompress     = errors.New("decompression failed")
)

// FieldError reports a single field that failed validation. It matches
// both ErrInvalidField and the underlying validator sentinel.
type FieldError struct {
	Field  string // id, name, address, fine, or a FieldKind name
	Value  string // the rejected input
	Err    error  // validator sentinel
	Detail string // optional human-readable bound or shape
}

func (e *FieldError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %q: %v (%s)", e.Field, e.Value, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() []error {
	return []error{ErrInvalidField, e.Err}
}

// MalformedError carries a line that did not match the record shape.
type MalformedError struct {
	Line   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record %q: %s", e.Line, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

func fieldErr(field, value string, err error, detail string) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err, Detail: detail}
}
