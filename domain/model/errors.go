// Package model provides the Zinc grid decoding engine and its value types.
package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is returned when a token matches no supported literal kind
	ErrUnknownKind = errors.New("unknown literal kind")
	// ErrMalformedLiteral is returned when a token starts like a known kind but is not well formed
	ErrMalformedLiteral = errors.New("malformed literal")
	// ErrUnterminatedString is returned when a quoted string has no closing quote
	ErrUnterminatedString = errors.New("unterminated string")

	// ErrDuplicateColumn is returned when a column name appears twice in one grid
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrEmptySchema is returned when the column line declares no columns
	ErrEmptySchema = errors.New("empty column schema")
	// ErrMissingVersion is returned when the grid meta line has no ver tag
	ErrMissingVersion = errors.New("missing version tag")
	// ErrUnsupportedVersion is returned for versions other than 2.0 and 3.0
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrDuplicateTag is returned when one tag list names the same tag twice
	ErrDuplicateTag = errors.New("duplicate tag name")
	// ErrMalformedHeader is returned when a header line cannot be split into tags
	ErrMalformedHeader = errors.New("malformed header")
	// ErrErrorGrid is returned when the grid itself reports a server side error
	ErrErrorGrid = errors.New("error grid")

	// ErrFieldCountExceeded is returned when a row has more fields than columns
	ErrFieldCountExceeded = errors.New("field count exceeded")
	// ErrUnterminatedRow is returned when a row ends inside a quoted span
	ErrUnterminatedRow = errors.New("unterminated quoted field")

	// ErrKindMismatch is returned when a cell decodes to a kind other than its column's kind
	ErrKindMismatch = errors.New("cell kind does not match column kind")

	// ErrInconsistentGrid is returned when assembled columns disagree on the row count
	ErrInconsistentGrid = errors.New("inconsistent grid")
)

// LiteralError reports a token that could not be decoded into a Value.
// Offset is the byte offset of the failure inside Token.
type LiteralError struct {
	Token  string
	Offset int
	Err    error
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("zinc: %v at offset %d in %q", e.Err, e.Offset, e.Token)
}

func (e *LiteralError) Unwrap() error { return e.Err }

// SchemaError reports a malformed grid meta or column line.
// Line is 1 for grid meta and 2 for the column line. Column is empty for grid meta.
type SchemaError struct {
	Line   int
	Column string
	Token  string
	Err    error
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("zinc: line %d: %v", e.Line, e.Err)
	if e.Column != "" {
		msg += fmt.Sprintf(", column: %s", e.Column)
	}
	if e.Token != "" {
		msg += fmt.Sprintf(", near: %q", e.Token)
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return e.Err }

// RowError reports a data row that could not be split into the declared columns.
// Row is the zero based data row index and Line the 1 based line number in the grid text.
type RowError struct {
	Row    int
	Line   int
	Fields int
	Err    error
}

func (e *RowError) Error() string {
	if errors.Is(e.Err, ErrFieldCountExceeded) {
		return fmt.Sprintf("zinc: row %d (line %d): %v: got %d fields", e.Row, e.Line, e.Err, e.Fields)
	}
	return fmt.Sprintf("zinc: row %d (line %d): %v", e.Row, e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ColumnError reports the first cell of a column that failed to decode.
type ColumnError struct {
	Column string
	Row    int
	Cell   string
	Cause  error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("zinc: column %s, row %d: cell %q: %v", e.Column, e.Row, e.Cell, e.Cause)
}

func (e *ColumnError) Unwrap() error { return e.Cause }

// ConsistencyError reports a violated internal invariant of an assembled grid.
type ConsistencyError struct {
	Column string
	Got    int
	Want   int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("zinc: %v: column %s has %d values, want %d", ErrInconsistentGrid, e.Column, e.Got, e.Want)
}

func (e *ConsistencyError) Unwrap() error { return ErrInconsistentGrid }

// ErrorGridError is returned when a grid carries the err marker in its meta.
type ErrorGridError struct {
	Dis     string
	ErrType string
	Trace   string
}

func (e *ErrorGridError) Error() string {
	if e.ErrType != "" {
		return fmt.Sprintf("zinc: %v: %s: %s", ErrErrorGrid, e.ErrType, e.Dis)
	}
	return fmt.Sprintf("zinc: %v: %s", ErrErrorGrid, e.Dis)
}

func (e *ErrorGridError) Unwrap() error { return ErrErrorGrid }
