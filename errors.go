package zincio

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedFormat indicates an output format zincio cannot write
	ErrUnsupportedFormat = errors.New("zincio: unsupported output format")

	// ErrUnsupportedCompression indicates a compression type that cannot be used here
	ErrUnsupportedCompression = errors.New("zincio: unsupported compression type")

	// ErrNilGrid indicates that a nil grid was passed
	ErrNilGrid = errors.New("zincio: grid is nil")

	// ErrNoPaths indicates that Open was called without paths
	ErrNoPaths = errors.New("zincio: at least one path must be provided")

	// ErrFileNotFound indicates file not found
	ErrFileNotFound = errors.New("zincio: file not found")

	// ErrUnsupportedFile indicates a file that is not a (compressed) Zinc file
	ErrUnsupportedFile = errors.New("zincio: unsupported file type")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	FilePath  string
	Column    string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, filePath string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		FilePath:  filePath,
	}
}

// WithColumn adds column context to the error
func (ec *ErrorContext) WithColumn(column string) *ErrorContext {
	ec.Column = column
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context. baseErr stays reachable
// through errors.Is and errors.As.
func (ec *ErrorContext) Error(baseErr error) error {
	parts := []string{fmt.Sprintf("zincio: %s failed", ec.Operation)}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}
	if ec.Column != "" {
		parts = append(parts, "column: "+ec.Column)
	}
	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return errors.New(context)
}
