package model

import (
	"strings"
	"unicode/utf8"
)

// firstDataLine is the line number of the first data row.
const firstDataLine = 3

// Parse decodes a complete Zinc grid with default options.
func Parse(text string) (*Grid, error) {
	return ParseWithOptions(text, NewDecodeOptions())
}

// ParseWithOptions decodes a complete Zinc grid. It returns either the
// whole grid or an error; a partial grid is never returned. text must be
// valid UTF-8, otherwise ErrInvalidEncoding is returned.
func ParseWithOptions(text string, opts DecodeOptions) (*Grid, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}
	line1, line2, body, err := SplitHeader(text)
	if err != nil {
		return nil, err
	}
	h, err := ParseHeader(line1, line2)
	if err != nil {
		return nil, err
	}
	columns, rows, err := DecodeRows(h, body, firstDataLine, opts)
	if err != nil {
		return nil, err
	}
	return Assemble(h.Meta, columns, rows)
}

// SplitHeader cuts text into the grid meta line, the column line and the
// remaining data lines. A leading byte order mark is dropped.
func SplitHeader(text string) (string, string, string, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	line1, rest, ok := strings.Cut(text, "\n")
	line1 = strings.TrimSuffix(line1, "\r")
	if strings.TrimSpace(line1) == "" {
		return "", "", "", &SchemaError{Line: 1, Err: ErrMissingVersion}
	}
	if !ok {
		// an error grid may consist of its meta line only
		return line1, "", "", nil
	}
	line2, body, _ := strings.Cut(rest, "\n")
	return line1, strings.TrimSuffix(line2, "\r"), body, nil
}
