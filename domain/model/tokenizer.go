package model

import "strings"

// RawColumns is the column-major matrix of undecoded fields produced by
// TokenizeRows. Every column holds exactly Rows fields; fields missing from
// short rows are empty strings.
type RawColumns struct {
	cells [][]string
	rows  int
}

// Rows returns the number of data rows.
func (r *RawColumns) Rows() int { return r.rows }

// Width returns the number of columns.
func (r *RawColumns) Width() int { return len(r.cells) }

// Column returns the raw fields of column i.
func (r *RawColumns) Column(i int) []string { return r.cells[i] }

// TokenizeRows splits the data lines of a grid into raw fields, one per
// declared column.
//
// Fields are separated by commas outside double quoted and backtick quoted
// spans and are never trimmed. Lines may end in LF or CRLF. Trailing empty
// lines end the grid; an empty line followed by more rows is a row of empty
// fields. firstLine is the line number of the first data line and is only
// used for error reports.
func TokenizeRows(body string, columns, firstLine int) (*RawColumns, error) {
	body = trimTrailingBlankLines(body)

	rows := 0
	if body != "" {
		rows = strings.Count(body, "\n") + 1
	}
	cells := make([][]string, columns)
	for c := range cells {
		cells[c] = make([]string, 0, rows)
	}

	fields := make([]string, 0, columns)
	row := 0
	for row < rows {
		line := body
		if nl := strings.IndexByte(body, '\n'); nl >= 0 {
			line, body = body[:nl], body[nl+1:]
		} else {
			body = ""
		}
		line = strings.TrimSuffix(line, "\r")

		var err error
		fields, err = splitFields(fields[:0], line)
		if err != nil {
			return nil, &RowError{Row: row, Line: firstLine + row, Err: err}
		}
		if len(fields) > columns {
			return nil, &RowError{Row: row, Line: firstLine + row, Fields: len(fields), Err: ErrFieldCountExceeded}
		}
		for c := range columns {
			if c < len(fields) {
				cells[c] = append(cells[c], fields[c])
			} else {
				cells[c] = append(cells[c], "")
			}
		}
		row++
	}
	return &RawColumns{cells: cells, rows: row}, nil
}

// splitFields appends the comma separated fields of line to dst.
func splitFields(dst []string, line string) ([]string, error) {
	start := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '`':
			quote = c
		case ',':
			dst = append(dst, line[start:i])
			start = i + 1
		}
	}
	if quote != 0 {
		return dst, ErrUnterminatedRow
	}
	return append(dst, line[start:]), nil
}

// trimTrailingBlankLines drops empty lines at the end of body, including
// the final line terminator.
func trimTrailingBlankLines(body string) string {
	for {
		switch {
		case strings.HasSuffix(body, "\r\n"):
			body = body[:len(body)-2]
		case strings.HasSuffix(body, "\n"):
			body = body[:len(body)-1]
		default:
			return body
		}
	}
}
