package model

import "strings"

// Supported grid format versions.
const (
	Version2 = "2.0"
	Version3 = "3.0"
)

// ColumnDef is one column declaration of the column line.
type ColumnDef struct {
	Name string
	Tags Tags
}

// Header is the decoded pair of header lines: grid meta and column schema.
type Header struct {
	// Meta holds the grid meta tags, including ver.
	Meta Tags
	// Columns holds the column schema in row field order.
	Columns []ColumnDef
}

// Version returns the value of the ver tag.
func (h *Header) Version() string {
	v, _ := h.Meta.Str("ver")
	return v
}

// ColumnNames returns the column names in schema order.
func (h *Header) ColumnNames() []string {
	names := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		names[i] = c.Name
	}
	return names
}

// ParseHeader decodes the grid meta line and the column line.
//
// line1 is a whitespace separated list of tag or tag:value pairs and must carry
// ver:"2.0" or ver:"3.0". A grid whose meta holds the err marker is a
// server side error report and is returned as *ErrorGridError. line2 is a
// comma separated list of column names, each followed by its own tag list.
func ParseHeader(line1, line2 string) (*Header, error) {
	mb := NewTagsBuilder()
	if end, err := parseTagList(line1, 0, 1, "", false, mb); err != nil {
		return nil, err
	} else if end != len(line1) {
		return nil, &SchemaError{Line: 1, Token: line1[end:], Err: ErrMalformedHeader}
	}
	meta := mb.Build()

	if err := checkVersion(meta); err != nil {
		return nil, err
	}
	if meta.Has("err") {
		return nil, newErrorGridError(meta)
	}

	columns, err := parseColumns(line2)
	if err != nil {
		return nil, err
	}
	return &Header{Meta: meta, Columns: columns}, nil
}

func checkVersion(meta Tags) error {
	v, ok := meta.Get("ver")
	if !ok {
		return &SchemaError{Line: 1, Err: ErrMissingVersion}
	}
	if v.Kind() != KindStr {
		return &SchemaError{Line: 1, Token: v.String(), Err: ErrUnsupportedVersion}
	}
	switch v.Text() {
	case Version2, Version3:
		return nil
	default:
		return &SchemaError{Line: 1, Token: v.String(), Err: ErrUnsupportedVersion}
	}
}

func newErrorGridError(meta Tags) *ErrorGridError {
	e := &ErrorGridError{}
	e.Dis, _ = meta.Str("dis")
	e.ErrType, _ = meta.Str("errType")
	e.Trace, _ = meta.Str("errTrace")
	return e
}

// parseColumns decodes the column line.
func parseColumns(line string) ([]ColumnDef, error) {
	if strings.TrimSpace(line) == "" {
		return nil, &SchemaError{Line: 2, Err: ErrEmptySchema}
	}

	var columns []ColumnDef
	seen := make(map[string]struct{})
	i := 0
	for {
		i = skipSpaces(line, i)
		nameEnd := scanName(line, i)
		name := line[i:nameEnd]
		if !isTagName(name) {
			return nil, &SchemaError{Line: 2, Token: tokenAt(line, i), Err: ErrMalformedHeader}
		}
		if _, dup := seen[name]; dup {
			return nil, &SchemaError{Line: 2, Column: name, Err: ErrDuplicateColumn}
		}
		seen[name] = struct{}{}

		tb := NewTagsBuilder()
		end, err := parseTagList(line, nameEnd, 2, name, true, tb)
		if err != nil {
			return nil, err
		}
		columns = append(columns, ColumnDef{Name: strings.Clone(name), Tags: tb.Build()})

		if end == len(line) {
			return columns, nil
		}
		// parseTagList stops only at the end of line or at a column separator.
		i = end + 1
	}
}

// parseTagList decodes space separated tag and tag:value pairs of line
// starting at i into b. When inColumn is true it stops at an unquoted comma
// and returns its offset; otherwise it consumes the whole line.
func parseTagList(line string, i, lineNo int, column string, inColumn bool, b *TagsBuilder) (int, error) {
	for {
		i = skipSpaces(line, i)
		if i >= len(line) || (inColumn && line[i] == ',') {
			return i, nil
		}

		nameEnd := scanName(line, i)
		name := line[i:nameEnd]
		if !isTagName(name) {
			return 0, &SchemaError{Line: lineNo, Column: column, Token: tokenAt(line, i), Err: ErrMalformedHeader}
		}

		v := Marker()
		next := nameEnd
		if next < len(line) && line[next] == ':' {
			valueEnd, err := scanValue(line, next+1, inColumn)
			if err != nil {
				return 0, &SchemaError{Line: lineNo, Column: column, Token: name, Err: err}
			}
			v, err = DecodeLiteral(line[next+1 : valueEnd])
			if err != nil {
				return 0, &SchemaError{Line: lineNo, Column: column, Token: name, Err: err}
			}
			next = valueEnd
		}
		if next < len(line) && headerSpace(line, next) == 0 && !(inColumn && line[next] == ',') {
			return 0, &SchemaError{Line: lineNo, Column: column, Token: tokenAt(line, i), Err: ErrMalformedHeader}
		}
		if !b.Add(strings.Clone(name), v) {
			return 0, &SchemaError{Line: lineNo, Column: column, Token: name, Err: ErrDuplicateTag}
		}
		i = next
	}
}

// scanValue returns the end offset of the tag value literal starting at i.
// Quoted spans are skipped whole, a Ref absorbs its display string and a
// DateTime absorbs its zone name, since both follow a space.
func scanValue(line string, i int, inColumn bool) (int, error) {
	if i >= len(line) {
		return 0, &LiteralError{Token: "", Err: ErrMalformedLiteral}
	}
	switch c := line[i]; {
	case c == '"' || c == '`':
		end := skipQuoted(line, i)
		if end < 0 {
			return 0, &LiteralError{Token: line[i:], Err: ErrUnterminatedString}
		}
		return end, nil
	case c == '@':
		j := i + 1
		for j < len(line) && isRefChar(line[j]) {
			j++
		}
		if j+1 < len(line) && line[j] == ' ' && line[j+1] == '"' {
			end := skipQuoted(line, j+1)
			if end < 0 {
				return 0, &LiteralError{Token: line[i:], Err: ErrUnterminatedString}
			}
			return end, nil
		}
		return j, nil
	}

	j := scanBare(line, i, inColumn)
	if looksLikeDate(line[i:j]) && j+1 < len(line) && line[j] == ' ' && isUpper(line[j+1]) {
		j = scanBare(line, j+1, inColumn)
	}
	return j, nil
}

// scanBare advances to the next separator, or comma inside a column definition.
func scanBare(line string, i int, inColumn bool) int {
	for i < len(line) {
		c := line[i]
		if headerSpace(line, i) > 0 || (inColumn && c == ',') {
			return i
		}
		i++
	}
	return i
}

// scanName advances over tag name characters.
func scanName(line string, i int) int {
	for i < len(line) {
		c := line[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return i
		}
		i++
	}
	return i
}

func skipSpaces(line string, i int) int {
	for {
		n := headerSpace(line, i)
		if n == 0 {
			return i
		}
		i += n
	}
}

// headerSpace returns the byte width of the tag separator at line[i]: a
// space, a tab or a no-break space. Anything else is 0.
func headerSpace(line string, i int) int {
	switch {
	case i >= len(line):
		return 0
	case line[i] == ' ' || line[i] == '\t':
		return 1
	case strings.HasPrefix(line[i:], "\u00a0"):
		return len("\u00a0")
	}
	return 0
}

// tokenAt returns the separator delimited word starting at i, for error reports.
func tokenAt(line string, i int) string {
	if i >= len(line) {
		return ""
	}
	end := i
	for end < len(line) && headerSpace(line, end) == 0 {
		end++
	}
	return line[i:end]
}
