package model

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DecodeLiteral decodes one Zinc scalar token into a Value.
//
// The token must be exactly one literal: surrounding whitespace is not
// trimmed and trailing characters after a complete literal are an error.
// An empty token decodes to Null. Lists, dicts, nested grids, coordinates
// and binaries are not supported and fail with ErrUnknownKind.
func DecodeLiteral(token string) (Value, error) {
	if token == "" {
		return Null(), nil
	}
	if v, ok := reservedLiteral(token); ok {
		return v, nil
	}

	c := token[0]
	switch {
	case c == '@':
		return decodeRef(token)
	case c == '"':
		return decodeStr(token)
	case c == '`':
		return decodeUri(token)
	case isDigit(c) || (c == '-' && len(token) > 1 && isDigit(token[1])):
		return decodeNumeric(token)
	case isLower(c) && isTagName(token):
		return Marker(), nil
	}
	return Value{}, &LiteralError{Token: token, Err: ErrUnknownKind}
}

// reservedLiteral matches the fixed uppercase literals.
func reservedLiteral(token string) (Value, bool) {
	switch token {
	case "R":
		return Remove(), true
	case "NA":
		return NA(), true
	case "N":
		return Null(), true
	case "M":
		return Marker(), true
	case "T":
		return NewBool(true), true
	case "F":
		return NewBool(false), true
	case "NaN":
		return NewNumber(math.NaN(), ""), true
	case "INF":
		return NewNumber(math.Inf(1), ""), true
	case "-INF":
		return NewNumber(math.Inf(-1), ""), true
	}
	return Value{}, false
}

func decodeStr(token string) (Value, error) {
	s, end, err := unquote(token, 0, '"')
	if err != nil {
		return Value{}, err
	}
	if end != len(token) {
		return Value{}, &LiteralError{Token: token, Offset: end, Err: ErrMalformedLiteral}
	}
	return NewStr(s), nil
}

func decodeUri(token string) (Value, error) {
	s, end, err := unquote(token, 0, '`')
	if err != nil {
		return Value{}, err
	}
	if end != len(token) {
		return Value{}, &LiteralError{Token: token, Offset: end, Err: ErrMalformedLiteral}
	}
	return NewUri(s), nil
}

func decodeRef(token string) (Value, error) {
	j := 1
	for j < len(token) && isRefChar(token[j]) {
		j++
	}
	if j == 1 {
		return Value{}, &LiteralError{Token: token, Offset: 1, Err: ErrMalformedLiteral}
	}
	id := strings.Clone(token[1:j])
	if j == len(token) {
		return NewRef(id, ""), nil
	}
	if token[j] != ' ' || j+1 >= len(token) || token[j+1] != '"' {
		return Value{}, &LiteralError{Token: token, Offset: j, Err: ErrMalformedLiteral}
	}
	dis, end, err := unquote(token, j+1, '"')
	if err != nil {
		return Value{}, err
	}
	if end != len(token) {
		return Value{}, &LiteralError{Token: token, Offset: end, Err: ErrMalformedLiteral}
	}
	return NewRef(id, dis), nil
}

// decodeNumeric dispatches tokens that start with a digit or a minus sign.
func decodeNumeric(token string) (Value, error) {
	switch {
	case looksLikeDate(token):
		if len(token) == len(time.DateOnly) {
			return decodeDate(token)
		}
		if token[10] == 'T' {
			return decodeDateTime(token)
		}
		return Value{}, &LiteralError{Token: token, Offset: 10, Err: ErrMalformedLiteral}
	case len(token) >= 5 && token[2] == ':':
		return decodeTime(token)
	case strings.HasPrefix(token, "0x"):
		return Value{}, &LiteralError{Token: token, Offset: 1, Err: ErrUnknownKind}
	}

	f, unit, err := parseNumber(token)
	if err != nil {
		return Value{}, err
	}
	return NewNumber(f, strings.Clone(unit)), nil
}

// looksLikeDate reports whether token starts with YYYY-MM-DD.
func looksLikeDate(token string) bool {
	if len(token) < len(time.DateOnly) || token[4] != '-' || token[7] != '-' {
		return false
	}
	for _, i := range [...]int{0, 1, 2, 3, 5, 6, 8, 9} {
		if !isDigit(token[i]) {
			return false
		}
	}
	return true
}

func decodeDate(token string) (Value, error) {
	t, err := time.Parse(time.DateOnly, token)
	if err != nil {
		return Value{}, &LiteralError{Token: token, Err: ErrMalformedLiteral}
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func decodeTime(token string) (Value, error) {
	t, err := time.Parse(time.TimeOnly, token)
	if err != nil {
		return Value{}, &LiteralError{Token: token, Err: ErrMalformedLiteral}
	}
	return NewTime(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), nil
}

func decodeDateTime(token string) (Value, error) {
	t, zone, err := parseDateTime(token)
	if err != nil {
		return Value{}, err
	}
	return NewDateTime(t, strings.Clone(zone)), nil
}

// parseDateTime splits an ISO 8601 instant from its zone name. A Z offset
// with no zone name implies UTC. The returned zone aliases token.
func parseDateTime(token string) (time.Time, string, error) {
	ts, zone, hasZone := strings.Cut(token, " ")
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}, "", &LiteralError{Token: token, Err: ErrMalformedLiteral}
	}
	if !hasZone {
		if strings.HasSuffix(ts, "Z") {
			return t, "UTC", nil
		}
		return t, "", nil
	}
	if off := invalidZoneOffset(zone); off >= 0 {
		return time.Time{}, "", &LiteralError{Token: token, Offset: len(ts) + 1 + off, Err: ErrMalformedLiteral}
	}
	return t, zone, nil
}

// invalidZoneOffset returns the offset of the first character that cannot
// appear in a zone name, or -1. Names such as Los_Angeles, Etc/GMT+10 and
// GMT-10 are accepted.
func invalidZoneOffset(zone string) int {
	if zone == "" {
		return 0
	}
	if !isLetter(zone[0]) {
		return 0
	}
	for i := 1; i < len(zone); i++ {
		c := zone[i]
		if isLetter(c) || isDigit(c) || c == '_' || c == '/' || c == '-' || c == '+' {
			continue
		}
		return i
	}
	return -1
}

// parseNumber parses a decimal with optional sign, fraction, exponent and
// underscore digit separators, followed by an optional unit. The returned
// unit aliases token.
func parseNumber(token string) (float64, string, error) {
	i := 0
	if i < len(token) && token[i] == '-' {
		i++
	}
	start := i
	underscore := false
	i = scanDigits(token, i, &underscore)
	if i == start {
		return 0, "", &LiteralError{Token: token, Offset: i, Err: ErrMalformedLiteral}
	}
	if i+1 < len(token) && token[i] == '.' && isDigit(token[i+1]) {
		i = scanDigits(token, i+1, &underscore)
	}
	if i < len(token) && (token[i] == 'e' || token[i] == 'E') {
		j := i + 1
		if j < len(token) && (token[j] == '+' || token[j] == '-') {
			j++
		}
		if j < len(token) && isDigit(token[j]) {
			i = scanDigits(token, j, &underscore)
		}
	}

	text := token[:i]
	if underscore {
		text = strings.ReplaceAll(text, "_", "")
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, "", &LiteralError{Token: token, Err: ErrMalformedLiteral}
	}

	unit := token[i:]
	if off := invalidUnitOffset(unit); off >= 0 {
		return 0, "", &LiteralError{Token: token, Offset: i + off, Err: ErrMalformedLiteral}
	}
	return f, unit, nil
}

// scanDigits advances over digits and underscores placed between digits.
func scanDigits(s string, i int, underscore *bool) int {
	for i < len(s) {
		switch {
		case isDigit(s[i]):
			i++
		case s[i] == '_' && i+1 < len(s) && isDigit(s[i+1]) && i > 0 && isDigit(s[i-1]):
			*underscore = true
			i++
		default:
			return i
		}
	}
	return i
}

// invalidUnitOffset returns the offset of the first character not allowed
// in a unit, or -1. Units are letters, %, $, /, _ and any non-ASCII rune.
func invalidUnitOffset(unit string) int {
	for i := 0; i < len(unit); {
		c := unit[i]
		if c < utf8.RuneSelf {
			if isLetter(c) || c == '%' || c == '$' || c == '/' || c == '_' {
				i++
				continue
			}
			return i
		}
		r, size := utf8.DecodeRuneInString(unit[i:])
		if r == utf8.RuneError || unicode.IsSpace(r) {
			return i
		}
		i += size
	}
	return -1
}

// unquote decodes the quoted span of s starting at s[start] == quote and
// returns the unescaped text and the offset just past the closing quote.
func unquote(s string, start int, quote byte) (string, int, error) {
	j := start + 1
	for j < len(s) {
		c := s[j]
		if c == quote {
			return strings.Clone(s[start+1 : j]), j + 1, nil
		}
		if c == '\\' {
			break
		}
		j++
	}
	if j >= len(s) {
		return "", 0, &LiteralError{Token: s, Offset: start, Err: ErrUnterminatedString}
	}

	var sb strings.Builder
	sb.Grow(j - start)
	sb.WriteString(s[start+1 : j])
	for j < len(s) {
		c := s[j]
		if c == quote {
			return sb.String(), j + 1, nil
		}
		if c != '\\' {
			sb.WriteByte(c)
			j++
			continue
		}
		if j+1 >= len(s) {
			break
		}
		switch e := s[j+1]; e {
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '"', '\\', '$', '\'', '`':
			sb.WriteByte(e)
		case 'u':
			if j+6 > len(s) {
				return "", 0, &LiteralError{Token: s, Offset: j, Err: ErrMalformedLiteral}
			}
			code, err := strconv.ParseUint(s[j+2:j+6], 16, 32)
			if err != nil {
				return "", 0, &LiteralError{Token: s, Offset: j, Err: ErrMalformedLiteral}
			}
			sb.WriteRune(rune(code))
			j += 6
			continue
		default:
			return "", 0, &LiteralError{Token: s, Offset: j, Err: ErrMalformedLiteral}
		}
		j += 2
	}
	return "", 0, &LiteralError{Token: s, Offset: start, Err: ErrUnterminatedString}
}

// skipQuoted returns the offset just past the quoted span starting at
// s[start], or -1 if the span is not closed.
func skipQuoted(s string, start int) int {
	quote := s[start]
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return -1
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLower(c byte) bool  { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isLetter(c byte) bool { return isLower(c) || isUpper(c) }

func isRefChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == ':' || c == '-' || c == '.' || c == '~'
}

// isTagName reports whether s is a valid tag or column name: a lowercase
// ASCII letter followed by ASCII letters, digits or underscores.
func isTagName(s string) bool {
	if s == "" || !isLower(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return false
		}
	}
	return true
}
