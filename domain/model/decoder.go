package model

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cellDecoder decodes one raw field of a column whose kind is already known.
type cellDecoder func(cell string) (Value, error)

// newCellDecoder returns the decoder for kind. The decoder is stateful
// (it reuses unit and zone strings of consecutive cells) and must only be
// used by one goroutine.
func newCellDecoder(kind Kind, mixed bool) cellDecoder {
	accept := func(v Value) (Value, error) {
		if v.kind == kind || v.IsAbsent() || mixed {
			return v, nil
		}
		return Value{}, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, v.kind, kind)
	}
	generic := func(cell string) (Value, error) {
		if cell == "" {
			return Null(), nil
		}
		v, err := DecodeLiteral(cell)
		if err != nil {
			return Value{}, err
		}
		return accept(v)
	}

	switch kind {
	case KindNumber:
		var lastUnit string
		return func(cell string) (Value, error) {
			if !isNumberToken(cell) {
				return generic(cell)
			}
			f, unit, err := parseNumber(cell)
			if err != nil {
				return Value{}, err
			}
			if unit != lastUnit {
				lastUnit = strings.Clone(unit)
			}
			return NewNumber(f, lastUnit), nil
		}
	case KindDateTime:
		var lastZone string
		return func(cell string) (Value, error) {
			if !looksLikeDate(cell) || len(cell) == len("2006-01-02") || cell[10] != 'T' {
				return generic(cell)
			}
			t, zone, err := parseDateTime(cell)
			if err != nil {
				return Value{}, err
			}
			if zone != lastZone {
				lastZone = strings.Clone(zone)
			}
			return NewDateTime(t, lastZone), nil
		}
	default:
		return generic
	}
}

// isNumberToken reports whether DecodeLiteral would read token as a plain Number.
func isNumberToken(token string) bool {
	if token == "" {
		return false
	}
	c := token[0]
	if !isDigit(c) && !(c == '-' && len(token) > 1 && isDigit(token[1])) {
		return false
	}
	return !looksLikeDate(token) &&
		!(len(token) >= 5 && token[2] == ':') &&
		!strings.HasPrefix(token, "0x")
}

// DecodeColumn decodes the raw fields of one column with one kind chosen
// up front. Empty fields decode to Null. The first field that fails stops
// the column with a *ColumnError.
func DecodeColumn(name string, cells []string, plan Plan, opts DecodeOptions) ([]Value, error) {
	decode := newCellDecoder(plan.Kind, opts.MixedKinds())
	values := make([]Value, len(cells))
	for row, cell := range cells {
		v, err := decode(cell)
		if err != nil {
			return nil, &ColumnError{Column: name, Row: row, Cell: cell, Cause: err}
		}
		values[row] = v
	}
	return values, nil
}

// DecodeColumns decodes every column of raw concurrently, at most
// opts.Workers() at a time. Columns share no state. When several columns
// fail, the error of the leftmost failing column is returned.
func DecodeColumns(h *Header, raw *RawColumns, plans []Plan, opts DecodeOptions) ([][]Value, error) {
	width := raw.Width()
	results := make([][]Value, width)
	errs := make([]error, width)

	var failedAt atomic.Int64
	failedAt.Store(int64(width))

	var g errgroup.Group
	g.SetLimit(opts.Workers())
	for i := range width {
		g.Go(func() error {
			if int64(i) > failedAt.Load() {
				return nil
			}
			values, err := DecodeColumn(h.Columns[i].Name, raw.Column(i), plans[i], opts)
			if err != nil {
				errs[i] = err
				for {
					cur := failedAt.Load()
					if int64(i) >= cur || failedAt.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
				return nil
			}
			results[i] = values
			return nil
		})
	}
	_ = g.Wait()

	if at := failedAt.Load(); at < int64(width) {
		return nil, errs[at]
	}
	Logger().Debug("decoded columns",
		zap.Int("columns", width),
		zap.Int("rows", raw.Rows()),
		zap.Int("workers", opts.Workers()))
	return results, nil
}

// DecodeRows tokenizes the data lines of a grid and decodes them into
// columns following the header's schema. firstLine is the line number of
// the first data line, used in error reports.
func DecodeRows(h *Header, body string, firstLine int, opts DecodeOptions) ([]*Column, int, error) {
	raw, err := TokenizeRows(body, len(h.Columns), firstLine)
	if err != nil {
		return nil, 0, err
	}
	plans, err := ResolvePlans(h, raw)
	if err != nil {
		return nil, 0, err
	}
	decoded, err := DecodeColumns(h, raw, plans, opts)
	if err != nil {
		return nil, 0, err
	}

	columns := make([]*Column, len(h.Columns))
	for i, def := range h.Columns {
		columns[i] = &Column{
			name:   def.Name,
			tags:   def.Tags,
			kind:   plans[i].Kind,
			enum:   plans[i].Enum,
			values: decoded[i],
		}
	}
	return columns, raw.Rows(), nil
}
