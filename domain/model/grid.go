package model

import (
	"iter"
	"strings"
)

// Column is one decoded grid column.
type Column struct {
	name   string
	tags   Tags
	kind   Kind
	enum   []string
	values []Value
}

// NewColumn creates a column. kind is the column kind recorded for
// consumers; values are not checked against it.
func NewColumn(name string, tags Tags, kind Kind, values []Value) *Column {
	var enum []string
	if s, ok := tags.Str("enum"); ok {
		enum = strings.Split(s, ",")
	}
	return &Column{
		name:   name,
		tags:   tags,
		kind:   kind,
		enum:   enum,
		values: append([]Value(nil), values...),
	}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Tags returns the column meta.
func (c *Column) Tags() Tags { return c.tags }

// Kind returns the kind every non-absent value of the column was decoded as.
func (c *Column) Kind() Kind { return c.kind }

// Enum returns the categories of the column's enum tag, or nil.
func (c *Column) Enum() []string { return append([]string(nil), c.enum...) }

// Len returns the number of values.
func (c *Column) Len() int { return len(c.values) }

// Value returns the value at row i.
func (c *Column) Value(i int) Value { return c.values[i] }

// Values returns a copy of all values in row order.
func (c *Column) Values() []Value { return append([]Value(nil), c.values...) }

// All iterates over the values in row order.
func (c *Column) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, v := range c.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Equal compares name, tags and values.
func (c *Column) Equal(o *Column) bool {
	if c.name != o.name || !c.tags.Equal(o.tags) || len(c.values) != len(o.values) {
		return false
	}
	for i, v := range c.values {
		if !v.Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// Grid is a decoded Zinc grid: grid meta, columns in schema order and the
// row count shared by every column.
type Grid struct {
	meta    Tags
	columns []*Column
	index   map[string]int
	rows    int
}

// Assemble combines grid meta and decoded columns into a Grid. Every
// column must hold exactly rows values and column names must be unique.
func Assemble(meta Tags, columns []*Column, rows int) (*Grid, error) {
	if len(columns) == 0 {
		return nil, &SchemaError{Line: 2, Err: ErrEmptySchema}
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c.Len() != rows {
			return nil, &ConsistencyError{Column: c.name, Got: c.Len(), Want: rows}
		}
		if _, dup := index[c.name]; dup {
			return nil, &SchemaError{Line: 2, Column: c.name, Err: ErrDuplicateColumn}
		}
		index[c.name] = i
	}
	return &Grid{
		meta:    meta,
		columns: append([]*Column(nil), columns...),
		index:   index,
		rows:    rows,
	}, nil
}

// Meta returns the grid meta.
func (g *Grid) Meta() Tags { return g.meta }

// Version returns the value of the ver tag.
func (g *Grid) Version() string {
	v, _ := g.meta.Str("ver")
	return v
}

// NumRows returns the number of rows.
func (g *Grid) NumRows() int { return g.rows }

// NumCols returns the number of columns.
func (g *Grid) NumCols() int { return len(g.columns) }

// Columns returns the columns in schema order.
func (g *Grid) Columns() []*Column { return append([]*Column(nil), g.columns...) }

// ColumnAt returns the i-th column.
func (g *Grid) ColumnAt(i int) *Column { return g.columns[i] }

// Column returns the named column.
func (g *Grid) Column(name string) (*Column, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.columns[i], true
}

// ColumnNames returns the column names in schema order.
func (g *Grid) ColumnNames() []string {
	names := make([]string, len(g.columns))
	for i, c := range g.columns {
		names[i] = c.name
	}
	return names
}

// Row returns the values of row i in column order.
func (g *Grid) Row(i int) []Value {
	row := make([]Value, len(g.columns))
	for c, col := range g.columns {
		row[c] = col.values[i]
	}
	return row
}

// Equal compares meta, columns and row count.
func (g *Grid) Equal(o *Grid) bool {
	if g.rows != o.rows || len(g.columns) != len(o.columns) || !g.meta.Equal(o.meta) {
		return false
	}
	for i, c := range g.columns {
		if !c.Equal(o.columns[i]) {
			return false
		}
	}
	return true
}
