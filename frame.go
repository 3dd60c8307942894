package zincio

import (
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/compress"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/zincio/domain/model"
)

// Field metadata keys added next to the column tags. Tag names cannot
// contain a dot, so these never collide with a tag.
const (
	// MetaKeyKind holds the decoded column kind
	MetaKeyKind = "zinc.kind"
	// MetaKeyUnit holds the unit shared by every number of a Number column
	MetaKeyUnit = "zinc.unit"
	// MetaKeyZone holds the zone name of a DateTime column
	MetaKeyZone = "zinc.tz"
)

// parquetRowGroupSize is the number of rows per Parquet row group.
const parquetRowGroupSize = 64 * 1024

// Frame is a grid converted to an Arrow table. Grid meta is kept as schema
// metadata and column tags as field metadata; Meta and ColumnTags return
// them as decoded tags.
//
// Column kinds map to Arrow types as follows:
//
//	Number    float64 (unit in zinc.unit), or utf8 literals when units differ
//	Bool      boolean
//	Marker    boolean, true where the marker is set
//	Str, Uri  utf8
//	Ref       utf8 id; the display string is dropped
//	Date      date32
//	Time      time64[ns]
//	DateTime  timestamp[ns, UTC] (zone name in zinc.tz), or utf8 literals
//	          when zone names differ
//
// Null, NA and Remove cells become Arrow nulls. A column holding values of
// another kind than its own (see DecodeOptions.WithMixedKinds) is exported
// as utf8 Zinc literals.
type Frame struct {
	table arrow.Table
	meta  model.Tags
	names []string
	tags  map[string]model.Tags
}

// NewFrame converts g into a Frame. mem may be nil to use the default
// allocator. The caller must call Release when done.
func NewFrame(g *Grid, mem memory.Allocator) (*Frame, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	columns := g.Columns()
	fields := make([]arrow.Field, len(columns))
	arrays := make([]arrow.Array, len(columns))
	names := make([]string, len(columns))
	tags := make(map[string]model.Tags, len(columns))
	for i, col := range columns {
		fields[i], arrays[i] = buildArrowColumn(col, mem)
		names[i] = col.Name()
		tags[col.Name()] = col.Tags()
	}
	defer func() {
		for _, a := range arrays {
			a.Release()
		}
	}()

	md := tagsMetadata(g.Meta(), nil)
	schema := arrow.NewSchema(fields, &md)
	rec := array.NewRecord(schema, arrays, int64(g.NumRows()))
	defer rec.Release()

	return &Frame{
		table: array.NewTableFromRecords(schema, []arrow.Record{rec}),
		meta:  g.Meta(),
		names: names,
		tags:  tags,
	}, nil
}

// Release releases the Arrow memory held by the frame.
func (f *Frame) Release() {
	if f.table != nil {
		f.table.Release()
		f.table = nil
	}
}

// Table returns the underlying Arrow table. It stays owned by the frame.
func (f *Frame) Table() arrow.Table { return f.table }

// Schema returns the Arrow schema.
func (f *Frame) Schema() *arrow.Schema { return f.table.Schema() }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int64 { return f.table.NumRows() }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int64 { return f.table.NumCols() }

// ColumnNames returns the column names in schema order.
func (f *Frame) ColumnNames() []string { return append([]string(nil), f.names...) }

// Column returns the i-th column.
func (f *Frame) Column(i int) *arrow.Column { return f.table.Column(i) }

// ColumnByName returns the named column.
func (f *Frame) ColumnByName(name string) (*arrow.Column, bool) {
	idx := f.table.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, false
	}
	return f.table.Column(idx[0]), true
}

// Meta returns the grid meta.
func (f *Frame) Meta() model.Tags { return f.meta }

// ColumnTags returns the tags of the named column.
func (f *Frame) ColumnTags(name string) (model.Tags, bool) {
	t, ok := f.tags[name]
	return t, ok
}

// WriteParquet writes the frame as a Snappy-compressed Parquet file with the
// Arrow schema, metadata included, stored in the file. w is not closed.
func (f *Frame) WriteParquet(w io.Writer) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	// pqarrow closes its sink when it implements io.Closer
	sink := struct{ io.Writer }{w}
	return pqarrow.WriteTable(f.table, sink, parquetRowGroupSize, props, arrowProps)
}

// tagsMetadata renders tags as Arrow metadata, values as Zinc literals,
// followed by extra.
func tagsMetadata(tags model.Tags, extra [][2]string) arrow.Metadata {
	keys := make([]string, 0, tags.Len()+len(extra))
	values := make([]string, 0, tags.Len()+len(extra))
	for name, v := range tags.All() {
		keys = append(keys, name)
		values = append(values, v.String())
	}
	for _, kv := range extra {
		keys = append(keys, kv[0])
		values = append(values, kv[1])
	}
	return arrow.NewMetadata(keys, values)
}

// arrowLayout describes how one column is exported.
type arrowLayout struct {
	kind model.Kind
	// literal exports every value as its Zinc literal
	literal bool
	unit    string
	zone    string
}

func layoutOf(col *model.Column) arrowLayout {
	l := arrowLayout{kind: col.Kind()}
	unitSeen, zoneSeen := false, false
	for _, v := range col.All() {
		if absent(v) {
			continue
		}
		if v.Kind() != l.kind {
			l.literal = true
			return l
		}
		switch l.kind {
		case model.KindNumber:
			if !unitSeen {
				l.unit, unitSeen = v.Unit(), true
			} else if v.Unit() != l.unit {
				l.literal = true
				return l
			}
		case model.KindDateTime:
			if !zoneSeen {
				l.zone, zoneSeen = v.Zone(), true
			} else if v.Zone() != l.zone {
				l.literal = true
				return l
			}
		}
	}
	switch l.kind {
	case model.KindNull, model.KindMarker, model.KindBool, model.KindNumber, model.KindStr,
		model.KindRef, model.KindUri, model.KindDate, model.KindTime, model.KindDateTime:
	default:
		l.literal = true
	}
	return l
}

func (l arrowLayout) dataType() arrow.DataType {
	if l.literal {
		return arrow.BinaryTypes.String
	}
	switch l.kind {
	case model.KindMarker, model.KindBool:
		return arrow.FixedWidthTypes.Boolean
	case model.KindNumber:
		return arrow.PrimitiveTypes.Float64
	case model.KindDate:
		return arrow.FixedWidthTypes.Date32
	case model.KindTime:
		return &arrow.Time64Type{Unit: arrow.Nanosecond}
	case model.KindDateTime:
		return &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}
	default:
		return arrow.BinaryTypes.String
	}
}

func (l arrowLayout) metadata(tags model.Tags) arrow.Metadata {
	extra := [][2]string{{MetaKeyKind, l.kind.String()}}
	if !l.literal && l.kind == model.KindNumber && l.unit != "" {
		extra = append(extra, [2]string{MetaKeyUnit, l.unit})
	}
	if !l.literal && l.kind == model.KindDateTime && l.zone != "" {
		extra = append(extra, [2]string{MetaKeyZone, l.zone})
	}
	return tagsMetadata(tags, extra)
}

func buildArrowColumn(col *model.Column, mem memory.Allocator) (arrow.Field, arrow.Array) {
	l := layoutOf(col)
	dt := l.dataType()
	field := arrow.Field{
		Name:     col.Name(),
		Type:     dt,
		Nullable: true,
		Metadata: l.metadata(col.Tags()),
	}

	b := array.NewBuilder(mem, dt)
	defer b.Release()
	b.Reserve(col.Len())
	for _, v := range col.All() {
		if absent(v) {
			b.AppendNull()
			continue
		}
		appendArrowValue(b, l, v)
	}
	return field, b.NewArray()
}

func absent(v model.Value) bool {
	switch v.Kind() {
	case model.KindNull, model.KindNA, model.KindRemove:
		return true
	}
	return false
}

func appendArrowValue(b array.Builder, l arrowLayout, v model.Value) {
	if l.literal {
		b.(*array.StringBuilder).Append(v.String())
		return
	}
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		bb.Append(v.IsTrue())
	case *array.Float64Builder:
		bb.Append(v.Float())
	case *array.Date32Builder:
		bb.Append(arrow.Date32FromTime(v.Time()))
	case *array.Time64Builder:
		t := v.Time()
		ns := int64(t.Hour())*3600e9 + int64(t.Minute())*60e9 + int64(t.Second())*1e9 + int64(t.Nanosecond())
		bb.Append(arrow.Time64(ns))
	case *array.TimestampBuilder:
		bb.Append(arrow.Timestamp(v.Time().UnixNano()))
	case *array.StringBuilder:
		switch v.Kind() {
		case model.KindRef:
			bb.Append(v.ID())
		default:
			bb.Append(v.Text())
		}
	}
}
