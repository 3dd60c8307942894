package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()

	t.Run("grid meta keeps order and unknown tags", func(t *testing.T) {
		t.Parallel()

		h, err := ParseHeader(`ver:"3.0" view:"chart" hisStart:2020-05-18T00:00:00-07:00 Los_Angeles hisLimit:10000 futureTag dis:"Mon 18-May-2020"`, "ts")
		require.NoError(t, err)

		assert.Equal(t, "3.0", h.Version())
		assert.Equal(t, []string{"ver", "view", "hisStart", "hisLimit", "futureTag", "dis"}, h.Meta.Names())

		start, ok := h.Meta.Get("hisStart")
		require.True(t, ok)
		assert.Equal(t, KindDateTime, start.Kind())
		assert.Equal(t, "Los_Angeles", start.Zone())

		limit, _ := h.Meta.Get("hisLimit")
		assert.True(t, NewNumber(10000, "").Equal(limit))

		future, _ := h.Meta.Get("futureTag")
		assert.Equal(t, KindMarker, future.Kind())
	})

	t.Run("column definitions with tags", func(t *testing.T) {
		t.Parallel()

		line1, line2, _, err := SplitHeader(chartGrid)
		require.NoError(t, err)
		h, err := ParseHeader(line1, line2)
		require.NoError(t, err)

		require.Equal(t, []string{"ts", "v0"}, h.ColumnNames())

		ts := h.Columns[0].Tags
		assert.Equal(t, []string{"disKey", "tz", "chartFormat"}, ts.Names())
		format, _ := ts.Str("chartFormat")
		assert.Equal(t, "ka", format)

		v0 := h.Columns[1].Tags
		id, ok := v0.Get("id")
		require.True(t, ok)
		assert.Equal(t, "p:q01b001:r:0197767d-c51944e4", id.ID())
		assert.Equal(t, "Building One VAV1-01 Eff Heat SP", id.Dis())

		curVal, _ := v0.Get("curVal")
		assert.Equal(t, 65.972, curVal.Float())
		assert.Equal(t, "°F", curVal.Unit())

		unit, _ := v0.Str("unit")
		assert.Equal(t, "°F", unit)
		assert.True(t, v0.Has("heating"))
		assert.Equal(t, 18, v0.Len())
	})

	t.Run("names without tags", func(t *testing.T) {
		t.Parallel()

		h, err := ParseHeader(`ver:"2.0"`, "a,b, c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, h.ColumnNames())
		assert.Equal(t, 0, h.Columns[0].Tags.Len())
	})

	t.Run("quoted comma does not split a column", func(t *testing.T) {
		t.Parallel()

		h, err := ParseHeader(`ver:"3.0"`, `v1 kind:"Str" enum:"Nul,Occupied,Unoccupied",v2`)
		require.NoError(t, err)
		require.Equal(t, []string{"v1", "v2"}, h.ColumnNames())
		enum, _ := h.Columns[0].Tags.Str("enum")
		assert.Equal(t, "Nul,Occupied,Unoccupied", enum)
	})

	t.Run("tabs and no-break spaces separate tags", func(t *testing.T) {
		t.Parallel()

		h, err := ParseHeader("ver:\"3.0\"\ta:1\u00a0site", "ts\ttz:\"UTC\",\u00a0v0\tunit:\"kW\"")
		require.NoError(t, err)
		assert.Equal(t, []string{"ver", "a", "site"}, h.Meta.Names())
		a, _ := h.Meta.Get("a")
		assert.True(t, NewNumber(1, "").Equal(a))
		require.Equal(t, []string{"ts", "v0"}, h.ColumnNames())
		tz, _ := h.Columns[0].Tags.Str("tz")
		assert.Equal(t, "UTC", tz)
		unit, _ := h.Columns[1].Tags.Str("unit")
		assert.Equal(t, "kW", unit)

		g, err := Parse("ver:\"3.0\"\ta:1\na\n1\n")
		require.NoError(t, err)
		assert.Equal(t, 1, g.NumRows())
	})
}

func TestParseHeader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line1 string
		line2 string
		want  error
		line  int
	}{
		{name: "duplicate column", line1: `ver:"3.0"`, line2: "ts,val,ts", want: ErrDuplicateColumn, line: 2},
		{name: "empty schema", line1: `ver:"3.0"`, line2: "", want: ErrEmptySchema, line: 2},
		{name: "blank schema", line1: `ver:"3.0"`, line2: "   ", want: ErrEmptySchema, line: 2},
		{name: "missing version", line1: `dis:"x"`, line2: "a", want: ErrMissingVersion, line: 1},
		{name: "unsupported version", line1: `ver:"4.0"`, line2: "a", want: ErrUnsupportedVersion, line: 1},
		{name: "numeric version", line1: `ver:3`, line2: "a", want: ErrUnsupportedVersion, line: 1},
		{name: "uppercase tag name", line1: `ver:"3.0" Dis:"x"`, line2: "a", want: ErrMalformedHeader, line: 1},
		{name: "uppercase column name", line1: `ver:"3.0"`, line2: "Ts", want: ErrMalformedHeader, line: 2},
		{name: "trailing comma", line1: `ver:"3.0"`, line2: "a,", want: ErrMalformedHeader, line: 2},
		{name: "duplicate tag", line1: `ver:"3.0" dis:"a" dis:"b"`, line2: "a", want: ErrDuplicateTag, line: 1},
		{name: "unknown literal", line1: `ver:"3.0"`, line2: "a loc:C(1,2)", want: ErrUnknownKind, line: 2},
		{name: "unterminated string", line1: `ver:"3.0" dis:"abc`, line2: "a", want: ErrUnterminatedString, line: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseHeader(tt.line1, tt.line2)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "unexpected error: %v", err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.line, schemaErr.Line)
		})
	}
}

func TestParseHeader_ErrorGrid(t *testing.T) {
	t.Parallel()

	line1 := `ver:"3.0" errType:"sys::NullErr" err errTrace:"sys::NullErr: java.lang.NullPointerException\n" dis:"sys::NullErr: java.lang.NullPointerException"`
	_, err := ParseHeader(line1, "empty")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrErrorGrid)

	var gridErr *ErrorGridError
	require.ErrorAs(t, err, &gridErr)
	assert.Equal(t, "sys::NullErr", gridErr.ErrType)
	assert.Equal(t, "sys::NullErr: java.lang.NullPointerException", gridErr.Dis)
	assert.Equal(t, "sys::NullErr: java.lang.NullPointerException\n", gridErr.Trace)
}
