package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		columns int
		want    [][]string
		rows    int
	}{
		{
			name:    "no data lines",
			body:    "",
			columns: 2,
			want:    [][]string{{}, {}},
			rows:    0,
		},
		{
			name:    "fields are not trimmed",
			body:    "2020-05-18T00:00:00-07:00 Los_Angeles, 68.5°F \n",
			columns: 2,
			want:    [][]string{{"2020-05-18T00:00:00-07:00 Los_Angeles"}, {" 68.5°F "}},
			rows:    1,
		},
		{
			name:    "short rows are padded",
			body:    "a\nb,c\n",
			columns: 3,
			want:    [][]string{{"a", "b"}, {"", "c"}, {"", ""}},
			rows:    2,
		},
		{
			name:    "quoted commas stay in one field",
			body:    `"a,b",@x "c,d",` + "`u,v`",
			columns: 3,
			want:    [][]string{{`"a,b"`}, {`@x "c,d"`}, {"`u,v`"}},
			rows:    1,
		},
		{
			name:    "escaped quote inside quotes",
			body:    `"say \"hi, there\"",1`,
			columns: 2,
			want:    [][]string{{`"say \"hi, there\""`}, {"1"}},
			rows:    1,
		},
		{
			name:    "crlf line endings and trailing blank lines",
			body:    "1,2\r\n3,4\r\n\r\n\r\n",
			columns: 2,
			want:    [][]string{{"1", "3"}, {"2", "4"}},
			rows:    2,
		},
		{
			name:    "interior blank line is an empty row",
			body:    "1\n\n3",
			columns: 1,
			want:    [][]string{{"1", "", "3"}},
			rows:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw, err := TokenizeRows(tt.body, tt.columns, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, raw.Rows())
			require.Equal(t, tt.columns, raw.Width())
			for c := range tt.columns {
				assert.Equal(t, tt.want[c], raw.Column(c), "column %d", c)
			}
		})
	}
}

func TestTokenizeRows_FieldCountExceeded(t *testing.T) {
	t.Parallel()

	_, err := TokenizeRows("1,2\n3,4,5,6\n7,8", 2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldCountExceeded)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 1, rowErr.Row)
	assert.Equal(t, 4, rowErr.Line)
	assert.Equal(t, 4, rowErr.Fields)
}

func TestTokenizeRows_UnterminatedQuote(t *testing.T) {
	t.Parallel()

	_, err := TokenizeRows("\"abc,1\n", 2, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedRow)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 0, rowErr.Row)
}
