package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLiteral(t *testing.T) {
	t.Parallel()

	la := time.FixedZone("", -7*60*60)
	tests := []struct {
		name  string
		token string
		want  Value
	}{
		{name: "empty token is null", token: "", want: Null()},
		{name: "explicit null", token: "N", want: Null()},
		{name: "remove", token: "R", want: Remove()},
		{name: "not available", token: "NA", want: NA()},
		{name: "marker literal", token: "M", want: Marker()},
		{name: "bare identifier is marker", token: "haystackPoint", want: Marker()},
		{name: "true", token: "T", want: NewBool(true)},
		{name: "false", token: "F", want: NewBool(false)},
		{name: "integer", token: "10000", want: NewNumber(10000, "")},
		{name: "negative with unit", token: "-2.394°C", want: NewNumber(-2.394, "°C")},
		{name: "fahrenheit quantity", token: "65.972°F", want: NewNumber(65.972, "°F")},
		{name: "percent", token: "41.5%", want: NewNumber(41.5, "%")},
		{name: "exponent", token: "1.5e3kW", want: NewNumber(1500, "kW")},
		{name: "negative exponent", token: "25E-2", want: NewNumber(0.25, "")},
		{name: "digit separators", token: "1_000_000", want: NewNumber(1000000, "")},
		{name: "unit with slash", token: "12m/s", want: NewNumber(12, "m/s")},
		{name: "infinity", token: "INF", want: NewNumber(math.Inf(1), "")},
		{name: "negative infinity", token: "-INF", want: NewNumber(math.Inf(-1), "")},
		{name: "not a number", token: "NaN", want: NewNumber(math.NaN(), "")},
		{name: "string", token: `"Eff Heat SP"`, want: NewStr("Eff Heat SP")},
		{name: "empty string", token: `""`, want: NewStr("")},
		{name: "string escapes", token: `"a\"b\\c\nd\te\$f"`, want: NewStr("a\"b\\c\nd\te$f")},
		{name: "unicode escape", token: `"\u00b0F"`, want: NewStr("°F")},
		{name: "string with comma", token: `"Nul,Occupied,Unoccupied"`, want: NewStr("Nul,Occupied,Unoccupied")},
		{
			name:  "ref with display",
			token: `@p:q01b001:r:0197767d-c51944e4 "Building One VAV1-01 Eff Heat SP"`,
			want:  NewRef("p:q01b001:r:0197767d-c51944e4", "Building One VAV1-01 Eff Heat SP"),
		},
		{name: "ref without display", token: "@site.a~b_c", want: NewRef("site.a~b_c", "")},
		{name: "uri", token: "`http://example.org/a,b`", want: NewUri("http://example.org/a,b")},
		{name: "date", token: "2020-05-18", want: NewDate(2020, time.May, 18)},
		{name: "time", token: "23:47:08", want: NewTime(23, 47, 8, 0)},
		{name: "time with fraction", token: "23:47:08.5", want: NewTime(23, 47, 8, 500000000)},
		{
			name:  "zoned timestamp",
			token: "2020-05-18T00:00:00-07:00 Los_Angeles",
			want:  NewDateTime(time.Date(2020, time.May, 18, 0, 0, 0, 0, la), "Los_Angeles"),
		},
		{
			name:  "utc timestamp without zone",
			token: "2020-03-23T23:36:40.343Z",
			want:  NewDateTime(time.Date(2020, time.March, 23, 23, 36, 40, 343000000, time.UTC), "UTC"),
		},
		{
			name:  "gmt offset zone",
			token: "2018-03-21T15:45:00+10:00 GMT-10",
			want:  NewDateTime(time.Date(2018, time.March, 21, 15, 45, 0, 0, time.FixedZone("", 10*60*60)), "GMT-10"),
		},
		{
			name:  "region zone",
			token: "2018-03-21T15:45:00+10:00 Etc/GMT+10",
			want:  NewDateTime(time.Date(2018, time.March, 21, 15, 45, 0, 0, time.FixedZone("", 10*60*60)), "Etc/GMT+10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeLiteral(tt.token)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v (%s), got %v (%s)", tt.want, tt.want.Kind(), got, got.Kind())
		})
	}
}

func TestDecodeLiteral_DateTimeKeepsOffsetAndZone(t *testing.T) {
	t.Parallel()

	v, err := DecodeLiteral("2020-05-18T00:00:00-07:00 Los_Angeles")
	require.NoError(t, err)

	assert.Equal(t, KindDateTime, v.Kind())
	assert.Equal(t, "Los_Angeles", v.Zone())
	_, offset := v.Time().Zone()
	assert.Equal(t, -7*60*60, offset)
	assert.Equal(t, time.Date(2020, time.May, 18, 7, 0, 0, 0, time.UTC), v.Time().UTC())
}

func TestDecodeLiteral_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		token  string
		want   error
		offset int
	}{
		{name: "unknown uppercase word", token: "Foo", want: ErrUnknownKind},
		{name: "coordinate", token: "C(37.55,-77.45)", want: ErrUnknownKind},
		{name: "list", token: "[1,2]", want: ErrUnknownKind},
		{name: "dict", token: "{a:1}", want: ErrUnknownKind},
		{name: "hex", token: "0xFF", want: ErrUnknownKind, offset: 1},
		{name: "unterminated string", token: `"abc`, want: ErrUnterminatedString},
		{name: "trailing text after string", token: `"abc"x`, want: ErrMalformedLiteral, offset: 5},
		{name: "bad escape", token: `"a\qb"`, want: ErrMalformedLiteral, offset: 2},
		{name: "empty ref", token: "@", want: ErrMalformedLiteral, offset: 1},
		{name: "ref with bare trailing word", token: "@abc def", want: ErrMalformedLiteral, offset: 4},
		{name: "number with space before unit", token: "12 kW", want: ErrMalformedLiteral, offset: 2},
		{name: "number with comma", token: "1,5", want: ErrMalformedLiteral, offset: 1},
		{name: "bad timestamp", token: "2020-13-45T99:00:00Z", want: ErrMalformedLiteral},
		{name: "zone starting with digit", token: "2020-05-18T00:00:00Z 1UTC", want: ErrMalformedLiteral, offset: 21},
		{name: "date followed by junk", token: "2020-05-18X", want: ErrMalformedLiteral, offset: 10},
		{name: "leading space is not trimmed", token: " 12", want: ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeLiteral(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "unexpected error: %v", err)

			var litErr *LiteralError
			require.ErrorAs(t, err, &litErr)
			assert.Equal(t, tt.offset, litErr.Offset)
		})
	}
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "null", value: Null(), want: "N"},
		{name: "marker", value: Marker(), want: "M"},
		{name: "bool", value: NewBool(false), want: "F"},
		{name: "quantity", value: NewNumber(68.553, "°F"), want: "68.553°F"},
		{name: "negative infinity", value: NewNumber(math.Inf(-1), ""), want: "-INF"},
		{name: "string with quote", value: NewStr(`say "hi"`), want: `"say \"hi\""`},
		{name: "ref", value: NewRef("a:b", "Building One"), want: `@a:b "Building One"`},
		{name: "uri", value: NewUri("http://x/`y`"), want: "`http://x/\\`y\\``"},
		{name: "date", value: NewDate(2020, time.May, 18), want: "2020-05-18"},
		{name: "time", value: NewTime(1, 2, 3, 0), want: "01:02:03"},
		{
			name:  "zoned timestamp",
			value: NewDateTime(time.Date(2020, time.May, 18, 1, 13, 9, 0, time.FixedZone("PDT", -7*60*60)), "Los_Angeles"),
			want:  "2020-05-18T01:13:09-07:00 Los_Angeles",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.value.String())

			back, err := DecodeLiteral(tt.want)
			require.NoError(t, err)
			assert.True(t, tt.value.Equal(back), "literal %s did not decode back to the same value", tt.want)
		})
	}
}
