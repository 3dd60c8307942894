package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the kind of a decoded scalar value.
type Kind int

const (
	// KindNull is an empty cell or the N literal
	KindNull Kind = iota
	// KindMarker is the M literal or a bare tag: presence means true
	KindMarker
	// KindRemove is the R literal
	KindRemove
	// KindNA is the NA literal: value intentionally not available
	KindNA
	// KindBool is the T or F literal
	KindBool
	// KindNumber is a decimal magnitude with an optional unit
	KindNumber
	// KindStr is a double quoted string
	KindStr
	// KindRef is an @ reference with an optional display string
	KindRef
	// KindUri is a backtick quoted URI
	KindUri
	// KindDate is a calendar date without time
	KindDate
	// KindTime is a time of day without date
	KindTime
	// KindDateTime is an instant with its UTC offset and zone name
	KindDateTime
)

// String returns the Haystack name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindMarker:
		return "Marker"
	case KindRemove:
		return "Remove"
	case KindNA:
		return "NA"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindStr:
		return "Str"
	case KindRef:
		return "Ref"
	case KindUri:
		return "Uri"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindDateTime:
		return "DateTime"
	default:
		return "Unknown"
	}
}

// kindFromName maps the value of a kind tag to a Kind.
func kindFromName(name string) (Kind, bool) {
	switch name {
	case "Marker":
		return KindMarker, true
	case "Bool":
		return KindBool, true
	case "Number":
		return KindNumber, true
	case "Str":
		return KindStr, true
	case "Ref":
		return KindRef, true
	case "Uri":
		return KindUri, true
	case "Date":
		return KindDate, true
	case "Time":
		return KindTime, true
	case "DateTime":
		return KindDateTime, true
	default:
		return KindNull, false
	}
}

// Value is one decoded Zinc scalar. The zero Value is Null.
// Values are immutable; all fields are set by the constructors.
type Value struct {
	kind Kind
	b    bool
	num  float64
	// str holds the Str text, Ref id, Uri, Number unit or DateTime zone name.
	str string
	// dis holds the Ref display string.
	dis string
	t   time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// Marker returns the marker value.
func Marker() Value { return Value{kind: KindMarker} }

// Remove returns the remove value.
func Remove() Value { return Value{kind: KindRemove} }

// NA returns the not-available value.
func NA() Value { return Value{kind: KindNA} }

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewNumber returns a Number value. unit may be empty.
func NewNumber(v float64, unit string) Value {
	return Value{kind: KindNumber, num: v, str: unit}
}

// NewStr returns a Str value.
func NewStr(s string) Value { return Value{kind: KindStr, str: s} }

// NewRef returns a Ref value. dis may be empty.
func NewRef(id, dis string) Value { return Value{kind: KindRef, str: id, dis: dis} }

// NewUri returns a Uri value.
func NewUri(uri string) Value { return Value{kind: KindUri, str: uri} }

// NewDate returns a Date value holding the calendar date of t.
func NewDate(year int, month time.Month, day int) Value {
	return Value{kind: KindDate, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewTime returns a Time value holding a time of day.
func NewTime(hour, minute, sec, nsec int) Value {
	return Value{kind: KindTime, t: time.Date(0, time.January, 1, hour, minute, sec, nsec, time.UTC)}
}

// NewDateTime returns a DateTime value. The offset of t is kept as is and
// zone is carried verbatim without being resolved.
func NewDateTime(t time.Time, zone string) Value {
	return Value{kind: KindDateTime, t: normalizeOffset(t), str: zone}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsAbsent reports whether v is Null or NA.
func (v Value) IsAbsent() bool { return v.kind == KindNull || v.kind == KindNA }

// IsTrue reports whether v is the Bool true or a Marker.
func (v Value) IsTrue() bool { return v.kind == KindMarker || (v.kind == KindBool && v.b) }

// Float returns the magnitude of a Number, or NaN for other kinds.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return math.NaN()
	}
	return v.num
}

// Unit returns the unit of a Number, or "".
func (v Value) Unit() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.str
}

// Text returns the text of a Str or Uri, or "".
func (v Value) Text() string {
	if v.kind != KindStr && v.kind != KindUri {
		return ""
	}
	return v.str
}

// ID returns the identifier of a Ref, or "".
func (v Value) ID() string {
	if v.kind != KindRef {
		return ""
	}
	return v.str
}

// Dis returns the display string of a Ref, or "".
func (v Value) Dis() string {
	if v.kind != KindRef {
		return ""
	}
	return v.dis
}

// Time returns the instant of a DateTime, midnight UTC of a Date, or the
// time of day of a Time on January 1 of year 0. Other kinds return the zero time.
func (v Value) Time() time.Time { return v.t }

// Zone returns the zone name of a DateTime, or "".
func (v Value) Zone() string {
	if v.kind != KindDateTime {
		return ""
	}
	return v.str
}

// Equal reports whether v and o are the same value. NaN equals NaN and
// DateTimes must agree on instant, offset and zone name.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindNumber:
		if math.IsNaN(v.num) || math.IsNaN(o.num) {
			return math.IsNaN(v.num) && math.IsNaN(o.num) && v.str == o.str
		}
		return v.num == o.num && v.str == o.str
	case KindStr, KindUri:
		return v.str == o.str
	case KindRef:
		return v.str == o.str && v.dis == o.dis
	case KindDate, KindTime:
		return v.t.Equal(o.t)
	case KindDateTime:
		_, off1 := v.t.Zone()
		_, off2 := o.t.Zone()
		return v.t.Equal(o.t) && off1 == off2 && v.str == o.str
	default:
		return true
	}
}

// String returns the Zinc literal form of v. Null renders as "N".
func (v Value) String() string {
	var sb strings.Builder
	v.appendZinc(&sb)
	return sb.String()
}

// Plain returns v as cell text for tabular exports: Null is empty, Str is
// its raw text and every other kind is its Zinc literal.
func (v Value) Plain() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindStr:
		return v.str
	default:
		return v.String()
	}
}

func (v Value) appendZinc(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("N")
	case KindMarker:
		sb.WriteString("M")
	case KindRemove:
		sb.WriteString("R")
	case KindNA:
		sb.WriteString("NA")
	case KindBool:
		if v.b {
			sb.WriteString("T")
		} else {
			sb.WriteString("F")
		}
	case KindNumber:
		switch {
		case math.IsNaN(v.num):
			sb.WriteString("NaN")
		case math.IsInf(v.num, 1):
			sb.WriteString("INF")
		case math.IsInf(v.num, -1):
			sb.WriteString("-INF")
		default:
			sb.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
			sb.WriteString(v.str)
		}
	case KindStr:
		appendQuoted(sb, v.str, '"')
	case KindRef:
		sb.WriteByte('@')
		sb.WriteString(v.str)
		if v.dis != "" {
			sb.WriteByte(' ')
			appendQuoted(sb, v.dis, '"')
		}
	case KindUri:
		appendQuoted(sb, v.str, '`')
	case KindDate:
		sb.WriteString(v.t.Format(time.DateOnly))
	case KindTime:
		sb.WriteString(v.t.Format("15:04:05.999999999"))
	case KindDateTime:
		sb.WriteString(v.t.Format(time.RFC3339Nano))
		if v.str != "" {
			sb.WriteByte(' ')
			sb.WriteString(v.str)
		}
	}
}

// appendQuoted writes s between quote characters, escaping what the
// literal decoder unescapes.
func appendQuoted(sb *strings.Builder, s string, quote byte) {
	sb.WriteByte(quote)
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '$':
			if quote == '"' {
				sb.WriteString(`\$`)
			} else {
				sb.WriteRune(r)
			}
		default:
			if r == rune(quote) {
				sb.WriteByte('\\')
				sb.WriteByte(quote)
				continue
			}
			if r < 0x20 {
				sb.WriteString(`\u`)
				hex := strconv.FormatInt(int64(r), 16)
				sb.WriteString(strings.Repeat("0", 4-len(hex)))
				sb.WriteString(hex)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
}

// normalizeOffset moves t into a fixed zone carrying only its offset, so
// values parsed on machines with different local zones compare and render alike.
func normalizeOffset(t time.Time) time.Time {
	_, off := t.Zone()
	if off == 0 {
		return t.In(time.UTC)
	}
	return t.In(time.FixedZone("", off))
}
