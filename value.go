package xsdconv

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"math"
	"math/big"
	"strconv"

	"github.com/cockroachdb/apd/v3"

	"github.com/reoring/xsdconv/lexical"
)

// Kind is the variant of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInteger
	KindDecimal
	KindFloat
	KindBoolean
	KindText
	KindDate
	KindTime
	KindDateTime
	KindDuration
	KindGregorian
	KindBinary
	KindURI
	KindQName
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindInteger:   "integer",
	KindDecimal:   "decimal",
	KindFloat:     "float",
	KindBoolean:   "boolean",
	KindText:      "text",
	KindDate:      "date",
	KindTime:      "time",
	KindDateTime:  "dateTime",
	KindDuration:  "duration",
	KindGregorian: "gregorian",
	KindBinary:    "binary",
	KindURI:       "uri",
	KindQName:     "qname",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is the native result of a conversion: exactly one payload, selected
// by Kind. The zero Value has KindInvalid. Values are immutable; accessors
// that return pointers or slices return copies.
type Value struct {
	typeName string
	kind     Kind
	v        any
}

// IntegerValue wraps a copy of n. typeName is the schema type the value
// belongs to; the Converter overwrites it with the registry name.
func IntegerValue(typeName string, n *big.Int) Value {
	return Value{typeName: typeName, kind: KindInteger, v: new(big.Int).Set(n)}
}

// DecimalValue wraps a copy of the exact decimal d.
func DecimalValue(typeName string, d *apd.Decimal) Value {
	return Value{typeName: typeName, kind: KindDecimal, v: new(apd.Decimal).Set(d)}
}

// FloatValue wraps a double or float value.
func FloatValue(typeName string, f float64) Value {
	return Value{typeName: typeName, kind: KindFloat, v: f}
}

// BooleanValue wraps b.
func BooleanValue(typeName string, b bool) Value {
	return Value{typeName: typeName, kind: KindBoolean, v: b}
}

// TextValue wraps a string-derived value.
func TextValue(typeName, s string) Value {
	return Value{typeName: typeName, kind: KindText, v: s}
}

// DateValue wraps a calendar date.
func DateValue(typeName string, d lexical.Date) Value {
	return Value{typeName: typeName, kind: KindDate, v: d}
}

// TimeValue wraps a time of day.
func TimeValue(typeName string, t lexical.Time) Value {
	return Value{typeName: typeName, kind: KindTime, v: t}
}

// DateTimeValue wraps a date and time of day.
func DateTimeValue(typeName string, dt lexical.DateTime) Value {
	return Value{typeName: typeName, kind: KindDateTime, v: dt}
}

// DurationValue wraps a duration in component form.
func DurationValue(typeName string, d lexical.Duration) Value {
	return Value{typeName: typeName, kind: KindDuration, v: d}
}

// GregorianValue wraps a partial date (gYear, gMonthDay, ...).
func GregorianValue(typeName string, g lexical.Gregorian) Value {
	return Value{typeName: typeName, kind: KindGregorian, v: g}
}

// BinaryValue wraps a copy of b.
func BinaryValue(typeName string, b []byte) Value {
	return Value{typeName: typeName, kind: KindBinary, v: bytes.Clone(b)}
}

// URIValue wraps an anyURI value.
func URIValue(typeName, s string) Value {
	return Value{typeName: typeName, kind: KindURI, v: s}
}

// QNameValue wraps a QName or NOTATION value.
func QNameValue(typeName string, q lexical.QName) Value {
	return Value{typeName: typeName, kind: KindQName, v: q}
}

// Kind reports the populated variant.
func (v Value) Kind() Kind { return v.kind }

// TypeName reports the canonical schema type that produced the value.
func (v Value) TypeName() string { return v.typeName }

// IsValid reports whether v holds a payload.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// BigInt returns a copy of the Integer payload.
func (v Value) BigInt() (*big.Int, bool) {
	n, ok := v.v.(*big.Int)
	if !ok {
		return nil, false
	}
	return new(big.Int).Set(n), true
}

// Int64 returns the Integer payload when it fits in an int64.
func (v Value) Int64() (int64, bool) {
	n, ok := v.v.(*big.Int)
	if !ok || !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// Decimal returns a copy of the Decimal payload.
func (v Value) Decimal() (*apd.Decimal, bool) {
	d, ok := v.v.(*apd.Decimal)
	if !ok {
		return nil, false
	}
	return new(apd.Decimal).Set(d), true
}

// Float returns the Float payload.
func (v Value) Float() (float64, bool) {
	f, ok := v.v.(float64)
	return f, ok && v.kind == KindFloat
}

// Bool returns the Boolean payload.
func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok
}

// Text returns the Text payload.
func (v Value) Text() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.v.(string), true
}

// URI returns the URI payload.
func (v Value) URI() (string, bool) {
	if v.kind != KindURI {
		return "", false
	}
	return v.v.(string), true
}

// Date returns the Date payload.
func (v Value) Date() (lexical.Date, bool) {
	d, ok := v.v.(lexical.Date)
	return d, ok
}

// Time returns the Time payload.
func (v Value) Time() (lexical.Time, bool) {
	t, ok := v.v.(lexical.Time)
	return t, ok
}

// DateTime returns the DateTime payload.
func (v Value) DateTime() (lexical.DateTime, bool) {
	dt, ok := v.v.(lexical.DateTime)
	return dt, ok
}

// Duration returns the Duration payload.
func (v Value) Duration() (lexical.Duration, bool) {
	d, ok := v.v.(lexical.Duration)
	return d, ok
}

// Gregorian returns the partial-date payload.
func (v Value) Gregorian() (lexical.Gregorian, bool) {
	g, ok := v.v.(lexical.Gregorian)
	return g, ok
}

// Bytes returns a copy of the Binary payload.
func (v Value) Bytes() ([]byte, bool) {
	b, ok := v.v.([]byte)
	if !ok {
		return nil, false
	}
	return bytes.Clone(b), true
}

// QName returns the QName payload.
func (v Value) QName() (lexical.QName, bool) {
	q, ok := v.v.(lexical.QName)
	return q, ok
}

// Interface returns the payload as a plain Go value: *big.Int, *apd.Decimal,
// float64, bool, string, []byte or one of the lexical value types.
func (v Value) Interface() any {
	switch p := v.v.(type) {
	case *big.Int:
		return new(big.Int).Set(p)
	case *apd.Decimal:
		return new(apd.Decimal).Set(p)
	case []byte:
		return bytes.Clone(p)
	}
	return v.v
}

// Equal reports whether both values have the same type name, kind and
// payload. NaN equals NaN so that repeated conversions compare equal; dates
// compare by calendar day and ignore the zone.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.typeName != o.typeName {
		return false
	}
	switch a := v.v.(type) {
	case nil:
		return o.v == nil
	case *big.Int:
		return a.Cmp(o.v.(*big.Int)) == 0
	case *apd.Decimal:
		return a.Cmp(o.v.(*apd.Decimal)) == 0
	case float64:
		b := o.v.(float64)
		if math.IsNaN(a) {
			return math.IsNaN(b)
		}
		return math.Float64bits(a) == math.Float64bits(b)
	case []byte:
		return bytes.Equal(a, o.v.([]byte))
	case lexical.Date:
		return a.Equal(o.v.(lexical.Date))
	}
	return v.v == o.v
}

// String renders the value in its type's lexical space, so that converting
// the result again yields an equal Value.
func (v Value) String() string {
	switch p := v.v.(type) {
	case nil:
		return ""
	case *big.Int:
		return p.String()
	case *apd.Decimal:
		return p.Text('f')
	case float64:
		bits := 64
		if v.typeName == "float" {
			bits = 32
		}
		return lexical.FormatFloat(p, bits)
	case bool:
		return strconv.FormatBool(p)
	case string:
		return p
	case []byte:
		if v.typeName == "hexBinary" {
			return hexUpper(p)
		}
		return base64.StdEncoding.EncodeToString(p)
	case interface{ String() string }:
		return p.String()
	}
	return ""
}

func hexUpper(b []byte) string {
	s := []byte(hex.EncodeToString(b))
	for i, c := range s {
		if c >= 'a' && c <= 'f' {
			s[i] = c - 'a' + 'A'
		}
	}
	return string(s)
}
