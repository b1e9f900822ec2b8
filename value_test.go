package xsdconv_test

import (
	"math/big"
	"testing"

	json "github.com/goccy/go-json"

	xsdconv "github.com/reoring/xsdconv"
)

// TestValue_StringRoundTrip converts, renders and converts again; both
// values must be equal.
func TestValue_StringRoundTrip(t *testing.T) {
	cases := []xsdconv.Item{
		{Value: "-42", Type: "int"},
		{Value: "123456789012345678901234567890", Type: "integer"},
		{Value: "-1.50", Type: "decimal"},
		{Value: "1.5e300", Type: "double"},
		{Value: "-INF", Type: "double"},
		{Value: "NaN", Type: "double"},
		{Value: "0.1", Type: "float"},
		{Value: "3.4028235E38", Type: "float"},
		{Value: "1", Type: "boolean"},
		{Value: "2009-04-17+09:00", Type: "date"},
		{Value: "-0044-03-15", Type: "date"},
		{Value: "13:45:30.5-05:00", Type: "time"},
		{Value: "2009-04-17T13:45:30.000000001Z", Type: "dateTime"},
		{Value: "-P1Y2M3DT4H5M6.7S", Type: "duration"},
		{Value: "PT0S", Type: "duration"},
		{Value: "-PT0S", Type: "duration"},
		{Value: "-P0Y0M", Type: "duration"},
		{Value: "2009", Type: "gYear"},
		{Value: "2009-04Z", Type: "gYearMonth"},
		{Value: "--04", Type: "gMonth"},
		{Value: "--02-29", Type: "gMonthDay"},
		{Value: "---17", Type: "gDay"},
		{Value: "SGVsbG8=", Type: "base64Binary"},
		{Value: "0fa1", Type: "hexBinary"},
		{Value: "urn:isbn:0451450523", Type: "anyURI"},
		{Value: "xs:int", Type: "QName"},
		{Value: "a b", Type: "token"},
	}
	for _, c := range cases {
		v := mustConvert(t, c.Value, c.Type)
		again := mustConvert(t, v.String(), c.Type)
		if !v.Equal(again) {
			t.Fatalf("%s %q: round trip via %q gave %v", c.Type, c.Value, v.String(), again)
		}
	}
}

func TestValue_CanonicalStrings(t *testing.T) {
	for _, c := range []struct{ in, typ, want string }{
		{"+007", "int", "7"},
		{"1", "boolean", "true"},
		{"42", "double", "42"},
		{"1e21", "double", "1E+21"},
		{"0fa1", "hexBinary", "0FA1"},
		{"2009-04-17T24:00:00Z", "dateTime", "2009-04-18T00:00:00Z"},
		{"P0Y", "duration", "PT0S"},
		{"--04--", "gMonth", "--04"},
	} {
		if got := mustConvert(t, c.in, c.typ).String(); got != c.want {
			t.Fatalf("%s %q: got %q want %q", c.typ, c.in, got, c.want)
		}
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	for _, c := range []struct{ in, typ, want string }{
		{"42", "xs:int", `{"type":"int","kind":"integer","value":42}`},
		{"0.1", "xs:decimal", `{"type":"decimal","kind":"decimal","value":"0.1"}`},
		{"42", "xs:double", `{"type":"double","kind":"float","value":42}`},
		{"INF", "xs:double", `{"type":"double","kind":"float","value":"INF"}`},
		{"true", "xs:boolean", `{"type":"boolean","kind":"boolean","value":true}`},
		{"2009-04-17", "xs:date", `{"type":"date","kind":"date","value":"2009-04-17"}`},
		{"42", "xs:string", `{"type":"string","kind":"text","value":"42"}`},
	} {
		b, err := json.Marshal(mustConvert(t, c.in, c.typ))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(b) != c.want {
			t.Fatalf("%s %q: got %s want %s", c.typ, c.in, b, c.want)
		}
	}
	b, err := json.Marshal(xsdconv.Value{})
	if err != nil || string(b) != `{"type":"","kind":"invalid","value":null}` {
		t.Fatalf("zero value: %s (%v)", b, err)
	}
}

func TestValue_AccessorsMatchKind(t *testing.T) {
	v := mustConvert(t, "42", "int")
	if _, ok := v.Float(); ok {
		t.Fatalf("int must not expose Float")
	}
	if _, ok := v.Text(); ok {
		t.Fatalf("int must not expose Text")
	}
	if _, ok := v.Decimal(); ok {
		t.Fatalf("int must not expose Decimal")
	}
	u := mustConvert(t, "http://example.com", "anyURI")
	if _, ok := u.Text(); ok {
		t.Fatalf("anyURI must not expose Text")
	}
	if s, ok := u.URI(); !ok || s != "http://example.com" {
		t.Fatalf("unexpected URI %q", s)
	}

	var zero xsdconv.Value
	if zero.IsValid() || zero.Kind() != xsdconv.KindInvalid || zero.String() != "" {
		t.Fatalf("zero Value must be invalid")
	}
}

func TestValue_PayloadCopies(t *testing.T) {
	v := mustConvert(t, "42", "int")
	n, _ := v.BigInt()
	n.Add(n, big.NewInt(1))
	if got, _ := v.Int64(); got != 42 {
		t.Fatalf("mutating BigInt result changed the value: %d", got)
	}

	b := mustConvert(t, "AAEC", "base64Binary")
	raw, _ := b.Bytes()
	raw[0] = 0xff
	if again, _ := b.Bytes(); again[0] != 0 {
		t.Fatalf("mutating Bytes result changed the value")
	}

	d := mustConvert(t, "1.5", "decimal")
	dec, _ := d.Decimal()
	dec.Negative = true
	if again, _ := d.Decimal(); again.Negative {
		t.Fatalf("mutating Decimal result changed the value")
	}
}

func TestValue_EqualRequiresSameType(t *testing.T) {
	a := mustConvert(t, "42", "int")
	b := mustConvert(t, "42", "long")
	if a.Equal(b) {
		t.Fatalf("values of different types must not be equal")
	}
	if !a.Equal(mustConvert(t, "+42", "xs:int")) {
		t.Fatalf("equal values must compare equal")
	}
}
