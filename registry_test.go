package xsdconv_test

import (
	"errors"
	"sort"
	"strings"
	"testing"

	xsdconv "github.com/reoring/xsdconv"
	"github.com/reoring/xsdconv/lexical"
)

func TestRegistry_MandatoryTypes(t *testing.T) {
	reg := xsdconv.Default()
	for _, name := range []string{"int", "double", "decimal", "string", "boolean", "date"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Fatalf("missing mandatory type %s", name)
		}
		if _, ok := reg.Lookup("xs:" + name); !ok {
			t.Fatalf("prefixed lookup failed for %s", name)
		}
	}
	names := reg.Names()
	if !sort.StringsAreSorted(names) || len(names) != reg.Len() {
		t.Fatalf("names must be sorted and complete: %v", names)
	}
	names[0] = "mutated"
	if reg.Names()[0] == "mutated" {
		t.Fatalf("Names must return a copy")
	}
}

func TestRegistry_LookupIsExact(t *testing.T) {
	reg := xsdconv.Default()
	for _, name := range []string{"INT", "Int", "in", "int ", " int", "xs:int:x"} {
		if _, ok := reg.Lookup(name); ok {
			t.Fatalf("lookup of %q must fail", name)
		}
	}
}

func TestRegistryBuilder_ConfigurationErrors(t *testing.T) {
	rule := func(s string) (xsdconv.Value, error) { return xsdconv.TextValue("x", s), nil }

	_, err := xsdconv.NewRegistryBuilder().
		Register("a", xsdconv.KindText, rule).
		Register("a", xsdconv.KindText, rule).
		Build()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	_, err = xsdconv.NewRegistryBuilder().
		Register("", xsdconv.KindText, rule).
		Register("xs:b", xsdconv.KindText, rule).
		Register("c", xsdconv.KindText, nil).
		Build()
	if err == nil {
		t.Fatalf("expected configuration errors")
	}
	for _, want := range []string{"empty type name", "prefix", "nil rule"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	// Built-in names cannot be registered twice either.
	_, err = xsdconv.NewBuiltinRegistryBuilder().Register("int", xsdconv.KindText, rule).Build()
	if err == nil {
		t.Fatalf("expected duplicate error for int")
	}
}

func TestRegistryBuilder_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	xsdconv.NewRegistryBuilder().Register("", xsdconv.KindText, nil).MustBuild()
}

// TestRegistry_ExtendWithoutDispatchChanges adds a type by registering a
// single rule and converts through it.
func TestRegistry_ExtendWithoutDispatchChanges(t *testing.T) {
	reg := xsdconv.NewBuiltinRegistryBuilder().
		Register("yearMonthDuration", xsdconv.KindDuration, func(s string) (xsdconv.Value, error) {
			d, err := lexical.ParseDuration(s)
			if err != nil {
				return xsdconv.Value{}, err
			}
			if d.Days != 0 || d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Nanoseconds != 0 {
				return xsdconv.Value{}, &lexical.Error{Code: lexical.CodeInvalidFormat}
			}
			return xsdconv.DurationValue("", d), nil
		}).
		MustBuild()
	c := xsdconv.New(xsdconv.WithRegistry(reg))

	v, err := c.Convert("P1Y2M", "xs:yearMonthDuration")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if v.TypeName() != "yearMonthDuration" || v.Kind() != xsdconv.KindDuration {
		t.Fatalf("unexpected value %v (%s)", v, v.TypeName())
	}
	if _, err := c.Convert("P1D", "yearMonthDuration"); !errors.Is(err, xsdconv.ErrInvalidLexicalValue) {
		t.Fatalf("expected invalid lexical value, got %v", err)
	}
	if _, err := c.Convert("42", "int"); err != nil {
		t.Fatalf("built-ins must remain: %v", err)
	}
	if _, err := xsdconv.Convert("P1Y", "yearMonthDuration"); !errors.Is(err, xsdconv.ErrUnsupportedType) {
		t.Fatalf("the default registry must not see extensions, got %v", err)
	}
}

func TestRegistry_RuleErrorsWithoutCode(t *testing.T) {
	reg := xsdconv.NewRegistryBuilder().
		Register("odd", xsdconv.KindText, func(s string) (xsdconv.Value, error) {
			return xsdconv.Value{}, errors.New("boom")
		}).
		MustBuild()
	_, err := xsdconv.New(xsdconv.WithRegistry(reg)).Convert("x", "odd")
	ce, ok := xsdconv.AsConversionError(err)
	if !ok || ce.Code != xsdconv.CodeInvalidFormat || ce.Params["detail"] != "boom" {
		t.Fatalf("unexpected error %+v", ce)
	}
	if ce.Unwrap() == nil || ce.Unwrap().Error() != "boom" {
		t.Fatalf("cause must be kept")
	}
}

func TestRegistry_JSONSchema(t *testing.T) {
	reg := xsdconv.Default()
	s, err := reg.JSONSchema("xs:int")
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if s.Type != "integer" || s.Minimum.String() != "-2147483648" || s.Maximum.String() != "2147483647" {
		t.Fatalf("unexpected int schema %+v", s)
	}
	s.Type = "mutated"
	again, _ := reg.JSONSchema("int")
	if again.Type != "integer" {
		t.Fatalf("JSONSchema must return a copy")
	}

	d, _ := reg.JSONSchema("date")
	if d.Type != "string" || d.Format != "date" {
		t.Fatalf("unexpected date schema %+v", d)
	}
	if _, err := reg.JSONSchema("xs:nope"); !errors.Is(err, xsdconv.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
	for _, name := range reg.Names() {
		s, err := reg.JSONSchema(name)
		if err != nil || s == nil || (s.Type == "" && len(s.OneOf) == 0) {
			t.Fatalf("%s: missing schema (%v)", name, err)
		}
		if s.Description != "xs:"+name {
			t.Fatalf("%s: unexpected description %q", name, s.Description)
		}
	}
}

func TestRegistry_JSONSchemaNestedParts(t *testing.T) {
	reg := xsdconv.Default()
	dbl, _ := reg.JSONSchema("double")
	if len(dbl.OneOf) != 2 || dbl.OneOf[0].Type != "number" || dbl.OneOf[1].Pattern != "^(-?INF|NaN)$" {
		t.Fatalf("unexpected double schema %+v", dbl)
	}
	dbl.OneOf[0].Type = "mutated"
	if again, _ := reg.JSONSchema("double"); again.OneOf[0].Type != "number" {
		t.Fatalf("JSONSchema must deep-copy oneOf")
	}

	nc, _ := reg.JSONSchema("xs:NCName")
	if nc.MinLength == nil || *nc.MinLength != 1 {
		t.Fatalf("NCName must require one character: %+v", nc)
	}
	*nc.MinLength = 7
	if again, _ := reg.JSONSchema("NCName"); *again.MinLength != 1 {
		t.Fatalf("JSONSchema must deep-copy minLength")
	}

	// Entries registered without a schema get one derived from their kind.
	custom := xsdconv.NewRegistryBuilder().
		Register("flag", xsdconv.KindBoolean, func(s string) (xsdconv.Value, error) { return xsdconv.BooleanValue("flag", true), nil }).
		MustBuild()
	if s, _ := custom.JSONSchema("flag"); s.Type != "boolean" || s.Description != "" {
		t.Fatalf("unexpected derived schema %+v", s)
	}
}

func TestLocalName(t *testing.T) {
	for in, want := range map[string]string{"xs:int": "int", "int": "int", ":int": "int", "": "", "a:b:c": "b:c"} {
		if got := xsdconv.LocalName(in); got != want {
			t.Fatalf("LocalName(%q) = %q, want %q", in, got, want)
		}
	}
}
