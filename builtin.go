package xsdconv

import (
	json "github.com/goccy/go-json"

	"github.com/reoring/xsdconv/jsonschema"
	"github.com/reoring/xsdconv/lexical"
)

// Canonical names of the built-in types handled by Default.
const (
	TypeNameString             = "string"
	TypeNameBoolean            = "boolean"
	TypeNameDecimal            = "decimal"
	TypeNameFloat              = "float"
	TypeNameDouble             = "double"
	TypeNameDuration           = "duration"
	TypeNameDateTime           = "dateTime"
	TypeNameTime               = "time"
	TypeNameDate               = "date"
	TypeNameGYearMonth         = "gYearMonth"
	TypeNameGYear              = "gYear"
	TypeNameGMonthDay          = "gMonthDay"
	TypeNameGDay               = "gDay"
	TypeNameGMonth             = "gMonth"
	TypeNameHexBinary          = "hexBinary"
	TypeNameBase64Binary       = "base64Binary"
	TypeNameAnyURI             = "anyURI"
	TypeNameQName              = "QName"
	TypeNameNOTATION           = "NOTATION"
	TypeNameNormalizedString   = "normalizedString"
	TypeNameToken              = "token"
	TypeNameLanguage           = "language"
	TypeNameName               = "Name"
	TypeNameNCName             = "NCName"
	TypeNameID                 = "ID"
	TypeNameIDREF              = "IDREF"
	TypeNameENTITY             = "ENTITY"
	TypeNameNMTOKEN            = "NMTOKEN"
	TypeNameInteger            = "integer"
	TypeNameLong               = "long"
	TypeNameInt                = "int"
	TypeNameShort              = "short"
	TypeNameByte               = "byte"
	TypeNameNonNegativeInteger = "nonNegativeInteger"
	TypeNamePositiveInteger    = "positiveInteger"
	TypeNameNonPositiveInteger = "nonPositiveInteger"
	TypeNameNegativeInteger    = "negativeInteger"
	TypeNameUnsignedLong       = "unsignedLong"
	TypeNameUnsignedInt        = "unsignedInt"
	TypeNameUnsignedShort      = "unsignedShort"
	TypeNameUnsignedByte       = "unsignedByte"
)

var defaultRegistry = NewBuiltinRegistryBuilder().MustBuild()

// Default returns the process-wide registry of built-in types. It is built
// once at package initialization and never modified.
func Default() *Registry { return defaultRegistry }

// NewBuiltinRegistryBuilder returns a builder preloaded with every built-in
// type, so further types can be added without touching dispatch.
func NewBuiltinRegistryBuilder() *RegistryBuilder {
	b := NewRegistryBuilder()
	for _, e := range builtinEntries() {
		b.RegisterEntry(e)
	}
	return b
}

func builtinEntries() []Entry {
	entries := []Entry{
		{Name: TypeNameString, Kind: KindText, Rule: func(s string) (Value, error) { return TextValue(TypeNameString, s), nil }},
		{Name: TypeNameBoolean, Kind: KindBoolean, Rule: booleanRule},
		{Name: TypeNameDecimal, Kind: KindDecimal, Rule: decimalRule},
		{Name: TypeNameDouble, Kind: KindFloat, Rule: doubleRule, Schema: floatSchema()},
		{Name: TypeNameFloat, Kind: KindFloat, Rule: floatRule, Schema: floatSchema()},
		{Name: TypeNameDate, Kind: KindDate, Rule: dateRule},
		{Name: TypeNameTime, Kind: KindTime, Rule: timeRule},
		{Name: TypeNameDateTime, Kind: KindDateTime, Rule: dateTimeRule},
		{Name: TypeNameDuration, Kind: KindDuration, Rule: durationRule},
		{Name: TypeNameGYear, Kind: KindGregorian, Rule: gregorianRule(lexical.GYear),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^-?([1-9][0-9]{3,}|0[0-9]{3})(Z|[+-][0-9]{2}:[0-9]{2})?$`}},
		{Name: TypeNameGYearMonth, Kind: KindGregorian, Rule: gregorianRule(lexical.GYearMonth),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^-?([1-9][0-9]{3,}|0[0-9]{3})-[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`}},
		{Name: TypeNameGMonth, Kind: KindGregorian, Rule: gregorianRule(lexical.GMonth),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^--[0-9]{2}(--)?(Z|[+-][0-9]{2}:[0-9]{2})?$`}},
		{Name: TypeNameGMonthDay, Kind: KindGregorian, Rule: gregorianRule(lexical.GMonthDay),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^--[0-9]{2}-[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`}},
		{Name: TypeNameGDay, Kind: KindGregorian, Rule: gregorianRule(lexical.GDay),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^---[0-9]{2}(Z|[+-][0-9]{2}:[0-9]{2})?$`}},
		{Name: TypeNameBase64Binary, Kind: KindBinary, Rule: binaryRule(TypeNameBase64Binary, lexical.ParseBase64Binary)},
		{Name: TypeNameHexBinary, Kind: KindBinary, Rule: binaryRule(TypeNameHexBinary, lexical.ParseHexBinary),
			Schema: &jsonschema.Schema{Type: "string", ContentEncoding: "base16", Pattern: `^([0-9a-fA-F]{2})*$`}},
		{Name: TypeNameAnyURI, Kind: KindURI, Rule: anyURIRule},
		{Name: TypeNameQName, Kind: KindQName, Rule: qnameRule(TypeNameQName)},
		{Name: TypeNameNOTATION, Kind: KindQName, Rule: qnameRule(TypeNameNOTATION)},
		{Name: TypeNameNormalizedString, Kind: KindText, Rule: textRule(TypeNameNormalizedString, lexical.ParseNormalizedString)},
		{Name: TypeNameToken, Kind: KindText, Rule: textRule(TypeNameToken, lexical.ParseToken)},
		{Name: TypeNameLanguage, Kind: KindText, Rule: textRule(TypeNameLanguage, lexical.ParseLanguage),
			Schema: &jsonschema.Schema{Type: "string", Pattern: `^[a-zA-Z]{1,8}(-[a-zA-Z0-9]{1,8})*$`}},
		{Name: TypeNameName, Kind: KindText, Rule: textRule(TypeNameName, lexical.ParseName), Schema: nonEmptyStringSchema()},
		{Name: TypeNameNCName, Kind: KindText, Rule: textRule(TypeNameNCName, lexical.ParseNCName), Schema: nonEmptyStringSchema()},
		{Name: TypeNameID, Kind: KindText, Rule: textRule(TypeNameID, lexical.ParseNCName), Schema: nonEmptyStringSchema()},
		{Name: TypeNameIDREF, Kind: KindText, Rule: textRule(TypeNameIDREF, lexical.ParseNCName), Schema: nonEmptyStringSchema()},
		{Name: TypeNameENTITY, Kind: KindText, Rule: textRule(TypeNameENTITY, lexical.ParseNCName), Schema: nonEmptyStringSchema()},
		{Name: TypeNameNMTOKEN, Kind: KindText, Rule: textRule(TypeNameNMTOKEN, lexical.ParseNMTOKEN), Schema: nonEmptyStringSchema()},
	}
	for _, it := range []struct {
		name string
		rng  lexical.IntegerRange
	}{
		{TypeNameInteger, lexical.RangeInteger},
		{TypeNameLong, lexical.RangeLong},
		{TypeNameInt, lexical.RangeInt},
		{TypeNameShort, lexical.RangeShort},
		{TypeNameByte, lexical.RangeByte},
		{TypeNameNonNegativeInteger, lexical.RangeNonNegativeInteger},
		{TypeNamePositiveInteger, lexical.RangePositiveInteger},
		{TypeNameNonPositiveInteger, lexical.RangeNonPositiveInteger},
		{TypeNameNegativeInteger, lexical.RangeNegativeInteger},
		{TypeNameUnsignedLong, lexical.RangeUnsignedLong},
		{TypeNameUnsignedInt, lexical.RangeUnsignedInt},
		{TypeNameUnsignedShort, lexical.RangeUnsignedShort},
		{TypeNameUnsignedByte, lexical.RangeUnsignedByte},
	} {
		entries = append(entries, Entry{Name: it.name, Kind: KindInteger, Rule: integerRule(it.name, it.rng), Schema: integerSchema(it.rng)})
	}
	for i := range entries {
		if entries[i].Schema == nil {
			entries[i].Schema = schemaForKind(entries[i].Kind)
		}
		entries[i].Schema.Description = "xs:" + entries[i].Name
	}
	return entries
}

// floatSchema matches Value.MarshalJSON: finite values are numbers, the
// special values are strings.
func floatSchema() *jsonschema.Schema {
	return &jsonschema.Schema{OneOf: []*jsonschema.Schema{
		{Type: "number"},
		{Type: "string", Pattern: `^(-?INF|NaN)$`},
	}}
}

func nonEmptyStringSchema() *jsonschema.Schema {
	one := 1
	return &jsonschema.Schema{Type: "string", MinLength: &one}
}

func integerSchema(r lexical.IntegerRange) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "integer"}
	if r.Min != nil {
		s.Minimum = json.Number(r.Min.String())
	}
	if r.Max != nil {
		s.Maximum = json.Number(r.Max.String())
	}
	return s
}

func integerRule(name string, r lexical.IntegerRange) Rule {
	return func(s string) (Value, error) {
		n, err := r.Parse(s)
		if err != nil {
			return Value{}, err
		}
		return IntegerValue(name, n), nil
	}
}

func decimalRule(s string) (Value, error) {
	d, err := lexical.ParseDecimal(s)
	if err != nil {
		return Value{}, err
	}
	return DecimalValue(TypeNameDecimal, d), nil
}

func doubleRule(s string) (Value, error) {
	f, err := lexical.ParseDouble(s)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(TypeNameDouble, f), nil
}

func floatRule(s string) (Value, error) {
	f, err := lexical.ParseFloat(s)
	if err != nil {
		return Value{}, err
	}
	return FloatValue(TypeNameFloat, float64(f)), nil
}

func booleanRule(s string) (Value, error) {
	b, err := lexical.ParseBoolean(s)
	if err != nil {
		return Value{}, err
	}
	return BooleanValue(TypeNameBoolean, b), nil
}

func dateRule(s string) (Value, error) {
	d, err := lexical.ParseDate(s)
	if err != nil {
		return Value{}, err
	}
	return DateValue(TypeNameDate, d), nil
}

func timeRule(s string) (Value, error) {
	t, err := lexical.ParseTime(s)
	if err != nil {
		return Value{}, err
	}
	return TimeValue(TypeNameTime, t), nil
}

func dateTimeRule(s string) (Value, error) {
	dt, err := lexical.ParseDateTime(s)
	if err != nil {
		return Value{}, err
	}
	return DateTimeValue(TypeNameDateTime, dt), nil
}

func durationRule(s string) (Value, error) {
	d, err := lexical.ParseDuration(s)
	if err != nil {
		return Value{}, err
	}
	return DurationValue(TypeNameDuration, d), nil
}

func gregorianRule(kind lexical.GregorianKind) Rule {
	return func(s string) (Value, error) {
		g, err := lexical.ParseGregorian(kind, s)
		if err != nil {
			return Value{}, err
		}
		return GregorianValue(kind.String(), g), nil
	}
}

func binaryRule(name string, parse func(string) ([]byte, error)) Rule {
	return func(s string) (Value, error) {
		b, err := parse(s)
		if err != nil {
			return Value{}, err
		}
		return BinaryValue(name, b), nil
	}
}

func anyURIRule(s string) (Value, error) {
	u, err := lexical.ParseAnyURI(s)
	if err != nil {
		return Value{}, err
	}
	return URIValue(TypeNameAnyURI, u), nil
}

func qnameRule(name string) Rule {
	return func(s string) (Value, error) {
		q, err := lexical.ParseQName(s)
		if err != nil {
			return Value{}, err
		}
		return QNameValue(name, q), nil
	}
}

func textRule(name string, parse func(string) (string, error)) Rule {
	return func(s string) (Value, error) {
		t, err := parse(s)
		if err != nil {
			return Value{}, err
		}
		return TextValue(name, t), nil
	}
}
