package xsdconv

import (
	"errors"
	"strconv"

	"github.com/reoring/xsdconv/i18n"
	"github.com/reoring/xsdconv/lexical"
)

// Converter dispatches a lexical value to the rule registered for its type
// name. It is immutable and safe for concurrent use.
type Converter struct {
	reg *Registry
	tr  i18n.Translator
}

// Option configures a Converter.
type Option func(*Converter)

// WithRegistry selects the registry; the default is Default().
func WithRegistry(r *Registry) Option {
	return func(c *Converter) {
		if r != nil {
			c.reg = r
		}
	}
}

// WithTranslator selects the translator used to render error reasons; the
// default is i18n.English.
func WithTranslator(tr i18n.Translator) Option {
	return func(c *Converter) {
		if tr != nil {
			c.tr = tr
		}
	}
}

// New returns a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{reg: defaultRegistry, tr: i18n.English}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Registry returns the registry the Converter dispatches through.
func (c *Converter) Registry() *Registry { return c.reg }

// Convert parses lex as a value of typeName ("int" or "xs:int").
// Failures are always *ConversionError.
func (c *Converter) Convert(lex, typeName string) (Value, error) {
	e, ok := c.reg.Lookup(typeName)
	if !ok {
		return Value{}, &ConversionError{
			Kind:     UnsupportedType,
			TypeName: typeName,
			Lexical:  lex,
			Code:     CodeUnsupportedType,
			Reason:   c.tr.Message(CodeUnsupportedType, nil),
		}
	}
	v, err := e.Rule(lex)
	if err != nil {
		return Value{}, c.invalid(typeName, lex, err)
	}
	v.typeName = e.Name
	return v, nil
}

func (c *Converter) invalid(typeName, lex string, err error) *ConversionError {
	ce := &ConversionError{Kind: InvalidLexicalValue, TypeName: typeName, Lexical: lex, Cause: err}
	var le *lexical.Error
	if errors.As(err, &le) {
		ce.Code = le.Code
		ce.Params = le.Params
	} else {
		ce.Code = CodeInvalidFormat
		ce.Params = map[string]string{"detail": err.Error()}
	}
	ce.Reason = c.tr.Message(ce.Code, ce.Params)
	return ce
}

// Item is one input of a batch conversion.
type Item struct {
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

// ConvertAll converts every item. Results are positional; a failed item
// leaves the zero Value in its slot and adds an Issue at "/<index>". The
// returned Issues is nil when every item converted.
func (c *Converter) ConvertAll(items []Item) ([]Value, Issues) {
	out := make([]Value, len(items))
	var iss Issues
	for i, it := range items {
		v, err := c.Convert(it.Value, it.Type)
		if err != nil {
			ce, _ := AsConversionError(err)
			iss = append(iss, Issue{
				Path:    "/" + strconv.Itoa(i),
				Code:    ce.Code,
				Message: ce.Reason,
				Err:     ce,
			})
			continue
		}
		out[i] = v
	}
	return out, iss
}

var defaultConverter = New()

// Convert uses a Converter over the Default registry.
func Convert(lex, typeName string) (Value, error) {
	return defaultConverter.Convert(lex, typeName)
}

// ConvertAll uses a Converter over the Default registry.
func ConvertAll(items []Item) ([]Value, Issues) {
	return defaultConverter.ConvertAll(items)
}
