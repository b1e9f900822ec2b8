// Package xsdconv converts lexical strings into native Go values according to
// the XML Schema 1.0 built-in datatypes.
//
// - A Registry maps canonical type names (int, decimal, date, ...) to pure conversion Rules
// - A Converter looks a type name up (an "xs:"-style prefix is ignored) and applies its Rule
// - Failures are *ConversionError, matching ErrUnsupportedType or ErrInvalidLexicalValue
//
// Design policy:
// - Registries and Converters are immutable once built and safe for concurrent use.
// - Lexical grammars live in the lexical package; this package only dispatches and wraps.
// - The core never logs; messages are rendered through an injected i18n.Translator.
//
// Typical usage:
//
//	v, err := xsdconv.Convert("2009-04-17", "xs:date")
//	d, _ := v.Date() // lexical.Date{Year: 2009, Month: 4, Day: 17}
//
//	c := xsdconv.New(xsdconv.WithTranslator(i18n.Japanese))
//	_, err = c.Convert("99999999999", "xs:int") // InvalidLexicalValue, code "overflow"
package xsdconv
