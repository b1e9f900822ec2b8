// Package lexical parses the lexical spaces of the XML Schema 1.0 built-in
// datatypes into plain Go values. Every function is pure and safe for
// concurrent use; failures are reported as *Error with one of the Code
// constants.
package lexical
