package xsdconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/xsdconv/lexical"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeUnsupportedType  = "unsupported_type"
	CodeEmpty            = lexical.CodeEmpty
	CodeInvalidFormat    = lexical.CodeInvalidFormat
	CodeInvalidCharacter = lexical.CodeInvalidCharacter
	CodeOverflow         = lexical.CodeOverflow
	CodeInvalidDate      = lexical.CodeInvalidDate
	CodeInvalidTime      = lexical.CodeInvalidTime
	CodeInvalidZone      = lexical.CodeInvalidZone
)

// Sentinels matched by errors.Is against a *ConversionError.
var (
	ErrUnsupportedType     = errors.New("xsdconv: unsupported type")
	ErrInvalidLexicalValue = errors.New("xsdconv: invalid lexical value")
)

// ErrorKind separates the two failure classes of a conversion.
type ErrorKind uint8

const (
	// UnsupportedType: the type name matches no registered rule.
	UnsupportedType ErrorKind = iota + 1
	// InvalidLexicalValue: the string is outside the type's lexical space.
	InvalidLexicalValue
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedType:
		return "UnsupportedType"
	case InvalidLexicalValue:
		return "InvalidLexicalValue"
	default:
		return "unknown"
	}
}

// ConversionError is returned by Convert for every failure.
type ConversionError struct {
	Kind ErrorKind
	// TypeName is the name as given by the caller, prefix included.
	TypeName string
	Lexical  string
	Code     string // One of the codes listed above.
	Reason   string // Human-readable, rendered by the Converter's translator.
	Params   map[string]string
	Cause    error
}

func (e *ConversionError) Error() string {
	if e.Kind == UnsupportedType {
		return fmt.Sprintf("xsdconv: unsupported type %q", e.TypeName)
	}
	return fmt.Sprintf("xsdconv: invalid %s value %q: %s", e.TypeName, e.Lexical, e.Reason)
}

func (e *ConversionError) Unwrap() error { return e.Cause }

// Is matches ErrUnsupportedType or ErrInvalidLexicalValue by kind.
func (e *ConversionError) Is(target error) bool {
	switch target {
	case ErrUnsupportedType:
		return e.Kind == UnsupportedType
	case ErrInvalidLexicalValue:
		return e.Kind == InvalidLexicalValue
	}
	return false
}

// AsConversionError extracts a *ConversionError using errors.As internally.
func AsConversionError(err error) (*ConversionError, bool) {
	if err == nil {
		return nil, false
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Issue represents a single failed item of a batch conversion.
type Issue struct {
	Path    string // JSON Pointer of the item (for example: /2).
	Code    string // One of the codes listed above.
	Message string
	Err     *ConversionError
}

// Issues is a collection of batch failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. overflow at /3
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
