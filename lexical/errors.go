package lexical

import (
	"fmt"
	"strings"
)

// Error codes reported by the lexical parsers. They are shared with the
// root package so callers can branch on them without importing this one.
const (
	CodeEmpty            = "empty"
	CodeInvalidFormat    = "invalid_format"
	CodeInvalidCharacter = "invalid_character"
	CodeOverflow         = "overflow"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidTime      = "invalid_time"
	CodeInvalidZone      = "invalid_zone"
)

// Error describes why a string is outside a type's lexical space.
type Error struct {
	Code string
	// Params carries structured details (e.g. {"min":"-128","max":"127"})
	// used when rendering localized messages.
	Params map[string]string
	Cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	b := &strings.Builder{}
	b.WriteString(e.Code)
	if d, ok := e.Params["detail"]; ok {
		fmt.Fprintf(b, ": %s", d)
	}
	if lo, ok := e.Params["min"]; ok {
		fmt.Fprintf(b, " (min %s", lo)
		if hi, ok := e.Params["max"]; ok {
			fmt.Fprintf(b, ", max %s", hi)
		}
		b.WriteString(")")
	} else if hi, ok := e.Params["max"]; ok {
		fmt.Fprintf(b, " (max %s)", hi)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

func errorf(code, format string, a ...any) *Error {
	return &Error{Code: code, Params: map[string]string{"detail": fmt.Sprintf(format, a...)}}
}

func emptyError() *Error { return &Error{Code: CodeEmpty} }
