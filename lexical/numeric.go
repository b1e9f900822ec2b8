package lexical

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// IntegerRange bounds an integer-derived type. A nil bound is unbounded.
type IntegerRange struct {
	Min *big.Int
	Max *big.Int
}

func signedRange(bits uint) IntegerRange {
	max := new(big.Int).Lsh(big.NewInt(1), bits-1)
	min := new(big.Int).Neg(max)
	max.Sub(max, big.NewInt(1))
	return IntegerRange{Min: min, Max: max}
}

func unsignedRange(bits uint) IntegerRange {
	max := new(big.Int).Lsh(big.NewInt(1), bits)
	max.Sub(max, big.NewInt(1))
	return IntegerRange{Min: big.NewInt(0), Max: max}
}

// Ranges of the integer types derived from xs:integer.
var (
	RangeInteger            = IntegerRange{}
	RangeLong               = signedRange(64)
	RangeInt                = signedRange(32)
	RangeShort              = signedRange(16)
	RangeByte               = signedRange(8)
	RangeNonNegativeInteger = IntegerRange{Min: big.NewInt(0)}
	RangePositiveInteger    = IntegerRange{Min: big.NewInt(1)}
	RangeNonPositiveInteger = IntegerRange{Max: big.NewInt(0)}
	RangeNegativeInteger    = IntegerRange{Max: big.NewInt(-1)}
	RangeUnsignedLong       = unsignedRange(64)
	RangeUnsignedInt        = unsignedRange(32)
	RangeUnsignedShort      = unsignedRange(16)
	RangeUnsignedByte       = unsignedRange(8)
)

// Contains reports whether n lies within the range.
func (r IntegerRange) Contains(n *big.Int) bool {
	if r.Min != nil && n.Cmp(r.Min) < 0 {
		return false
	}
	if r.Max != nil && n.Cmp(r.Max) > 0 {
		return false
	}
	return true
}

// Parse reads an xs:integer lexical value and checks it against the range.
func (r IntegerRange) Parse(s string) (*big.Int, error) {
	n, err := ParseInteger(s)
	if err != nil {
		return nil, err
	}
	if !r.Contains(n) {
		params := map[string]string{}
		if r.Min != nil {
			params["min"] = r.Min.String()
		}
		if r.Max != nil {
			params["max"] = r.Max.String()
		}
		return nil, &Error{Code: CodeOverflow, Params: params}
	}
	return n, nil
}

// ParseInteger reads the xs:integer lexical space: an optional sign followed
// by one or more decimal digits.
func ParseInteger(s string) (*big.Int, error) {
	s = TrimSpace(s)
	if s == "" {
		return nil, emptyError()
	}
	digits := s
	neg := false
	switch digits[0] {
	case '-':
		neg = true
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}
	if digits == "" {
		return nil, errorf(CodeInvalidFormat, "sign without digits")
	}
	if err := checkDigits(digits); err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, errorf(CodeInvalidFormat, "malformed integer %q", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

func checkDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return errorf(CodeInvalidCharacter, "unexpected %q at offset %d", s[i], i)
		}
	}
	return nil
}

// ParseDecimal reads the xs:decimal lexical space into an exact decimal.
// Exponent notation, INF and NaN are not part of that space.
func ParseDecimal(s string) (*apd.Decimal, error) {
	s = TrimSpace(s)
	if s == "" {
		return nil, emptyError()
	}
	body := s
	sign := ""
	switch body[0] {
	case '-':
		sign = "-"
		body = body[1:]
	case '+':
		body = body[1:]
	}
	intPart, frac, hasDot := strings.Cut(body, ".")
	if intPart == "" && frac == "" {
		return nil, errorf(CodeInvalidFormat, "no digits in %q", s)
	}
	if err := checkDigits(intPart); err != nil {
		return nil, err
	}
	if err := checkDigits(frac); err != nil {
		return nil, err
	}
	if intPart == "" {
		intPart = "0"
	}
	norm := sign + intPart
	if hasDot && frac != "" {
		norm += "." + frac
	}
	d, _, err := apd.NewFromString(norm)
	if err != nil {
		return nil, &Error{Code: CodeInvalidFormat, Cause: err}
	}
	return d, nil
}

// ParseDouble reads the xs:double lexical space.
func ParseDouble(s string) (float64, error) {
	return parseFloat(s, 64)
}

// ParseFloat reads the xs:float lexical space. The result is rounded to
// single precision.
func ParseFloat(s string) (float32, error) {
	f, err := parseFloat(s, 32)
	return float32(f), err
}

func parseFloat(s string, bits int) (float64, error) {
	s = TrimSpace(s)
	switch s {
	case "":
		return 0, emptyError()
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	if err := scanFloat(s); err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		// Out-of-range magnitudes round to ±INF or zero, as strconv reports.
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, &Error{Code: CodeInvalidFormat, Cause: err}
	}
	return f, nil
}

// scanFloat accepts sign? (digits ('.' digits?)? | '.' digits) ([eE] sign? digits)?
// which is narrower than what strconv accepts (no hex, no "inf", no "_").
func scanFloat(s string) error {
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	mant := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		mant++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			mant++
		}
	}
	if mant == 0 {
		return errorf(CodeInvalidFormat, "no mantissa digits in %q", s)
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return errorf(CodeInvalidFormat, "no exponent digits in %q", s)
		}
	}
	if i != len(s) {
		return errorf(CodeInvalidCharacter, "unexpected %q at offset %d", s[i], i)
	}
	return nil
}

// FormatFloat renders f in the xs:double/xs:float lexical space.
func FormatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'G', -1, bits)
}

// ParseBoolean reads the xs:boolean lexical space: true, false, 1, 0.
func ParseBoolean(s string) (bool, error) {
	switch TrimSpace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	case "":
		return false, emptyError()
	}
	return false, errorf(CodeInvalidFormat, "expected true, false, 1 or 0")
}
