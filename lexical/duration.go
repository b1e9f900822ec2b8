package lexical

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Duration is an xs:duration value kept in its component form; months and
// days are not interchangeable so no normalization is applied.
type Duration struct {
	Negative    bool
	Years       uint64
	Months      uint64
	Days        uint64
	Hours       uint64
	Minutes     uint64
	Seconds     uint64
	Nanoseconds uint32
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 && d.Hours == 0 &&
		d.Minutes == 0 && d.Seconds == 0 && d.Nanoseconds == 0
}

// Std converts a duration without year or month components into a
// time.Duration. ok is false when the duration has calendar components or
// does not fit.
func (d Duration) Std() (time.Duration, bool) {
	if d.Years != 0 || d.Months != 0 {
		return 0, false
	}
	total := new(big.Int).SetUint64(d.Days)
	total.Mul(total, big.NewInt(24))
	total.Add(total, new(big.Int).SetUint64(d.Hours))
	total.Mul(total, big.NewInt(60))
	total.Add(total, new(big.Int).SetUint64(d.Minutes))
	total.Mul(total, big.NewInt(60))
	total.Add(total, new(big.Int).SetUint64(d.Seconds))
	total.Mul(total, big.NewInt(int64(time.Second)))
	total.Add(total, big.NewInt(int64(d.Nanoseconds)))
	if d.Negative {
		total.Neg(total)
	}
	if !total.IsInt64() {
		return 0, false
	}
	return time.Duration(total.Int64()), true
}

func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	b := &strings.Builder{}
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeComponent(b, d.Years, 'Y')
	writeComponent(b, d.Months, 'M')
	writeComponent(b, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Nanoseconds != 0 {
		b.WriteByte('T')
		writeComponent(b, d.Hours, 'H')
		writeComponent(b, d.Minutes, 'M')
		if d.Seconds != 0 || d.Nanoseconds != 0 {
			b.WriteString(strconv.FormatUint(d.Seconds, 10))
			if d.Nanoseconds != 0 {
				b.WriteString("." + strings.TrimRight(fmt.Sprintf("%09d", d.Nanoseconds), "0"))
			}
			b.WriteByte('S')
		}
	}
	return b.String()
}

func writeComponent(b *strings.Builder, n uint64, designator byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.FormatUint(n, 10))
	b.WriteByte(designator)
}

// ParseDuration reads '-'? 'P' (nY)? (nM)? (nD)? ('T' (nH)? (nM)? (n(.n)?S)?)?
// with at least one component present and no 'T' without time components.
func ParseDuration(s string) (Duration, error) {
	c := &cursor{s: TrimSpace(s)}
	if c.done() {
		return Duration{}, emptyError()
	}
	var d Duration
	d.Negative = c.accept('-')
	if !c.accept('P') {
		return Duration{}, errorf(CodeInvalidFormat, "expected 'P' at offset %d", c.i)
	}
	seen := false
	dateSlots := []*uint64{&d.Years, &d.Months, &d.Days}
	pos := 0
	for !c.done() && c.peek() != 'T' {
		n, err := c.durationNumber()
		if err != nil {
			return Duration{}, err
		}
		idx := strings.IndexByte("YMD"[pos:], c.peek())
		if c.done() || idx < 0 {
			return Duration{}, errorf(CodeInvalidFormat, "expected designator at offset %d", c.i)
		}
		c.i++
		pos += idx
		*dateSlots[pos] = n
		pos++
		seen = true
	}
	if c.accept('T') {
		timeAny := false
		timeSlots := []*uint64{&d.Hours, &d.Minutes}
		pos = 0
		for !c.done() {
			n, err := c.durationNumber()
			if err != nil {
				return Duration{}, err
			}
			if c.peek() == '.' {
				if pos > 2 {
					return Duration{}, errorf(CodeInvalidFormat, "seconds given twice")
				}
				c.i++
				frac := c.digits()
				if frac == "" || !c.accept('S') {
					return Duration{}, errorf(CodeInvalidFormat, "fractional value must be seconds")
				}
				if len(frac) > 9 {
					frac = frac[:9]
				}
				ns, _ := strconv.ParseUint(frac+strings.Repeat("0", 9-len(frac)), 10, 32)
				d.Seconds, d.Nanoseconds = n, uint32(ns)
				timeAny = true
				break
			}
			idx := strings.IndexByte("HMS"[pos:], c.peek())
			if c.done() || idx < 0 {
				return Duration{}, errorf(CodeInvalidFormat, "expected designator at offset %d", c.i)
			}
			c.i++
			pos += idx
			if pos == 2 {
				d.Seconds = n
			} else {
				*timeSlots[pos] = n
			}
			pos++
			timeAny = true
		}
		if !timeAny {
			return Duration{}, errorf(CodeInvalidFormat, "'T' must be followed by a time component")
		}
		seen = true
	}
	if !c.done() {
		return Duration{}, errorf(CodeInvalidCharacter, "trailing %q", c.s[c.i:])
	}
	if !seen {
		return Duration{}, errorf(CodeInvalidFormat, "duration has no components")
	}
	// -PT0S and PT0S denote the same value.
	if d.IsZero() {
		d.Negative = false
	}
	return d, nil
}

func (c *cursor) durationNumber() (uint64, error) {
	start := c.i
	run := c.digits()
	if run == "" {
		return 0, errorf(CodeInvalidFormat, "expected digits at offset %d", start)
	}
	n, err := strconv.ParseUint(run, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &Error{Code: CodeOverflow, Params: map[string]string{"detail": run}}
		}
		return 0, &Error{Code: CodeInvalidFormat, Cause: err}
	}
	return n, nil
}
