package lexical

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Zone is an optional timezone offset in minutes east of UTC.
type Zone struct {
	Present bool
	Offset  int
}

// UTC is the "Z" zone.
var UTC = Zone{Present: true}

func (z Zone) String() string {
	if !z.Present {
		return ""
	}
	if z.Offset == 0 {
		return "Z"
	}
	sign := byte('+')
	off := z.Offset
	if off < 0 {
		sign = '-'
		off = -off
	}
	return fmt.Sprintf("%c%02d:%02d", sign, off/60, off%60)
}

// Location maps the zone onto a fixed time.Location. Values without a zone
// are placed in UTC.
func (z Zone) Location() *time.Location {
	if !z.Present || z.Offset == 0 {
		return time.UTC
	}
	return time.FixedZone(z.String(), z.Offset*60)
}

// Date is an xs:date value. Year follows XSD 1.0 numbering: there is no year
// zero and -0001 is 1 BCE.
type Date struct {
	Year  int
	Month time.Month
	Day   int
	Zone  Zone
}

// Equal compares the calendar day only; the zone does not take part.
func (d Date) Equal(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Time returns midnight of the date in its zone.
func (d Date) Time() time.Time {
	return time.Date(astronomicalYear(d.Year), d.Month, d.Day, 0, 0, 0, 0, d.Zone.Location())
}

func (d Date) String() string {
	return formatYear(d.Year) + fmt.Sprintf("-%02d-%02d", int(d.Month), d.Day) + d.Zone.String()
}

// Time is an xs:time value.
type Time struct {
	Hour, Minute, Second, Nanosecond int
	Zone                             Zone
}

func (t Time) String() string {
	return formatClock(t.Hour, t.Minute, t.Second, t.Nanosecond) + t.Zone.String()
}

// DateTime is an xs:dateTime value.
type DateTime struct {
	Year                             int
	Month                            time.Month
	Day                              int
	Hour, Minute, Second, Nanosecond int
	Zone                             Zone
}

// Date returns the calendar part.
func (dt DateTime) Date() Date {
	return Date{Year: dt.Year, Month: dt.Month, Day: dt.Day, Zone: dt.Zone}
}

// Clock returns the time-of-day part.
func (dt DateTime) Clock() Time {
	return Time{Hour: dt.Hour, Minute: dt.Minute, Second: dt.Second, Nanosecond: dt.Nanosecond, Zone: dt.Zone}
}

// Time converts to time.Time; values without a zone are read as UTC.
func (dt DateTime) Time() time.Time {
	return time.Date(astronomicalYear(dt.Year), dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, dt.Zone.Location())
}

func (dt DateTime) String() string {
	return formatYear(dt.Year) + fmt.Sprintf("-%02d-%02dT", int(dt.Month), dt.Day) +
		formatClock(dt.Hour, dt.Minute, dt.Second, dt.Nanosecond) + dt.Zone.String()
}

// ParseDate reads '-'? yyyy '-' mm '-' dd zone?.
func ParseDate(s string) (Date, error) {
	c := &cursor{s: TrimSpace(s)}
	if c.done() {
		return Date{}, emptyError()
	}
	y, m, d, err := c.date()
	if err != nil {
		return Date{}, err
	}
	z, err := c.zone()
	if err != nil {
		return Date{}, err
	}
	return Date{Year: y, Month: m, Day: d, Zone: z}, nil
}

// ParseTime reads hh ':' mm ':' ss ('.' s+)? zone?. 24:00:00 is read as
// 00:00:00.
func ParseTime(s string) (Time, error) {
	c := &cursor{s: TrimSpace(s)}
	if c.done() {
		return Time{}, emptyError()
	}
	h, mi, sec, ns, err := c.clock()
	if err != nil {
		return Time{}, err
	}
	z, err := c.zone()
	if err != nil {
		return Time{}, err
	}
	if h == 24 {
		h = 0
	}
	return Time{Hour: h, Minute: mi, Second: sec, Nanosecond: ns, Zone: z}, nil
}

// ParseDateTime reads date 'T' time zone?. 24:00:00 denotes the first
// instant of the following day.
func ParseDateTime(s string) (DateTime, error) {
	c := &cursor{s: TrimSpace(s)}
	if c.done() {
		return DateTime{}, emptyError()
	}
	y, m, d, err := c.date()
	if err != nil {
		return DateTime{}, err
	}
	if !c.accept('T') {
		return DateTime{}, errorf(CodeInvalidFormat, "expected 'T' at offset %d", c.i)
	}
	h, mi, sec, ns, err := c.clock()
	if err != nil {
		return DateTime{}, err
	}
	z, err := c.zone()
	if err != nil {
		return DateTime{}, err
	}
	if h == 24 {
		h = 0
		y, m, d = nextDay(y, m, d)
	}
	return DateTime{Year: y, Month: m, Day: d, Hour: h, Minute: mi, Second: sec, Nanosecond: ns, Zone: z}, nil
}

// GregorianKind selects one of the partial date types.
type GregorianKind uint8

const (
	GYear GregorianKind = iota + 1
	GYearMonth
	GMonth
	GMonthDay
	GDay
)

func (k GregorianKind) String() string {
	switch k {
	case GYear:
		return "gYear"
	case GYearMonth:
		return "gYearMonth"
	case GMonth:
		return "gMonth"
	case GMonthDay:
		return "gMonthDay"
	case GDay:
		return "gDay"
	default:
		return "unknown"
	}
}

// Gregorian is a recurring or partial date (gYear, gMonthDay, ...). Fields
// that are not part of the kind are zero.
type Gregorian struct {
	Kind  GregorianKind
	Year  int
	Month time.Month
	Day   int
	Zone  Zone
}

func (g Gregorian) String() string {
	var s string
	switch g.Kind {
	case GYear:
		s = formatYear(g.Year)
	case GYearMonth:
		s = formatYear(g.Year) + fmt.Sprintf("-%02d", int(g.Month))
	case GMonth:
		s = fmt.Sprintf("--%02d", int(g.Month))
	case GMonthDay:
		s = fmt.Sprintf("--%02d-%02d", int(g.Month), g.Day)
	case GDay:
		s = fmt.Sprintf("---%02d", g.Day)
	}
	return s + g.Zone.String()
}

// ParseGregorian reads the lexical space of the given partial date kind.
func ParseGregorian(kind GregorianKind, s string) (Gregorian, error) {
	c := &cursor{s: TrimSpace(s)}
	if c.done() {
		return Gregorian{}, emptyError()
	}
	g := Gregorian{Kind: kind}
	var err error
	switch kind {
	case GYear:
		g.Year, err = c.year()
	case GYearMonth:
		if g.Year, err = c.year(); err == nil {
			if !c.accept('-') {
				return Gregorian{}, errorf(CodeInvalidFormat, "expected '-' at offset %d", c.i)
			}
			g.Month, err = c.month()
		}
	case GMonth:
		if !c.acceptString("--") {
			return Gregorian{}, errorf(CodeInvalidFormat, "expected '--'")
		}
		if g.Month, err = c.month(); err == nil {
			// "--MM--" is the form printed in the first edition of XSD 1.0.
			c.acceptString("--")
		}
	case GMonthDay:
		if !c.acceptString("--") {
			return Gregorian{}, errorf(CodeInvalidFormat, "expected '--'")
		}
		if g.Month, err = c.month(); err == nil {
			if !c.accept('-') {
				return Gregorian{}, errorf(CodeInvalidFormat, "expected '-' at offset %d", c.i)
			}
			// Any month-day valid in some year; February 29 included.
			g.Day, err = c.day(2000, g.Month)
		}
	case GDay:
		if !c.acceptString("---") {
			return Gregorian{}, errorf(CodeInvalidFormat, "expected '---'")
		}
		g.Day, err = c.day(2000, time.January)
	default:
		return Gregorian{}, errorf(CodeInvalidFormat, "unknown gregorian kind %d", kind)
	}
	if err != nil {
		return Gregorian{}, err
	}
	if g.Zone, err = c.zone(); err != nil {
		return Gregorian{}, err
	}
	return g, nil
}

// cursor is a forward-only scanner over an already trimmed lexical value.
type cursor struct {
	s string
	i int
}

func (c *cursor) done() bool { return c.i >= len(c.s) }

func (c *cursor) peek() byte {
	if c.done() {
		return 0
	}
	return c.s[c.i]
}

func (c *cursor) accept(b byte) bool {
	if c.peek() == b && !c.done() {
		c.i++
		return true
	}
	return false
}

func (c *cursor) acceptString(p string) bool {
	if strings.HasPrefix(c.s[c.i:], p) {
		c.i += len(p)
		return true
	}
	return false
}

// digits consumes a maximal run of ASCII digits.
func (c *cursor) digits() string {
	start := c.i
	for !c.done() && c.s[c.i] >= '0' && c.s[c.i] <= '9' {
		c.i++
	}
	return c.s[start:c.i]
}

// fixed consumes exactly n digits.
func (c *cursor) fixed(n int, what string) (int, error) {
	start := c.i
	run := c.digits()
	if len(run) != n {
		return 0, errorf(CodeInvalidFormat, "%s must have %d digits at offset %d", what, n, start)
	}
	v, _ := strconv.Atoi(run)
	return v, nil
}

func (c *cursor) year() (int, error) {
	neg := c.accept('-')
	start := c.i
	run := c.digits()
	switch {
	case len(run) < 4:
		return 0, errorf(CodeInvalidFormat, "year must have at least 4 digits at offset %d", start)
	case len(run) > 4 && run[0] == '0':
		return 0, errorf(CodeInvalidFormat, "year with more than 4 digits has a leading zero")
	case len(run) > 9:
		return 0, &Error{Code: CodeOverflow, Params: map[string]string{"detail": "year " + run}}
	}
	y, _ := strconv.Atoi(run)
	if y == 0 {
		return 0, errorf(CodeInvalidDate, "year 0000 does not exist")
	}
	if neg {
		y = -y
	}
	return y, nil
}

func (c *cursor) month() (time.Month, error) {
	m, err := c.fixed(2, "month")
	if err != nil {
		return 0, err
	}
	if m < 1 || m > 12 {
		return 0, errorf(CodeInvalidDate, "month %02d out of range", m)
	}
	return time.Month(m), nil
}

func (c *cursor) day(year int, m time.Month) (int, error) {
	d, err := c.fixed(2, "day")
	if err != nil {
		return 0, err
	}
	if d < 1 || d > daysIn(year, m) {
		return 0, errorf(CodeInvalidDate, "day %02d out of range for month %02d", d, int(m))
	}
	return d, nil
}

func (c *cursor) date() (int, time.Month, int, error) {
	y, err := c.year()
	if err != nil {
		return 0, 0, 0, err
	}
	if !c.accept('-') {
		return 0, 0, 0, errorf(CodeInvalidFormat, "expected '-' at offset %d", c.i)
	}
	m, err := c.month()
	if err != nil {
		return 0, 0, 0, err
	}
	if !c.accept('-') {
		return 0, 0, 0, errorf(CodeInvalidFormat, "expected '-' at offset %d", c.i)
	}
	d, err := c.day(y, m)
	if err != nil {
		return 0, 0, 0, err
	}
	return y, m, d, nil
}

// clock reads hh:mm:ss(.f+)? and returns hour 24 only for 24:00:00.
func (c *cursor) clock() (h, m, s, ns int, err error) {
	if h, err = c.fixed(2, "hour"); err != nil {
		return
	}
	if !c.accept(':') {
		return 0, 0, 0, 0, errorf(CodeInvalidFormat, "expected ':' at offset %d", c.i)
	}
	if m, err = c.fixed(2, "minute"); err != nil {
		return
	}
	if !c.accept(':') {
		return 0, 0, 0, 0, errorf(CodeInvalidFormat, "expected ':' at offset %d", c.i)
	}
	if s, err = c.fixed(2, "second"); err != nil {
		return
	}
	fracZero := true
	if c.accept('.') {
		frac := c.digits()
		if frac == "" {
			return 0, 0, 0, 0, errorf(CodeInvalidFormat, "fraction without digits")
		}
		fracZero = strings.Trim(frac, "0") == ""
		// Precision beyond nanoseconds is truncated.
		if len(frac) > 9 {
			frac = frac[:9]
		}
		ns, _ = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
	}
	switch {
	case m > 59:
		return 0, 0, 0, 0, errorf(CodeInvalidTime, "minute %02d out of range", m)
	case s > 59:
		return 0, 0, 0, 0, errorf(CodeInvalidTime, "second %02d out of range", s)
	case h == 24 && (m != 0 || s != 0 || !fracZero):
		return 0, 0, 0, 0, errorf(CodeInvalidTime, "24:00:00 is the only time with hour 24")
	case h > 24:
		return 0, 0, 0, 0, errorf(CodeInvalidTime, "hour %02d out of range", h)
	}
	return h, m, s, ns, nil
}

// zone reads an optional trailing 'Z' or (+|-)hh:mm and requires end of input.
func (c *cursor) zone() (Zone, error) {
	if c.done() {
		return Zone{}, nil
	}
	var z Zone
	switch c.peek() {
	case 'Z':
		c.i++
		z = UTC
	case '+', '-':
		sign := 1
		if c.s[c.i] == '-' {
			sign = -1
		}
		c.i++
		h, err := c.fixed(2, "zone hour")
		if err != nil {
			return Zone{}, &Error{Code: CodeInvalidZone, Params: err.(*Error).Params}
		}
		if !c.accept(':') {
			return Zone{}, errorf(CodeInvalidZone, "expected ':' at offset %d", c.i)
		}
		m, err := c.fixed(2, "zone minute")
		if err != nil {
			return Zone{}, &Error{Code: CodeInvalidZone, Params: err.(*Error).Params}
		}
		if m > 59 || h > 14 || (h == 14 && m != 0) {
			return Zone{}, errorf(CodeInvalidZone, "offset %02d:%02d outside -14:00..+14:00", h, m)
		}
		z = Zone{Present: true, Offset: sign * (h*60 + m)}
	default:
		return Zone{}, errorf(CodeInvalidCharacter, "unexpected %q at offset %d", c.peek(), c.i)
	}
	if !c.done() {
		return Zone{}, errorf(CodeInvalidCharacter, "trailing %q", c.s[c.i:])
	}
	return z, nil
}

// astronomicalYear maps XSD 1.0 years (no year zero) onto the proleptic
// Gregorian numbering used by package time.
func astronomicalYear(y int) int {
	if y < 0 {
		return y + 1
	}
	return y
}

func isLeap(y int) bool {
	a := astronomicalYear(y)
	return a%4 == 0 && (a%100 != 0 || a%400 == 0)
}

func daysIn(y int, m time.Month) int {
	switch m {
	case time.February:
		if isLeap(y) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func nextDay(y int, m time.Month, d int) (int, time.Month, int) {
	if d < daysIn(y, m) {
		return y, m, d + 1
	}
	if m < time.December {
		return y, m + 1, 1
	}
	y++
	if y == 0 {
		y = 1
	}
	return y, time.January, 1
}

func formatYear(y int) string {
	if y < 0 {
		return fmt.Sprintf("-%04d", -y)
	}
	return fmt.Sprintf("%04d", y)
}

func formatClock(h, m, s, ns int) string {
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if ns != 0 {
		out += "." + strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
	}
	return out
}
