package toml

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Date is a calendar date without a time zone.
type Date struct {
	Year  uint16
	Month uint8
	Day   uint8
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time is a wall clock time without a date or time zone.
type Time struct {
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond uint32
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	switch {
	case t.Nanosecond == 0:
	case t.Nanosecond%1_000_000 == 0:
		s += fmt.Sprintf(".%03d", t.Nanosecond/1_000_000)
	case t.Nanosecond%1_000 == 0:
		s += fmt.Sprintf(".%06d", t.Nanosecond/1_000)
	default:
		s += fmt.Sprintf(".%09d", t.Nanosecond)
	}
	return s
}

// Offset is either UTC written as `Z` or a signed offset in minutes.
type Offset struct {
	Z       bool
	Minutes int16
}

func (o Offset) String() string {
	if o.Z {
		return "Z"
	}
	sign := '+'
	m := int(o.Minutes)
	if m < 0 {
		sign = '-'
		m = -m
	}
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}

// Datetime covers the four TOML date-time forms. Which fields are set
// decides the form: Date+Time+Offset is an offset date-time, Date+Time a
// local date-time, Date alone a local date and Time alone a local time.
type Datetime struct {
	Date   *Date
	Time   *Time
	Offset *Offset
}

func (dt Datetime) String() string {
	var b strings.Builder
	if dt.Date != nil {
		b.WriteString(dt.Date.String())
	}
	if dt.Time != nil {
		if dt.Date != nil {
			b.WriteByte('T')
		}
		b.WriteString(dt.Time.String())
	}
	if dt.Offset != nil {
		b.WriteString(dt.Offset.String())
	}
	return b.String()
}

func (dt Datetime) Equal(o Datetime) bool {
	return eqPtr(dt.Date, o.Date) && eqPtr(dt.Time, o.Time) && eqPtr(dt.Offset, o.Offset)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// DatetimeFromTime converts an instant into an offset date-time.
func DatetimeFromTime(t time.Time) Datetime {
	d := Date{Year: uint16(t.Year()), Month: uint8(t.Month()), Day: uint8(t.Day())}
	tm := Time{Hour: uint8(t.Hour()), Minute: uint8(t.Minute()), Second: uint8(t.Second()), Nanosecond: uint32(t.Nanosecond())}
	_, secs := t.Zone()
	off := Offset{Minutes: int16(secs / 60)}
	if t.Location() == time.UTC {
		off = Offset{Z: true}
	}
	return Datetime{Date: &d, Time: &tm, Offset: &off}
}

// ToTime converts an offset or local date-time into a time.Time. Local
// forms are placed in loc.
func (dt Datetime) ToTime(loc *time.Location) (time.Time, error) {
	if dt.Date == nil {
		return time.Time{}, errors.New("datetime has no date")
	}
	var tm Time
	if dt.Time != nil {
		tm = *dt.Time
	}
	if dt.Offset != nil {
		if dt.Offset.Z {
			loc = time.UTC
		} else {
			loc = time.FixedZone("", int(dt.Offset.Minutes)*60)
		}
	}
	return time.Date(int(dt.Date.Year), time.Month(dt.Date.Month), int(dt.Date.Day),
		int(tm.Hour), int(tm.Minute), int(tm.Second), int(tm.Nanosecond), loc), nil
}

var errInvalidDatetime = errors.New("invalid datetime")

// ParseDatetime parses any of the four TOML date-time forms.
func ParseDatetime(s string) (Datetime, error) {
	var dt Datetime
	rest := s
	if len(rest) >= 10 && rest[4] == '-' {
		d, err := parseDate(rest[:10])
		if err != nil {
			return Datetime{}, err
		}
		dt.Date = &d
		rest = rest[10:]
		if rest == "" {
			return dt, nil
		}
		if rest[0] != 'T' && rest[0] != 't' && rest[0] != ' ' {
			return Datetime{}, errInvalidDatetime
		}
		rest = rest[1:]
	}
	t, n, err := parseTimePrefix(rest)
	if err != nil {
		return Datetime{}, err
	}
	dt.Time = &t
	rest = rest[n:]
	if rest == "" {
		return dt, nil
	}
	if dt.Date == nil {
		return Datetime{}, errors.New("local time cannot carry an offset")
	}
	off, err := parseOffset(rest)
	if err != nil {
		return Datetime{}, err
	}
	dt.Offset = &off
	return dt, nil
}

func parseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, errInvalidDatetime
	}
	y, ok1 := digits(s[0:4])
	m, ok2 := digits(s[5:7])
	d, ok3 := digits(s[8:10])
	if !ok1 || !ok2 || !ok3 {
		return Date{}, errInvalidDatetime
	}
	if m < 1 || m > 12 || d < 1 || d > daysIn(y, m) {
		return Date{}, errors.Errorf("date %s is out of range", s)
	}
	return Date{Year: uint16(y), Month: uint8(m), Day: uint8(d)}, nil
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func parseTimePrefix(s string) (Time, int, error) {
	if len(s) < 8 || s[2] != ':' || s[5] != ':' {
		return Time{}, 0, errInvalidDatetime
	}
	h, ok1 := digits(s[0:2])
	m, ok2 := digits(s[3:5])
	sec, ok3 := digits(s[6:8])
	if !ok1 || !ok2 || !ok3 {
		return Time{}, 0, errInvalidDatetime
	}
	// 60 is allowed for leap seconds.
	if h > 23 || m > 59 || sec > 60 {
		return Time{}, 0, errors.Errorf("time %s is out of range", s[:8])
	}
	t := Time{Hour: uint8(h), Minute: uint8(m), Second: uint8(sec)}
	n := 8
	if n < len(s) && s[n] == '.' {
		n++
		start := n
		for n < len(s) && isDigit(s[n]) {
			n++
		}
		frac := s[start:n]
		if frac == "" {
			return Time{}, 0, errors.New("fraction of second requires digits")
		}
		if len(frac) > 9 {
			frac = frac[:9]
		}
		ns, _ := digits(frac)
		for i := len(frac); i < 9; i++ {
			ns *= 10
		}
		t.Nanosecond = uint32(ns)
	}
	return t, n, nil
}

func parseOffset(s string) (Offset, error) {
	if s == "Z" || s == "z" {
		return Offset{Z: true}, nil
	}
	if len(s) != 6 || (s[0] != '+' && s[0] != '-') || s[3] != ':' {
		return Offset{}, errInvalidDatetime
	}
	h, ok1 := digits(s[1:3])
	m, ok2 := digits(s[4:6])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return Offset{}, errInvalidDatetime
	}
	mins := h*60 + m
	if s[0] == '-' {
		mins = -mins
	}
	return Offset{Minutes: int16(mins)}, nil
}

func digits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
