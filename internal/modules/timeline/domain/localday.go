package domain

import (
	"cmp"
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingDate = errors.New("date is missing")
	ErrInvalidDate = errors.New("date is not parseable")
)

const dayLayout = "2006-01-02"

// LocalDay is one calendar day in a location, held as its midnight instant.
// Values only come from StartOfLocalDay, Date, or ParseLocalDay, so every
// comparison in the engine happens at day granularity.
type LocalDay struct {
	t time.Time
}

// StartOfLocalDay returns the calendar day of t in t's location.
func StartOfLocalDay(t time.Time) LocalDay {
	y, m, d := t.Date()
	return LocalDay{t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// EndOfLocalDay returns 23:59:59.999 on t's calendar day in t's location.
func EndOfLocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Date builds a day from its calendar fields; out-of-range fields normalize
// the way time.Date does.
func Date(year int, month time.Month, day int, loc *time.Location) LocalDay {
	if loc == nil {
		loc = time.Local
	}
	return StartOfLocalDay(time.Date(year, month, day, 12, 0, 0, 0, loc))
}

// ParseLocalDay reads a date-only string as a calendar date in loc, and a
// timestamp as the calendar day it falls on once converted to loc.
func ParseLocalDay(raw string, loc *time.Location) (LocalDay, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LocalDay{}, ErrMissingDate
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(dayLayout, raw, loc); err == nil {
		return StartOfLocalDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return StartOfLocalDay(t.In(loc)), nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return StartOfLocalDay(t), nil
		}
	}
	return LocalDay{}, ErrInvalidDate
}

func (d LocalDay) IsZero() bool { return d.t.IsZero() }

// Time is midnight at the start of the day.
func (d LocalDay) Time() time.Time { return d.t }

// End is the last millisecond of the day.
func (d LocalDay) End() time.Time { return EndOfLocalDay(d.t) }

func (d LocalDay) Location() *time.Location { return d.t.Location() }

func (d LocalDay) Date() (int, time.Month, int) { return d.t.Date() }

func (d LocalDay) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays moves by calendar days, not by 24h steps.
func (d LocalDay) AddDays(n int) LocalDay {
	y, m, day := d.t.Date()
	return Date(y, m, day+n, d.t.Location())
}

// SameDate reports calendar equality on (year, month, day).
func (d LocalDay) SameDate(o LocalDay) bool {
	y1, m1, d1 := d.t.Date()
	y2, m2, d2 := o.t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (d LocalDay) Compare(o LocalDay) int { return cmp.Compare(d.ordinal(), o.ordinal()) }
func (d LocalDay) Before(o LocalDay) bool { return d.ordinal() < o.ordinal() }
func (d LocalDay) After(o LocalDay) bool { return d.ordinal() > o.ordinal() }

func (d LocalDay) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dayLayout)
}

// ordinal numbers calendar days independent of zone offsets.
func (d LocalDay) ordinal() int64 {
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DiffDays counts calendar days from a to b; negative when b precedes a.
func DiffDays(a, b LocalDay) int {
	return int(b.ordinal() - a.ordinal())
}

func Clamp[T cmp.Ordered](n, lo, hi T) T {
	return min(max(n, lo), hi)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
