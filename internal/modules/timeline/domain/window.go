package domain

import (
	"fmt"
	"time"
)

// Window is the run of consecutive days currently on screen: the reference
// month followed by the next one.
type Window struct {
	days []LocalDay
}

type MonthGroup struct {
	Key   string
	Year  int
	Month time.Month
	Days  []LocalDay
}

// BuildWindow returns every day from the 1st of ref's month through the last
// day of the following month, in ref's location.
func BuildWindow(ref time.Time) Window {
	y, m, _ := ref.Date()
	first := Date(y, m, 1, ref.Location())
	n := DaysIn(y, m) + DaysIn(y, m+1)
	days := make([]LocalDay, n)
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return Window{days: days}
}

// Days returns the window's days in order. Callers must not modify it.
func (w Window) Days() []LocalDay { return w.days }

func (w Window) Len() int { return len(w.days) }

func (w Window) First() LocalDay {
	if len(w.days) == 0 {
		return LocalDay{}
	}
	return w.days[0]
}

func (w Window) Last() LocalDay {
	if len(w.days) == 0 {
		return LocalDay{}
	}
	return w.days[len(w.days)-1]
}

func (w Window) Contains(d LocalDay) bool {
	return len(w.days) > 0 && !d.Before(w.First()) && !d.After(w.Last())
}

// Groups splits the window by (year, month), keeping order.
func (w Window) Groups() []MonthGroup {
	groups := make([]MonthGroup, 0, 2)
	for _, day := range w.days {
		y, m, _ := day.Date()
		key := MonthKey(y, m)
		if len(groups) == 0 || groups[len(groups)-1].Key != key {
			groups = append(groups, MonthGroup{Key: key, Year: y, Month: m})
		}
		last := &groups[len(groups)-1]
		last.Days = append(last.Days, day)
	}
	return groups
}

// Group looks up one month by its "YYYY-MM" key.
func (w Window) Group(key string) (MonthGroup, bool) {
	for _, g := range w.Groups() {
		if g.Key == key {
			return g, true
		}
	}
	return MonthGroup{}, false
}

func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonth reads "YYYY-MM" as the 1st of that month in loc.
func ParseMonth(raw string, loc *time.Location) (LocalDay, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01", raw, loc)
	if err != nil {
		return LocalDay{}, fmt.Errorf("parse month %q: %w", raw, ErrInvalidDate)
	}
	return StartOfLocalDay(t), nil
}

// Navigator holds the reference month between renders.
type Navigator struct {
	ref LocalDay
}

func NewNavigator(ref time.Time) *Navigator {
	n := &Navigator{}
	n.Today(ref)
	return n
}

// Reference is the 1st of the reference month.
func (n *Navigator) Reference() LocalDay { return n.ref }

func (n *Navigator) Next() { n.shift(1) }

func (n *Navigator) Prev() { n.shift(-1) }

// Today resets the reference to the month containing now.
func (n *Navigator) Today(now time.Time) {
	y, m, _ := now.Date()
	n.ref = Date(y, m, 1, now.Location())
}

func (n *Navigator) Window() Window {
	return BuildWindow(n.ref.Time())
}

func (n *Navigator) shift(months int) {
	y, m, _ := n.ref.Date()
	n.ref = Date(y, m+time.Month(months), 1, n.ref.Location())
}
