package domain

import "time"

type TodayMarker struct {
	Index  int
	LeftPx float64
}

// LocateToday finds the column holding now and the x offset of its center.
// The index comes from calendar-field equality rather than a day difference.
func LocateToday(w Window, now time.Time, dayWidth, leftOffset float64) (TodayMarker, bool) {
	if w.Len() == 0 {
		return TodayMarker{}, false
	}
	today := StartOfLocalDay(now.In(w.First().Location()))
	if !w.Contains(today) {
		return TodayMarker{}, false
	}
	for i, day := range w.Days() {
		if day.SameDate(today) {
			return TodayMarker{
				Index:  i,
				LeftPx: leftOffset + float64(i)*dayWidth + dayWidth/2,
			}, true
		}
	}
	return TodayMarker{}, false
}
