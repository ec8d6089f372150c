package domain_test

import (
	"testing"
	"time"

	"pmhub/internal/modules/timeline/domain"
)

func TestLocateTodayInsideWindow(t *testing.T) {
	t.Parallel()
	w := domain.BuildWindow(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	now := time.Date(2024, 3, 3, 17, 45, 0, 0, time.UTC)
	marker, ok := domain.LocateToday(w, now, 10, 200)
	if !ok {
		t.Fatalf("expected marker")
	}
	if marker.Index != 31 {
		t.Fatalf("expected index 31, got %d", marker.Index)
	}
	if marker.LeftPx != 200+31*10+5 {
		t.Fatalf("unexpected left %.1f", marker.LeftPx)
	}
}

func TestLocateTodayOutsideWindow(t *testing.T) {
	t.Parallel()
	w := domain.BuildWindow(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	for _, now := range []time.Time{
		time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		if _, ok := domain.LocateToday(w, now, 10, 0); ok {
			t.Fatalf("no marker expected for %v", now)
		}
	}
	if _, ok := domain.LocateToday(domain.Window{}, time.Now(), 10, 0); ok {
		t.Fatalf("empty window has no marker")
	}
	if m, ok := domain.LocateToday(w, time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC), 10, 0); !ok || m.Index != 59 {
		t.Fatalf("last day should be located, got %+v %v", m, ok)
	}
}

func TestLocateTodayMatchesCalendarDateAcrossDST(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"America/New_York", "Europe/London", "Australia/Sydney", "America/Sao_Paulo"} {
		loc := mustLoad(t, name)
		w := domain.BuildWindow(time.Date(2024, 3, 1, 0, 0, 0, 0, loc))
		for _, day := range w.Days() {
			y, m, d := day.Date()
			for _, hour := range []int{0, 3, 12, 23} {
				now := time.Date(y, m, d, hour, 30, 0, 0, loc)
				marker, ok := domain.LocateToday(w, now, 8, 0)
				if !ok {
					t.Fatalf("%s: no marker for %v", name, now)
				}
				got := w.Days()[marker.Index]
				gy, gm, gd := got.Date()
				if gy != y || gm != m || gd != d {
					t.Fatalf("%s: marker for %v landed on %s", name, now, got)
				}
			}
		}
	}
}

func TestLocateTodayConvertsIntoWindowZone(t *testing.T) {
	t.Parallel()
	tokyo := mustLoad(t, "Asia/Tokyo")
	w := domain.BuildWindow(time.Date(2024, 2, 1, 0, 0, 0, 0, tokyo))
	now := time.Date(2024, 2, 9, 20, 0, 0, 0, time.UTC)
	marker, ok := domain.LocateToday(w, now, 10, 0)
	if !ok || w.Days()[marker.Index].String() != "2024-02-10" {
		t.Fatalf("expected tokyo calendar day 2024-02-10, got %+v", marker)
	}
}
