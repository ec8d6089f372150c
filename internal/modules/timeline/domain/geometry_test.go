package domain_test

import (
	"testing"
	"time"

	"pmhub/internal/modules/timeline/domain"
)

func spanTask(start, end domain.LocalDay) domain.TimelineTask {
	return domain.TimelineTask{Ref: domain.TodoRef{ID: "t"}, Start: start, End: end}
}

func TestComputeGeometry(t *testing.T) {
	t.Parallel()
	w := domain.BuildWindow(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	d := func(m time.Month, day int) domain.LocalDay { return domain.Date(2024, m, day, time.UTC) }
	const dw = 10.0

	cases := []struct {
		name        string
		task        domain.TimelineTask
		left, width float64
	}{
		{name: "inside", task: spanTask(d(2, 3), d(2, 5)), left: 20, width: 30},
		{name: "same day", task: spanTask(d(3, 1), d(3, 1)), left: 290, width: 10},
		{name: "starts before window", task: spanTask(d(1, 20), d(2, 2)), left: 0, width: 20},
		{name: "ends after window", task: spanTask(d(3, 30), d(4, 10)), left: 580, width: 20},
		{name: "covers window", task: spanTask(d(1, 1), d(5, 1)), left: 0, width: 600},
		{name: "entirely before", task: spanTask(d(1, 1), d(1, 5)), left: 0, width: 10},
		{name: "entirely after", task: spanTask(d(4, 10), d(4, 12)), left: 590, width: 10},
	}
	for _, tc := range cases {
		g := domain.ComputeGeometry(tc.task, w, dw)
		if g.LeftPx != tc.left || g.WidthPx != tc.width {
			t.Fatalf("%s: expected left=%.1f width=%.1f, got %+v", tc.name, tc.left, tc.width, g)
		}
		if g.WidthPx < dw*domain.MinSliverRatio {
			t.Fatalf("%s: width below sliver minimum", tc.name)
		}
		if g.StartIndex < 0 || g.EndIndex > w.Len()-1 {
			t.Fatalf("%s: indices out of range %+v", tc.name, g)
		}
	}
}

func TestComputeGeometryDegenerateInputs(t *testing.T) {
	t.Parallel()
	task := spanTask(domain.Date(2024, 2, 3, time.UTC), domain.Date(2024, 2, 5, time.UTC))
	if g := domain.ComputeGeometry(task, domain.Window{}, 10); g != (domain.Geometry{}) {
		t.Fatalf("empty window should give zero geometry, got %+v", g)
	}
	w := domain.BuildWindow(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	if g := domain.ComputeGeometry(task, w, 0); g != (domain.Geometry{}) {
		t.Fatalf("zero day width should give zero geometry, got %+v", g)
	}
}

func TestComputeGeometryInvertedSpanKeepsSliver(t *testing.T) {
	t.Parallel()
	w := domain.BuildWindow(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	task := spanTask(domain.Date(2024, 2, 10, time.UTC), domain.Date(2024, 2, 8, time.UTC))
	g := domain.ComputeGeometry(task, w, 10)
	if g.WidthPx != 2 || g.LeftPx != 90 {
		t.Fatalf("expected a 0.2 day sliver at the start column, got %+v", g)
	}
}
