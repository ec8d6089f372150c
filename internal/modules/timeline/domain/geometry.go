package domain

import "math"

// MinSliverRatio is the smallest bar width as a fraction of one day column.
const MinSliverRatio = 0.2

type Geometry struct {
	LeftPx     float64
	WidthPx    float64
	StartIndex int
	EndIndex   int
}

// ComputeGeometry places a task on the window's day grid. Tasks partly or
// wholly outside the window are clamped to it; a task that lands on no
// visible column still gets a sliver at the nearest edge.
func ComputeGeometry(task TimelineTask, w Window, dayWidth float64) Geometry {
	n := w.Len()
	if n == 0 || !(dayWidth > 0) {
		return Geometry{}
	}
	first, last := w.First(), w.Last()

	start := task.Start
	if start.Before(first) {
		start = first
	}
	end := task.End
	if end.After(last) {
		end = last
	}

	startIndex := Clamp(DiffDays(first, start), 0, n-1)
	endIndex := Clamp(DiffDays(first, end), 0, n-1)
	return Geometry{
		LeftPx:     float64(startIndex) * dayWidth,
		WidthPx:    math.Max(float64(endIndex-startIndex+1)*dayWidth, dayWidth*MinSliverRatio),
		StartIndex: startIndex,
		EndIndex:   endIndex,
	}
}
