package domain

import "math"

// DeriveStatus computes a task's status for the given day.
func DeriveStatus(completed bool, start, end, today LocalDay) Status {
	switch {
	case completed:
		return StatusComplete
	case today.After(end):
		return StatusOnHold
	case !today.Before(start):
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}

// DeriveProgress is the share of elapsed days over the inclusive span,
// in percent.
func DeriveProgress(completed bool, start, end, today LocalDay) float64 {
	if completed {
		return 100
	}
	total := DiffDays(start, end) + 1
	if total <= 0 {
		return 0
	}
	pct := float64(DiffDays(start, today)) / float64(total) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return Clamp(pct, 0, 100)
}
