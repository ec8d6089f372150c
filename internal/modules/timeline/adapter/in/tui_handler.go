package in

import (
	"context"
	"time"

	"pmhub/internal/modules/timeline/dto"
	timelinein "pmhub/internal/modules/timeline/port/in"
)

// TUIHandler serves the interactive chart, which navigates relative to the
// loaded window rather than by month string.
type TUIHandler struct {
	usecase timelinein.Usecase
}

func NewTUIHandler(usecase timelinein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

// Chart shows the window starting shift months after reference's month.
func (h TUIHandler) Chart(ctx context.Context, reference time.Time, shift int, project, source string, dayWidth, leftOffset float64) (dto.ChartOutput, error) {
	return h.usecase.Chart(ctx, dto.ChartInput{
		Reference:     reference,
		Shift:         shift,
		ProjectFilter: project,
		SourceFilter:  source,
		DayWidth:      dayWidth,
		LeftOffset:    leftOffset,
	})
}
