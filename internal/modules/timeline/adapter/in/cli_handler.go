package in

import (
	"context"
	"time"

	"pmhub/internal/modules/timeline/dto"
	timelinein "pmhub/internal/modules/timeline/port/in"
)

type CLIHandler struct {
	usecase timelinein.Usecase
}

func NewCLIHandler(usecase timelinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Chart(ctx context.Context, month, project, source string, dayWidth, leftOffset float64) (dto.ChartOutput, error) {
	return h.usecase.Chart(ctx, dto.ChartInput{
		Month:         month,
		ProjectFilter: project,
		SourceFilter:  source,
		DayWidth:      dayWidth,
		LeftOffset:    leftOffset,
	})
}

func (h CLIHandler) Tasks(ctx context.Context, project, source string) ([]dto.TaskOutput, error) {
	return h.usecase.Tasks(ctx, dto.TasksInput{ProjectFilter: project, SourceFilter: source})
}

// Window lists the days of the two-month window starting at reference's
// month; a zero reference means the current month.
func (h CLIHandler) Window(ctx context.Context, reference time.Time) (dto.WindowOutput, error) {
	return h.usecase.Window(ctx, reference)
}
