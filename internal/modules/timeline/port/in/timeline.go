package in

import (
	"context"
	"time"

	"pmhub/internal/modules/timeline/dto"
)

type Usecase interface {
	Chart(ctx context.Context, input dto.ChartInput) (dto.ChartOutput, error)
	Tasks(ctx context.Context, input dto.TasksInput) ([]dto.TaskOutput, error)
	Window(ctx context.Context, reference time.Time) (dto.WindowOutput, error)
}
