package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pmhub/internal/modules/timeline/domain"
	"pmhub/internal/modules/timeline/dto"
	timelinein "pmhub/internal/modules/timeline/port/in"
	"pmhub/internal/modules/timeline/service"
	apperrors "pmhub/internal/platform/errors"
)

type Interactor struct {
	svc *service.TimelineService
}

func NewInteractor(svc *service.TimelineService) timelinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Chart(ctx context.Context, input dto.ChartInput) (dto.ChartOutput, error) {
	if !(input.DayWidth > 0) {
		return dto.ChartOutput{}, fmt.Errorf("day width must be positive: %w", apperrors.ErrInvalidInput)
	}
	if input.LeftOffset < 0 {
		return dto.ChartOutput{}, fmt.Errorf("left offset must not be negative: %w", apperrors.ErrInvalidInput)
	}
	source, err := parseSource(input.SourceFilter)
	if err != nil {
		return dto.ChartOutput{}, err
	}

	tasks, now, err := i.svc.Tasks(ctx)
	if err != nil {
		return dto.ChartOutput{}, err
	}
	ref, err := resolveReference(input.Month, input.Reference, now)
	if err != nil {
		return dto.ChartOutput{}, err
	}
	window := navigate(ref, input.Shift).Window()
	project := domain.ProjectFilter(strings.TrimSpace(input.ProjectFilter))
	visible := domain.FilterTasks(tasks, project, source)

	out := dto.ChartOutput{
		GeneratedAt: now,
		DayWidth:    input.DayWidth,
		LeftOffset:  input.LeftOffset,
		Window:      toWindowOutput(window, now),
		Tasks:       make([]dto.ChartTaskOutput, 0, len(visible)),
		Counts:      toCountsOutput(domain.CountTasks(tasks, project, source)),
	}
	for _, task := range visible {
		g := domain.ComputeGeometry(task, window, input.DayWidth)
		out.Tasks = append(out.Tasks, dto.ChartTaskOutput{
			TaskOutput: toTaskOutput(task),
			Bar: dto.BarOutput{
				LeftPx:     g.LeftPx,
				WidthPx:    g.WidthPx,
				StartIndex: g.StartIndex,
				EndIndex:   g.EndIndex,
				InWindow:   !task.End.Before(window.First()) && !task.Start.After(window.Last()),
			},
		})
	}
	if marker, ok := domain.LocateToday(window, now, input.DayWidth, input.LeftOffset); ok {
		out.Today = dto.TodayOutput{
			Visible: true,
			Date:    window.Days()[marker.Index].String(),
			Index:   marker.Index,
			LeftPx:  marker.LeftPx,
		}
	}
	return out, nil
}

func (i *Interactor) Tasks(ctx context.Context, input dto.TasksInput) ([]dto.TaskOutput, error) {
	source, err := parseSource(input.SourceFilter)
	if err != nil {
		return nil, err
	}
	tasks, _, err := i.svc.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	visible := domain.FilterTasks(tasks, domain.ProjectFilter(strings.TrimSpace(input.ProjectFilter)), source)
	out := make([]dto.TaskOutput, 0, len(visible))
	for _, task := range visible {
		out = append(out, toTaskOutput(task))
	}
	return out, nil
}

func (i *Interactor) Window(_ context.Context, reference time.Time) (dto.WindowOutput, error) {
	now := i.svc.Now()
	ref, err := resolveReference("", reference, now)
	if err != nil {
		return dto.WindowOutput{}, err
	}
	return toWindowOutput(domain.NewNavigator(ref).Window(), now), nil
}

func navigate(ref time.Time, shift int) *domain.Navigator {
	nav := domain.NewNavigator(ref)
	for ; shift > 0; shift-- {
		nav.Next()
	}
	for ; shift < 0; shift++ {
		nav.Prev()
	}
	return nav
}

func parseSource(raw string) (domain.SourceFilter, error) {
	source, err := domain.ParseSourceFilter(raw)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	return source, nil
}

// resolveReference pins the reference month in now's location so the window
// and the today marker share one zone.
func resolveReference(month string, reference, now time.Time) (time.Time, error) {
	loc := now.Location()
	if month = strings.TrimSpace(month); month != "" {
		day, err := domain.ParseMonth(month, loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
		}
		return day.Time(), nil
	}
	if reference.IsZero() {
		reference = now
	}
	y, m, _ := reference.Date()
	return domain.Date(y, m, 1, loc).Time(), nil
}

func toTaskOutput(task domain.TimelineTask) dto.TaskOutput {
	return dto.TaskOutput{
		ID:           task.ID(),
		Source:       string(task.Source()),
		Title:        task.Title,
		Start:        task.Start.String(),
		End:          task.End.String(),
		Progress:     task.Progress,
		Status:       string(task.Status),
		StatusLabel:  task.Status.Label(),
		Priority:     string(task.Priority),
		Completed:    task.Completed,
		ProjectID:    task.ProjectID,
		ProjectTitle: task.ProjectTitle,
		ProjectColor: task.ProjectColor,
	}
}

func toWindowOutput(w domain.Window, now time.Time) dto.WindowOutput {
	today := domain.StartOfLocalDay(now.In(w.First().Location()))
	out := dto.WindowOutput{
		First:  w.First().String(),
		Last:   w.Last().String(),
		Days:   w.Len(),
		Months: make([]dto.MonthOutput, 0, 2),
	}
	for _, group := range w.Groups() {
		month := dto.MonthOutput{
			Key:   group.Key,
			Label: fmt.Sprintf("%s %d", group.Month, group.Year),
			Days:  make([]dto.DayOutput, 0, len(group.Days)),
		}
		for _, day := range group.Days {
			_, _, d := day.Date()
			weekday := day.Weekday()
			month.Days = append(month.Days, dto.DayOutput{
				Date:    day.String(),
				Day:     d,
				Weekday: weekday.String()[:3],
				Weekend: weekday == time.Saturday || weekday == time.Sunday,
				Today:   day.SameDate(today),
			})
		}
		out.Months = append(out.Months, month)
	}
	if len(out.Months) > 0 {
		out.Reference = out.Months[0].Key
	}
	return out
}

func toCountsOutput(counts domain.Counts) dto.CountsOutput {
	out := dto.CountsOutput{
		Total:     counts.Total,
		Visible:   counts.Visible,
		BySource:  make(map[string]int, len(counts.BySource)),
		ByProject: make([]dto.ProjectCountOutput, 0, len(counts.ByProject)),
	}
	for source, n := range counts.BySource {
		out.BySource[string(source)] = n
	}
	for _, pc := range counts.ByProject {
		out.ByProject = append(out.ByProject, dto.ProjectCountOutput{
			ProjectID:    pc.ProjectID,
			ProjectTitle: pc.ProjectTitle,
			ProjectColor: pc.ProjectColor,
			Count:        pc.Count,
		})
	}
	return out
}
