package out

import (
	"context"
	"time"

	projectdto "pmhub/internal/modules/project/dto"
	projectin "pmhub/internal/modules/project/port/in"
	"pmhub/internal/modules/timeline/domain"
	timelineout "pmhub/internal/modules/timeline/port/out"
)

// ProjectModuleSource reads timeline records from the project module.
type ProjectModuleSource struct {
	projects projectin.Usecase
}

func NewProjectModuleSource(projects projectin.Usecase) timelineout.ProjectSource {
	return &ProjectModuleSource{projects: projects}
}

func (s *ProjectModuleSource) ListProjects(ctx context.Context) ([]domain.ProjectRecord, error) {
	snap, err := s.projects.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ProjectRecord, 0, len(snap.Projects))
	for _, project := range snap.Projects {
		out = append(out, toRecord(project))
	}
	return out, nil
}

func toRecord(project projectdto.ProjectDetailOutput) domain.ProjectRecord {
	record := domain.ProjectRecord{
		ID:       project.ID,
		Title:    project.Title,
		Color:    project.Color,
		Status:   project.Status,
		Todos:    make([]domain.TodoRecord, 0, len(project.Todos)),
		Meetings: make([]domain.MeetingRecord, 0, len(project.Meetings)),
	}
	for _, todo := range project.Todos {
		createdAt := ""
		if !todo.CreatedAt.IsZero() {
			createdAt = todo.CreatedAt.Format(time.RFC3339)
		}
		record.Todos = append(record.Todos, domain.TodoRecord{
			ID:        todo.ID,
			Title:     todo.Title,
			StartDate: todo.StartDate,
			DueDate:   todo.DueDate,
			EndDate:   todo.EndDate,
			CreatedAt: createdAt,
			Priority:  todo.Priority,
			Completed: todo.Completed,
		})
	}
	for _, meeting := range project.Meetings {
		m := domain.MeetingRecord{
			ID:    meeting.ID,
			Title: meeting.Title,
			Date:  meeting.Date,
			Todos: make([]domain.MeetingTodoRecord, 0, len(meeting.Todos)),
		}
		for _, item := range meeting.Todos {
			m.Todos = append(m.Todos, domain.MeetingTodoRecord{
				ID:        item.ID,
				Title:     item.Title,
				DueDate:   item.DueDate,
				Assignee:  item.Assignee,
				Priority:  item.Priority,
				Completed: item.Completed,
			})
		}
		record.Meetings = append(record.Meetings, m)
	}
	return record
}
