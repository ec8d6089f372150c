package out

import (
	"context"

	"pmhub/internal/modules/extract/domain"
	extractout "pmhub/internal/modules/extract/port/out"
	projectdto "pmhub/internal/modules/project/dto"
	projectin "pmhub/internal/modules/project/port/in"
)

// ProjectTaskSink stores accepted candidates as project todos. The end date
// is written as the todo's end date, so the timeline picks it up directly.
type ProjectTaskSink struct {
	projects projectin.Usecase
}

func NewProjectTaskSink(projects projectin.Usecase) extractout.TaskSink {
	return &ProjectTaskSink{projects: projects}
}

func (s *ProjectTaskSink) CreateTask(ctx context.Context, projectID string, candidate domain.Candidate) (string, error) {
	todo, err := s.projects.CreateTodo(ctx, projectdto.CreateTodoInput{
		ProjectID: projectID,
		Title:     candidate.Title,
		StartDate: candidate.StartDate,
		EndDate:   candidate.EndDate,
		Priority:  candidate.Priority,
	})
	if err != nil {
		return "", err
	}
	return todo.ID, nil
}
