package in

import (
	"context"

	"pmhub/internal/modules/project/dto"
	projectin "pmhub/internal/modules/project/port/in"
)

type CLIHandler struct {
	usecase projectin.Usecase
}

func NewCLIHandler(usecase projectin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) CreateProject(ctx context.Context, title, color, status string) (dto.ProjectOutput, error) {
	return h.usecase.CreateProject(ctx, dto.CreateProjectInput{Title: title, Color: color, Status: status})
}

func (h CLIHandler) ListProjects(ctx context.Context) ([]dto.ProjectOutput, error) {
	return h.usecase.ListProjects(ctx)
}

func (h CLIHandler) GetProject(ctx context.Context, id string) (dto.ProjectDetailOutput, error) {
	return h.usecase.GetProject(ctx, id)
}

func (h CLIHandler) AddTodo(ctx context.Context, projectID, title, start, due, end, priority string) (dto.TodoOutput, error) {
	return h.usecase.CreateTodo(ctx, dto.CreateTodoInput{
		ProjectID: projectID,
		Title:     title,
		StartDate: start,
		DueDate:   due,
		EndDate:   end,
		Priority:  priority,
	})
}

func (h CLIHandler) CompleteTodo(ctx context.Context, id string, completed bool) (dto.TodoOutput, error) {
	return h.usecase.CompleteTodo(ctx, dto.CompleteTodoInput{ID: id, Completed: completed})
}

func (h CLIHandler) AddMeeting(ctx context.Context, projectID, title, date string) (dto.MeetingOutput, error) {
	return h.usecase.CreateMeeting(ctx, dto.CreateMeetingInput{ProjectID: projectID, Title: title, Date: date})
}

func (h CLIHandler) AddMeetingTodo(ctx context.Context, meetingID, title, due, assignee, priority string) (dto.MeetingTodoOutput, error) {
	return h.usecase.CreateMeetingTodo(ctx, dto.CreateMeetingTodoInput{
		MeetingID: meetingID,
		Title:     title,
		DueDate:   due,
		Assignee:  assignee,
		Priority:  priority,
	})
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Path: path})
}
