package in

import (
	"context"

	"pmhub/internal/modules/project/dto"
)

type Usecase interface {
	CreateProject(ctx context.Context, input dto.CreateProjectInput) (dto.ProjectOutput, error)
	ListProjects(ctx context.Context) ([]dto.ProjectOutput, error)
	GetProject(ctx context.Context, id string) (dto.ProjectDetailOutput, error)
	CreateTodo(ctx context.Context, input dto.CreateTodoInput) (dto.TodoOutput, error)
	CompleteTodo(ctx context.Context, input dto.CompleteTodoInput) (dto.TodoOutput, error)
	CreateMeeting(ctx context.Context, input dto.CreateMeetingInput) (dto.MeetingOutput, error)
	CreateMeetingTodo(ctx context.Context, input dto.CreateMeetingTodoInput) (dto.MeetingTodoOutput, error)
	Snapshot(ctx context.Context) (dto.SnapshotOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
}
