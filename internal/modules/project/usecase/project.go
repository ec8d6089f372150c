package usecase

import (
	"context"
	"fmt"
	"strings"

	"pmhub/internal/modules/project/domain"
	"pmhub/internal/modules/project/dto"
	projectin "pmhub/internal/modules/project/port/in"
	projectout "pmhub/internal/modules/project/port/out"
	"pmhub/internal/modules/project/service"
	apperrors "pmhub/internal/platform/errors"
)

type Interactor struct {
	svc    *service.ProjectService
	reader projectout.SnapshotReader
}

func NewInteractor(svc *service.ProjectService, reader projectout.SnapshotReader) projectin.Usecase {
	return &Interactor{svc: svc, reader: reader}
}

func (i *Interactor) CreateProject(ctx context.Context, input dto.CreateProjectInput) (dto.ProjectOutput, error) {
	project, err := i.svc.CreateProject(ctx, input.Title, input.Color, input.Status)
	if err != nil {
		return dto.ProjectOutput{}, err
	}
	return toProjectOutput(project), nil
}

func (i *Interactor) ListProjects(ctx context.Context) ([]dto.ProjectOutput, error) {
	projects, err := i.svc.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectOutput, 0, len(projects))
	for _, project := range projects {
		out = append(out, toProjectOutput(project))
	}
	return out, nil
}

func (i *Interactor) GetProject(ctx context.Context, id string) (dto.ProjectDetailOutput, error) {
	tree, err := i.svc.GetProject(ctx, id)
	if err != nil {
		return dto.ProjectDetailOutput{}, err
	}
	return toDetailOutput(tree), nil
}

func (i *Interactor) CreateTodo(ctx context.Context, input dto.CreateTodoInput) (dto.TodoOutput, error) {
	todo, err := i.svc.CreateTodo(ctx, input.ProjectID, input.Title, input.StartDate, input.DueDate, input.EndDate, input.Priority)
	if err != nil {
		return dto.TodoOutput{}, err
	}
	return toTodoOutput(todo), nil
}

func (i *Interactor) CompleteTodo(ctx context.Context, input dto.CompleteTodoInput) (dto.TodoOutput, error) {
	if strings.TrimSpace(input.ID) == "" {
		return dto.TodoOutput{}, fmt.Errorf("todo id is required: %w", apperrors.ErrInvalidInput)
	}
	todo, err := i.svc.CompleteTodo(ctx, input.ID, input.Completed)
	if err != nil {
		return dto.TodoOutput{}, err
	}
	return toTodoOutput(todo), nil
}

func (i *Interactor) CreateMeeting(ctx context.Context, input dto.CreateMeetingInput) (dto.MeetingOutput, error) {
	meeting, err := i.svc.CreateMeeting(ctx, input.ProjectID, input.Title, input.Date)
	if err != nil {
		return dto.MeetingOutput{}, err
	}
	return toMeetingOutput(domain.MeetingTree{Meeting: meeting}), nil
}

func (i *Interactor) CreateMeetingTodo(ctx context.Context, input dto.CreateMeetingTodoInput) (dto.MeetingTodoOutput, error) {
	todo, err := i.svc.CreateMeetingTodo(ctx, input.MeetingID, input.Title, input.DueDate, input.Assignee, input.Priority)
	if err != nil {
		return dto.MeetingTodoOutput{}, err
	}
	return toMeetingTodoOutput(todo), nil
}

func (i *Interactor) Snapshot(ctx context.Context) (dto.SnapshotOutput, error) {
	trees, err := i.svc.Snapshot(ctx)
	if err != nil {
		return dto.SnapshotOutput{}, err
	}
	out := dto.SnapshotOutput{Projects: make([]dto.ProjectDetailOutput, 0, len(trees))}
	for _, tree := range trees {
		out.Projects = append(out.Projects, toDetailOutput(tree))
	}
	return out, nil
}

func (i *Interactor) Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error) {
	if i.reader == nil {
		return dto.ImportOutput{}, fmt.Errorf("snapshot reader is not configured")
	}
	if strings.TrimSpace(input.Path) == "" {
		return dto.ImportOutput{}, fmt.Errorf("import path is required: %w", apperrors.ErrInvalidInput)
	}
	trees, err := i.reader.Read(ctx, input.Path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	result, err := i.svc.Import(ctx, trees)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{
		Projects:     result.Projects,
		Todos:        result.Todos,
		Meetings:     result.Meetings,
		MeetingTodos: result.MeetingTodos,
	}, nil
}

func toProjectOutput(project domain.Project) dto.ProjectOutput {
	return dto.ProjectOutput{
		ID:     project.ID,
		Title:  project.Title,
		Color:  project.Color,
		Status: string(project.Status),
	}
}

func toDetailOutput(tree domain.ProjectTree) dto.ProjectDetailOutput {
	out := dto.ProjectDetailOutput{
		ProjectOutput: toProjectOutput(tree.Project),
		Todos:         make([]dto.TodoOutput, 0, len(tree.Todos)),
		Meetings:      make([]dto.MeetingOutput, 0, len(tree.Meetings)),
	}
	for _, todo := range tree.Todos {
		out.Todos = append(out.Todos, toTodoOutput(todo))
	}
	for _, meeting := range tree.Meetings {
		out.Meetings = append(out.Meetings, toMeetingOutput(meeting))
	}
	return out
}

func toTodoOutput(todo domain.Todo) dto.TodoOutput {
	return dto.TodoOutput{
		ID:        todo.ID,
		ProjectID: todo.ProjectID,
		Title:     todo.Title,
		StartDate: todo.StartDate,
		DueDate:   todo.DueDate,
		EndDate:   todo.EndDate,
		Priority:  string(todo.Priority),
		Completed: todo.Completed,
		CreatedAt: todo.CreatedAt,
	}
}

func toMeetingOutput(tree domain.MeetingTree) dto.MeetingOutput {
	out := dto.MeetingOutput{
		ID:        tree.Meeting.ID,
		ProjectID: tree.Meeting.ProjectID,
		Title:     tree.Meeting.Title,
		Date:      tree.Meeting.Date,
		Todos:     make([]dto.MeetingTodoOutput, 0, len(tree.Todos)),
	}
	for _, todo := range tree.Todos {
		out.Todos = append(out.Todos, toMeetingTodoOutput(todo))
	}
	return out
}

func toMeetingTodoOutput(todo domain.MeetingTodo) dto.MeetingTodoOutput {
	return dto.MeetingTodoOutput{
		ID:        todo.ID,
		MeetingID: todo.MeetingID,
		Title:     todo.Title,
		DueDate:   todo.DueDate,
		Assignee:  todo.Assignee,
		Priority:  string(todo.Priority),
		Completed: todo.Completed,
	}
}
