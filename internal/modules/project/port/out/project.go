package out

import (
	"context"
	"time"

	"pmhub/internal/modules/project/domain"
)

// ProjectStore persists projects and their nested records. Find and Set
// methods return apperrors.ErrNotFound for unknown ids.
type ProjectStore interface {
	SaveProject(ctx context.Context, project domain.Project) error
	FindProject(ctx context.Context, id string) (domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	SaveTodo(ctx context.Context, todo domain.Todo) error
	FindTodo(ctx context.Context, id string) (domain.Todo, error)
	SetTodoCompleted(ctx context.Context, id string, completed bool, updatedAt time.Time) error
	SaveMeeting(ctx context.Context, meeting domain.Meeting) error
	FindMeeting(ctx context.Context, id string) (domain.Meeting, error)
	SaveMeetingTodo(ctx context.Context, todo domain.MeetingTodo) error
	LoadTree(ctx context.Context) ([]domain.ProjectTree, error)
}

type SnapshotReader interface {
	Read(ctx context.Context, path string) ([]domain.ProjectTree, error)
}
