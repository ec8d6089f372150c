package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	projectout "pmhub/internal/modules/project/adapter/out"
	"pmhub/internal/modules/project/domain"
	"pmhub/internal/modules/project/dto"
	projectin "pmhub/internal/modules/project/port/in"
	"pmhub/internal/modules/project/service"
	"pmhub/internal/modules/project/usecase"
	"pmhub/internal/platform/clock"
	apperrors "pmhub/internal/platform/errors"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%02d", s.n)
}

func newUsecase(t *testing.T) projectin.Usecase {
	t.Helper()
	store, err := projectout.NewSQLiteProjectStore(filepath.Join(t.TempDir(), ".pmhub", "pmhub.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	now := clock.Fixed{At: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	return usecase.NewInteractor(service.NewProjectService(now, &seqID{}, store, store), projectout.NewYAMLSnapshotReader(time.UTC))
}

func TestProjectLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)

	first, err := uc.CreateProject(ctx, dto.CreateProjectInput{Title: "  Website  "})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if first.Title != "Website" || first.Color != domain.DefaultPalette[0] || first.Status != "active" {
		t.Fatalf("unexpected project %+v", first)
	}
	second, err := uc.CreateProject(ctx, dto.CreateProjectInput{Title: "Mobile", Color: "#AABBCC", Status: "on hold"})
	if err != nil {
		t.Fatalf("create second project: %v", err)
	}
	if second.Color != "#aabbcc" || second.Status != "on_hold" {
		t.Fatalf("unexpected second project %+v", second)
	}

	todo, err := uc.CreateTodo(ctx, dto.CreateTodoInput{ProjectID: first.ID, Title: "Design", StartDate: " 2024-03-01 ", EndDate: "2024-03-15", Priority: "High"})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.StartDate != "2024-03-01" || todo.Priority != "high" {
		t.Fatalf("dates should be trimmed and priority normalized: %+v", todo)
	}
	done, err := uc.CompleteTodo(ctx, dto.CompleteTodoInput{ID: todo.ID, Completed: true})
	if err != nil || !done.Completed {
		t.Fatalf("complete todo: %+v %v", done, err)
	}

	meeting, err := uc.CreateMeeting(ctx, dto.CreateMeetingInput{ProjectID: first.ID, Title: "Kickoff", Date: "2024-03-01"})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if _, err := uc.CreateMeetingTodo(ctx, dto.CreateMeetingTodoInput{MeetingID: meeting.ID, Title: "Send notes", DueDate: "2024-03-04", Assignee: "Ana"}); err != nil {
		t.Fatalf("create meeting todo: %v", err)
	}

	detail, err := uc.GetProject(ctx, first.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if len(detail.Todos) != 1 || !detail.Todos[0].Completed || len(detail.Meetings) != 1 || len(detail.Meetings[0].Todos) != 1 {
		t.Fatalf("unexpected project tree %+v", detail)
	}
	if detail.Meetings[0].Todos[0].Assignee != "Ana" || detail.Meetings[0].Todos[0].Priority != "medium" {
		t.Fatalf("unexpected meeting todo %+v", detail.Meetings[0].Todos[0])
	}

	listed, err := uc.ListProjects(ctx)
	if err != nil || len(listed) != 2 {
		t.Fatalf("expected two projects, got %d (%v)", len(listed), err)
	}
	snap, err := uc.Snapshot(ctx)
	if err != nil || len(snap.Projects) != 2 || len(snap.Projects[1].Todos) != 0 {
		t.Fatalf("unexpected snapshot %+v (%v)", snap, err)
	}
}

func TestProjectValidationErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)

	if _, err := uc.CreateProject(ctx, dto.CreateProjectInput{Title: ""}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty title, got %v", err)
	}
	if _, err := uc.CreateProject(ctx, dto.CreateProjectInput{Title: "X", Color: "red"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad color, got %v", err)
	}
	if _, err := uc.CreateTodo(ctx, dto.CreateTodoInput{ProjectID: "missing", Title: "T"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown project, got %v", err)
	}
	if _, err := uc.CompleteTodo(ctx, dto.CompleteTodoInput{ID: "missing", Completed: true}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown todo, got %v", err)
	}
	if _, err := uc.CreateMeetingTodo(ctx, dto.CreateMeetingTodoInput{MeetingID: "missing", Title: "T"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown meeting, got %v", err)
	}
	if _, err := uc.GetProject(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for unknown project, got %v", err)
	}

	project, err := uc.CreateProject(ctx, dto.CreateProjectInput{Title: "Site"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := uc.CreateTodo(ctx, dto.CreateTodoInput{ProjectID: project.ID, Title: "T", Priority: "urgent"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad priority, got %v", err)
	}
}

func TestImportSnapshot(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	raw := `projects:
  - id: web
    title: Website
    todos:
      - id: design
        title: Design
        start_date: 2024-03-01
        end_date: 2024-03-15
        priority: high
      - title: Undated
        created_at: 2024-02-20T10:00:00Z
    meetings:
      - title: Kickoff
        date: 2024-03-01
        todos:
          - title: Send notes
            due_date: 2024-03-04
            assignee: Ana
            completed: true
  - title: Mobile
    color: "#112233"
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	result, err := uc.Import(ctx, dto.ImportInput{Path: path})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Projects != 2 || result.Todos != 2 || result.Meetings != 1 || result.MeetingTodos != 1 {
		t.Fatalf("unexpected import counts %+v", result)
	}
	detail, err := uc.GetProject(ctx, "web")
	if err != nil {
		t.Fatalf("get imported project: %v", err)
	}
	var design dto.TodoOutput
	for _, todo := range detail.Todos {
		if todo.ID == "design" {
			design = todo
		}
	}
	if design.StartDate != "2024-03-01" || design.EndDate != "2024-03-15" || design.Priority != "high" {
		t.Fatalf("dates should survive import verbatim: %+v", detail.Todos)
	}
	if !detail.Meetings[0].Todos[0].Completed {
		t.Fatalf("completed flag lost: %+v", detail.Meetings[0].Todos[0])
	}

	again, err := uc.Import(ctx, dto.ImportInput{Path: path})
	if err != nil || again.Projects != 2 {
		t.Fatalf("re-import: %+v %v", again, err)
	}
	detail, err = uc.GetProject(ctx, "web")
	if err != nil {
		t.Fatalf("get project after re-import: %v", err)
	}
	if len(detail.Todos) != 3 {
		t.Fatalf("todo with id should be upserted, the id-less one duplicated: got %d todos", len(detail.Todos))
	}

	if _, err := uc.Import(ctx, dto.ImportInput{Path: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := uc.Import(ctx, dto.ImportInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty path, got %v", err)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUsecase(t)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	raw := `projects:
  - title: Good
    todos:
      - title: Ship
        end_date: 2024-03-15
  - title: Bad
    color: red
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	result, err := uc.Import(ctx, dto.ImportInput{Path: path})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad color, got %v", err)
	}
	if result.Projects != 0 || result.Todos != 0 {
		t.Fatalf("failed import should report nothing saved, got %+v", result)
	}
	projects, err := uc.ListProjects(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Fatalf("failed import left %d projects behind", len(projects))
	}

	fixed := strings.Replace(raw, "color: red", `color: "#aa0000"`, 1)
	if err := os.WriteFile(path, []byte(fixed), 0o644); err != nil {
		t.Fatalf("rewrite snapshot: %v", err)
	}
	if _, err := uc.Import(ctx, dto.ImportInput{Path: path}); err != nil {
		t.Fatalf("retry import: %v", err)
	}
	projects, err = uc.ListProjects(ctx)
	if err != nil || len(projects) != 2 {
		t.Fatalf("retry should create each project once, got %+v (%v)", projects, err)
	}
}

