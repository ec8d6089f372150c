package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	projectout "pmhub/internal/modules/project/adapter/out"
	projectdto "pmhub/internal/modules/project/dto"
	projectservice "pmhub/internal/modules/project/service"
	projectusecase "pmhub/internal/modules/project/usecase"
	timelineout "pmhub/internal/modules/timeline/adapter/out"
	"pmhub/internal/modules/timeline/dto"
	"pmhub/internal/modules/timeline/service"
	"pmhub/internal/modules/timeline/usecase"
	"pmhub/internal/platform/clock"
	"pmhub/internal/platform/id"

	"github.com/rs/zerolog"
)

func TestTimelineReadsProjectModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := projectout.NewSQLiteProjectStore(filepath.Join(t.TempDir(), "pmhub.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	now := clock.Fixed{At: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	projects := projectusecase.NewInteractor(projectservice.NewProjectService(now, id.UUID{}, store, store), nil)

	project, err := projects.CreateProject(ctx, projectdto.CreateProjectInput{Title: "Website"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := projects.CreateTodo(ctx, projectdto.CreateTodoInput{ProjectID: project.ID, Title: "Build", StartDate: "2024-03-01", EndDate: "2024-03-15"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if _, err := projects.CreateTodo(ctx, projectdto.CreateTodoInput{ProjectID: project.ID, Title: "Review", DueDate: "2024-03-12"}); err != nil {
		t.Fatalf("create todo: %v", err)
	}

	timeline := usecase.NewInteractor(service.NewTimelineService(now, timelineout.NewProjectModuleSource(projects), zerolog.Nop()))
	tasks, err := timeline.Tasks(ctx, dto.TasksInput{})
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected two tasks, got %+v", tasks)
	}
	build := tasks[0]
	if build.Title != "Build" || build.Progress != 60 || build.Status != "in_progress" || build.ProjectColor != project.Color {
		t.Fatalf("unexpected build task %+v", build)
	}
	review := tasks[1]
	if review.Start != "2024-03-10" || review.End != "2024-03-12" {
		t.Fatalf("review should start at its creation day: %+v", review)
	}
}

func TestImportedDateOnlyCreatedAtStaysOnItsDay(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ctx := context.Background()
	dir := t.TempDir()
	store, err := projectout.NewSQLiteProjectStore(filepath.Join(dir, "pmhub.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	now := clock.Fixed{At: time.Date(2024, 3, 10, 12, 0, 0, 0, loc)}
	projects := projectusecase.NewInteractor(projectservice.NewProjectService(now, id.UUID{}, store, store), projectout.NewYAMLSnapshotReader(loc))

	path := filepath.Join(dir, "projects.yaml")
	raw := `projects:
  - title: Website
    todos:
      - title: Build
        created_at: 2024-03-01
        end_date: 2024-03-15
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	if _, err := projects.Import(ctx, projectdto.ImportInput{Path: path}); err != nil {
		t.Fatalf("import: %v", err)
	}

	timeline := usecase.NewInteractor(service.NewTimelineService(now, timelineout.NewProjectModuleSource(projects), zerolog.Nop()))
	tasks, err := timeline.Tasks(ctx, dto.TasksInput{})
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Start != "2024-03-01" || tasks[0].End != "2024-03-15" {
		t.Fatalf("creation day should be the start in the clock zone: %+v", tasks)
	}
}
