package usecase_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	extractout "pmhub/internal/modules/extract/adapter/out"
	"pmhub/internal/modules/extract/domain"
	"pmhub/internal/modules/extract/dto"
	"pmhub/internal/modules/extract/service"
	"pmhub/internal/modules/extract/usecase"
	projectout "pmhub/internal/modules/project/adapter/out"
	projectdto "pmhub/internal/modules/project/dto"
	projectservice "pmhub/internal/modules/project/service"
	projectusecase "pmhub/internal/modules/project/usecase"
	"pmhub/internal/platform/clock"
	"pmhub/internal/platform/id"

	"github.com/rs/zerolog"
)

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, path string) (domain.Image, error) {
	return domain.Image{Name: filepath.Base(path), MIMEType: "image/jpeg", Data: []byte{0xff, 0xd8}}, nil
}

type stubExtractor struct{}

func (stubExtractor) Extract(context.Context, domain.Image) ([]domain.Candidate, error) {
	return []domain.Candidate{
		{Title: "Write docs", StartDate: "2024-03-04", EndDate: "2024-03-08", Priority: "low", Confidence: 0.95},
		{Title: "Blurry", EndDate: "2024-03-09", Confidence: 0.4},
	}, nil
}

func TestExtractImageCreatesProjectTodos(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, err := projectout.NewSQLiteProjectStore(filepath.Join(t.TempDir(), "pmhub.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	projects := projectusecase.NewInteractor(projectservice.NewProjectService(clock.Fixed{At: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, id.UUID{}, store, store), nil)
	project, err := projects.CreateProject(ctx, projectdto.CreateProjectInput{Title: "Docs"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	uc := usecase.NewInteractor(service.NewExtractService(stubLoader{}, stubExtractor{}, extractout.NewProjectTaskSink(projects), 0.5, zerolog.Nop()))
	out, err := uc.ExtractImage(ctx, dto.ExtractImageInput{ProjectID: project.ID, Path: "/tmp/board.jpg"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(out.Accepted) != 1 || len(out.Rejected) != 1 || out.Rejected[0].Reason == "" {
		t.Fatalf("unexpected output %+v", out)
	}
	detail, err := projects.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if len(detail.Todos) != 1 || detail.Todos[0].ID != out.Accepted[0].TodoID || detail.Todos[0].EndDate != "2024-03-08" || detail.Todos[0].Priority != "low" {
		t.Fatalf("accepted candidate should become a todo: %+v", detail.Todos)
	}

	lenient := 0.1
	out, err = uc.ExtractImage(ctx, dto.ExtractImageInput{ProjectID: project.ID, Path: "/tmp/board.jpg", MinConfidence: &lenient})
	if err != nil || len(out.Accepted) != 2 {
		t.Fatalf("override threshold should accept both, got %+v (%v)", out, err)
	}
}
