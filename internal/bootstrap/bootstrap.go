package bootstrap

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	extractinadapter "pmhub/internal/modules/extract/adapter/in"
	extractoutadapter "pmhub/internal/modules/extract/adapter/out"
	extractout "pmhub/internal/modules/extract/port/out"
	extractservice "pmhub/internal/modules/extract/service"
	extractusecase "pmhub/internal/modules/extract/usecase"
	projectinadapter "pmhub/internal/modules/project/adapter/in"
	projectoutadapter "pmhub/internal/modules/project/adapter/out"
	projectservice "pmhub/internal/modules/project/service"
	projectusecase "pmhub/internal/modules/project/usecase"
	timelineinadapter "pmhub/internal/modules/timeline/adapter/in"
	timelineoutadapter "pmhub/internal/modules/timeline/adapter/out"
	timelineservice "pmhub/internal/modules/timeline/service"
	timelineusecase "pmhub/internal/modules/timeline/usecase"
	"pmhub/internal/platform/clock"
	"pmhub/internal/platform/config"
	apperrors "pmhub/internal/platform/errors"
	"pmhub/internal/platform/id"
	"pmhub/internal/platform/log"
	uiapp "pmhub/internal/ui/app"
)

type App struct {
	Config      config.Config
	ProjectCLI  projectinadapter.CLIHandler
	TimelineCLI timelineinadapter.CLIHandler
	TimelineTUI timelineinadapter.TUIHandler
	ExtractCLI  extractinadapter.CLIHandler

	store *projectoutadapter.SQLiteProjectStore
}

func New(cfg config.Config) (*App, error) {
	log.Configure(os.Stderr, cfg.Log.Format, cfg.Log.Level)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clk := clock.SystemClock{Location: loc}

	store, err := projectoutadapter.NewSQLiteProjectStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new project store: %w", err)
	}
	projectUC := projectusecase.NewInteractor(
		projectservice.NewProjectService(clk, id.UUID{}, store, store),
		projectoutadapter.NewYAMLSnapshotReader(loc),
	)

	timelineUC := timelineusecase.NewInteractor(timelineservice.NewTimelineService(
		clk,
		timelineoutadapter.NewProjectModuleSource(projectUC),
		log.Component("timeline"),
	))

	var extractor extractout.Extractor
	extractor, err = extractoutadapter.NewOpenAIExtractor(cfg.Extract.APIKey, cfg.Extract.BaseURL, cfg.Extract.Model, log.Component("extract"))
	if err != nil {
		if !errors.Is(err, apperrors.ErrExtractorDisabled) {
			_ = store.Close()
			return nil, fmt.Errorf("new extractor: %w", err)
		}
		log.Debug().Msg("image extraction disabled: OPENAI_API_KEY is not set")
		extractor = nil
	}
	extractUC := extractusecase.NewInteractor(extractservice.NewExtractService(
		extractoutadapter.NewFileImageLoader(),
		extractor,
		extractoutadapter.NewProjectTaskSink(projectUC),
		cfg.Extract.MinConfidence,
		log.Component("extract"),
	))

	log.Debug().Str("db", cfg.DBPath).Str("timezone", loc.String()).Msg("workspace opened")

	return &App{
		Config:      cfg,
		ProjectCLI:  projectinadapter.NewCLIHandler(projectUC),
		TimelineCLI: timelineinadapter.NewCLIHandler(timelineUC),
		TimelineTUI: timelineinadapter.NewTUIHandler(timelineUC),
		ExtractCLI:  extractinadapter.NewCLIHandler(extractUC),
		store:       store,
	}, nil
}

// Close releases the workspace database.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

func RunTUI(app *App) error {
	// Log lines would tear the alt screen.
	log.SetLevel("disabled")
	model := uiapp.NewModel(app.TimelineTUI, app.ProjectCLI, app.Config.Timeline.MinDayWidth)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
