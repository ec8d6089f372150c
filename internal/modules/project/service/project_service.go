package service

import (
	"context"
	"fmt"
	"strings"

	"pmhub/internal/modules/project/domain"
	projectout "pmhub/internal/modules/project/port/out"
	"pmhub/internal/platform/clock"
	apperrors "pmhub/internal/platform/errors"
	"pmhub/internal/platform/id"
	"pmhub/internal/platform/tx"
)

type ProjectService struct {
	clock clock.Clock
	idGen id.Generator
	store projectout.ProjectStore
	tx    tx.Manager
}

type ImportResult struct {
	Projects     int
	Todos        int
	Meetings     int
	MeetingTodos int
}

func NewProjectService(clock clock.Clock, idGen id.Generator, store projectout.ProjectStore, txm tx.Manager) *ProjectService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &ProjectService{clock: clock, idGen: idGen, store: store, tx: txm}
}

func (s *ProjectService) CreateProject(ctx context.Context, title, color, status string) (domain.Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Project{}, fmt.Errorf("title is required: %w", apperrors.ErrInvalidInput)
	}
	color, err := s.resolveColor(ctx, color)
	if err != nil {
		return domain.Project{}, err
	}
	now := s.clock.Now()
	project := domain.Project{
		ID:        s.idGen.New(),
		Title:     title,
		Color:     color,
		Status:    domain.NormalizeStatus(status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := project.Validate(); err != nil {
		return domain.Project{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := s.store.SaveProject(ctx, project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

// resolveColor validates an explicit color or picks the next palette entry.
func (s *ProjectService) resolveColor(ctx context.Context, color string) (string, error) {
	color = strings.ToLower(strings.TrimSpace(color))
	if color != "" {
		if !domain.ValidColor(color) {
			return "", fmt.Errorf("color %q must be #rrggbb: %w", color, apperrors.ErrInvalidInput)
		}
		return color, nil
	}
	existing, err := s.store.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	return domain.PaletteColor(len(existing)), nil
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.store.ListProjects(ctx)
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (domain.ProjectTree, error) {
	if strings.TrimSpace(id) == "" {
		return domain.ProjectTree{}, fmt.Errorf("project id is required: %w", apperrors.ErrInvalidInput)
	}
	trees, err := s.store.LoadTree(ctx)
	if err != nil {
		return domain.ProjectTree{}, err
	}
	for _, tree := range trees {
		if tree.Project.ID == id {
			return tree, nil
		}
	}
	return domain.ProjectTree{}, fmt.Errorf("project %s: %w", id, apperrors.ErrNotFound)
}

func (s *ProjectService) CreateTodo(ctx context.Context, projectID, title, startDate, dueDate, endDate, priority string) (domain.Todo, error) {
	if _, err := s.store.FindProject(ctx, projectID); err != nil {
		return domain.Todo{}, err
	}
	now := s.clock.Now()
	todo := domain.Todo{
		ID:        s.idGen.New(),
		ProjectID: projectID,
		Title:     strings.TrimSpace(title),
		StartDate: strings.TrimSpace(startDate),
		DueDate:   strings.TrimSpace(dueDate),
		EndDate:   strings.TrimSpace(endDate),
		Priority:  domain.NormalizePriority(priority),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := todo.Validate(); err != nil {
		return domain.Todo{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := s.store.SaveTodo(ctx, todo); err != nil {
		return domain.Todo{}, err
	}
	return todo, nil
}

func (s *ProjectService) CompleteTodo(ctx context.Context, id string, completed bool) (domain.Todo, error) {
	if err := s.store.SetTodoCompleted(ctx, id, completed, s.clock.Now()); err != nil {
		return domain.Todo{}, err
	}
	return s.store.FindTodo(ctx, id)
}

func (s *ProjectService) CreateMeeting(ctx context.Context, projectID, title, date string) (domain.Meeting, error) {
	if _, err := s.store.FindProject(ctx, projectID); err != nil {
		return domain.Meeting{}, err
	}
	meeting := domain.Meeting{
		ID:        s.idGen.New(),
		ProjectID: projectID,
		Title:     strings.TrimSpace(title),
		Date:      strings.TrimSpace(date),
		CreatedAt: s.clock.Now(),
	}
	if err := meeting.Validate(); err != nil {
		return domain.Meeting{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := s.store.SaveMeeting(ctx, meeting); err != nil {
		return domain.Meeting{}, err
	}
	return meeting, nil
}

func (s *ProjectService) CreateMeetingTodo(ctx context.Context, meetingID, title, dueDate, assignee, priority string) (domain.MeetingTodo, error) {
	if _, err := s.store.FindMeeting(ctx, meetingID); err != nil {
		return domain.MeetingTodo{}, err
	}
	todo := domain.MeetingTodo{
		ID:        s.idGen.New(),
		MeetingID: meetingID,
		Title:     strings.TrimSpace(title),
		DueDate:   strings.TrimSpace(dueDate),
		Assignee:  strings.TrimSpace(assignee),
		Priority:  domain.NormalizePriority(priority),
		CreatedAt: s.clock.Now(),
	}
	if err := todo.Validate(); err != nil {
		return domain.MeetingTodo{}, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidInput)
	}
	if err := s.store.SaveMeetingTodo(ctx, todo); err != nil {
		return domain.MeetingTodo{}, err
	}
	return todo, nil
}

func (s *ProjectService) Snapshot(ctx context.Context) ([]domain.ProjectTree, error) {
	return s.store.LoadTree(ctx)
}

// Import upserts a snapshot in one transaction, so a file that fails
// validation part way leaves the store untouched. Missing ids, colors and
// timestamps are filled in, so the same file can be imported twice only
// when it carries ids.
func (s *ProjectService) Import(ctx context.Context, trees []domain.ProjectTree) (ImportResult, error) {
	var result ImportResult
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		result = ImportResult{}
		return s.importTrees(ctx, trees, &result)
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (s *ProjectService) importTrees(ctx context.Context, trees []domain.ProjectTree, result *ImportResult) error {
	existing, err := s.store.ListProjects(ctx)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	for i, tree := range trees {
		project := tree.Project
		if project.ID == "" {
			project.ID = s.idGen.New()
		}
		project.Color = strings.ToLower(strings.TrimSpace(project.Color))
		if project.Color == "" {
			project.Color = domain.PaletteColor(len(existing) + i)
		}
		project.Status = domain.NormalizeStatus(string(project.Status))
		if project.CreatedAt.IsZero() {
			project.CreatedAt = now
		}
		project.UpdatedAt = now
		if err := project.Validate(); err != nil {
			return fmt.Errorf("import project %q: %v: %w", project.Title, err, apperrors.ErrInvalidInput)
		}
		if err := s.store.SaveProject(ctx, project); err != nil {
			return err
		}
		result.Projects++

		for _, todo := range tree.Todos {
			if todo.ID == "" {
				todo.ID = s.idGen.New()
			}
			todo.ProjectID = project.ID
			todo.Priority = domain.NormalizePriority(string(todo.Priority))
			if todo.CreatedAt.IsZero() {
				todo.CreatedAt = now
			}
			todo.UpdatedAt = now
			if err := todo.Validate(); err != nil {
				return fmt.Errorf("import todo %q: %v: %w", todo.Title, err, apperrors.ErrInvalidInput)
			}
			if err := s.store.SaveTodo(ctx, todo); err != nil {
				return err
			}
			result.Todos++
		}

		for _, mt := range tree.Meetings {
			meeting := mt.Meeting
			if meeting.ID == "" {
				meeting.ID = s.idGen.New()
			}
			meeting.ProjectID = project.ID
			if meeting.CreatedAt.IsZero() {
				meeting.CreatedAt = now
			}
			if err := meeting.Validate(); err != nil {
				return fmt.Errorf("import meeting %q: %v: %w", meeting.Title, err, apperrors.ErrInvalidInput)
			}
			if err := s.store.SaveMeeting(ctx, meeting); err != nil {
				return err
			}
			result.Meetings++

			for _, item := range mt.Todos {
				if item.ID == "" {
					item.ID = s.idGen.New()
				}
				item.MeetingID = meeting.ID
				item.Priority = domain.NormalizePriority(string(item.Priority))
				if item.CreatedAt.IsZero() {
					item.CreatedAt = now
				}
				if err := item.Validate(); err != nil {
					return fmt.Errorf("import meeting todo %q: %v: %w", item.Title, err, apperrors.ErrInvalidInput)
				}
				if err := s.store.SaveMeetingTodo(ctx, item); err != nil {
					return err
				}
				result.MeetingTodos++
			}
		}
	}
	return nil
}
