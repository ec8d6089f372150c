package out

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"pmhub/internal/modules/project/domain"

	"gopkg.in/yaml.v3"
)

type snapshotFile struct {
	Projects []projectYAML `yaml:"projects"`
}

type projectYAML struct {
	ID       string        `yaml:"id"`
	Title    string        `yaml:"title"`
	Color    string        `yaml:"color"`
	Status   string        `yaml:"status"`
	Todos    []todoYAML    `yaml:"todos"`
	Meetings []meetingYAML `yaml:"meetings"`
}

type todoYAML struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	StartDate string `yaml:"start_date"`
	DueDate   string `yaml:"due_date"`
	EndDate   string `yaml:"end_date"`
	Priority  string `yaml:"priority"`
	Completed bool   `yaml:"completed"`
	CreatedAt string `yaml:"created_at"`
}

type meetingYAML struct {
	ID    string            `yaml:"id"`
	Title string            `yaml:"title"`
	Date  string            `yaml:"date"`
	Todos []meetingTodoYAML `yaml:"todos"`
}

type meetingTodoYAML struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	DueDate   string `yaml:"due_date"`
	Assignee  string `yaml:"assignee"`
	Priority  string `yaml:"priority"`
	Completed bool   `yaml:"completed"`
}

// YAMLSnapshotReader loads a projects file. Task dates stay as written;
// created_at without a clock time is midnight in loc.
type YAMLSnapshotReader struct {
	loc *time.Location
}

func NewYAMLSnapshotReader(loc *time.Location) YAMLSnapshotReader {
	if loc == nil {
		loc = time.Local
	}
	return YAMLSnapshotReader{loc: loc}
}

func (r YAMLSnapshotReader) Read(_ context.Context, path string) ([]domain.ProjectTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return DecodeSnapshot(data, r.loc)
}

func DecodeSnapshot(data []byte, loc *time.Location) ([]domain.ProjectTree, error) {
	if loc == nil {
		loc = time.Local
	}
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	trees := make([]domain.ProjectTree, 0, len(file.Projects))
	for _, p := range file.Projects {
		tree := domain.ProjectTree{
			Project: domain.Project{
				ID:     strings.TrimSpace(p.ID),
				Title:  strings.TrimSpace(p.Title),
				Color:  p.Color,
				Status: domain.ProjectStatus(p.Status),
			},
		}
		for _, t := range p.Todos {
			tree.Todos = append(tree.Todos, domain.Todo{
				ID:        strings.TrimSpace(t.ID),
				Title:     strings.TrimSpace(t.Title),
				StartDate: strings.TrimSpace(t.StartDate),
				DueDate:   strings.TrimSpace(t.DueDate),
				EndDate:   strings.TrimSpace(t.EndDate),
				Priority:  domain.Priority(t.Priority),
				Completed: t.Completed,
				CreatedAt: parseCreatedAt(t.CreatedAt, loc),
			})
		}
		for _, m := range p.Meetings {
			meeting := domain.MeetingTree{
				Meeting: domain.Meeting{
					ID:    strings.TrimSpace(m.ID),
					Title: strings.TrimSpace(m.Title),
					Date:  strings.TrimSpace(m.Date),
				},
			}
			for _, item := range m.Todos {
				meeting.Todos = append(meeting.Todos, domain.MeetingTodo{
					ID:        strings.TrimSpace(item.ID),
					Title:     strings.TrimSpace(item.Title),
					DueDate:   strings.TrimSpace(item.DueDate),
					Assignee:  strings.TrimSpace(item.Assignee),
					Priority:  domain.Priority(item.Priority),
					Completed: item.Completed,
				})
			}
			tree.Meetings = append(tree.Meetings, meeting)
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

func parseCreatedAt(raw string, loc *time.Location) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t
	}
	return time.Time{}
}
