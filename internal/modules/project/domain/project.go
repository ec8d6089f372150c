package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPalette is handed out round-robin to projects created without a color.
var DefaultPalette = []string{
	"#4f7cff",
	"#2bb673",
	"#f5a623",
	"#e5484d",
	"#8e4ec6",
	"#12a594",
	"#d6409f",
	"#978365",
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type Project struct {
	ID        string
	Title     string
	Color     string
	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Todo dates are kept verbatim; the timeline decides what is usable.
type Todo struct {
	ID        string
	ProjectID string
	Title     string
	StartDate string
	DueDate   string
	EndDate   string
	Priority  Priority
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Meeting struct {
	ID        string
	ProjectID string
	Title     string
	Date      string
	CreatedAt time.Time
}

type MeetingTodo struct {
	ID        string
	MeetingID string
	Title     string
	DueDate   string
	Assignee  string
	Priority  Priority
	Completed bool
	CreatedAt time.Time
}

type MeetingTree struct {
	Meeting Meeting
	Todos   []MeetingTodo
}

type ProjectTree struct {
	Project  Project
	Todos    []Todo
	Meetings []MeetingTree
}

func (s ProjectStatus) Validate() error {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusArchived:
		return nil
	default:
		return fmt.Errorf("unsupported project status %q", string(s))
	}
}

// NormalizeStatus lowercases raw and defaults empty input to active.
func NormalizeStatus(raw string) ProjectStatus {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ProjectStatusActive
	}
	return ProjectStatus(strings.ReplaceAll(raw, " ", "_"))
}

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return fmt.Errorf("unsupported priority %q", string(p))
	}
}

func NormalizePriority(raw string) Priority {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return PriorityMedium
	}
	return Priority(raw)
}

func ValidColor(color string) bool {
	return colorPattern.MatchString(color)
}

// PaletteColor picks the n-th default color.
func PaletteColor(n int) string {
	if n < 0 {
		n = -n
	}
	return DefaultPalette[n%len(DefaultPalette)]
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !ValidColor(p.Color) {
		return fmt.Errorf("color %q must be #rrggbb", p.Color)
	}
	return p.Status.Validate()
}

func (t Todo) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return t.Priority.Validate()
}

func (m Meeting) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.ProjectID) == "" {
		return fmt.Errorf("project id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

func (m MeetingTodo) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(m.MeetingID) == "" {
		return fmt.Errorf("meeting id is required")
	}
	if strings.TrimSpace(m.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return m.Priority.Validate()
}
