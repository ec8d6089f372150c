package projects_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	projectdto "pmhub/internal/modules/project/dto"
	"pmhub/internal/ui/views/projects"
)

type fakePort struct {
	projects []projectdto.ProjectOutput
	details  map[string]projectdto.ProjectDetailOutput
}

func (f fakePort) ListProjects(context.Context) ([]projectdto.ProjectOutput, error) {
	return f.projects, nil
}

func (f fakePort) GetProject(_ context.Context, id string) (projectdto.ProjectDetailOutput, error) {
	return f.details[id], nil
}

func newPort() fakePort {
	alpha := projectdto.ProjectOutput{ID: "p1", Title: "Alpha", Color: "#3b82f6", Status: "active"}
	return fakePort{
		projects: []projectdto.ProjectOutput{alpha},
		details: map[string]projectdto.ProjectDetailOutput{
			"p1": {
				ProjectOutput: alpha,
				Todos:         []projectdto.TodoOutput{{ID: "t1", Title: "Design", EndDate: "2024-02-10", Priority: "high"}},
				Meetings: []projectdto.MeetingOutput{{ID: "m1", Title: "Kickoff", Date: "2024-02-01",
					Todos: []projectdto.MeetingTodoOutput{{ID: "mt1", Title: "Send notes", Assignee: "kim"}}}},
			},
		},
	}
}

func run(m projects.Model, cmd tea.Cmd) projects.Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
	case projects.ProjectsLoadedMsg, projects.DetailLoadedMsg:
		var next tea.Cmd
		m, next = m.Update(msg)
		m = run(m, next)
	}
	return m
}

func TestLoadsProjectsAndDetail(t *testing.T) {
	t.Parallel()
	m := projects.New(newPort())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = run(m, m.Reload())

	id, ok := m.SelectedProjectID()
	if !ok || id != "p1" {
		t.Fatalf("expected p1 selected, got %q", id)
	}
	view := m.View()
	for _, want := range []string{"Alpha", "Design", "Kickoff", "@kim"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEnterFocusesProject(t *testing.T) {
	t.Parallel()
	m := projects.New(newPort())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = run(m, m.Reload())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter should emit a command")
	}
	focus, ok := cmd().(projects.FocusProjectMsg)
	if !ok || focus.ProjectID != "p1" {
		t.Fatalf("expected focus on p1, got %#v", focus)
	}
}
