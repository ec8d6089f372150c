package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	projectdto "pmhub/internal/modules/project/dto"
	"pmhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ProjectPort interface {
	ListProjects(ctx context.Context) ([]projectdto.ProjectOutput, error)
	GetProject(ctx context.Context, id string) (projectdto.ProjectDetailOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ProjectsLoadedMsg struct {
	Projects []projectdto.ProjectOutput
	Err      error
}

type DetailLoadedMsg struct {
	Detail projectdto.ProjectDetailOutput
	Err    error
}

// FocusProjectMsg asks the timeline to narrow to one project.
type FocusProjectMsg struct {
	ProjectID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type projectItem struct {
	project projectdto.ProjectOutput
}

func (i projectItem) Title() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(i.project.Color)).Render("■") + " " + i.project.Title
}
func (i projectItem) Description() string { return i.project.Status }
func (i projectItem) FilterValue() string { return i.project.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ProjectPort
	list    list.Model
	detail  projectdto.ProjectDetailOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ProjectPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Projects"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ProjectsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Projects: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = projectItem{project: p}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if id, ok := m.SelectedProjectID(); ok {
			cmds = append(cmds, m.loadDetailCmd(id))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if msg.String() == "enter" && !m.Filtering() {
			if id, ok := m.SelectedProjectID(); ok {
				return m, func() tea.Msg { return FocusProjectMsg{ProjectID: id} }
			}
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if id, ok := m.SelectedProjectID(); ok {
				cmds = append(cmds, m.loadDetailCmd(id))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading projects…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Padding(0).
		Width(max(detailW-2, 0)).
		Height(max(m.height-2, 0)).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedProjectID() (string, bool) {
	if item, ok := m.list.SelectedItem().(projectItem); ok {
		return item.project.ID, true
	}
	return "", false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload refetches the project list, e.g. after a todo was added.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		if m.port == nil {
			return ProjectsLoadedMsg{Err: fmt.Errorf("projects are not configured")}
		}
		projects, err := m.port.ListProjects(context.Background())
		return ProjectsLoadedMsg{Projects: projects, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = max(detailW-4, 0)
	m.preview.Height = max(m.height-4, 0)
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a project to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + d.ID + "\n")
	sb.WriteString(theme.Muted.Render("status: ") + d.Status + "\n")
	sb.WriteString(theme.Muted.Render("color:  ") + d.Color + "\n")

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Todos (%d)", len(d.Todos))) + "\n")
	for _, todo := range d.Todos {
		sb.WriteString(checkbox(todo.Completed) + " " + todo.Title)
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %s → %s  [%s]  %s", dash(todo.StartDate), dash(todo.EndDate), todo.Priority, todo.ID)) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render(fmt.Sprintf("Meetings (%d)", len(d.Meetings))) + "\n")
	for _, meeting := range d.Meetings {
		sb.WriteString(meeting.Title + theme.Muted.Render("  "+dash(meeting.Date)) + "\n")
		for _, mt := range meeting.Todos {
			line := fmt.Sprintf("  %s %s", checkbox(mt.Completed), mt.Title)
			meta := "  due " + dash(mt.DueDate)
			if mt.Assignee != "" {
				meta += "  @" + mt.Assignee
			}
			sb.WriteString(line + theme.Muted.Render(meta) + "\n")
		}
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: show on timeline"))
	return sb.String()
}

func checkbox(done bool) string {
	if done {
		return theme.StatusStyle("complete").Render("[x]")
	}
	return "[ ]"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetProject(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
