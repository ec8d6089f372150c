package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	projectdto "pmhub/internal/modules/project/dto"
	"pmhub/internal/ui/components"
	"pmhub/internal/ui/theme"
	ganttview "pmhub/internal/ui/views/gantt"
	projectsview "pmhub/internal/ui/views/projects"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type projectPort interface {
	ListProjects(ctx context.Context) ([]projectdto.ProjectOutput, error)
	GetProject(ctx context.Context, id string) (projectdto.ProjectDetailOutput, error)
	AddTodo(ctx context.Context, projectID, title, start, due, end, priority string) (projectdto.TodoOutput, error)
	CompleteTodo(ctx context.Context, id string, completed bool) (projectdto.TodoOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimeline tabID = iota
	tabProjects
	tabCount
)

var tabLabels = [tabCount]string{"Timeline", "Projects"}

// ─── async messages ───────────────────────────────────────────────────────────

type todoSavedMsg struct {
	todo projectdto.TodoOutput
	verb string
	err  error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Month    key.Binding
	Today    key.Binding
	Source   key.Binding
	Projects key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show project on timeline")),
		Month:    key.NewBinding(key.WithKeys("n", "p"), key.WithHelp("n/p", "next/previous month")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "jump to today")),
		Source:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle source filter")),
		Projects: key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "cycle project filter")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Month, k.Today, k.Source, k.Projects},
		{k.Tab, k.Enter},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay
// and the command palette; rendering is delegated to sub-views.
type Model struct {
	projects projectPort

	ganttView    ganttview.Model
	projectsView projectsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(timeline ganttview.ChartPort, projects projectPort, minCellsPerDay int) Model {
	var projectsV projectsview.Model
	if projects != nil {
		projectsV = projectsview.New(projectPortBridge{p: projects})
	} else {
		projectsV = projectsview.New(nil)
	}
	return Model{
		projects:     projects,
		ganttView:    ganttview.New(timeline, minCellsPerDay),
		projectsView: projectsV,
		activeTab:    tabTimeline,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.ganttView.Init(), m.projectsView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts key input while open; loads still land.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		return m, m.propagateSize()

	// Both views own their load messages; route them regardless of the tab.
	case ganttview.ChartLoadedMsg:
		if msg.Err != nil {
			m.status = "timeline: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.ganttView, cmd = m.ganttView.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)

	case projectsview.ProjectsLoadedMsg, projectsview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.projectsView, cmd = m.projectsView.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)

	case projectsview.FocusProjectMsg:
		m.activeTab = tabTimeline
		m.status = "timeline: project " + msg.ProjectID
		cmd := m.ganttView.SetProject(msg.ProjectID)
		return m, cmd

	case todoSavedMsg:
		if msg.err != nil {
			m.status = "todo: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("todo %s: %s (%s)", msg.verb, msg.todo.Title, msg.todo.ID)
		cmd := tea.Batch(m.ganttView.Reload(), m.projectsView.Reload())
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabTimeline:
		m.ganttView, tabCmd = m.ganttView.Update(msg)
	case tabProjects:
		m.projectsView, tabCmd = m.projectsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

// Status returns the current status-bar message.
func (m Model) Status() string { return m.status }

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimeline:
		return m.ganttView.View()
	case tabProjects:
		return m.projectsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "pmhub  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if project := m.ganttView.Project(); project != "all" {
		left = theme.Hot.Render("● "+project) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "month":
		if len(parts) < 2 {
			m.status = "usage: month <YYYY-MM>"
			return m, nil
		}
		ref, err := time.Parse("2006-01", parts[1])
		if err != nil {
			m.status = "invalid month: " + parts[1]
			return m, nil
		}
		m.activeTab = tabTimeline
		cmd := m.ganttView.SetMonth(ref)
		return m, cmd

	case "today":
		m.activeTab = tabTimeline
		cmd := m.ganttView.SetMonth(time.Time{})
		return m, cmd

	case "project":
		if len(parts) < 2 {
			m.status = "usage: project <id|all>"
			return m, nil
		}
		m.activeTab = tabTimeline
		cmd := m.ganttView.SetProject(parts[1])
		return m, cmd

	case "source":
		if len(parts) < 2 {
			m.status = "usage: source <all|project|meeting>"
			return m, nil
		}
		cmd := m.ganttView.SetSource(parts[1])
		if cmd == nil {
			m.status = "unknown source: " + parts[1]
			return m, nil
		}
		m.activeTab = tabTimeline
		return m, cmd

	case "todo:add":
		if len(parts) < 3 {
			m.status = "usage: todo:add <end YYYY-MM-DD> <title>"
			return m, nil
		}
		projectID := m.targetProject()
		if projectID == "" {
			m.status = "select a project first"
			return m, nil
		}
		title := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.addTodoCmd(projectID, title, parts[1])

	case "todo:done":
		if len(parts) < 2 {
			m.status = "usage: todo:done <todo-id>"
			return m, nil
		}
		return m, m.completeTodoCmd(parts[1])

	case "reload":
		m.status = "reloading"
		cmd := tea.Batch(m.ganttView.Reload(), m.projectsView.Reload())
		return m, cmd

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// targetProject prefers the timeline's project filter, then the selection
// in the Projects tab.
func (m Model) targetProject() string {
	if p := m.ganttView.Project(); p != "all" {
		return p
	}
	if id, ok := m.projectsView.SelectedProjectID(); ok {
		return id
	}
	return ""
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	return m.activeTab == tabProjects && m.projectsView.Filtering()
}

func (m *Model) propagateSize() tea.Cmd {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	var gCmd tea.Cmd
	m.ganttView, gCmd = m.ganttView.Update(sz)
	m.projectsView, _ = m.projectsView.Update(sz)
	return gCmd
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) addTodoCmd(projectID, title, end string) tea.Cmd {
	return func() tea.Msg {
		if m.projects == nil {
			return todoSavedMsg{err: fmt.Errorf("projects are not configured")}
		}
		todo, err := m.projects.AddTodo(context.Background(), projectID, title, "", "", end, "")
		return todoSavedMsg{todo: todo, verb: "added", err: err}
	}
}

func (m Model) completeTodoCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if m.projects == nil {
			return todoSavedMsg{err: fmt.Errorf("projects are not configured")}
		}
		todo, err := m.projects.CompleteTodo(context.Background(), id, true)
		return todoSavedMsg{todo: todo, verb: "completed", err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The bridge narrows the project port to what the Projects tab reads.

type projectPortBridge struct{ p projectPort }

func (b projectPortBridge) ListProjects(ctx context.Context) ([]projectdto.ProjectOutput, error) {
	return b.p.ListProjects(ctx)
}
func (b projectPortBridge) GetProject(ctx context.Context, id string) (projectdto.ProjectDetailOutput, error) {
	return b.p.GetProject(ctx, id)
}
