package gantt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	timelinedto "pmhub/internal/modules/timeline/dto"
	"pmhub/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ChartPort interface {
	Chart(ctx context.Context, reference time.Time, shift int, project, source string, dayWidth, leftOffset float64) (timelinedto.ChartOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// ChartLoadedMsg carries the reply to one load. Seq orders replies so an
// older request that finishes late never replaces a newer chart.
type ChartLoadedMsg struct {
	Seq   int
	Chart timelinedto.ChartOutput
	Err   error
}

// ─── model ───────────────────────────────────────────────────────────────────

const (
	gutterWidth = 28
	chromeRows  = 4
)

var sourceCycle = []string{"all", "project", "meeting"}

// Model renders the timeline as a terminal Gantt chart. One column group of
// cellsPerDay cells stands for one day.
type Model struct {
	port        ChartPort
	reference   time.Time
	project     string
	sourceIdx   int
	minCells    int
	cellsPerDay int
	chart       timelinedto.ChartOutput
	err         error
	body        viewport.Model
	spinner     spinner.Model
	loading     bool
	issued      *int // shared by copies of the model
	seq         int  // newest load this model issued or applied
	width       int
	height      int
}

func New(port ChartPort, minCells int) Model {
	if minCells < 1 {
		minCells = 1
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{
		port:        port,
		project:     "all",
		minCells:    minCells,
		cellsPerDay: minCells,
		body:        viewport.New(0, 0),
		spinner:     sp,
		loading:     true,
		issued:      new(int),
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
		m.body.Width = msg.Width
		m.body.Height = max(msg.Height-chromeRows, 1)
		if cells := m.fitCells(); cells != m.cellsPerDay {
			m.cellsPerDay = cells
			cmds = append(cmds, m.Reload())
		}

	case ChartLoadedMsg:
		if msg.Seq < m.seq {
			break
		}
		m.seq = msg.Seq
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.chart = msg.Chart
			if first, err := time.Parse("2006-01-02", msg.Chart.Window.First); err == nil {
				m.reference = first
			}
		}
		m.body.SetContent(m.renderRows())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m.navigate(m.reference, 1)
		case "p":
			return m.navigate(m.reference, -1)
		case "t":
			return m.navigate(time.Time{}, 0)
		case "f":
			m.sourceIdx = (m.sourceIdx + 1) % len(sourceCycle)
			cmd := m.Reload()
			return m, cmd
		case "]":
			m.project = m.cycleProject(1)
			cmd := m.Reload()
			return m, cmd
		case "[":
			m.project = m.cycleProject(-1)
			cmd := m.Reload()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading timeline…")
	}
	if m.err != nil {
		return theme.Hot.Render("timeline: " + m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderMonthHeader(),
		m.renderDayHeader(),
		m.body.View(),
		m.renderFooter(),
	)
}

// SetProject narrows the chart to one project ("all" clears it).
func (m *Model) SetProject(id string) tea.Cmd {
	if strings.TrimSpace(id) == "" {
		id = "all"
	}
	m.project = id
	return m.Reload()
}

// SetSource picks the source filter; unknown values are ignored.
func (m *Model) SetSource(source string) tea.Cmd {
	for i, s := range sourceCycle {
		if s == source {
			m.sourceIdx = i
			return m.Reload()
		}
	}
	return nil
}

// SetMonth moves the window to start at ref's month; zero means today.
func (m *Model) SetMonth(ref time.Time) tea.Cmd {
	m.reference = ref
	return m.Reload()
}

func (m Model) Project() string { return m.project }
func (m Model) Source() string  { return sourceCycle[m.sourceIdx] }

// Reload fetches the chart for the current reference and filters.
func (m *Model) Reload() tea.Cmd {
	return m.load(m.reference, 0)
}

// ─── private ─────────────────────────────────────────────────────────────────

// load asks for the window shift months after ref. The reference follows
// the loaded window, so it only changes once the chart arrives.
func (m *Model) load(ref time.Time, shift int) tea.Cmd {
	if m.issued == nil {
		m.issued = new(int)
	}
	*m.issued++
	seq := *m.issued
	m.seq = seq
	if m.port == nil {
		return func() tea.Msg { return ChartLoadedMsg{Seq: seq, Err: fmt.Errorf("timeline is not configured")} }
	}
	port, project, source := m.port, m.project, m.Source()
	cells := float64(m.cellsPerDay)
	return func() tea.Msg {
		chart, err := port.Chart(context.Background(), ref, shift, project, source, cells, 0)
		return ChartLoadedMsg{Seq: seq, Chart: chart, Err: err}
	}
}

func (m Model) navigate(ref time.Time, shift int) (Model, tea.Cmd) {
	m.reference = ref
	m.loading = true
	cmd := m.load(ref, shift)
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) monthStart() time.Time {
	ref := m.reference
	if ref.IsZero() {
		ref = time.Now()
	}
	return time.Date(ref.Year(), ref.Month(), 1, 12, 0, 0, 0, ref.Location())
}

// fitCells spreads the window across the terminal, never below minCells.
func (m Model) fitCells() int {
	start := m.monthStart()
	days := int(start.AddDate(0, 2, 0).Sub(start).Hours()/24 + 0.5)
	if days <= 0 || m.width <= gutterWidth {
		return m.minCells
	}
	return max((m.width-gutterWidth)/days, m.minCells)
}

func (m Model) cycleProject(step int) string {
	ids := []string{"all"}
	for _, pc := range m.chart.Counts.ByProject {
		ids = append(ids, pc.ProjectID)
	}
	current := 0
	for i, id := range ids {
		if id == m.project {
			current = i
		}
	}
	return ids[(current+step+len(ids))%len(ids)]
}

func (m Model) renderMonthHeader() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	for _, month := range m.chart.Window.Months {
		w := len(month.Days) * m.cellsPerDay
		label := month.Label
		if len([]rune(label)) > w {
			label = string([]rune(label)[:max(w, 0)])
		}
		sb.WriteString(theme.Title.Render(label) + strings.Repeat(" ", w-len([]rune(label))))
	}
	return sb.String()
}

func (m Model) renderDayHeader() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	for _, month := range m.chart.Window.Months {
		for _, day := range month.Days {
			label := fmt.Sprintf("%d", day.Day%10)
			if m.cellsPerDay >= 2 {
				label = fmt.Sprintf("%2d", day.Day)
			}
			cell := label + strings.Repeat(" ", max(m.cellsPerDay-len(label), 0))
			cell = cell[:m.cellsPerDay]
			switch {
			case day.Today:
				sb.WriteString(theme.Today.Render(cell))
			case day.Weekend:
				sb.WriteString(theme.Muted.Render(cell))
			default:
				sb.WriteString(cell)
			}
		}
	}
	return sb.String()
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellWeekend
	cellToday
	cellDone
	cellTodo
)

func (m Model) renderRows() string {
	if len(m.chart.Tasks) == 0 {
		return theme.Muted.Render("  no tasks with an end date in this view")
	}
	weekend := make([]bool, 0, m.chart.Window.Days)
	for _, month := range m.chart.Window.Months {
		for _, day := range month.Days {
			weekend = append(weekend, day.Weekend)
		}
	}
	total := len(weekend) * m.cellsPerDay

	rows := make([]string, 0, len(m.chart.Tasks))
	for _, task := range m.chart.Tasks {
		kinds := make([]cellKind, total)
		for i := range kinds {
			if weekend[i/m.cellsPerDay] {
				kinds[i] = cellWeekend
			}
		}
		if m.chart.Today.Visible {
			col := m.chart.Today.Index*m.cellsPerDay + m.cellsPerDay/2
			if col < total {
				kinds[col] = cellToday
			}
		}
		start := int(task.Bar.LeftPx)
		end := max(int(task.Bar.LeftPx+task.Bar.WidthPx+0.5), start+1)
		done := start + int(float64(end-start)*task.Progress/100+0.5)
		for i := max(start, 0); i < min(end, total); i++ {
			if i < done {
				kinds[i] = cellDone
			} else {
				kinds[i] = cellTodo
			}
		}
		rows = append(rows, m.renderLabel(task)+renderCells(kinds, task.ProjectColor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLabel(task timelinedto.ChartTaskOutput) string {
	label := []rune(task.Title)
	if len(label) > gutterWidth-3 {
		label = append(label[:gutterWidth-4], '…')
	}
	marker := theme.StatusStyle(task.Status).Render("●")
	return marker + " " + string(label) + strings.Repeat(" ", gutterWidth-2-len(label))
}

// renderCells styles runs of equal cells together to keep escape codes short.
func renderCells(kinds []cellKind, color string) string {
	var sb strings.Builder
	for i := 0; i < len(kinds); {
		j := i
		for j < len(kinds) && kinds[j] == kinds[i] {
			j++
		}
		n := j - i
		switch kinds[i] {
		case cellWeekend:
			sb.WriteString(theme.Weekend.Render(strings.Repeat(" ", n)))
		case cellToday:
			sb.WriteString(theme.Today.Render(strings.Repeat("│", n)))
		case cellDone:
			sb.WriteString(theme.Bar(color, true).Render(strings.Repeat("█", n)))
		case cellTodo:
			sb.WriteString(theme.Bar(color, false).Render(strings.Repeat("▒", n)))
		default:
			sb.WriteString(strings.Repeat(" ", n))
		}
		i = j
	}
	return sb.String()
}

func (m Model) renderFooter() string {
	c := m.chart.Counts
	parts := []string{
		fmt.Sprintf("%d/%d tasks", c.Visible, c.Total),
		fmt.Sprintf("project %d", c.BySource["project"]),
		fmt.Sprintf("meeting %d", c.BySource["meeting"]),
		"source=" + m.Source(),
		"project=" + m.project,
	}
	keys := "n/p:month  t:today  f:source  [/]:project"
	gap := max(m.width-lipgloss.Width(strings.Join(parts, " · "))-lipgloss.Width(keys), 1)
	return theme.Muted.Render(strings.Join(parts, " · ") + strings.Repeat(" ", gap) + keys)
}
