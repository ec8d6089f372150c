package theme

import "github.com/charmbracelet/lipgloss"

var (
	Mantle   = lipgloss.Color("#181825")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)

	Weekend = lipgloss.NewStyle().Background(Surface0)
	Today   = lipgloss.NewStyle().Foreground(Red).Bold(true)
)

// Status colors follow the task status values of the timeline.
var statusColors = map[string]lipgloss.Color{
	"not_started": Subtext0,
	"in_progress": Sapphire,
	"complete":    Green,
	"on_hold":     Yellow,
}

func StatusStyle(status string) lipgloss.Style {
	c, ok := statusColors[status]
	if !ok {
		c = Text
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Bar styles a task bar in its project color; the remaining part is dimmed.
func Bar(color string, done bool) lipgloss.Style {
	c := lipgloss.Color(color)
	if color == "" {
		c = Lavender
	}
	if done {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(c).Faint(true)
}
