package dto

import "time"

// ChartInput describes one chart pass. Month ("YYYY-MM") wins over
// Reference; when both are empty the current month is shown. Shift moves
// the resolved month forward or back.
type ChartInput struct {
	Month         string
	Reference     time.Time
	Shift         int
	ProjectFilter string
	SourceFilter  string
	DayWidth      float64
	LeftOffset    float64
}

type TasksInput struct {
	ProjectFilter string
	SourceFilter  string
}

type TaskOutput struct {
	ID           string  `json:"id"`
	Source       string  `json:"source"`
	Title        string  `json:"title"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Progress     float64 `json:"progress"`
	Status       string  `json:"status"`
	StatusLabel  string  `json:"status_label"`
	Priority     string  `json:"priority"`
	Completed    bool    `json:"completed"`
	ProjectID    string  `json:"project_id"`
	ProjectTitle string  `json:"project_title"`
	ProjectColor string  `json:"project_color"`
}

type BarOutput struct {
	LeftPx     float64 `json:"left_px"`
	WidthPx    float64 `json:"width_px"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	InWindow   bool    `json:"in_window"`
}

type ChartTaskOutput struct {
	TaskOutput
	Bar BarOutput `json:"bar"`
}

type DayOutput struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
	Weekend bool   `json:"weekend"`
	Today   bool   `json:"today"`
}

type MonthOutput struct {
	Key   string      `json:"key"`
	Label string      `json:"label"`
	Days  []DayOutput `json:"days"`
}

type WindowOutput struct {
	Reference string        `json:"reference"`
	First     string        `json:"first"`
	Last      string        `json:"last"`
	Days      int           `json:"days"`
	Months    []MonthOutput `json:"months"`
}

type TodayOutput struct {
	Visible bool    `json:"visible"`
	Date    string  `json:"date"`
	Index   int     `json:"index"`
	LeftPx  float64 `json:"left_px"`
}

type ProjectCountOutput struct {
	ProjectID    string `json:"project_id"`
	ProjectTitle string `json:"project_title"`
	ProjectColor string `json:"project_color"`
	Count        int    `json:"count"`
}

type CountsOutput struct {
	Total     int                  `json:"total"`
	Visible   int                  `json:"visible"`
	BySource  map[string]int       `json:"by_source"`
	ByProject []ProjectCountOutput `json:"by_project"`
}

type ChartOutput struct {
	GeneratedAt time.Time         `json:"generated_at"`
	DayWidth    float64           `json:"day_width"`
	LeftOffset  float64           `json:"left_offset"`
	Window      WindowOutput      `json:"window"`
	Tasks       []ChartTaskOutput `json:"tasks"`
	Today       TodayOutput       `json:"today"`
	Counts      CountsOutput      `json:"counts"`
}
