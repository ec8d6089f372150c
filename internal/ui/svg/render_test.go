package svg_test

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	timelinedto "pmhub/internal/modules/timeline/dto"
	"pmhub/internal/ui/svg"
)

func sampleChart() timelinedto.ChartOutput {
	return timelinedto.ChartOutput{
		DayWidth:   20,
		LeftOffset: 200,
		Window: timelinedto.WindowOutput{
			Days: 3,
			Months: []timelinedto.MonthOutput{{
				Key:   "2024-02",
				Label: "February 2024",
				Days: []timelinedto.DayOutput{
					{Date: "2024-02-02", Day: 2},
					{Date: "2024-02-03", Day: 3, Weekend: true},
					{Date: "2024-02-04", Day: 4, Weekend: true},
				},
			}},
		},
		Tasks: []timelinedto.ChartTaskOutput{{
			TaskOutput: timelinedto.TaskOutput{Title: `R&D <"beta">`, Start: "2024-02-02", End: "2024-02-03", Progress: 50, StatusLabel: "In Progress", ProjectColor: "#4f7cff"},
			Bar:        timelinedto.BarOutput{LeftPx: 0, WidthPx: 40, EndIndex: 1, InWindow: true},
		}},
		Today: timelinedto.TodayOutput{Visible: true, Index: 1, LeftPx: 230},
	}
}

func TestRenderProducesWellFormedSVG(t *testing.T) {
	t.Parallel()
	out := svg.Render(sampleChart(), svg.DefaultOptions())
	decoder := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("svg is not well-formed xml: %v\n%s", err, out)
		}
	}
	if !strings.Contains(out, `width="260"`) {
		t.Fatalf("expected document width gutter+days*dayWidth, got %s", out)
	}
	if !strings.Contains(out, "R&amp;D &lt;&quot;beta&quot;&gt;") {
		t.Fatalf("task title should be escaped")
	}
	if !strings.Contains(out, `x1="230"`) {
		t.Fatalf("expected today line at 230")
	}
	if !strings.Contains(out, `x="200" y="50" width="20" height="16"`) {
		t.Fatalf("expected half-width progress overlay, got %s", out)
	}
	if strings.Count(out, `fill="#f4f4f5"`) != 2 {
		t.Fatalf("expected two weekend columns")
	}
}

func TestRenderEmptyChartAndHiddenToday(t *testing.T) {
	t.Parallel()
	chart := sampleChart()
	chart.Tasks = nil
	chart.Today = timelinedto.TodayOutput{}
	out := svg.Render(chart, svg.DefaultOptions())
	if strings.Contains(out, `stroke-width="2"`) {
		t.Fatalf("no today line expected")
	}
	if !strings.Contains(out, `height="72"`) {
		t.Fatalf("empty chart should keep one row of height, got %s", out)
	}
}
