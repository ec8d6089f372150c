package svg

import (
	"fmt"
	"strings"

	timelinedto "pmhub/internal/modules/timeline/dto"
)

type Options struct {
	FontFamily   string
	FontSize     int
	RowHeight    float64
	BarHeight    float64
	MonthHeight  float64
	DayHeight    float64
	Background   string
	GridColor    string
	WeekendColor string
	TextColor    string
	TodayColor   string
}

func DefaultOptions() Options {
	return Options{
		FontFamily:   "Inter, Helvetica, Arial, sans-serif",
		FontSize:     12,
		RowHeight:    28,
		BarHeight:    16,
		MonthHeight:  24,
		DayHeight:    20,
		Background:   "#ffffff",
		GridColor:    "#e4e4e7",
		WeekendColor: "#f4f4f5",
		TextColor:    "#27272a",
		TodayColor:   "#e5484d",
	}
}

// Render draws a chart as a standalone SVG document. Geometry comes from the
// chart as-is; the renderer only stacks rows and adds headers.
func Render(chart timelinedto.ChartOutput, opts Options) string {
	dw := chart.DayWidth
	left := chart.LeftOffset
	header := opts.MonthHeight + opts.DayHeight
	width := left + float64(chart.Window.Days)*dw
	rows := len(chart.Tasks)
	if rows == 0 {
		rows = 1
	}
	height := header + float64(rows)*opts.RowHeight

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.month-text { font-family: %s; font-size: %dpx; font-weight: bold; fill: %s; }
.day-text { font-family: %s; font-size: %dpx; fill: %s; }
.label-text { font-family: %s; font-size: %dpx; fill: %s; }
</style>
</defs>
`, num(width), num(height), num(width), num(height), opts.Background,
		opts.FontFamily, opts.FontSize, opts.TextColor,
		opts.FontFamily, opts.FontSize-3, opts.TextColor,
		opts.FontFamily, opts.FontSize, opts.TextColor))

	index := 0
	for _, month := range chart.Window.Months {
		x := left + float64(index)*dw
		monthWidth := float64(len(month.Days)) * dw
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="0" width="%s" height="%s" fill="none" stroke="%s"/>`+"\n",
			num(x), num(monthWidth), num(opts.MonthHeight), opts.GridColor))
		svg.WriteString(fmt.Sprintf(`<text class="month-text" x="%s" y="%s">%s</text>`+"\n",
			num(x+6), num(opts.MonthHeight-7), escapeXML(month.Label)))
		for _, day := range month.Days {
			dx := left + float64(index)*dw
			if day.Weekend {
				svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
					num(dx), num(opts.MonthHeight), num(dw), num(height-opts.MonthHeight), opts.WeekendColor))
			}
			if dw >= 14 {
				svg.WriteString(fmt.Sprintf(`<text class="day-text" x="%s" y="%s" text-anchor="middle">%d</text>`+"\n",
					num(dx+dw/2), num(header-6), day.Day))
			}
			index++
		}
	}
	svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
		num(header), num(width), num(header), opts.GridColor))

	for i, task := range chart.Tasks {
		y := header + float64(i)*opts.RowHeight
		barY := y + (opts.RowHeight-opts.BarHeight)/2
		svg.WriteString(fmt.Sprintf(`<text class="label-text" x="8" y="%s">%s</text>`+"\n",
			num(y+opts.RowHeight/2+float64(opts.FontSize)/3), escapeXML(truncate(task.Title, left, opts.FontSize))))
		color := task.ProjectColor
		if color == "" {
			color = opts.TextColor
		}
		x := left + task.Bar.LeftPx
		svg.WriteString(fmt.Sprintf(`<g><title>%s</title>`, escapeXML(fmt.Sprintf("%s (%s..%s, %s, %.0f%%)", task.Title, task.Start, task.End, task.StatusLabel, task.Progress))))
		svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s" fill-opacity="0.35"/>`,
			num(x), num(barY), num(task.Bar.WidthPx), num(opts.BarHeight), escapeXML(color)))
		if done := task.Bar.WidthPx * task.Progress / 100; done > 0 {
			svg.WriteString(fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s"/>`,
				num(x), num(barY), num(done), num(opts.BarHeight), escapeXML(color)))
		}
		svg.WriteString("</g>\n")
	}

	if chart.Today.Visible {
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
			num(chart.Today.LeftPx), num(opts.MonthHeight), num(chart.Today.LeftPx), num(height), opts.TodayColor))
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

// truncate shortens a label to fit the gutter, estimating glyph width.
func truncate(s string, gutter float64, fontSize int) string {
	maxRunes := int((gutter - 16) / (float64(fontSize) * 0.6))
	if maxRunes < 2 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes-1]) + "…"
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

// escapeXML replaces the five XML special characters with entities.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
