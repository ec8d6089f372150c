package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// dateLayouts are the forms the timeline can place on a calendar day.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Candidate is a task proposed by the extractor before it is accepted.
type Candidate struct {
	Title      string
	StartDate  string
	EndDate    string
	Priority   string
	Confidence float64
}

type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title is required")
	}
	end := strings.TrimSpace(c.EndDate)
	if end == "" {
		return fmt.Errorf("end date is required")
	}
	if !parseableDate(end) {
		return fmt.Errorf("end date %q is not a date", end)
	}
	if start := strings.TrimSpace(c.StartDate); start != "" && !parseableDate(start) {
		return fmt.Errorf("start date %q is not a date", start)
	}
	if math.IsNaN(c.Confidence) || c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("confidence %v outside 0..1", c.Confidence)
	}
	return nil
}

// Accept reports whether c is valid and at least minConfidence sure. The
// returned error names the rejection reason.
func (c Candidate) Accept(minConfidence float64) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Confidence < minConfidence {
		return fmt.Errorf("confidence %.2f below %.2f", c.Confidence, minConfidence)
	}
	return nil
}

// Normalize trims fields and maps the priority onto low, medium or high.
func (c Candidate) Normalize() Candidate {
	c.Title = strings.TrimSpace(c.Title)
	c.StartDate = strings.TrimSpace(c.StartDate)
	c.EndDate = strings.TrimSpace(c.EndDate)
	switch p := strings.ToLower(strings.TrimSpace(c.Priority)); p {
	case "low", "high":
		c.Priority = p
	default:
		c.Priority = "medium"
	}
	return c
}

func (i Image) Validate() error {
	if len(i.Data) == 0 {
		return fmt.Errorf("image %s is empty", i.Name)
	}
	if !strings.HasPrefix(i.MIMEType, "image/") {
		return fmt.Errorf("file %s is %s, not an image", i.Name, i.MIMEType)
	}
	return nil
}

func parseableDate(raw string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, raw); err == nil {
			return true
		}
	}
	return false
}
