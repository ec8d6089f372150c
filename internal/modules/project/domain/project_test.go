package domain_test

import (
	"testing"

	"pmhub/internal/modules/project/domain"
)

func TestProjectValidate(t *testing.T) {
	t.Parallel()
	valid := domain.Project{ID: "p1", Title: "Website", Color: "#3366FF", Status: domain.ProjectStatusActive}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid project: %v", err)
	}
	cases := []domain.Project{
		{Title: "Website", Color: "#3366ff", Status: domain.ProjectStatusActive},
		{ID: "p1", Title: " ", Color: "#3366ff", Status: domain.ProjectStatusActive},
		{ID: "p1", Title: "Website", Color: "blue", Status: domain.ProjectStatusActive},
		{ID: "p1", Title: "Website", Color: "#3366f", Status: domain.ProjectStatusActive},
		{ID: "p1", Title: "Website", Color: "#3366ff", Status: "paused"},
	}
	for _, project := range cases {
		if err := project.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", project)
		}
	}
}

func TestNormalizers(t *testing.T) {
	t.Parallel()
	if got := domain.NormalizeStatus(" On Hold "); got != domain.ProjectStatusOnHold {
		t.Fatalf("expected on_hold, got %s", got)
	}
	if got := domain.NormalizeStatus(""); got != domain.ProjectStatusActive {
		t.Fatalf("expected active default, got %s", got)
	}
	if got := domain.NormalizePriority(""); got != domain.PriorityMedium {
		t.Fatalf("expected medium default, got %s", got)
	}
	if err := domain.NormalizePriority("urgent").Validate(); err == nil {
		t.Fatalf("urgent is not a priority")
	}
}

func TestPaletteColorCycles(t *testing.T) {
	t.Parallel()
	n := len(domain.DefaultPalette)
	if domain.PaletteColor(0) != domain.PaletteColor(n) {
		t.Fatalf("palette should wrap around")
	}
	for i := 0; i < n; i++ {
		if !domain.ValidColor(domain.PaletteColor(i)) {
			t.Fatalf("palette entry %d is not #rrggbb", i)
		}
	}
}
