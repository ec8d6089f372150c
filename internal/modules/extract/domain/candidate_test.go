package domain_test

import (
	"math"
	"testing"

	"pmhub/internal/modules/extract/domain"
)

func TestCandidateAccept(t *testing.T) {
	t.Parallel()
	good := domain.Candidate{Title: "Ship", EndDate: "2024-03-01", Confidence: 0.8}
	if err := good.Accept(0.5); err != nil {
		t.Fatalf("expected accept: %v", err)
	}
	for _, end := range []string{"2024-03-01T09:30:00Z", "2024-03-01 09:30", " 2024-03-01 "} {
		c := domain.Candidate{Title: "Ship", EndDate: end, Confidence: 1}
		if err := c.Accept(0.5); err != nil {
			t.Fatalf("end %q should be accepted: %v", end, err)
		}
	}
	cases := []struct {
		name string
		c    domain.Candidate
		min  float64
	}{
		{name: "low confidence", c: good, min: 0.9},
		{name: "no title", c: domain.Candidate{EndDate: "2024-03-01", Confidence: 1}},
		{name: "no end", c: domain.Candidate{Title: "Ship", Confidence: 1}},
		{name: "relative end", c: domain.Candidate{Title: "Ship", EndDate: "next week", Confidence: 1}},
		{name: "slashed end", c: domain.Candidate{Title: "Ship", EndDate: "03/15/2024", Confidence: 1}},
		{name: "bad start", c: domain.Candidate{Title: "Ship", StartDate: "soon", EndDate: "2024-03-01", Confidence: 1}},
		{name: "confidence over one", c: domain.Candidate{Title: "Ship", EndDate: "2024-03-01", Confidence: 1.5}},
		{name: "nan", c: domain.Candidate{Title: "Ship", EndDate: "2024-03-01", Confidence: math.NaN()}},
	}
	for _, tc := range cases {
		if err := tc.c.Accept(tc.min); err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}

func TestNormalizeAndImageValidate(t *testing.T) {
	t.Parallel()
	c := domain.Candidate{Title: " Ship ", EndDate: " 2024-03-01", Priority: " HIGH "}.Normalize()
	if c.Title != "Ship" || c.EndDate != "2024-03-01" || c.Priority != "high" {
		t.Fatalf("unexpected normalized candidate %+v", c)
	}
	if got := (domain.Candidate{Priority: "urgent"}).Normalize().Priority; got != "medium" {
		t.Fatalf("unknown priority should become medium, got %s", got)
	}
	if err := (domain.Image{Name: "a.png", MIMEType: "image/png", Data: []byte{1}}).Validate(); err != nil {
		t.Fatalf("expected valid image: %v", err)
	}
	if err := (domain.Image{Name: "a.txt", MIMEType: "text/plain", Data: []byte("x")}).Validate(); err == nil {
		t.Fatalf("text file should be rejected")
	}
	if err := (domain.Image{Name: "a.png", MIMEType: "image/png"}).Validate(); err == nil {
		t.Fatalf("empty image should be rejected")
	}
}
