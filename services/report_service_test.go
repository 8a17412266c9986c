package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/knowyourcountry/community-backend/models"
)

func TestRenderPerformanceReportPDF(t *testing.T) {
	report := models.PerformanceReport{
		ID:        uuid.New(),
		Title:     "Quarterly Outreach Summary",
		Period:    "quarterly",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Sections: []models.ReportSection{
			{Title: "Highlights", Content: "Twelve school visits completed.", Order: 2},
			{Title: "Overview", Content: "Steady volunteer growth this quarter.", Order: 1},
		},
	}

	body, err := RenderPerformanceReportPDF(&report, "El Menzah Secondary")
	if err != nil {
		t.Fatalf("RenderPerformanceReportPDF: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("rendered PDF is empty")
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Errorf("body does not start with a PDF header")
	}
}

func TestRenderPerformanceReportPDFNoSections(t *testing.T) {
	report := models.PerformanceReport{
		Title:     "Empty Period",
		Period:    "monthly",
		StartDate: time.Now(),
		EndDate:   time.Now(),
	}

	body, err := RenderPerformanceReportPDF(&report, "")
	if err != nil {
		t.Fatalf("RenderPerformanceReportPDF: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("rendered PDF is empty")
	}
}

func TestNextSectionOrder(t *testing.T) {
	sections := []models.ReportSection{
		{Order: 1},
		{Order: 5},
		{Order: 3},
	}
	if got := NextSectionOrder(sections); got != 6 {
		t.Errorf("NextSectionOrder = %d, want 6", got)
	}
	if got := NextSectionOrder(nil); got != 1 {
		t.Errorf("NextSectionOrder of empty = %d, want 1", got)
	}
}
