package services

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"

	"github.com/knowyourcountry/community-backend/models"
)

// RenderPerformanceReportPDF lays out a performance report as an A4 PDF and
// returns the document bytes. Rendering is a collaborator call: the caller
// logs a failure as a warning and keeps the report row.
func RenderPerformanceReportPDF(report *models.PerformanceReport, schoolName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, report.Title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	meta := fmt.Sprintf("Period: %s (%s - %s)",
		report.Period,
		report.StartDate.Format("2006-01-02"),
		report.EndDate.Format("2006-01-02"),
	)
	if schoolName != "" {
		meta += "\nSchool: " + schoolName
	}
	pdf.MultiCell(0, 7, meta, "", "L", false)
	pdf.Ln(4)

	sections := make([]models.ReportSection, len(report.Sections))
	copy(sections, report.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})

	for _, section := range sections {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(0, 8, section.Title, "", "L", false)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, section.Content, "", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NextSectionOrder appends after the current highest order value.
func NextSectionOrder(sections []models.ReportSection) int {
	max := 0
	for i := range sections {
		if sections[i].Order > max {
			max = sections[i].Order
		}
	}
	return max + 1
}
