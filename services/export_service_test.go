package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/knowyourcountry/community-backend/models"
)

func sampleVolunteers() []models.Volunteer {
	return []models.Volunteer{
		{
			ID:             uuid.New(),
			Name:           "Amira Ben Salah",
			Email:          "amira@example.org",
			Phone:          "21612345",
			Skills:         "teaching",
			Grade:          "secondary",
			School:         models.School{Name: "El Menzah Secondary"},
			IsActive:       true,
			EmailConfirmed: true,
			RegisteredAt:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           uuid.New(),
			Name:         "Karim Trabelsi",
			Email:        "karim@example.org",
			Skills:       "photography",
			Grade:        "university",
			School:       models.School{Name: "Sfax Technical"},
			RegisteredAt: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestVolunteersCSV(t *testing.T) {
	body, err := VolunteersCSV(sampleVolunteers())
	if err != nil {
		t.Fatalf("VolunteersCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name,Email,Phone,School") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "amira@example.org") || !strings.Contains(lines[1], "El Menzah Secondary") {
		t.Errorf("first row missing fields: %s", lines[1])
	}
	if !strings.Contains(lines[2], "2026-04-02") {
		t.Errorf("registration date missing: %s", lines[2])
	}
}

func TestSchoolsCSVEmpty(t *testing.T) {
	body, err := SchoolsCSV(nil)
	if err != nil {
		t.Fatalf("SchoolsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 1 {
		t.Fatalf("empty export should contain only the header, got %d lines", len(lines))
	}
}

func TestVolunteersXLSX(t *testing.T) {
	body, err := VolunteersXLSX(sampleVolunteers())
	if err != nil {
		t.Fatalf("VolunteersXLSX: %v", err)
	}
	if len(body) == 0 {
		t.Fatal("workbook body is empty")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(body, []byte("PK")) {
		t.Errorf("body does not look like a zip archive")
	}
}
