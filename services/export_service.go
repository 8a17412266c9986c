package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/knowyourcountry/community-backend/models"
)

var volunteerExportHeader = []string{"Name", "Email", "Phone", "School", "Skills", "Grade", "Registered", "Active", "Confirmed"}

func volunteerExportRow(v *models.Volunteer) []string {
	return []string{
		v.Name,
		v.Email,
		v.Phone,
		v.School.Name,
		v.Skills,
		v.Grade,
		v.RegisteredAt.Format("2006-01-02"),
		strconv.FormatBool(v.IsActive),
		strconv.FormatBool(v.EmailConfirmed),
	}
}

var schoolExportHeader = []string{"Name", "Location", "Address", "Email", "Phone", "Students", "Active", "Created"}

func schoolExportRow(s *models.School) []string {
	return []string{
		s.Name,
		s.Location,
		s.Address,
		s.Email,
		s.Phone,
		strconv.Itoa(s.StudentCount),
		strconv.FormatBool(s.IsActive),
		s.CreatedAt.Format("2006-01-02"),
	}
}

// VolunteersCSV renders the volunteer roster as a CSV download body.
func VolunteersCSV(volunteers []models.Volunteer) ([]byte, error) {
	rows := make([][]string, 0, len(volunteers))
	for i := range volunteers {
		rows = append(rows, volunteerExportRow(&volunteers[i]))
	}
	return writeCSV(volunteerExportHeader, rows)
}

// SchoolsCSV renders the school directory as a CSV download body.
func SchoolsCSV(schools []models.School) ([]byte, error) {
	rows := make([][]string, 0, len(schools))
	for i := range schools {
		rows = append(rows, schoolExportRow(&schools[i]))
	}
	return writeCSV(schoolExportHeader, rows)
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// VolunteersXLSX renders the volunteer roster as an Excel workbook.
func VolunteersXLSX(volunteers []models.Volunteer) ([]byte, error) {
	rows := make([][]string, 0, len(volunteers))
	for i := range volunteers {
		rows = append(rows, volunteerExportRow(&volunteers[i]))
	}
	return writeXLSX("Volunteers", volunteerExportHeader, rows)
}

// SchoolsXLSX renders the school directory as an Excel workbook.
func SchoolsXLSX(schools []models.School) ([]byte, error) {
	rows := make([][]string, 0, len(schools))
	for i := range schools {
		rows = append(rows, schoolExportRow(&schools[i]))
	}
	return writeXLSX("Schools", schoolExportHeader, rows)
}

func writeXLSX(sheet string, header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
