package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/attendance-tracker/internal/models"
)

// StudentsWorkbook is the roster report as a single-sheet xlsx file.
type StudentsWorkbook struct {
	File *excelize.File
}

const studentsSheet = "Students"

func NewStudentsWorkbook(items []models.StudentListItem) (*StudentsWorkbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", studentsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	for col, h := range studentReportHeader {
		cell := fmt.Sprintf("%s1", colName(col+1))
		if err := f.SetCellStr(studentsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end := colName(len(studentReportHeader)) + "1"
	_ = f.SetCellStyle(studentsSheet, "A1", end, bold)
	_ = f.AutoFilter(studentsSheet, "A1:"+end, nil)

	for r, it := range items {
		for c, val := range studentRow(it) {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(studentsSheet, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	// heuristic widths from header and the first rows
	for c := 1; c <= len(studentReportHeader); c++ {
		maxim := len(studentReportHeader[c-1])
		for r := 0; r < minim(50, len(items)); r++ {
			if l := len(studentRow(items[r])[c-1]); l > maxim {
				maxim = l
			}
		}
		w := float64(maxim) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(studentsSheet, colName(c), colName(c), w)
	}
	return &StudentsWorkbook{File: f}, nil
}

func (w *StudentsWorkbook) WriteTo(out io.Writer) (int64, error) {
	return w.File.WriteTo(out)
}

func ReportFilename(ext string) string {
	return fmt.Sprintf("students_report_%s.%s", time.Now().Format("2006-01-02"), ext)
}

// helpers
func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}

func minim(a, b int) int {
	if a < b {
		return a
	}
	return b
}
