// Package export serializes the student roster row-wise for download.
// It reads the same entities the list views read and duplicates no
// domain logic: percentages and remarks come from the insights package.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/Spok95/attendance-tracker/internal/insights"
	"github.com/Spok95/attendance-tracker/internal/models"
)

var studentReportHeader = []string{
	"Roll No", "Name", "Semester",
	"Total Lectures", "Attended Lectures", "Attendance %",
	"Average Marks", "Performance Remark",
}

func studentRow(it models.StudentListItem) []string {
	remark := "N/A"
	if it.LatestRemark != nil {
		remark = *it.LatestRemark
	}
	return []string{
		it.RollNo,
		it.Name,
		strconv.Itoa(it.Semester),
		strconv.Itoa(it.TotalLectures),
		strconv.Itoa(it.AttendedLectures),
		strconv.FormatFloat(insights.Percentage(it.AttendedLectures, it.TotalLectures), 'f', 2, 64),
		strconv.FormatFloat(it.AverageMarks, 'f', 2, 64),
		remark,
	}
}

// WriteStudentsCSV streams the roster as CSV.
func WriteStudentsCSV(w io.Writer, items []models.StudentListItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(studentReportHeader); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(studentRow(it)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
