package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/attendance-tracker/internal/models"
)

func sampleItems() []models.StudentListItem {
	remark := "Good"
	return []models.StudentListItem{
		{
			Student:          models.Student{RollNo: "CS2024001", Name: "John Doe", Semester: 5},
			TotalLectures:    50,
			AttendedLectures: 35,
			HasAttendance:    true,
			AverageMarks:     85,
			LatestRemark:     &remark,
		},
		{
			Student: models.Student{RollNo: "CS2024002", Name: "Jane Roe", Semester: 3},
		},
	}
}

func TestWriteStudentsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStudentsCSV(&buf, sampleItems()); err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "Roll No" {
		t.Fatalf("header = %v", records[0])
	}
	// percentage recomputed from counters, two decimals
	if records[1][5] != "70.00" {
		t.Fatalf("attendance %% = %q, want 70.00", records[1][5])
	}
	if records[1][7] != "Good" {
		t.Fatalf("remark = %q", records[1][7])
	}
	// no attendance and no marks: zeros and N/A, not blanks
	if records[2][5] != "0.00" || records[2][7] != "N/A" {
		t.Fatalf("empty-data row = %v", records[2])
	}
}

func TestNewStudentsWorkbook(t *testing.T) {
	wb, err := NewStudentsWorkbook(sampleItems())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := wb.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := f.GetRows(studentsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(rows))
	}
	if rows[1][0] != "CS2024001" || rows[1][5] != "70.00" {
		t.Fatalf("first data row = %v", rows[1])
	}
}
