//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/Spok95/attendance-tracker/internal/apperr"
	"github.com/Spok95/attendance-tracker/internal/db"
	"github.com/Spok95/attendance-tracker/internal/insights"
	"github.com/Spok95/attendance-tracker/internal/testutil/testdb"
)

func TestPerformance_RemarkDerivedOnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s, err := db.CreateStudent(ctx, h.DB, "CS2024001", "John Doe", 5)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		marks  float64
		remark string
	}{
		{85, insights.RemarkGood},
		{75, insights.RemarkGood},
		{74.99, insights.RemarkAverage},
		{50, insights.RemarkAverage},
		{49.99, insights.RemarkNeedsImprovement},
	}
	for _, c := range cases {
		p, err := db.AddPerformance(ctx, h.DB, s.ID, "Mathematics", c.marks)
		if err != nil {
			t.Fatal(err)
		}
		if p.Remark != c.remark {
			t.Errorf("marks %v: remark %q, want %q", c.marks, p.Remark, c.remark)
		}
	}
}

func TestPerformance_DefaultSubjectAndValidation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s, err := db.CreateStudent(ctx, h.DB, "CS2024001", "John Doe", 5)
	if err != nil {
		t.Fatal(err)
	}

	p, err := db.AddPerformance(ctx, h.DB, s.ID, "  ", 60)
	if err != nil {
		t.Fatal(err)
	}
	if p.SubjectName != "General" {
		t.Fatalf("subject = %q, want General", p.SubjectName)
	}

	if _, err := db.AddPerformance(ctx, h.DB, s.ID, "Physics", 101); !apperr.IsValidation(err) {
		t.Fatalf("marks 101: expected ValidationError, got %v", err)
	}
	if _, err := db.AddPerformance(ctx, h.DB, s.ID, "Physics", -0.5); !apperr.IsValidation(err) {
		t.Fatalf("negative marks: expected ValidationError, got %v", err)
	}
	if _, err := db.AddPerformance(ctx, h.DB, 424242, "Physics", 60); !apperr.IsNotFound(err) {
		t.Fatalf("missing student: expected NotFoundError, got %v", err)
	}
}

func TestPerformance_ListUpdateDeleteAverage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s, err := db.CreateStudent(ctx, h.DB, "CS2024001", "John Doe", 5)
	if err != nil {
		t.Fatal(err)
	}

	first, err := db.AddPerformance(ctx, h.DB, s.ID, "Mathematics", 80)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := db.AddPerformance(ctx, h.DB, s.ID, "Physics", 60)
	if err != nil {
		t.Fatal(err)
	}

	list, err := db.ListPerformance(ctx, h.DB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}

	avg, err := db.AverageMarks(ctx, h.DB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 70.0 {
		t.Fatalf("average = %v, want 70", avg)
	}

	// update recomputes the remark
	up, err := db.UpdatePerformance(ctx, h.DB, second.ID, "Physics", 45)
	if err != nil {
		t.Fatal(err)
	}
	if up.Remark != insights.RemarkNeedsImprovement {
		t.Fatalf("remark after update = %q", up.Remark)
	}
	if _, err := db.UpdatePerformance(ctx, h.DB, 999999, "Physics", 45); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if err := db.DeletePerformance(ctx, h.DB, first.ID); err != nil {
		t.Fatal(err)
	}
	if err := db.DeletePerformance(ctx, h.DB, first.ID); !apperr.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	// no rows left for an unknown student: average falls back to zero
	avg, err = db.AverageMarks(ctx, h.DB, 424242)
	if err != nil {
		t.Fatal(err)
	}
	if avg != 0 {
		t.Fatalf("average for unknown student = %v", avg)
	}
}

// End-to-end scenario from the tracker's acceptance checklist.
func TestTrackerScenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h, err := testdb.Start(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	s, err := db.CreateStudent(ctx, h.DB, "CS2024001", "John Doe", 5)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.SetAttendance(ctx, h.DB, s.ID, 50, 35); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddPerformance(ctx, h.DB, s.ID, "", 85); err != nil {
		t.Fatal(err)
	}

	att, err := db.GetAttendance(ctx, h.DB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	pct := insights.Percentage(att.AttendedLectures, att.TotalLectures)
	if pct != 70.0 {
		t.Fatalf("percentage = %v, want 70.00", pct)
	}
	if !insights.HasShortage(pct) {
		t.Fatal("expected shortage at 70%%")
	}

	perfs, err := db.ListPerformance(ctx, h.DB, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(perfs) != 1 || perfs[0].Remark != insights.RemarkGood {
		t.Fatalf("remark = %+v, want Good", perfs)
	}

	report := insights.StudentReport(att, perfs)
	if report.OverallStatus != insights.StatusNeedsAttention {
		t.Fatalf("overall = %q: shortage outweighs the good remark", report.OverallStatus)
	}
}
