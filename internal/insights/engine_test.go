package insights

import (
	"testing"

	"github.com/Spok95/attendance-tracker/internal/models"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		attended, total int
		want            float64
	}{
		{0, 0, 0},
		{0, 50, 0},
		{35, 50, 70.0},
		{40, 60, 66.67},
		{80, 100, 80.0},
		{50, 50, 100.0},
		{1, 3, 33.33},
	}
	for _, c := range cases {
		if got := Percentage(c.attended, c.total); got != c.want {
			t.Errorf("Percentage(%d, %d) = %v, want %v", c.attended, c.total, got, c.want)
		}
	}
}

func TestPercentageBounds(t *testing.T) {
	for total := 0; total <= 40; total++ {
		prev := -1.0
		for attended := 0; attended <= total; attended++ {
			got := Percentage(attended, total)
			if got < 0 || got > 100 {
				t.Fatalf("Percentage(%d, %d) = %v out of [0,100]", attended, total, got)
			}
			if (attended == 0 || total == 0) != (got == 0) {
				t.Fatalf("Percentage(%d, %d) = %v, zero exactly when attended==0 or total==0", attended, total, got)
			}
			// monotonic in attended for fixed total
			if got < prev {
				t.Fatalf("Percentage(%d, %d) = %v decreased from %v", attended, total, got, prev)
			}
			prev = got
		}
	}
}

func TestAttendanceMetricRejectsImpossibleCounts(t *testing.T) {
	if _, err := AttendanceMetric(10, 5); err == nil {
		t.Fatal("attended > total must be rejected")
	}
	if _, err := AttendanceMetric(-1, 5); err == nil {
		t.Fatal("negative attended must be rejected")
	}
	if _, err := AttendanceMetric(0, -1); err == nil {
		t.Fatal("negative total must be rejected")
	}
	pct, err := AttendanceMetric(35, 50)
	if err != nil {
		t.Fatal(err)
	}
	if pct != 70.0 {
		t.Fatalf("got %v, want 70.0", pct)
	}
}

func TestPerformanceRemarkBands(t *testing.T) {
	cases := []struct {
		marks float64
		want  string
	}{
		{100, RemarkGood},
		{85, RemarkGood},
		{75, RemarkGood},
		{74.99, RemarkAverage},
		{60, RemarkAverage},
		{50, RemarkAverage},
		{49.99, RemarkNeedsImprovement},
		{0, RemarkNeedsImprovement},
	}
	for _, c := range cases {
		if got := PerformanceRemark(c.marks); got != c.want {
			t.Errorf("PerformanceRemark(%v) = %q, want %q", c.marks, got, c.want)
		}
	}
}

func TestAttendanceWarning(t *testing.T) {
	w := AttendanceWarning(70.0)
	if !w.HasWarning {
		t.Fatal("70%% is a shortage")
	}
	if w.Severity != "medium" {
		t.Fatalf("severity = %q, want medium", w.Severity)
	}
	if w.Message != "Attendance shortage: 70.00%" {
		t.Fatalf("message = %q", w.Message)
	}

	w = AttendanceWarning(60.0)
	if w.Severity != "high" {
		t.Fatalf("severity = %q, want high (shortage 15 points)", w.Severity)
	}

	w = AttendanceWarning(80.0)
	if w.HasWarning {
		t.Fatal("80%% must not warn")
	}
	w = AttendanceWarning(100.0)
	if w.HasWarning {
		t.Fatal("full attendance must not warn")
	}
	// no lectures conducted counts as a shortage
	w = AttendanceWarning(Percentage(0, 0))
	if !w.HasWarning {
		t.Fatal("0/0 yields 0%% which is below threshold")
	}
}

func TestCalculateRequiredAttendance(t *testing.T) {
	r := CalculateRequiredAttendance(0, 0)
	if !r.Achievable || r.LecturesNeeded != 0 {
		t.Fatalf("no lectures yet: %+v", r)
	}

	r = CalculateRequiredAttendance(100, 80)
	if r.LecturesNeeded != 0 || !r.Achievable {
		t.Fatalf("already above threshold: %+v", r)
	}

	// 35/50 = 70%; (75*50 - 100*35)/25 = 10, +1 = 11
	r = CalculateRequiredAttendance(50, 35)
	if r.LecturesNeeded != 11 {
		t.Fatalf("lectures needed = %d, want 11", r.LecturesNeeded)
	}
	if !r.Achievable {
		t.Fatal("11 lectures is achievable")
	}
	// sanity: attending that many does reach the threshold
	if got := Percentage(35+r.LecturesNeeded, 50+r.LecturesNeeded); got < AttendanceThreshold {
		t.Fatalf("after %d lectures percentage is %v, still below threshold", r.LecturesNeeded, got)
	}
}

func TestValidateStudent(t *testing.T) {
	if err := ValidateStudent("CS2024001", "John Doe", 5); err != nil {
		t.Fatalf("valid student rejected: %v", err)
	}
	if err := ValidateStudent("CS001", "Ann", 1); err != nil {
		t.Fatalf("3-char name and semester 1 must be accepted: %v", err)
	}
	if err := ValidateStudent("CS001", "Ann", 8); err != nil {
		t.Fatalf("semester 8 must be accepted: %v", err)
	}

	cases := []struct {
		rollNo   string
		name     string
		semester int
		field    string
	}{
		{"", "John Doe", 5, "roll_no"},
		{"  ", "John Doe", 5, "roll_no"},
		{"a!", "John Doe", 5, "roll_no"},
		{"CS001", "AB", 5, "name"},
		{"CS001", "", 5, "name"},
		{"CS001", "12345", 5, "name"},
		{"CS001", "John Doe", 0, "semester"},
		{"CS001", "John Doe", 9, "semester"},
		{"CS001", "John Doe", 10, "semester"},
	}
	for _, c := range cases {
		err := ValidateStudent(c.rollNo, c.name, c.semester)
		if err == nil {
			t.Errorf("ValidateStudent(%q, %q, %d) accepted, want %s violation", c.rollNo, c.name, c.semester, c.field)
			continue
		}
		found := false
		for _, f := range err.Fields {
			if f.Field == c.field {
				found = true
			}
		}
		if !found {
			t.Errorf("ValidateStudent(%q, %q, %d) = %v, want violation on %s", c.rollNo, c.name, c.semester, err, c.field)
		}
	}
}

func TestStudentReport(t *testing.T) {
	att := &models.Attendance{TotalLectures: 50, AttendedLectures: 35}
	perf := []models.Performance{{Marks: 85, Remark: RemarkGood}}

	// shortage outweighs a good remark
	r := StudentReport(att, perf)
	if r.OverallStatus != StatusNeedsAttention {
		t.Fatalf("overall = %q, want %q", r.OverallStatus, StatusNeedsAttention)
	}
	if r.AttendanceStatus != "Fair" {
		t.Fatalf("attendance status = %q, want Fair at 70%%", r.AttendanceStatus)
	}
	if r.PerformanceStatus != "Excellent" {
		t.Fatalf("performance status = %q", r.PerformanceStatus)
	}

	// healthy on both dimensions
	r = StudentReport(&models.Attendance{TotalLectures: 50, AttendedLectures: 45}, perf)
	if r.OverallStatus != StatusSatisfactory {
		t.Fatalf("overall = %q, want %q", r.OverallStatus, StatusSatisfactory)
	}
	if r.AttendanceStatus != "Excellent" {
		t.Fatalf("attendance status = %q at 90%%", r.AttendanceStatus)
	}

	// one failing subject flips the overall status
	r = StudentReport(&models.Attendance{TotalLectures: 50, AttendedLectures: 45}, []models.Performance{
		{Marks: 85, Remark: RemarkGood},
		{Marks: 40, Remark: RemarkNeedsImprovement},
	})
	if r.OverallStatus != StatusNeedsAttention {
		t.Fatalf("overall = %q, want %q with a Needs Improvement subject", r.OverallStatus, StatusNeedsAttention)
	}

	// missing dimensions report "no data", not zeros
	r = StudentReport(nil, nil)
	if r.AttendanceStatus != StatusNoData || r.PerformanceStatus != StatusNoData {
		t.Fatalf("missing data: %+v", r)
	}
	if r.OverallStatus != StatusSatisfactory {
		t.Fatalf("no data must not count as shortage: %+v", r)
	}
}
