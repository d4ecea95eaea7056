// Package insights implements the rule-based analytics used across the
// tracker: attendance percentage and shortage detection, performance
// remarks and composite per-student reports. Everything here is a pure
// function of its inputs; thresholds are fixed policy constants.
package insights

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Spok95/attendance-tracker/internal/apperr"
	"github.com/Spok95/attendance-tracker/internal/models"
)

const (
	// AttendanceThreshold is the percentage below which attendance counts
	// as a shortage.
	AttendanceThreshold = 75.0

	// Remark bands for marks out of 100.
	GoodThreshold    = 75.0
	AverageThreshold = 50.0

	RemarkGood             = "Good"
	RemarkAverage          = "Average"
	RemarkNeedsImprovement = "Needs Improvement"

	StatusNeedsAttention = "needs attention"
	StatusSatisfactory   = "satisfactory"
	StatusNoData         = "no data"
)

// Percentage computes attended/total as a percentage rounded to two
// decimal places. Zero total yields zero, never a division error.
func Percentage(attended, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(attended) * 100.0 / float64(total))
}

// AttendanceMetric validates the counters and returns the percentage.
func AttendanceMetric(attended, total int) (float64, error) {
	if total < 0 {
		return 0, apperr.Validation("total_lectures", "cannot be negative")
	}
	if attended < 0 {
		return 0, apperr.Validation("attended_lectures", "cannot be negative")
	}
	if attended > total {
		return 0, apperr.Validation("attended_lectures", "cannot exceed total lectures")
	}
	return Percentage(attended, total), nil
}

// HasShortage reports whether a percentage is below the warning threshold.
func HasShortage(percentage float64) bool {
	return percentage < AttendanceThreshold
}

// Warning is the shortage report for one attendance record.
type Warning struct {
	HasWarning bool   `json:"has_warning"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// AttendanceWarning classifies a percentage against the 75% threshold and
// produces the warning text shown to the admin.
func AttendanceWarning(percentage float64) Warning {
	if !HasShortage(percentage) {
		return Warning{
			HasWarning: false,
			Severity:   "none",
			Message:    "Attendance is satisfactory",
			Suggestion: "Keep up the good work!",
		}
	}
	shortage := AttendanceThreshold - percentage
	severity := "medium"
	if shortage > 10 {
		severity = "high"
	}
	return Warning{
		HasWarning: true,
		Severity:   severity,
		Message:    "Attendance shortage: " + formatPercent(percentage) + "%",
		Suggestion: attendanceSuggestion(shortage),
	}
}

func attendanceSuggestion(shortage float64) string {
	switch {
	case shortage > 15:
		return "Critical shortage! Attend all upcoming lectures to improve."
	case shortage > 10:
		return "Significant shortage. Try to maintain 100% attendance going forward."
	default:
		return "Minor shortage. A few more attended lectures will help."
	}
}

// PerformanceRemark maps marks in [0,100] onto exactly one of the three
// remark bands. Boundaries are closed on the lower side: 75 is Good,
// 50 is Average. Inputs are validated before this is called.
func PerformanceRemark(marks float64) string {
	switch {
	case marks >= GoodThreshold:
		return RemarkGood
	case marks >= AverageThreshold:
		return RemarkAverage
	default:
		return RemarkNeedsImprovement
	}
}

// RequiredAttendance tells how many consecutive attended lectures would
// lift the student to the 75% threshold.
type RequiredAttendance struct {
	Achievable        bool    `json:"achievable"`
	LecturesNeeded    int     `json:"lectures_needed"`
	CurrentPercentage float64 `json:"current_percentage"`
	Message           string  `json:"message"`
}

// CalculateRequiredAttendance solves (attended+x)/(total+x) = threshold/100
// for the smallest whole x.
func CalculateRequiredAttendance(total, attended int) RequiredAttendance {
	if total <= 0 {
		return RequiredAttendance{Achievable: true, Message: "No lectures conducted yet"}
	}
	current := Percentage(attended, total)
	if current >= AttendanceThreshold {
		return RequiredAttendance{
			Achievable:        true,
			CurrentPercentage: current,
			Message:           "Already at " + formatPercent(current) + "%. Great job!",
		}
	}
	numerator := AttendanceThreshold*float64(total) - 100.0*float64(attended)
	needed := int(numerator/(100.0-AttendanceThreshold)) + 1
	if needed < 0 {
		needed = 0
	}
	return RequiredAttendance{
		Achievable:        needed < 100,
		LecturesNeeded:    needed,
		CurrentPercentage: current,
		Message: "Attend next " + strconv.Itoa(needed) +
			" lectures continuously to reach " + formatPercent(AttendanceThreshold) + "%",
	}
}

// Report is the composite per-student view combining the shortage flag
// with the distribution of subject remarks. No numeric blending happens
// here, only classification and a logical OR.
type Report struct {
	AttendanceStatus  string   `json:"attendance_status"`
	PerformanceStatus string   `json:"performance_status"`
	OverallStatus     string   `json:"overall_status"`
	Recommendations   []string `json:"recommendations"`
}

// StudentReport builds the report from the student's attendance record (may
// be nil) and all performance records (may be empty). Missing data shows up
// as "no data" for that dimension, never as a synthetic zero.
func StudentReport(attendance *models.Attendance, performances []models.Performance) Report {
	r := Report{
		AttendanceStatus:  StatusNoData,
		PerformanceStatus: StatusNoData,
		OverallStatus:     StatusSatisfactory,
	}

	shortage := false
	if attendance != nil {
		pct := Percentage(attendance.AttendedLectures, attendance.TotalLectures)
		shortage = HasShortage(pct)
		switch {
		case pct >= 90:
			r.AttendanceStatus = "Excellent"
		case pct >= 75:
			r.AttendanceStatus = "Good"
		case pct >= 60:
			r.AttendanceStatus = "Fair"
		default:
			r.AttendanceStatus = "Poor"
			r.Recommendations = append(r.Recommendations, "Improve attendance immediately")
		}
	}

	needsImprovement := false
	if len(performances) > 0 {
		var sum float64
		for _, p := range performances {
			sum += p.Marks
			if p.Remark == RemarkNeedsImprovement {
				needsImprovement = true
			}
		}
		avg := sum / float64(len(performances))
		switch {
		case avg >= GoodThreshold:
			r.PerformanceStatus = "Excellent"
		case avg >= AverageThreshold:
			r.PerformanceStatus = "Average"
			r.Recommendations = append(r.Recommendations, "Focus on improving performance")
		default:
			r.PerformanceStatus = "Needs Attention"
			r.Recommendations = append(r.Recommendations, "Requires academic support")
		}
	}

	if shortage || needsImprovement {
		r.OverallStatus = StatusNeedsAttention
	}
	return r
}

// ValidateStudent checks candidate student fields. Returns nil when the
// candidate is acceptable; uniqueness of roll_no is the storage layer's job.
func ValidateStudent(rollNo, name string, semester int) *apperr.ValidationError {
	ve := &apperr.ValidationError{}

	rollNo = strings.TrimSpace(rollNo)
	switch {
	case rollNo == "":
		ve.Add("roll_no", "roll number is required")
	case len(rollNo) < 3 || len(rollNo) > 20:
		ve.Add("roll_no", "roll number must be 3-20 characters")
	case !rollNoPattern(rollNo):
		ve.Add("roll_no", "roll number must be alphanumeric with optional separators")
	}

	name = strings.TrimSpace(name)
	switch {
	case name == "":
		ve.Add("name", "name is required")
	case len(name) < 3:
		ve.Add("name", "name must be at least 3 characters")
	case len(name) > 100:
		ve.Add("name", "name must be at most 100 characters")
	case !containsLetter(name):
		ve.Add("name", "name must contain alphabetic characters")
	}

	if semester < 1 || semester > 8 {
		ve.Add("semester", "semester must be between 1 and 8")
	}

	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

func rollNoPattern(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '/' {
			continue
		}
		return false
	}
	return true
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
