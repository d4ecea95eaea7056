package models

import "time"

// Attendance is the single per-student lecture counter.
// The percentage is never stored; it is recomputed from the two counters
// on every read so the stored row can never drift.
type Attendance struct {
	ID               int64     `db:"id" json:"id"`
	StudentID        int64     `db:"student_id" json:"student_id"`
	TotalLectures    int       `db:"total_lectures" json:"total_lectures"`
	AttendedLectures int       `db:"attended_lectures" json:"attended_lectures"`
	LastUpdated      time.Time `db:"last_updated" json:"last_updated"`
}

// AttendanceListItem is an attendance row joined with the owning student,
// used by the attendance overview listing.
type AttendanceListItem struct {
	Attendance
	RollNo      string `db:"roll_no"`
	StudentName string `db:"student_name"`
}
