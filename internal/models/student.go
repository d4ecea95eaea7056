package models

import "time"

type Student struct {
	ID        int64     `db:"id" json:"id"`
	RollNo    string    `db:"roll_no" json:"roll_no"`
	Name      string    `db:"name" json:"name"`
	Semester  int       `db:"semester" json:"semester"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentListItem is a students row joined with its attendance and
// aggregated marks for list/export views.
type StudentListItem struct {
	Student
	TotalLectures    int
	AttendedLectures int
	HasAttendance    bool
	AverageMarks     float64
	LatestRemark     *string
}
