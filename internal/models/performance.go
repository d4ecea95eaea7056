package models

import "time"

type Performance struct {
	ID          int64     `db:"id" json:"id"`
	StudentID   int64     `db:"student_id" json:"student_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	Marks       float64   `db:"marks" json:"marks"`
	Remark      string    `db:"remark" json:"remark"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
