package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/attendance-tracker/internal/apperr"
	"github.com/Spok95/attendance-tracker/internal/ctxutil"
	"github.com/Spok95/attendance-tracker/internal/insights"
	"github.com/Spok95/attendance-tracker/internal/models"
)

// SetAttendance creates or updates the student's attendance counters.
// The attended ≤ total invariant is checked before the write; the same rule
// exists as a table CHECK so nothing slips through concurrent paths.
func SetAttendance(ctx context.Context, database *sql.DB, studentID int64, total, attended int) (*models.Attendance, error) {
	if _, err := insights.AttendanceMetric(attended, total); err != nil {
		return nil, err
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	a := models.Attendance{
		StudentID:        studentID,
		TotalLectures:    total,
		AttendedLectures: attended,
	}
	err := database.QueryRowContext(ctx, `
INSERT INTO attendance (student_id, total_lectures, attended_lectures)
VALUES ($1, $2, $3)
ON CONFLICT (student_id) DO UPDATE
SET total_lectures = EXCLUDED.total_lectures,
    attended_lectures = EXCLUDED.attended_lectures,
    last_updated = now()
RETURNING id, last_updated`,
		studentID, total, attended,
	).Scan(&a.ID, &a.LastUpdated)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &apperr.NotFoundError{Entity: "student", ID: studentID}
		}
		return nil, err
	}
	return &a, nil
}

// GetAttendance returns nil (no error) when the student has no record yet.
func GetAttendance(ctx context.Context, database *sql.DB, studentID int64) (*models.Attendance, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var a models.Attendance
	err := database.QueryRowContext(ctx, `
SELECT id, student_id, total_lectures, attended_lectures, last_updated
FROM attendance WHERE student_id = $1`, studentID,
	).Scan(&a.ID, &a.StudentID, &a.TotalLectures, &a.AttendedLectures, &a.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAttendance returns attendance rows joined with student identity,
// ordered by roll number, plus the total row count for paging.
func ListAttendance(ctx context.Context, database *sql.DB, limit, offset int) ([]models.AttendanceListItem, int, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var total int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := database.QueryContext(ctx, `
SELECT a.id, a.student_id, a.total_lectures, a.attended_lectures, a.last_updated,
       s.roll_no, s.name
FROM attendance a
JOIN students s ON s.id = a.student_id
ORDER BY s.roll_no
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []models.AttendanceListItem
	for rows.Next() {
		var it models.AttendanceListItem
		if err := rows.Scan(&it.ID, &it.StudentID, &it.TotalLectures, &it.AttendedLectures, &it.LastUpdated, &it.RollNo, &it.StudentName); err != nil {
			return nil, 0, err
		}
		result = append(result, it)
	}
	return result, total, rows.Err()
}

// ResetAttendance zeroes both counters.
func ResetAttendance(ctx context.Context, database *sql.DB, studentID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `
UPDATE attendance
SET total_lectures = 0, attended_lectures = 0, last_updated = now()
WHERE student_id = $1`, studentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &apperr.NotFoundError{Entity: "attendance", ID: studentID}
	}
	return nil
}

func DeleteAttendance(ctx context.Context, database *sql.DB, studentID int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM attendance WHERE student_id = $1`, studentID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &apperr.NotFoundError{Entity: "attendance", ID: studentID}
	}
	return nil
}
