package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Spok95/attendance-tracker/internal/apperr"
	"github.com/Spok95/attendance-tracker/internal/ctxutil"
	"github.com/Spok95/attendance-tracker/internal/insights"
	"github.com/Spok95/attendance-tracker/internal/models"
)

func CreateStudent(ctx context.Context, database *sql.DB, rollNo, name string, semester int) (*models.Student, error) {
	if ve := insights.ValidateStudent(rollNo, name, semester); ve != nil {
		return nil, ve
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s := models.Student{
		RollNo:   strings.TrimSpace(rollNo),
		Name:     strings.TrimSpace(name),
		Semester: semester,
	}
	err := database.QueryRowContext(ctx, `
INSERT INTO students (roll_no, name, semester)
VALUES ($1, $2, $3)
RETURNING id, created_at, updated_at`,
		s.RollNo, s.Name, s.Semester,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperr.ConflictError{Field: "roll_no", Value: s.RollNo}
		}
		return nil, err
	}
	return &s, nil
}

func GetStudent(ctx context.Context, database *sql.DB, id int64) (*models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var s models.Student
	err := database.QueryRowContext(ctx, `
SELECT id, roll_no, name, semester, created_at, updated_at
FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.RollNo, &s.Name, &s.Semester, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Entity: "student", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func GetStudentByRollNo(ctx context.Context, database *sql.DB, rollNo string) (*models.Student, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var s models.Student
	err := database.QueryRowContext(ctx, `
SELECT id, roll_no, name, semester, created_at, updated_at
FROM students WHERE roll_no = $1`, rollNo,
	).Scan(&s.ID, &s.RollNo, &s.Name, &s.Semester, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Entity: "student"}
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStudents returns a page of students joined with attendance counters and
// aggregated marks, ordered by roll number. Search matches roll_no or name,
// case-insensitive. The second return value is the total match count.
func ListStudents(ctx context.Context, database *sql.DB, search string, limit, offset int) ([]models.StudentListItem, int, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	pattern := "%" + strings.TrimSpace(search) + "%"

	var total int
	if err := database.QueryRowContext(ctx, `
SELECT COUNT(*) FROM students
WHERE roll_no ILIKE $1 OR name ILIKE $1`, pattern,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := database.QueryContext(ctx, `
SELECT s.id, s.roll_no, s.name, s.semester, s.created_at, s.updated_at,
       COALESCE(a.total_lectures, 0),
       COALESCE(a.attended_lectures, 0),
       a.id IS NOT NULL AS has_attendance,
       COALESCE(p.avg_marks, 0),
       p.latest_remark
FROM students s
LEFT JOIN attendance a ON a.student_id = s.id
LEFT JOIN LATERAL (
    SELECT AVG(marks) AS avg_marks,
           (SELECT remark FROM performance
            WHERE student_id = s.id
            ORDER BY created_at DESC LIMIT 1) AS latest_remark
    FROM performance WHERE student_id = s.id
) p ON TRUE
WHERE s.roll_no ILIKE $1 OR s.name ILIKE $1
ORDER BY s.roll_no
LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []models.StudentListItem
	for rows.Next() {
		var it models.StudentListItem
		if err := rows.Scan(
			&it.ID, &it.RollNo, &it.Name, &it.Semester, &it.CreatedAt, &it.UpdatedAt,
			&it.TotalLectures, &it.AttendedLectures, &it.HasAttendance,
			&it.AverageMarks, &it.LatestRemark,
		); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func UpdateStudent(ctx context.Context, database *sql.DB, id int64, rollNo, name string, semester int) (*models.Student, error) {
	if ve := insights.ValidateStudent(rollNo, name, semester); ve != nil {
		return nil, ve
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	s := models.Student{
		ID:       id,
		RollNo:   strings.TrimSpace(rollNo),
		Name:     strings.TrimSpace(name),
		Semester: semester,
	}
	err := database.QueryRowContext(ctx, `
UPDATE students
SET roll_no = $2, name = $3, semester = $4, updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at`,
		id, s.RollNo, s.Name, s.Semester,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Entity: "student", ID: id}
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &apperr.ConflictError{Field: "roll_no", Value: s.RollNo}
		}
		return nil, err
	}
	return &s, nil
}

// DeleteStudent removes a student; attendance and performance rows go with
// it via ON DELETE CASCADE.
func DeleteStudent(ctx context.Context, database *sql.DB, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &apperr.NotFoundError{Entity: "student", ID: id}
	}
	return nil
}

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents   int `json:"total_students"`
	WithShortage    int `json:"students_with_shortage"`
	PoorPerformance int `json:"students_poor_performance"`
}

func GetDashboardStats(ctx context.Context, database *sql.DB) (DashboardStats, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var st DashboardStats
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&st.TotalStudents); err != nil {
		return st, err
	}
	// shortage: attendance row present and below the 75% threshold
	if err := database.QueryRowContext(ctx, `
SELECT COUNT(*) FROM attendance
WHERE total_lectures = 0
   OR attended_lectures * 100.0 / total_lectures < 75.0`,
	).Scan(&st.WithShortage); err != nil {
		return st, err
	}
	if err := database.QueryRowContext(ctx, `
SELECT COUNT(*) FROM students s
WHERE COALESCE((SELECT AVG(marks) FROM performance WHERE student_id = s.id), 0) < 50.0`,
	).Scan(&st.PoorPerformance); err != nil {
		return st, err
	}
	return st, nil
}
