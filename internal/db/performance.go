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

func validateMarks(marks float64) error {
	if marks < 0 || marks > 100 {
		return apperr.Validation("marks", "marks must be between 0 and 100")
	}
	return nil
}

// AddPerformance records marks for one subject. The remark is always derived
// from the marks at write time, never accepted from the caller.
func AddPerformance(ctx context.Context, database *sql.DB, studentID int64, subject string, marks float64) (*models.Performance, error) {
	if err := validateMarks(marks); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "General"
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	p := models.Performance{
		StudentID:   studentID,
		SubjectName: subject,
		Marks:       marks,
		Remark:      insights.PerformanceRemark(marks),
	}
	err := database.QueryRowContext(ctx, `
INSERT INTO performance (student_id, subject_name, marks, remark)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`,
		studentID, p.SubjectName, p.Marks, p.Remark,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &apperr.NotFoundError{Entity: "student", ID: studentID}
		}
		return nil, err
	}
	return &p, nil
}

// ListPerformance returns the student's records, newest first.
func ListPerformance(ctx context.Context, database *sql.DB, studentID int64) ([]models.Performance, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	rows, err := database.QueryContext(ctx, `
SELECT id, student_id, subject_name, marks, remark, created_at, updated_at
FROM performance
WHERE student_id = $1
ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Performance
	for rows.Next() {
		var p models.Performance
		var remark sql.NullString
		if err := rows.Scan(&p.ID, &p.StudentID, &p.SubjectName, &p.Marks, &remark, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Remark = remark.String
		result = append(result, p)
	}
	return result, rows.Err()
}

func UpdatePerformance(ctx context.Context, database *sql.DB, id int64, subject string, marks float64) (*models.Performance, error) {
	if err := validateMarks(marks); err != nil {
		return nil, err
	}
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "General"
	}
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	p := models.Performance{
		ID:          id,
		SubjectName: subject,
		Marks:       marks,
		Remark:      insights.PerformanceRemark(marks),
	}
	err := database.QueryRowContext(ctx, `
UPDATE performance
SET subject_name = $2, marks = $3, remark = $4, updated_at = now()
WHERE id = $1
RETURNING student_id, created_at, updated_at`,
		id, p.SubjectName, p.Marks, p.Remark,
	).Scan(&p.StudentID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperr.NotFoundError{Entity: "performance", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func DeletePerformance(ctx context.Context, database *sql.DB, id int64) error {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	res, err := database.ExecContext(ctx, `DELETE FROM performance WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &apperr.NotFoundError{Entity: "performance", ID: id}
	}
	return nil
}

// AverageMarks returns 0 when the student has no performance rows.
func AverageMarks(ctx context.Context, database *sql.DB, studentID int64) (float64, error) {
	ctx, cancel := ctxutil.WithDBTimeout(ctx)
	defer cancel()

	var avg float64
	err := database.QueryRowContext(ctx, `
SELECT COALESCE(AVG(marks), 0) FROM performance WHERE student_id = $1`, studentID,
	).Scan(&avg)
	return avg, err
}
