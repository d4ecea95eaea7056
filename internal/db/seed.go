package db

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"

	"github.com/Spok95/attendance-tracker/internal/apperr"
)

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// Operational bootstrap data, not domain data.
func SeedAdmin(ctx context.Context, database *sql.DB) error {
	_, err := CreateAdmin(ctx, database, "admin", "admin123")
	if apperr.IsConflict(err) {
		return nil
	}
	return err
}

var (
	sampleFirstNames = []string{"Aarav", "Diya", "Ishaan", "Meera", "Rohan", "Sana", "Kabir", "Priya", "Arjun", "Nisha"}
	sampleLastNames  = []string{"Sharma", "Patel", "Reddy", "Iyer", "Khan", "Das", "Nair", "Gupta", "Singh", "Bose"}
	sampleSubjects   = []string{"Mathematics", "Physics", "Chemistry"}
)

// SeedStudents fills the database with n generated students, each with an
// attendance record and one to three subject marks. Roughly a third get a
// shortage-range attendance so the dashboard has something to warn about.
func SeedStudents(ctx context.Context, database *sql.DB, n int) error {
	for i := 1; i <= n; i++ {
		rollNo := fmt.Sprintf("CS2024%03d", i)
		name := sampleFirstNames[rand.Intn(len(sampleFirstNames))] + " " +
			sampleLastNames[rand.Intn(len(sampleLastNames))]
		semester := 1 + rand.Intn(8)

		s, err := CreateStudent(ctx, database, rollNo, name, semester)
		if apperr.IsConflict(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed student %s: %w", rollNo, err)
		}

		total := 30 + rand.Intn(31)
		var attended int
		if rand.Float64() < 0.3 {
			attended = total/2 + rand.Intn(total/5+1)
		} else {
			attended = total*8/10 + rand.Intn(total/5+1)
		}
		if attended > total {
			attended = total
		}
		if _, err := SetAttendance(ctx, database, s.ID, total, attended); err != nil {
			return fmt.Errorf("seed attendance for %s: %w", rollNo, err)
		}

		for _, subject := range pickSubjects() {
			marks := 40 + rand.Float64()*60
			marks = float64(int(marks*100)) / 100
			if _, err := AddPerformance(ctx, database, s.ID, subject, marks); err != nil {
				return fmt.Errorf("seed performance for %s: %w", rollNo, err)
			}
		}
	}
	return nil
}

func pickSubjects() []string {
	k := 1 + rand.Intn(len(sampleSubjects))
	idx := rand.Perm(len(sampleSubjects))[:k]
	out := make([]string, 0, k)
	for _, i := range idx {
		out = append(out, sampleSubjects[i])
	}
	return out
}
