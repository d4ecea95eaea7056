package jobs

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/Spok95/attendance-tracker/internal/db"
)

// ShortageScan refreshes the shortage gauge from the dashboard counters
// so the alerting side does not depend on anyone opening the dashboard.
func ShortageScan(database *sql.DB, log *zap.Logger) Job {
	return func(ctx context.Context) error {
		stats, err := db.GetDashboardStats(ctx, database)
		if err != nil {
			log.Warn("shortage scan failed", zap.Error(err))
			return err
		}
		shortageStudents.Set(float64(stats.WithShortage))
		if stats.WithShortage > 0 {
			log.Info("attendance shortage detected",
				zap.Int("students", stats.WithShortage),
				zap.Int("total_students", stats.TotalStudents))
		}
		return nil
	}
}
