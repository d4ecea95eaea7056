// Package web is the admin HTTP surface: a JSON API over the storage and
// insights layers plus CSV/Excel downloads. It holds no domain logic of
// its own.
package web

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/attendance-tracker/internal/config"
	"github.com/Spok95/attendance-tracker/internal/metrics"
)

type Server struct {
	db  *sql.DB
	cfg *config.Config
	log *zap.Logger
}

func NewServer(cfg *config.Config, database *sql.DB, log *zap.Logger) *Server {
	return &Server{db: database, cfg: cfg, log: log}
}

// Router wires all routes. Everything except login, health and metrics
// sits behind the session middleware.
func (s *Server) Router() *gin.Engine {
	if s.cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(securityHeaders())

	r.GET("/healthz", s.healthz)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/auth/login", s.login)
	r.POST("/auth/logout", s.logout)

	authed := r.Group("/", s.requireAuth())

	authed.GET("/dashboard", s.dashboard)

	authed.GET("/students", s.listStudents)
	authed.POST("/students", s.createStudent)
	authed.GET("/students/export", s.exportStudentsCSV)
	authed.GET("/students/export.xlsx", s.exportStudentsExcel)
	authed.GET("/students/by-roll/:rollNo", s.getStudentByRoll)
	authed.GET("/students/:id", s.getStudent)
	authed.PUT("/students/:id", s.updateStudent)
	authed.DELETE("/students/:id", s.deleteStudent)
	authed.GET("/students/:id/report", s.studentReport)

	authed.GET("/attendance", s.listAttendance)
	authed.PUT("/attendance/:studentID", s.setAttendance)
	authed.POST("/attendance/:studentID/reset", s.resetAttendance)
	authed.DELETE("/attendance/:studentID", s.deleteAttendance)

	authed.GET("/students/:id/performance", s.listPerformance)
	authed.POST("/students/:id/performance", s.addPerformance)
	authed.PUT("/performance/:id", s.updatePerformance)
	authed.DELETE("/performance/:id", s.deletePerformance)

	return r
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 800*time.Millisecond)
	defer cancel()
	t0 := time.Now()
	if err := s.db.PingContext(ctx); err != nil {
		c.String(http.StatusServiceUnavailable, "db not ok: %s", err.Error())
		return
	}
	metrics.ObserveDBPing(time.Since(t0))
	c.String(http.StatusOK, "ok")
}
