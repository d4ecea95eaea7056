package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/attendance-tracker/internal/db"
	"github.com/Spok95/attendance-tracker/internal/export"
	"github.com/Spok95/attendance-tracker/internal/insights"
	"github.com/Spok95/attendance-tracker/internal/metrics"
	"github.com/Spok95/attendance-tracker/internal/models"
)

type studentRequest struct {
	RollNo   string `json:"roll_no"`
	Name     string `json:"name"`
	Semester int    `json:"semester"`
}

type studentListEntry struct {
	models.Student
	AttendancePercentage *float64 `json:"attendance_percentage"`
	AverageMarks         float64  `json:"average_marks"`
	LatestRemark         *string  `json:"latest_remark"`
}

func listEntry(it models.StudentListItem) studentListEntry {
	e := studentListEntry{
		Student:      it.Student,
		AverageMarks: it.AverageMarks,
		LatestRemark: it.LatestRemark,
	}
	if it.HasAttendance {
		pct := insights.Percentage(it.AttendedLectures, it.TotalLectures)
		e.AttendancePercentage = &pct
	}
	return e
}

func (s *Server) pageParams(c *gin.Context) (limit, offset int, page int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit = s.cfg.PageSize
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return limit, (page - 1) * limit, page
}

func (s *Server) listStudents(c *gin.Context) {
	limit, offset, page := s.pageParams(c)
	items, total, err := db.ListStudents(c.Request.Context(), s.db, c.Query("search"), limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	entries := make([]studentListEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, listEntry(it))
	}
	c.JSON(http.StatusOK, gin.H{
		"students": entries,
		"total":    total,
		"page":     page,
		"per_page": limit,
	})
}

func (s *Server) createStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	student, err := db.CreateStudent(c.Request.Context(), s.db, req.RollNo, req.Name, req.Semester)
	if err != nil {
		s.respondError(c, err)
		return
	}
	metrics.StudentsCreated.Inc()
	c.JSON(http.StatusCreated, student)
}

func (s *Server) idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) getStudent(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	student, err := db.GetStudent(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	att, err := db.GetAttendance(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	perfs, err := db.ListPerformance(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := gin.H{"student": student, "performance": perfs}
	if att != nil {
		resp["attendance"] = gin.H{
			"total_lectures":        att.TotalLectures,
			"attended_lectures":     att.AttendedLectures,
			"attendance_percentage": insights.Percentage(att.AttendedLectures, att.TotalLectures),
			"last_updated":          att.LastUpdated,
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getStudentByRoll(c *gin.Context) {
	student, err := db.GetStudentByRollNo(c.Request.Context(), s.db, c.Param("rollNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (s *Server) updateStudent(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	student, err := db.UpdateStudent(c.Request.Context(), s.db, id, req.RollNo, req.Name, req.Semester)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (s *Server) deleteStudent(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := db.DeleteStudent(c.Request.Context(), s.db, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// studentReport is the composite insight view: status labels, shortage
// warning and the lectures needed to climb back over the threshold.
func (s *Server) studentReport(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	student, err := db.GetStudent(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	att, err := db.GetAttendance(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	perfs, err := db.ListPerformance(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	resp := gin.H{
		"student":     student,
		"insights":    insights.StudentReport(att, perfs),
		"performance": perfs,
	}
	if att != nil {
		pct := insights.Percentage(att.AttendedLectures, att.TotalLectures)
		warning := insights.AttendanceWarning(pct)
		if warning.HasWarning {
			metrics.ShortageWarnings.Inc()
		}
		resp["attendance_percentage"] = pct
		resp["attendance_warning"] = warning
		resp["required_attendance"] = insights.CalculateRequiredAttendance(att.TotalLectures, att.AttendedLectures)
	}
	c.JSON(http.StatusOK, resp)
}

const exportLimit = 100000

func (s *Server) exportStudentsCSV(c *gin.Context) {
	items, _, err := db.ListStudents(c.Request.Context(), s.db, "", exportLimit, 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=`+export.ReportFilename("csv"))
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := export.WriteStudentsCSV(c.Writer, items); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) exportStudentsExcel(c *gin.Context) {
	items, _, err := db.ListStudents(c.Request.Context(), s.db, "", exportLimit, 0)
	if err != nil {
		s.respondError(c, err)
		return
	}
	wb, err := export.NewStudentsWorkbook(items)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=`+export.ReportFilename("xlsx"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if _, err := wb.WriteTo(c.Writer); err != nil {
		s.log.Error("xlsx export failed", zap.Error(err))
	}
}
