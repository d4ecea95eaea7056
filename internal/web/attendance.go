package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/attendance-tracker/internal/db"
	"github.com/Spok95/attendance-tracker/internal/insights"
)

type attendanceRequest struct {
	TotalLectures    int `json:"total_lectures"`
	AttendedLectures int `json:"attended_lectures"`
}

type attendanceEntry struct {
	StudentID            int64             `json:"student_id"`
	RollNo               string            `json:"roll_no"`
	StudentName          string            `json:"student_name"`
	TotalLectures        int               `json:"total_lectures"`
	AttendedLectures     int               `json:"attended_lectures"`
	AttendancePercentage float64           `json:"attendance_percentage"`
	Warning              *insights.Warning `json:"warning,omitempty"`
	LastUpdated          string            `json:"last_updated"`
}

// listAttendance is the overview: every tracked student with their
// percentage and, where it applies, the shortage warning.
func (s *Server) listAttendance(c *gin.Context) {
	limit, offset, page := s.pageParams(c)
	items, total, err := db.ListAttendance(c.Request.Context(), s.db, limit, offset)
	if err != nil {
		s.respondError(c, err)
		return
	}
	entries := make([]attendanceEntry, 0, len(items))
	for _, it := range items {
		pct := insights.Percentage(it.AttendedLectures, it.TotalLectures)
		e := attendanceEntry{
			StudentID:            it.StudentID,
			RollNo:               it.RollNo,
			StudentName:          it.StudentName,
			TotalLectures:        it.TotalLectures,
			AttendedLectures:     it.AttendedLectures,
			AttendancePercentage: pct,
			LastUpdated:          it.LastUpdated.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if w := insights.AttendanceWarning(pct); w.HasWarning {
			e.Warning = &w
		}
		entries = append(entries, e)
	}
	c.JSON(http.StatusOK, gin.H{
		"attendance": entries,
		"total":      total,
		"page":       page,
		"per_page":   limit,
	})
}

func (s *Server) setAttendance(c *gin.Context) {
	id, ok := s.idParam(c, "studentID")
	if !ok {
		return
	}
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	att, err := db.SetAttendance(c.Request.Context(), s.db, id, req.TotalLectures, req.AttendedLectures)
	if err != nil {
		s.respondError(c, err)
		return
	}
	pct := insights.Percentage(att.AttendedLectures, att.TotalLectures)
	resp := gin.H{
		"student_id":            att.StudentID,
		"total_lectures":        att.TotalLectures,
		"attended_lectures":     att.AttendedLectures,
		"attendance_percentage": pct,
		"last_updated":          att.LastUpdated,
	}
	if w := insights.AttendanceWarning(pct); w.HasWarning {
		resp["warning"] = w
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) resetAttendance(c *gin.Context) {
	id, ok := s.idParam(c, "studentID")
	if !ok {
		return
	}
	if err := db.ResetAttendance(c.Request.Context(), s.db, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "attendance reset"})
}

func (s *Server) deleteAttendance(c *gin.Context) {
	id, ok := s.idParam(c, "studentID")
	if !ok {
		return
	}
	if err := db.DeleteAttendance(c.Request.Context(), s.db, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
