package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/attendance-tracker/internal/db"
)

type performanceRequest struct {
	SubjectName string  `json:"subject_name"`
	Marks       float64 `json:"marks"`
}

func (s *Server) listPerformance(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := db.GetStudent(ctx, s.db, id); err != nil {
		s.respondError(c, err)
		return
	}
	perfs, err := db.ListPerformance(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	avg, err := db.AverageMarks(ctx, s.db, id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"performance":   perfs,
		"average_marks": avg,
	})
}

func (s *Server) addPerformance(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	perf, err := db.AddPerformance(c.Request.Context(), s.db, id, req.SubjectName, req.Marks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, perf)
}

func (s *Server) updatePerformance(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	var req performanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	perf, err := db.UpdatePerformance(c.Request.Context(), s.db, id, req.SubjectName, req.Marks)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

func (s *Server) deletePerformance(c *gin.Context) {
	id, ok := s.idParam(c, "id")
	if !ok {
		return
	}
	if err := db.DeletePerformance(c.Request.Context(), s.db, id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
