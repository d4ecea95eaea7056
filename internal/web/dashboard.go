package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/attendance-tracker/internal/db"
)

func (s *Server) dashboard(c *gin.Context) {
	stats, err := db.GetDashboardStats(c.Request.Context(), s.db)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
