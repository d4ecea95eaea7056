package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/attendance-tracker/internal/db"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := db.Authenticate(c.Request.Context(), s.db, req.Username, req.Password)
	if err != nil {
		s.respondError(c, err)
		return
	}

	token, exp, err := issueToken(user.ID, user.Username, s.cfg.JWTSecret)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, token, int(tokenTTL.Seconds()), "/", "", s.cfg.Env == "prod", true)
	s.log.Info("admin logged in", zap.String("username", user.Username))

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": exp.Unix(),
		"username":   user.Username,
	})
}

func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.cfg.Env == "prod", true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
