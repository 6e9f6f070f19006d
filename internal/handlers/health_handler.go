package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/database"
)

// HealthHandler reports whether the database answers.
type HealthHandler struct {
	DB database.Pinger
}

func NewHealthHandler(db database.Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if err := database.Ping(c.Request.Context(), h.DB); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
