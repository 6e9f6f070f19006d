package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/ejobs/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
	now   func() time.Time
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{Stats: stats, now: time.Now}
}

// EmployerStats is GET /stats/employer
func (h *StatsHandler) EmployerStats(c *gin.Context) {
	stats, err := h.Stats.EmployerStats(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SystemReport is GET /admin/stats?year=YYYY. A missing or non-numeric year
// falls back to the current year.
func (h *StatsHandler) SystemReport(c *gin.Context) {
	year := h.now().Year()
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}
	report, err := h.Stats.SystemReport(c.Request.Context(), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
