package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the aggregate counters for the landing page.
func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboardUsecase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}
	respondOK(c, stats)
}
