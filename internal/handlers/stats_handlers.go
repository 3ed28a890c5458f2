package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rmitchellscott/monodither/internal/database"
	"github.com/rmitchellscott/monodither/internal/logging"
)

const maxRunsLimit = 500

// StatsHandler returns aggregated run statistics.
func (h *Handler) StatsHandler(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	stats, err := database.GetRunStats(h.db.WithContext(c.Request.Context()))
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentAPIStats, "Failed to load run stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RunsHandler returns the most recent runs. ?limit= defaults to 50.
func (h *Handler) RunsHandler(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history is disabled"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := database.RecentRuns(h.db.WithContext(c.Request.Context()), limit)
	if err != nil {
		logging.ErrorWithComponent(logging.ComponentAPIStats, "Failed to load runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load runs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
