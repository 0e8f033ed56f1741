package analyticsapi

import (
	"net/http"
	"strconv"
	"time"

	"linkbio/database"
	"linkbio/internal/api/respond"
	"linkbio/internal/domain/analytics"

	"github.com/gin-gonic/gin"
)

// GET /analytics?days=30
func GetSummary(c *gin.Context) {
	userID, ok := respond.UserID(c)
	if !ok {
		return
	}

	days := analytics.DefaultDays
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	summary, err := analytics.Summarize(c.Request.Context(), database.DB, userID, days, time.Now())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
