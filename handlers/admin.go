package handlers

import (
	"net/http"

	"meetbook/services/dashboard"

	"github.com/gin-gonic/gin"
)

// AdminStats returns the platform-wide booking stats snapshot.
func AdminStats(notifier *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := notifier.AdminSnapshot()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build stats snapshot"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
