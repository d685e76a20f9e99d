package handlers

import (
	"net/http"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/middleware"
	"meetbook/services/dashboard"

	"github.com/gin-gonic/gin"
)

// HostDashboard returns the authenticated host's dashboard snapshot: booking
// counters plus the most recent bookings. The websocket channel pushes the
// same shape on each change.
func HostDashboard(notifier *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		update, err := notifier.HostSnapshot(middleware.PrincipalID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build dashboard snapshot"})
			return
		}
		c.JSON(http.StatusOK, update)
	}
}

// HostBookings lists every booking for the authenticated host.
func HostBookings(repo bookingRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := repo.ListByHost(middleware.PrincipalID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}
