package handlers

import (
	"net/http"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/middleware"

	"github.com/gin-gonic/gin"
)

// MyBookings lists the bookings the authenticated principal created as a
// guest.
func MyBookings(repo bookingRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := repo.ListByCreator(middleware.PrincipalID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
			return
		}
		c.JSON(http.StatusOK, bookings)
	}
}
