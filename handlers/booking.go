package handlers

import (
	"errors"
	"net/http"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/middleware"
	"meetbook/models"
	"meetbook/services/booking"

	"github.com/gin-gonic/gin"
)

// statusForSchedulingError maps a scheduling refusal code to an HTTP status.
func statusForSchedulingError(err error) (int, bool) {
	switch booking.ErrCode(err) {
	case booking.CodeInvalidRange, booking.CodeInvalidStatus:
		return http.StatusBadRequest, true
	case booking.CodeSlotNotOfferable, booking.CodeSlotConflict:
		return http.StatusConflict, true
	case booking.CodeNotFound:
		return http.StatusNotFound, true
	case booking.CodeForbidden:
		return http.StatusForbidden, true
	}
	return 0, false
}

func writeSchedulingError(c *gin.Context, err error) {
	status, ok := statusForSchedulingError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	var se *booking.SchedulingError
	resp := gin.H{"error": err.Error(), "code": booking.ErrCode(err)}
	if errors.As(err, &se) && se.Reason != "" {
		resp["reason"] = se.Reason
	}
	c.JSON(status, resp)
}

// CreateBooking books a pending slot against a host's availability.
func CreateBooking(svc booking.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input booking.CreateBookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		input.CreatedBy = middleware.PrincipalID(c)

		b, err := svc.CreateBooking(input)
		if err != nil {
			writeSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// GetBooking returns one booking, visible to its host or its creator only.
func GetBooking(repo bookingRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := repo.GetByID(c.Param("id"))
		if err != nil {
			if err == bookingRepo.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch booking"})
			return
		}

		principalID := middleware.PrincipalID(c)
		if b.HostID != principalID && b.CreatedByPrincipalID != principalID &&
			middleware.PrincipalRole(c) != middleware.RoleAdmin {
			// Report not-found so a probing outsider learns nothing.
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// SetBookingStatus transitions a booking's lifecycle status. Only the owning
// host may transition; the state machine enforces the transition table.
func SetBookingStatus(svc booking.StateMachine) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status models.BookingStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		b, err := svc.SetStatus(c.Param("id"), input.Status, middleware.PrincipalID(c))
		if err != nil {
			writeSchedulingError(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}
