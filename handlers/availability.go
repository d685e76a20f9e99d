package handlers

import (
	"net/http"

	availabilityRepo "meetbook/database/repository/availability"
	"meetbook/middleware"
	"meetbook/models"
	"meetbook/services/availability"
	"meetbook/services/dashboard"

	"github.com/gin-gonic/gin"
)

// CreateAvailability creates a new availability template for the
// authenticated host.
func CreateAvailability(svc availability.Service, events *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := middleware.PrincipalID(c)

		var tpl models.AvailabilityTemplate
		if err := c.ShouldBindJSON(&tpl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		created, err := svc.Create(hostID, tpl)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if events != nil {
			events.AvailabilityChanged(hostID)
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetMyAvailability returns the authenticated host's templates.
func GetMyAvailability(svc availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tpls, err := svc.GetForHost(middleware.PrincipalID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch availability"})
			return
		}
		c.JSON(http.StatusOK, tpls)
	}
}

// ListAvailability returns every host's templates so guests can browse slots.
func ListAvailability(svc availability.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tpls, err := svc.ListAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch availability"})
			return
		}
		c.JSON(http.StatusOK, tpls)
	}
}

// UpdateAvailability replaces a template owned by the authenticated host.
func UpdateAvailability(svc availability.Service, events *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := middleware.PrincipalID(c)
		id := c.Param("id")

		var tpl models.AvailabilityTemplate
		if err := c.ShouldBindJSON(&tpl); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		updated, err := svc.Update(hostID, id, tpl)
		if err != nil {
			if err == availabilityRepo.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "availability template not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if events != nil {
			events.AvailabilityChanged(hostID)
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteAvailability removes a template owned by the authenticated host.
// Existing bookings keep their snapshotted buffers and remain valid.
func DeleteAvailability(svc availability.Service, events *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := middleware.PrincipalID(c)
		id := c.Param("id")

		if err := svc.Delete(hostID, id); err != nil {
			if err == availabilityRepo.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "availability template not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete availability"})
			return
		}
		if events != nil {
			events.AvailabilityChanged(hostID)
		}
		c.JSON(http.StatusOK, gin.H{"deleted": id})
	}
}
