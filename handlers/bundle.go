package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	CreateAvailabilityHandler gin.HandlerFunc
	GetMyAvailabilityHandler  gin.HandlerFunc
	ListAvailabilityHandler   gin.HandlerFunc
	UpdateAvailabilityHandler gin.HandlerFunc
	DeleteAvailabilityHandler gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler    gin.HandlerFunc
	GetBookingHandler       gin.HandlerFunc
	SetBookingStatusHandler gin.HandlerFunc

	// Meeting endpoints
	MeetingAccessHandler gin.HandlerFunc
	MeetingSocketHandler gin.HandlerFunc

	// Dashboard endpoints
	HostDashboardHandler    gin.HandlerFunc
	HostBookingsHandler     gin.HandlerFunc
	HostDashboardWSHandler  gin.HandlerFunc
	AdminStatsHandler       gin.HandlerFunc
	AdminDashboardWSHandler gin.HandlerFunc

	// Guest endpoints
	MyBookingsHandler gin.HandlerFunc
}
