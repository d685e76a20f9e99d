package bookingRepo

import (
	"time"

	"meetbook/models"
)

// Repository defines persistence for bookings. Overlap and cap queries only
// consider bookings in an active status (pending or confirmed).
type Repository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	GetByMeetingRoom(roomID string) (*models.Booking, error)
	Update(id string, b *models.Booking) error

	// HasActiveOverlap reports whether any active booking for the host
	// overlaps [start, end) (half-open: touching endpoints do not conflict).
	HasActiveOverlap(hostID string, start, end time.Time) (bool, error)
	// CountActiveBetween counts active bookings for the host whose start
	// falls in [from, to).
	CountActiveBetween(hostID string, from, to time.Time) (int64, error)

	ListByHost(hostID string) ([]models.Booking, error)
	ListByCreator(principalID string) ([]models.Booking, error)
	RecentByHost(hostID string, limit int64) ([]models.Booking, error)

	CountByHost(hostID string) (int64, error)
	CountByHostStatus(hostID string, status models.BookingStatus) (int64, error)
	CountUpcomingConfirmed(hostID string, after time.Time) (int64, error)
	CountAll() (int64, error)
	TopHosts(limit int64) ([]models.HostBookingCount, error)

	// SetReminderSent flips the reminder flag for the given target
	// ("guest" or "host"). The flag only ever goes from false to true.
	SetReminderSent(id, target string) error

	EnsureIndexes() error
}
