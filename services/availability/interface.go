package availability

import (
	"time"

	availabilityRepo "meetbook/database/repository/availability"
	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
)

// OfferableReason explains why a candidate slot was refused, so callers can
// surface a precise user-facing message.
type OfferableReason string

const (
	ReasonOK                 OfferableReason = ""
	ReasonDurationNotAllowed OfferableReason = "durationNotAllowed"
	ReasonOutsideWeekly      OfferableReason = "outsideWeeklyTemplate"
	ReasonDateBlocked        OfferableReason = "dateBlocked"
	ReasonDailyCapReached    OfferableReason = "dailyCapReached"
	ReasonBadTemplate        OfferableReason = "invalidTemplate"
)

// OfferableResult is the outcome of a slot-offerability check. All four
// checks report through Reason rather than an error so the caller can map
// each refusal to a distinct message.
type OfferableResult struct {
	Offerable bool            `json:"offerable"`
	Reason    OfferableReason `json:"reason,omitempty"`
}

// Service manages availability templates and answers whether a candidate
// slot is offerable against one.
type Service interface {
	Create(hostID string, tpl models.AvailabilityTemplate) (*models.AvailabilityTemplate, error)
	GetForHost(hostID string) ([]models.AvailabilityTemplate, error)
	ListAll() ([]models.AvailabilityTemplate, error)
	Update(hostID, id string, tpl models.AvailabilityTemplate) (*models.AvailabilityTemplate, error)
	Delete(hostID, id string) error

	// IsSlotOfferable checks the candidate range against the template's
	// allowed durations, weekly windows, blocked dates, and per-day cap.
	// Read-only: it never mutates state.
	IsSlotOfferable(tpl *models.AvailabilityTemplate, start, end time.Time, durationMinutes int) (OfferableResult, error)
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo     availabilityRepo.Repository
	Bookings bookingRepo.Repository
}
