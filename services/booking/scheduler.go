package booking

import (
	"time"

	availabilityRepo "meetbook/database/repository/availability"
	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
	"meetbook/services/availability"
	"meetbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardNotifier receives change signals after successful mutations. The
// dashboard package implements it; a nil-safe no-op is fine in tests.
type DashboardNotifier interface {
	BookingChanged(hostID string)
}

// CreateBookingInput is the request shape for Scheduler.CreateBooking. Only
// the guest's note is accepted here; the host note belongs to the host and is
// written through the host's own surfaces.
type CreateBookingInput struct {
	HostID          string              `json:"hostId"`
	AvailabilityID  string              `json:"availabilityId"`
	Start           time.Time           `json:"start"`
	End             time.Time           `json:"end"`
	DurationMinutes int                 `json:"durationMinutes"`
	Guest           models.GuestContact `json:"guest"`
	GuestNote       string              `json:"guestNote,omitempty"`
	CreatedBy       string              `json:"createdBy,omitempty"`
}

// Scheduler orchestrates booking creation: shape validation, offerability,
// conflict check, then a pending insert with buffers snapshotted from the
// template.
type Scheduler interface {
	CreateBooking(input CreateBookingInput) (*models.Booking, error)
}

// DefaultScheduler is the production implementation. All writes for a given
// host serialize on the host lock table, so the check-then-insert pair is
// atomic within this process; the partial unique index on (host_id, start)
// backstops it at the store.
type DefaultScheduler struct {
	Repo         bookingRepo.Repository
	Availability availability.Service
	Templates    availabilityRepo.Repository
	Conflicts    ConflictChecker
	Events       DashboardNotifier
	locks        hostLockTable
}

// CreateBooking validates and persists a new pending booking. Each step
// short-circuits on failure; nothing is written on any failure path.
func (s *DefaultScheduler) CreateBooking(input CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	if !input.Start.Before(input.End) {
		return nil, newError(CodeInvalidRange, "booking start must be before end")
	}
	if input.End.Sub(input.Start) != time.Duration(input.DurationMinutes)*time.Minute {
		return nil, newError(CodeInvalidRange, "booking length does not match the requested duration")
	}

	tpl, err := s.Templates.GetByID(input.AvailabilityID)
	if err != nil {
		if err == availabilityRepo.ErrNotFound {
			return nil, newError(CodeNotFound, "availability template not found")
		}
		return nil, err
	}
	if tpl.HostID != input.HostID {
		return nil, newError(CodeNotFound, "availability template not found")
	}

	mu := s.locks.lock(input.HostID)
	defer mu.Unlock()

	result, err := s.Availability.IsSlotOfferable(tpl, input.Start, input.End, input.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if !result.Offerable {
		return nil, newNotOfferableError(result.Reason)
	}

	overlap, err := s.Conflicts.HasOverlap(input.HostID, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, newError(CodeSlotConflict, "that time is no longer available")
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:                   uuid.New().String(),
		HostID:               input.HostID,
		AvailabilityID:       tpl.ID,
		Guest:                input.Guest,
		Start:                input.Start.UTC(),
		End:                  input.End.UTC(),
		Duration:             input.DurationMinutes,
		BufferBefore:         tpl.BufferBefore,
		BufferAfter:          tpl.BufferAfter,
		Status:               models.StatusPending,
		CreatedByPrincipalID: input.CreatedBy,
		Notes:                models.BookingNotes{GuestNote: input.GuestNote},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.Repo.Create(b); err != nil {
		return nil, err
	}

	logger.Info("booking created",
		zap.String("bookingID", b.ID),
		zap.String("hostID", b.HostID),
		zap.Time("start", b.Start))

	if s.Events != nil {
		s.Events.BookingChanged(b.HostID)
	}
	return b, nil
}
