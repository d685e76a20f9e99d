package booking

import (
	"time"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
	"meetbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderScheduler queues the start-minus-lead reminders for a confirmed
// booking. Implemented by the tasks package; nil disables reminders.
type ReminderScheduler interface {
	ScheduleForBooking(b *models.Booking) error
}

// StateMachine governs booking status transitions.
type StateMachine interface {
	// SetStatus transitions the booking, authorized to the owning host
	// only. Confirming assigns a stable meeting room token and computes
	// the access window from the snapshotted buffers.
	SetStatus(bookingID string, newStatus models.BookingStatus, actingPrincipalID string) (*models.Booking, error)
}

// DefaultStateMachine is the production implementation.
type DefaultStateMachine struct {
	Repo      bookingRepo.Repository
	Events    DashboardNotifier
	Reminders ReminderScheduler
	locks     hostLockTable
}

// validTransitions lists the reachable states from each status. Cancelled
// and rescheduled are terminal; a reschedule flow creates a new booking and
// marks the original rescheduled.
var validTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled, models.StatusRescheduled},
	models.StatusConfirmed: {models.StatusCancelled, models.StatusRescheduled},
}

func transitionAllowed(from, to models.BookingStatus) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (m *DefaultStateMachine) SetStatus(bookingID string, newStatus models.BookingStatus, actingPrincipalID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	switch newStatus {
	case models.StatusConfirmed, models.StatusCancelled, models.StatusRescheduled:
	default:
		return nil, newError(CodeInvalidStatus, "unknown target status")
	}

	b, err := m.Repo.GetByID(bookingID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, newError(CodeNotFound, "booking not found")
		}
		return nil, err
	}

	// Only the owning host may transition a booking. Report not-found so a
	// probing non-owner learns nothing about the booking's existence. The
	// owner never changes, so this check is safe on the unlocked read.
	if b.HostID != actingPrincipalID {
		return nil, newError(CodeNotFound, "booking not found")
	}

	// The unlocked read only located the host shard. Status decisions must
	// run against fresh state under the same lock as the write, or two
	// concurrent confirms could each mint their own room token.
	mu := m.locks.lock(b.HostID)
	defer mu.Unlock()

	b, err = m.Repo.GetByID(bookingID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, newError(CodeNotFound, "booking not found")
		}
		return nil, err
	}

	// Re-confirming a confirmed booking must not regenerate the room token
	// or recompute the access window: the meeting link is already shared.
	if b.Status == newStatus {
		return b, nil
	}

	if !transitionAllowed(b.Status, newStatus) {
		return nil, newError(CodeInvalidStatus, "booking cannot move from "+string(b.Status)+" to "+string(newStatus))
	}

	b.Status = newStatus
	switch newStatus {
	case models.StatusConfirmed:
		if b.MeetingRoomID == "" {
			b.MeetingRoomID = uuid.New().String()
		}
		accessStart := b.Start.Add(-time.Duration(b.BufferBefore) * time.Minute)
		accessEnd := b.End.Add(time.Duration(b.BufferAfter) * time.Minute)
		b.AccessStart = &accessStart
		b.AccessEnd = &accessEnd
	default:
		// Access window and room token exist iff confirmed.
		b.AccessStart = nil
		b.AccessEnd = nil
		b.MeetingRoomID = ""
	}

	if err := m.Repo.Update(b.ID, b); err != nil {
		return nil, err
	}

	logger.Info("booking status changed",
		zap.String("bookingID", b.ID),
		zap.String("hostID", b.HostID),
		zap.String("status", string(b.Status)))

	if newStatus == models.StatusConfirmed && m.Reminders != nil {
		if err := m.Reminders.ScheduleForBooking(b); err != nil {
			// Reminder loss is tolerable; the booking itself is confirmed.
			logger.Error("failed to schedule reminders",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	if m.Events != nil {
		m.Events.BookingChanged(b.HostID)
	}
	return b, nil
}
