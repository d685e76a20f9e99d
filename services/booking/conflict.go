package booking

import (
	"time"

	bookingRepo "meetbook/database/repository/booking"
)

// ConflictChecker decides whether a candidate range collides with an
// existing active booking for the host.
type ConflictChecker interface {
	// HasOverlap reports whether any pending or confirmed booking for the
	// host satisfies existing.Start < end && existing.End > start. The
	// intervals are half-open: touching endpoints do not conflict.
	HasOverlap(hostID string, start, end time.Time) (bool, error)
}

// DefaultConflictChecker evaluates overlap against the latest persisted
// bookings. It must run inside the scheduler's per-host serialization point
// to be authoritative; on its own it is only a point-in-time answer.
type DefaultConflictChecker struct {
	Repo bookingRepo.Repository
}

func (c *DefaultConflictChecker) HasOverlap(hostID string, start, end time.Time) (bool, error) {
	return c.Repo.HasActiveOverlap(hostID, start, end)
}
