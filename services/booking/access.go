package booking

import (
	"time"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
)

// AccessDecision is the outcome of a meeting-access check.
type AccessDecision struct {
	Permitted   bool            `json:"permitted"`
	Booking     *models.Booking `json:"booking"`
	AccessStart time.Time       `json:"accessStart"`
	AccessEnd   time.Time       `json:"accessEnd"`
}

// AccessGate answers whether a meeting room may be joined at a given
// instant. The check is advisory for the signaling layer: signaling enforces
// occupancy only and trusts this gate for timing.
type AccessGate interface {
	CheckAccess(meetingRoomID string, at time.Time) (*AccessDecision, error)
}

// DefaultAccessGate compares wall-clock time against the confirmed
// booking's access window. Grace absorbs client/server clock skew at the
// lower bound only; the upper bound is a hard cutoff.
type DefaultAccessGate struct {
	Repo  bookingRepo.Repository
	Grace time.Duration
}

func (g *DefaultAccessGate) CheckAccess(meetingRoomID string, at time.Time) (*AccessDecision, error) {
	b, err := g.Repo.GetByMeetingRoom(meetingRoomID)
	if err != nil {
		if err == bookingRepo.ErrNotFound {
			return nil, newError(CodeNotFound, "meeting room not found")
		}
		return nil, err
	}
	if b.Status != models.StatusConfirmed || b.AccessStart == nil || b.AccessEnd == nil {
		return nil, newError(CodeNotFound, "meeting room not found")
	}

	permitted := !at.Before(b.AccessStart.Add(-g.Grace)) && !at.After(*b.AccessEnd)
	return &AccessDecision{
		Permitted:   permitted,
		Booking:     b,
		AccessStart: *b.AccessStart,
		AccessEnd:   *b.AccessEnd,
	}, nil
}
