package models

import "time"

// BookingStatus enumerates the booking lifecycle states.
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// ActiveStatuses are the statuses that hold a host's time: only these
// participate in overlap and per-day cap checks.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed}

// GuestContact is the embedded contact a booking is made for. It is not a
// user account; a principal may book on someone else's behalf.
type GuestContact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// BookingNotes carries free-form notes attached by either party.
type BookingNotes struct {
	HostNote  string `bson:"host_note,omitempty" json:"hostNote,omitempty"`
	GuestNote string `bson:"guest_note,omitempty" json:"guestNote,omitempty"`
}

// Booking is one reserved interval against a host's availability template.
// BufferBefore/BufferAfter are snapshotted from the template at creation so
// later template edits cannot move an existing booking's access window.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	HostID         string        `bson:"host_id" json:"hostId"`
	AvailabilityID string        `bson:"availability_id" json:"availabilityId"`
	Guest          GuestContact  `bson:"guest" json:"guest"`
	Start          time.Time     `bson:"start" json:"start"`
	End            time.Time     `bson:"end" json:"end"`
	Duration       int           `bson:"duration" json:"duration"` // minutes
	BufferBefore   int           `bson:"buffer_before" json:"bufferBefore"`
	BufferAfter    int           `bson:"buffer_after" json:"bufferAfter"`
	Status         BookingStatus `bson:"status" json:"status"`

	// Set on confirmation, cleared on any transition away from confirmed.
	AccessStart   *time.Time `bson:"access_start,omitempty" json:"accessStart,omitempty"`
	AccessEnd     *time.Time `bson:"access_end,omitempty" json:"accessEnd,omitempty"`
	MeetingRoomID string     `bson:"meeting_room_id,omitempty" json:"meetingRoomId,omitempty"`

	ReminderSentToGuest bool `bson:"reminder_sent_to_guest" json:"reminderSentToGuest"`
	ReminderSentToHost  bool `bson:"reminder_sent_to_host" json:"reminderSentToHost"`

	CreatedByPrincipalID string       `bson:"created_by_principal_id,omitempty" json:"createdByPrincipalId,omitempty"`
	Notes                BookingNotes `bson:"notes,omitempty" json:"notes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the booking holds the host's time.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
