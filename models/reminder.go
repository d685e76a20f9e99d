package models

// ReminderTarget identifies which party a reminder task addresses.
const (
	ReminderTargetGuest = "guest"
	ReminderTargetHost  = "host"
)

// ReminderPayload is the body of a queued reminder task. Email is resolved at
// enqueue time so the worker does not need the auth collaborator.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Target    string `json:"target"` // "guest" or "host"
	Email     string `json:"email"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}
