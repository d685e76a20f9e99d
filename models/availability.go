package models

import "time"

// WeeklySlot is one recurring window in a host's weekly template. Day is a
// weekday name matched case-insensitively; Start/End are "HH:MM" local to the
// template's timezone.
type WeeklySlot struct {
	Day   string `bson:"day" json:"day"`
	Start string `bson:"start" json:"start"`
	End   string `bson:"end" json:"end"`
}

// AvailabilityTemplate is a host's recurring weekly availability, together
// with the booking rules applied against it.
type AvailabilityTemplate struct {
	ID           string       `bson:"id" json:"id"`
	HostID       string       `bson:"host_id" json:"hostId"`
	Weekly       []WeeklySlot `bson:"weekly" json:"weekly"`
	BufferBefore int          `bson:"buffer_before" json:"bufferBefore"` // minutes
	BufferAfter  int          `bson:"buffer_after" json:"bufferAfter"`   // minutes
	Durations    []int        `bson:"durations" json:"durations"`        // allowed booking lengths, minutes
	MaxPerDay    int          `bson:"max_per_day" json:"maxPerDay"`
	BlockedDates []string     `bson:"blocked_dates" json:"blockedDates"` // "YYYY-MM-DD", host-local
	Timezone     string       `bson:"timezone" json:"timezone"`          // IANA zone name
	CreatedAt    time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updatedAt"`
}

// AllowsDuration reports whether the given booking length is a member of the
// template's allowed durations.
func (t *AvailabilityTemplate) AllowsDuration(minutes int) bool {
	for _, d := range t.Durations {
		if d == minutes {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether the host-local calendar date (formatted
// "YYYY-MM-DD") is in the template's blocked set.
func (t *AvailabilityTemplate) IsDateBlocked(localDate string) bool {
	for _, d := range t.BlockedDates {
		if d == localDate {
			return true
		}
	}
	return false
}
