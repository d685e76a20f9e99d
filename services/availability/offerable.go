package availability

import (
	"fmt"
	"strings"
	"time"

	"meetbook/models"
)

// IsSlotOfferable decides whether the candidate range can be offered against
// the template. A slot is offerable iff the duration is allowed, the range
// falls entirely inside one weekly window on the matching host-local day,
// the host-local date of the start is not blocked, and the host's per-day
// cap has not been reached. Refusals come back as a reason code; the error
// return is reserved for infrastructure failures.
func (svc *DefaultAvailabilityService) IsSlotOfferable(
	tpl *models.AvailabilityTemplate,
	start, end time.Time,
	durationMinutes int,
) (OfferableResult, error) {
	loc, err := time.LoadLocation(tpl.Timezone)
	if err != nil {
		return OfferableResult{Offerable: false, Reason: ReasonBadTemplate}, nil
	}

	if !tpl.AllowsDuration(durationMinutes) {
		return OfferableResult{Offerable: false, Reason: ReasonDurationNotAllowed}, nil
	}

	localStart := start.In(loc)
	localEnd := end.In(loc)

	if !withinWeeklyWindow(tpl.Weekly, localStart, localEnd) {
		return OfferableResult{Offerable: false, Reason: ReasonOutsideWeekly}, nil
	}

	if tpl.IsDateBlocked(localStart.Format("2006-01-02")) {
		return OfferableResult{Offerable: false, Reason: ReasonDateBlocked}, nil
	}

	dayStart := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	count, err := svc.Bookings.CountActiveBetween(tpl.HostID, dayStart.UTC(), dayEnd.UTC())
	if err != nil {
		return OfferableResult{}, fmt.Errorf("failed to count bookings for cap check: %w", err)
	}
	if count >= int64(tpl.MaxPerDay) {
		return OfferableResult{Offerable: false, Reason: ReasonDailyCapReached}, nil
	}

	return OfferableResult{Offerable: true}, nil
}

// withinWeeklyWindow reports whether [localStart, localEnd] sits entirely
// inside one weekly slot whose day matches the local day of localStart.
func withinWeeklyWindow(weekly []models.WeeklySlot, localStart, localEnd time.Time) bool {
	startMin := localStart.Hour()*60 + localStart.Minute()
	endMin := localEnd.Hour()*60 + localEnd.Minute()
	// A range ending on the next local day can only fit a same-day window if
	// it ends exactly at midnight; treat that as 24:00 on the start day.
	if !sameLocalDate(localStart, localEnd) {
		if endMin != 0 {
			return false
		}
		endMin = 24 * 60
	}

	dayName := localStart.Weekday().String()
	for _, slot := range weekly {
		if !strings.EqualFold(slot.Day, dayName) {
			continue
		}
		slotStart, err1 := parseLocalTime(slot.Start)
		slotEnd, err2 := parseLocalTime(slot.End)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMin >= slotStart && endMin <= slotEnd {
			return true
		}
	}
	return false
}

func sameLocalDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
