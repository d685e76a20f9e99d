package availability

import (
	"testing"
	"time"

	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
)

// stubBookingCounter satisfies the repository with a fixed active-booking
// count. Anything beyond the cap query panics via the embedded nil interface.
type stubBookingCounter struct {
	bookingRepo.Repository
	count int64
}

func (s *stubBookingCounter) CountActiveBetween(hostID string, from, to time.Time) (int64, error) {
	return s.count, nil
}

func newYorkTemplate() *models.AvailabilityTemplate {
	return &models.AvailabilityTemplate{
		ID:     "tpl-1",
		HostID: "host-1",
		Weekly: []models.WeeklySlot{
			{Day: "Tuesday", Start: "09:00", End: "17:00"},
			{Day: "wednesday", Start: "13:00", End: "15:00"},
		},
		Durations:    []int{25, 50},
		MaxPerDay:    3,
		BlockedDates: []string{"2026-09-08"},
		Timezone:     "America/New_York",
	}
}

func TestIsSlotOfferable(t *testing.T) {
	// 2026-09-01 is a Tuesday; New York is UTC-4 in September.
	tuesday := func(hhUTC, mm int) time.Time {
		return time.Date(2026, time.September, 1, hhUTC, mm, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		mutate     func(tpl *models.AvailabilityTemplate)
		start      time.Time
		duration   int
		count      int64
		wantOK     bool
		wantReason OfferableReason
	}{
		{
			name:     "inside window",
			start:    tuesday(14, 0), // 10:00 local
			duration: 25,
			wantOK:   true,
		},
		{
			name:     "window boundaries inclusive",
			start:    tuesday(13, 0), // exactly 09:00 local
			duration: 25,
			wantOK:   true,
		},
		{
			name:       "duration not offered",
			start:      tuesday(14, 0),
			duration:   45,
			wantReason: ReasonDurationNotAllowed,
		},
		{
			name:       "before local window despite same UTC day",
			start:      tuesday(12, 0), // 08:00 local
			duration:   25,
			wantReason: ReasonOutsideWeekly,
		},
		{
			name:       "runs past window end",
			start:      tuesday(20, 45), // 16:45 local, ends 17:10
			duration:   25,
			wantReason: ReasonOutsideWeekly,
		},
		{
			name:       "day not in weekly template",
			start:      tuesday(14, 0).Add(48 * time.Hour), // Thursday
			duration:   25,
			wantReason: ReasonOutsideWeekly,
		},
		{
			name:     "matches lowercase day name",
			start:    time.Date(2026, time.September, 2, 17, 30, 0, 0, time.UTC), // Wed 13:30 local
			duration: 25,
			wantOK:   true,
		},
		{
			name:       "blocked host-local date",
			start:      tuesday(14, 0).AddDate(0, 0, 7),
			duration:   25,
			wantReason: ReasonDateBlocked,
		},
		{
			name:       "daily cap reached",
			start:      tuesday(14, 0),
			duration:   25,
			count:      3,
			wantReason: ReasonDailyCapReached,
		},
		{
			name: "unresolvable timezone",
			mutate: func(tpl *models.AvailabilityTemplate) {
				tpl.Timezone = "Mars/Olympus_Mons"
			},
			start:      tuesday(14, 0),
			duration:   25,
			wantReason: ReasonBadTemplate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tpl := newYorkTemplate()
			if tc.mutate != nil {
				tc.mutate(tpl)
			}
			svc := &DefaultAvailabilityService{Bookings: &stubBookingCounter{count: tc.count}}

			end := tc.start.Add(time.Duration(tc.duration) * time.Minute)
			result, err := svc.IsSlotOfferable(tpl, tc.start, end, tc.duration)
			if err != nil {
				t.Fatalf("IsSlotOfferable: %v", err)
			}
			if result.Offerable != tc.wantOK {
				t.Fatalf("offerable = %v, want %v (reason %q)", result.Offerable, tc.wantOK, result.Reason)
			}
			if !tc.wantOK && result.Reason != tc.wantReason {
				t.Errorf("reason = %q, want %q", result.Reason, tc.wantReason)
			}
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tpl *models.AvailabilityTemplate)
		wantOK bool
	}{
		{"valid", func(tpl *models.AvailabilityTemplate) {}, true},
		{"no durations", func(tpl *models.AvailabilityTemplate) { tpl.Durations = nil }, false},
		{"negative duration", func(tpl *models.AvailabilityTemplate) { tpl.Durations = []int{-5} }, false},
		{"negative buffer", func(tpl *models.AvailabilityTemplate) { tpl.BufferBefore = -1 }, false},
		{"zero daily cap", func(tpl *models.AvailabilityTemplate) { tpl.MaxPerDay = 0 }, false},
		{"bad weekday", func(tpl *models.AvailabilityTemplate) {
			tpl.Weekly = []models.WeeklySlot{{Day: "Caturday", Start: "09:00", End: "10:00"}}
		}, false},
		{"end before start", func(tpl *models.AvailabilityTemplate) {
			tpl.Weekly = []models.WeeklySlot{{Day: "Monday", Start: "10:00", End: "09:00"}}
		}, false},
		{"unparseable time", func(tpl *models.AvailabilityTemplate) {
			tpl.Weekly = []models.WeeklySlot{{Day: "Monday", Start: "9am", End: "10:00"}}
		}, false},
		{"bad blocked date", func(tpl *models.AvailabilityTemplate) {
			tpl.BlockedDates = []string{"08/09/2026"}
		}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tpl := newYorkTemplate()
			tpl.BufferBefore = 10
			tpl.BufferAfter = 10
			tc.mutate(tpl)

			err := validateTemplate(tpl)
			if tc.wantOK && err != nil {
				t.Errorf("validateTemplate: %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}
