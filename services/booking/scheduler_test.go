package booking

import (
	"testing"
	"time"

	"meetbook/models"
	"meetbook/services/availability"
)

// testTemplate covers Tuesday 09:00-17:00 New York time, 25 and 50 minute
// meetings, 10 minute buffers, at most 3 bookings a day.
func testTemplate() *models.AvailabilityTemplate {
	return &models.AvailabilityTemplate{
		ID:     "tpl-1",
		HostID: "host-1",
		Weekly: []models.WeeklySlot{
			{Day: "Tuesday", Start: "09:00", End: "17:00"},
		},
		BufferBefore: 10,
		BufferAfter:  10,
		Durations:    []int{25, 50},
		MaxPerDay:    3,
		BlockedDates: []string{"2026-09-08"},
		Timezone:     "America/New_York",
	}
}

func newTestScheduler(repo *memBookingRepo, tpl *models.AvailabilityTemplate) *DefaultScheduler {
	availSvc := &availability.DefaultAvailabilityService{Bookings: repo}
	return &DefaultScheduler{
		Repo:         repo,
		Availability: availSvc,
		Templates:    &memTemplateRepo{templates: map[string]*models.AvailabilityTemplate{tpl.ID: tpl}},
		Conflicts:    &DefaultConflictChecker{Repo: repo},
		Events:       &recordingNotifier{},
	}
}

// nyTime builds a UTC instant from New York wall-clock components.
func nyTime(t *testing.T, y int, m time.Month, d, hh, mm int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return time.Date(y, m, d, hh, mm, 0, 0, loc).UTC()
}

func TestCreateBookingSuccess(t *testing.T) {
	repo := newMemBookingRepo()
	tpl := testTemplate()
	s := newTestScheduler(repo, tpl)

	// Tuesday 2026-09-01, 10:00-10:25 New York.
	start := nyTime(t, 2026, time.September, 1, 10, 0)
	b, err := s.CreateBooking(CreateBookingInput{
		HostID:          "host-1",
		AvailabilityID:  "tpl-1",
		Start:           start,
		End:             start.Add(25 * time.Minute),
		DurationMinutes: 25,
		Guest:           models.GuestContact{Name: "Ada", Email: "ada@example.com"},
		CreatedBy:       "principal-9",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", b.Status)
	}
	if b.BufferBefore != 10 || b.BufferAfter != 10 {
		t.Errorf("buffers = %d/%d, want snapshotted 10/10", b.BufferBefore, b.BufferAfter)
	}
	if b.MeetingRoomID != "" || b.AccessStart != nil || b.AccessEnd != nil {
		t.Error("pending booking must not carry a room or access window")
	}
	if b.ID == "" {
		t.Error("booking id not assigned")
	}
	if got, _ := repo.GetByID(b.ID); got == nil {
		t.Error("booking not persisted")
	}
}

func TestCreateBookingCarriesGuestNoteOnly(t *testing.T) {
	repo := newMemBookingRepo()
	s := newTestScheduler(repo, testTemplate())

	start := nyTime(t, 2026, time.September, 1, 10, 0)
	b, err := s.CreateBooking(CreateBookingInput{
		HostID:          "host-1",
		AvailabilityID:  "tpl-1",
		Start:           start,
		End:             start.Add(25 * time.Minute),
		DurationMinutes: 25,
		GuestNote:       "please call instead of video",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.Notes.GuestNote != "please call instead of video" {
		t.Errorf("guestNote = %q", b.Notes.GuestNote)
	}
	// The host note is not writable through the guest-facing create path.
	if b.Notes.HostNote != "" {
		t.Errorf("hostNote = %q, want empty", b.Notes.HostNote)
	}
}

func TestCreateBookingRejections(t *testing.T) {
	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC) // NY 10:00 Tuesday

	tests := []struct {
		name     string
		mutate   func(in *CreateBookingInput)
		wantCode string
	}{
		{
			name: "start not before end",
			mutate: func(in *CreateBookingInput) {
				in.End = in.Start
			},
			wantCode: CodeInvalidRange,
		},
		{
			name: "length does not match duration",
			mutate: func(in *CreateBookingInput) {
				in.End = in.Start.Add(30 * time.Minute)
			},
			wantCode: CodeInvalidRange,
		},
		{
			name: "unknown template",
			mutate: func(in *CreateBookingInput) {
				in.AvailabilityID = "nope"
			},
			wantCode: CodeNotFound,
		},
		{
			name: "template owned by another host",
			mutate: func(in *CreateBookingInput) {
				in.HostID = "host-2"
			},
			wantCode: CodeNotFound,
		},
		{
			name: "duration not offered",
			mutate: func(in *CreateBookingInput) {
				in.DurationMinutes = 45
				in.End = in.Start.Add(45 * time.Minute)
			},
			wantCode: CodeSlotNotOfferable,
		},
		{
			name: "outside weekly window",
			mutate: func(in *CreateBookingInput) {
				in.Start = in.Start.Add(24 * time.Hour) // Wednesday
				in.End = in.Start.Add(25 * time.Minute)
			},
			wantCode: CodeSlotNotOfferable,
		},
		{
			name: "blocked date",
			mutate: func(in *CreateBookingInput) {
				in.Start = in.Start.AddDate(0, 0, 7) // Tuesday 2026-09-08
				in.End = in.Start.Add(25 * time.Minute)
			},
			wantCode: CodeSlotNotOfferable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestScheduler(newMemBookingRepo(), testTemplate())
			in := CreateBookingInput{
				HostID:          "host-1",
				AvailabilityID:  "tpl-1",
				Start:           start,
				End:             start.Add(25 * time.Minute),
				DurationMinutes: 25,
			}
			tc.mutate(&in)

			_, err := s.CreateBooking(in)
			if err == nil {
				t.Fatal("expected refusal, got nil error")
			}
			if got := ErrCode(err); got != tc.wantCode {
				t.Errorf("code = %q, want %q (%v)", got, tc.wantCode, err)
			}
		})
	}
}

func TestCreateBookingOverlap(t *testing.T) {
	repo := newMemBookingRepo()
	s := newTestScheduler(repo, testTemplate())

	start := nyTime(t, 2026, time.September, 1, 10, 0)
	base := CreateBookingInput{
		HostID:          "host-1",
		AvailabilityID:  "tpl-1",
		Start:           start,
		End:             start.Add(50 * time.Minute),
		DurationMinutes: 50,
	}
	if _, err := s.CreateBooking(base); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// A request straddling the existing booking loses.
	clash := base
	clash.Start = start.Add(25 * time.Minute)
	clash.End = clash.Start.Add(50 * time.Minute)
	if _, err := s.CreateBooking(clash); ErrCode(err) != CodeSlotConflict {
		t.Errorf("overlapping request: code = %q, want %q", ErrCode(err), CodeSlotConflict)
	}

	// Back-to-back is fine: the interval is half-open so a shared endpoint
	// never conflicts.
	adjacent := base
	adjacent.Start = start.Add(50 * time.Minute)
	adjacent.End = adjacent.Start.Add(50 * time.Minute)
	if _, err := s.CreateBooking(adjacent); err != nil {
		t.Errorf("back-to-back booking refused: %v", err)
	}
}

func TestCreateBookingDailyCap(t *testing.T) {
	repo := newMemBookingRepo()
	tpl := testTemplate()
	tpl.MaxPerDay = 2
	s := newTestScheduler(repo, tpl)

	start := nyTime(t, 2026, time.September, 1, 9, 0)
	for i := 0; i < 2; i++ {
		in := CreateBookingInput{
			HostID:          "host-1",
			AvailabilityID:  "tpl-1",
			Start:           start.Add(time.Duration(i) * time.Hour),
			DurationMinutes: 25,
		}
		in.End = in.Start.Add(25 * time.Minute)
		if _, err := s.CreateBooking(in); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}

	in := CreateBookingInput{
		HostID:          "host-1",
		AvailabilityID:  "tpl-1",
		Start:           start.Add(4 * time.Hour),
		DurationMinutes: 25,
	}
	in.End = in.Start.Add(25 * time.Minute)
	_, err := s.CreateBooking(in)
	if ErrCode(err) != CodeSlotNotOfferable {
		t.Fatalf("cap exceeded: code = %q, want %q", ErrCode(err), CodeSlotNotOfferable)
	}
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	repo := newMemBookingRepo()
	s := newTestScheduler(repo, testTemplate())
	m := &DefaultStateMachine{Repo: repo}

	start := nyTime(t, 2026, time.September, 1, 10, 0)
	in := CreateBookingInput{
		HostID:          "host-1",
		AvailabilityID:  "tpl-1",
		Start:           start,
		End:             start.Add(25 * time.Minute),
		DurationMinutes: 25,
	}
	b, err := s.CreateBooking(in)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := m.SetStatus(b.ID, models.StatusCancelled, "host-1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled booking no longer holds the time.
	if _, err := s.CreateBooking(in); err != nil {
		t.Errorf("rebooking a cancelled slot refused: %v", err)
	}
}
