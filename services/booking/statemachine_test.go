package booking

import (
	"sync"
	"testing"
	"time"

	"meetbook/models"
)

func seedBooking(t *testing.T, repo *memBookingRepo, status models.BookingStatus) *models.Booking {
	t.Helper()
	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	b := &models.Booking{
		ID:           "bk-1",
		HostID:       "host-1",
		Start:        start,
		End:          start.Add(25 * time.Minute),
		Duration:     25,
		BufferBefore: 10,
		BufferAfter:  10,
		Status:       status,
	}
	if err := repo.Create(b); err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func TestConfirmAssignsRoomAndAccessWindow(t *testing.T) {
	repo := newMemBookingRepo()
	seeded := seedBooking(t, repo, models.StatusPending)
	reminders := &recordingReminders{}
	m := &DefaultStateMachine{Repo: repo, Reminders: reminders}

	b, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-1")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if b.MeetingRoomID == "" {
		t.Error("confirmed booking has no meeting room")
	}
	if b.AccessStart == nil || b.AccessEnd == nil {
		t.Fatal("confirmed booking has no access window")
	}

	// Window is start minus bufferBefore through end plus bufferAfter.
	wantStart := seeded.Start.Add(-10 * time.Minute)
	wantEnd := seeded.End.Add(10 * time.Minute)
	if !b.AccessStart.Equal(wantStart) {
		t.Errorf("accessStart = %v, want %v", b.AccessStart, wantStart)
	}
	if !b.AccessEnd.Equal(wantEnd) {
		t.Errorf("accessEnd = %v, want %v", b.AccessEnd, wantEnd)
	}

	if len(reminders.scheduled) != 1 || reminders.scheduled[0] != seeded.ID {
		t.Errorf("reminders scheduled = %v, want [%s]", reminders.scheduled, seeded.ID)
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	repo := newMemBookingRepo()
	seeded := seedBooking(t, repo, models.StatusPending)
	m := &DefaultStateMachine{Repo: repo}

	first, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-1")
	if err != nil {
		t.Fatalf("first confirm: %v", err)
	}
	second, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-1")
	if err != nil {
		t.Fatalf("second confirm: %v", err)
	}
	if second.MeetingRoomID != first.MeetingRoomID {
		t.Errorf("room changed on re-confirm: %q then %q", first.MeetingRoomID, second.MeetingRoomID)
	}
	if !second.AccessStart.Equal(*first.AccessStart) || !second.AccessEnd.Equal(*first.AccessEnd) {
		t.Error("access window changed on re-confirm")
	}
}

func TestTransitionsClearAccessFields(t *testing.T) {
	for _, target := range []models.BookingStatus{models.StatusCancelled, models.StatusRescheduled} {
		t.Run(string(target), func(t *testing.T) {
			repo := newMemBookingRepo()
			seeded := seedBooking(t, repo, models.StatusPending)
			m := &DefaultStateMachine{Repo: repo}

			if _, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-1"); err != nil {
				t.Fatalf("confirm: %v", err)
			}
			b, err := m.SetStatus(seeded.ID, target, "host-1")
			if err != nil {
				t.Fatalf("transition to %s: %v", target, err)
			}
			if b.AccessStart != nil || b.AccessEnd != nil || b.MeetingRoomID != "" {
				t.Errorf("%s booking still carries access fields", target)
			}
		})
	}
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{"cancelled to confirmed", models.StatusCancelled, models.StatusConfirmed},
		{"rescheduled to confirmed", models.StatusRescheduled, models.StatusConfirmed},
		{"cancelled to rescheduled", models.StatusCancelled, models.StatusRescheduled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemBookingRepo()
			seeded := seedBooking(t, repo, tc.from)
			m := &DefaultStateMachine{Repo: repo}

			_, err := m.SetStatus(seeded.ID, tc.to, "host-1")
			if ErrCode(err) != CodeInvalidStatus {
				t.Errorf("code = %q, want %q (%v)", ErrCode(err), CodeInvalidStatus, err)
			}
		})
	}
}

func TestNonOwnerSeesNotFound(t *testing.T) {
	repo := newMemBookingRepo()
	seeded := seedBooking(t, repo, models.StatusPending)
	m := &DefaultStateMachine{Repo: repo}

	_, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-2")
	if ErrCode(err) != CodeNotFound {
		t.Errorf("code = %q, want %q", ErrCode(err), CodeNotFound)
	}
}

// rendezvousRepo stalls the first two reads until both have arrived, so two
// racing callers are guaranteed to see the booking before either writes.
type rendezvousRepo struct {
	*memBookingRepo
	mu    sync.Mutex
	reads int
	both  sync.WaitGroup
}

func (r *rendezvousRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	r.reads++
	n := r.reads
	r.mu.Unlock()
	if n <= 2 {
		r.both.Done()
		r.both.Wait()
	}
	return r.memBookingRepo.GetByID(id)
}

func TestConcurrentConfirmsShareOneRoom(t *testing.T) {
	inner := newMemBookingRepo()
	seeded := seedBooking(t, inner, models.StatusPending)
	repo := &rendezvousRepo{memBookingRepo: inner}
	repo.both.Add(2)
	m := &DefaultStateMachine{Repo: repo}

	type outcome struct {
		b   *models.Booking
		err error
	}
	results := make(chan outcome, 2)
	for i := 0; i < 2; i++ {
		go func() {
			b, err := m.SetStatus(seeded.ID, models.StatusConfirmed, "host-1")
			results <- outcome{b, err}
		}()
	}

	var rooms []string
	for i := 0; i < 2; i++ {
		out := <-results
		if out.err != nil {
			t.Fatalf("concurrent confirm: %v", out.err)
		}
		rooms = append(rooms, out.b.MeetingRoomID)
	}

	// Both callers must walk away holding the room that was persisted; a
	// caller left with an overwritten token has a dead meeting link.
	if rooms[0] != rooms[1] {
		t.Fatalf("concurrent confirms returned different rooms: %q and %q", rooms[0], rooms[1])
	}
	persisted, err := inner.GetByID(seeded.ID)
	if err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if persisted.MeetingRoomID != rooms[0] {
		t.Errorf("persisted room %q does not match returned room %q", persisted.MeetingRoomID, rooms[0])
	}
}

func TestUnknownTargetStatus(t *testing.T) {
	repo := newMemBookingRepo()
	seeded := seedBooking(t, repo, models.StatusPending)
	m := &DefaultStateMachine{Repo: repo}

	_, err := m.SetStatus(seeded.ID, models.BookingStatus("archived"), "host-1")
	if ErrCode(err) != CodeInvalidStatus {
		t.Errorf("code = %q, want %q", ErrCode(err), CodeInvalidStatus)
	}
}
