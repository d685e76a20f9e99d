package booking

import (
	"sync"
	"time"

	availabilityRepo "meetbook/database/repository/availability"
	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
)

// memBookingRepo is an in-memory stand-in for the Mongo repository. Overlap
// and cap queries mirror the store's half-open semantics.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBookingRepo) GetByMeetingRoom(roomID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.MeetingRoomID == roomID && roomID != "" {
			clone := *b
			return &clone, nil
		}
	}
	return nil, bookingRepo.ErrNotFound
}

func (r *memBookingRepo) Update(id string, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrNotFound
	}
	clone := *b
	r.bookings[id] = &clone
	return nil
}

func (r *memBookingRepo) HasActiveOverlap(hostID string, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.HostID != hostID || !b.IsActive() {
			continue
		}
		if b.Start.Before(end) && b.End.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBookingRepo) CountActiveBetween(hostID string, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.HostID != hostID || !b.IsActive() {
			continue
		}
		if !b.Start.Before(from) && b.Start.Before(to) {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) ListByHost(hostID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.HostID == hostID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByCreator(principalID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CreatedByPrincipalID == principalID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) RecentByHost(hostID string, limit int64) ([]models.Booking, error) {
	out, _ := r.ListByHost(hostID)
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memBookingRepo) CountByHost(hostID string) (int64, error) {
	out, _ := r.ListByHost(hostID)
	return int64(len(out)), nil
}

func (r *memBookingRepo) CountByHostStatus(hostID string, status models.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.HostID == hostID && b.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) CountUpcomingConfirmed(hostID string, after time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.HostID == hostID && b.Status == models.StatusConfirmed && b.Start.After(after) {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *memBookingRepo) TopHosts(limit int64) ([]models.HostBookingCount, error) {
	return nil, nil
}

func (r *memBookingRepo) SetReminderSent(id, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if target == models.ReminderTargetHost {
		b.ReminderSentToHost = true
	} else {
		b.ReminderSentToGuest = true
	}
	return nil
}

func (r *memBookingRepo) EnsureIndexes() error { return nil }

// memTemplateRepo serves availability templates from a map.
type memTemplateRepo struct {
	templates map[string]*models.AvailabilityTemplate
}

func (r *memTemplateRepo) Create(tpl *models.AvailabilityTemplate) error { return nil }

func (r *memTemplateRepo) GetByID(id string) (*models.AvailabilityTemplate, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, availabilityRepo.ErrNotFound
	}
	clone := *tpl
	return &clone, nil
}

func (r *memTemplateRepo) GetByHost(hostID string) ([]models.AvailabilityTemplate, error) {
	return nil, nil
}
func (r *memTemplateRepo) ListAll() ([]models.AvailabilityTemplate, error) { return nil, nil }
func (r *memTemplateRepo) Update(id, hostID string, tpl *models.AvailabilityTemplate) error {
	return nil
}
func (r *memTemplateRepo) Delete(id, hostID string) error { return nil }
func (r *memTemplateRepo) EnsureIndexes() error           { return nil }

// recordingNotifier counts change signals.
type recordingNotifier struct {
	mu      sync.Mutex
	changed []string
}

func (n *recordingNotifier) BookingChanged(hostID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, hostID)
}

// recordingReminders captures scheduled bookings.
type recordingReminders struct {
	scheduled []string
}

func (r *recordingReminders) ScheduleForBooking(b *models.Booking) error {
	r.scheduled = append(r.scheduled, b.ID)
	return nil
}
