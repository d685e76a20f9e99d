package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"meetbook/models"
	"meetbook/services/booking"

	"github.com/gin-gonic/gin"
)

type stubGate struct {
	decision *booking.AccessDecision
	err      error
}

func (s *stubGate) CheckAccess(meetingRoomID string, at time.Time) (*booking.AccessDecision, error) {
	return s.decision, s.err
}

type stubPresence struct {
	occupancy int
}

func (s *stubPresence) SetOccupancy(roomID string, count int) {}
func (s *stubPresence) Occupancy(roomID string) int           { return s.occupancy }

func TestMeetingAccessResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	accessStart := start.Add(-10 * time.Minute)
	accessEnd := start.Add(35 * time.Minute)
	gate := &stubGate{decision: &booking.AccessDecision{
		Permitted: true,
		Booking: &models.Booking{
			ID:       "bk-1",
			HostID:   "host-1",
			Guest:    models.GuestContact{Name: "Ada", Email: "ada@example.com"},
			Start:    start,
			End:      start.Add(25 * time.Minute),
			Duration: 25,
			Status:   models.StatusConfirmed,
		},
		AccessStart: accessStart,
		AccessEnd:   accessEnd,
	}}

	r := gin.New()
	r.GET("/api/meetings/:roomID/access", MeetingAccess(gate, &stubPresence{occupancy: 1}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/meetings/room-1/access", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var body struct {
		Permitted      bool           `json:"permitted"`
		BookingSummary map[string]any `json:"bookingSummary"`
		AccessStart    time.Time      `json:"accessStart"`
		AccessEnd      time.Time      `json:"accessEnd"`
		PeerWaiting    bool           `json:"peerWaiting"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Permitted || !body.PeerWaiting {
		t.Errorf("permitted=%v peerWaiting=%v, want both true", body.Permitted, body.PeerWaiting)
	}
	if !body.AccessStart.Equal(accessStart) || !body.AccessEnd.Equal(accessEnd) {
		t.Error("access window not echoed")
	}
	if body.BookingSummary == nil {
		t.Fatal("response has no bookingSummary")
	}
	if body.BookingSummary["hostId"] != "host-1" || body.BookingSummary["status"] != "confirmed" {
		t.Errorf("summary = %v", body.BookingSummary)
	}
	// Anyone with the link can hit this endpoint; the guest's contact
	// details stay out of the payload.
	if _, leaked := body.BookingSummary["guest"]; leaked {
		t.Error("guest contact leaked into the booking summary")
	}
}

func TestMeetingAccessUnknownRoom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gate := &stubGate{err: &booking.SchedulingError{Code: booking.CodeNotFound, Message: "meeting room not found"}}
	r := gin.New()
	r.GET("/api/meetings/:roomID/access", MeetingAccess(gate, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/meetings/nope/access", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
