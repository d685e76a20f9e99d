package signaling

import (
	"encoding/json"
	"sync"

	"meetbook/utils"

	"go.uber.org/zap"
)

// Hub is the in-memory room registry: meeting room id to connected
// sessions. Rooms are created lazily on first join and deleted when the
// last occupant leaves. The registry is single-process; coordinating rooms
// across instances is out of scope.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]*room
	presence Presence
}

// NewHub constructs an empty registry. presence may be nil.
func NewHub(presence Presence) *Hub {
	return &Hub{
		rooms:    make(map[string]*room),
		presence: presence,
	}
}

// Join admits a session into a room and returns its assigned role. The
// waiting responder, if any, is notified that its peer is ready. The hub
// lock is the single mutation point for every room, so a third occupant can
// never slip in between the occupancy check and the registry update.
func (h *Hub) Join(roomID string, p Peer) (Role, error) {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		r = &room{id: roomID}
		h.rooms[roomID] = r
	}
	role, waiting, err := r.join(p)
	if err != nil {
		h.mu.Unlock()
		return "", err
	}
	count := len(r.occupants)
	h.mu.Unlock()

	h.mirrorOccupancy(roomID, count)
	utils.GetLogger().Info("session joined meeting room",
		zap.String("roomID", roomID),
		zap.String("sessionID", p.SessionID()),
		zap.String("role", string(role)))

	if waiting != nil {
		waiting.Send(ServerEvent{Event: EventPeerReady})
	}
	return role, nil
}

// Leave removes a session from a room, deleting the room's record entirely
// once it empties. Safe to call for sessions that never joined.
func (h *Hub) Leave(roomID, sessionID string) {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	removed, empty := r.leave(sessionID)
	count := len(r.occupants)
	if empty {
		delete(h.rooms, roomID)
	}
	h.mu.Unlock()

	if !removed {
		return
	}
	h.mirrorOccupancy(roomID, count)
	utils.GetLogger().Info("session left meeting room",
		zap.String("roomID", roomID), zap.String("sessionID", sessionID))
}

// Relay forwards an opaque signaling payload to every other occupant of the
// room — in this two-party design, exactly one recipient. Payload contents
// are never inspected.
func (h *Hub) Relay(roomID, fromSessionID string, payload json.RawMessage) {
	h.mu.Lock()
	r, ok := h.rooms[roomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	peers := r.others(fromSessionID)
	h.mu.Unlock()

	for _, p := range peers {
		p.Send(ServerEvent{Event: EventSignal, Payload: payload, SenderID: fromSessionID})
	}
}

// OccupantCount reports current room occupancy; 0 for unknown rooms.
func (h *Hub) OccupantCount(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.rooms[roomID]; ok {
		return len(r.occupants)
	}
	return 0
}

func (h *Hub) mirrorOccupancy(roomID string, count int) {
	if h.presence == nil {
		return
	}
	h.presence.SetOccupancy(roomID, count)
}
