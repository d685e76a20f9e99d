package signaling

import "encoding/json"

// Client-to-server event names on the meeting channel.
const (
	EventJoinMeetingRoom = "join_meeting_room"
	EventSignal          = "signal"
)

// Server-to-client event names on the meeting channel.
const (
	EventRoleAssigned = "role_assigned"
	EventPeerReady    = "peer_ready"
	EventRoomFull     = "room_full"
	EventAccessDenied = "access_denied"
)

// ClientEvent is an inbound message from a meeting session.
type ClientEvent struct {
	Event   string          `json:"event"`
	RoomID  string          `json:"roomId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerEvent is an outbound message to a meeting session. Payload is an
// opaque signaling blob relayed without inspection.
type ServerEvent struct {
	Event     string          `json:"event"`
	Initiator bool            `json:"initiator,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	SenderID  string          `json:"senderId,omitempty"`
}
