package signaling

import "errors"

// Role is a WebRTC signaling role. The first session in a room waits as the
// responder; the second drives the handshake as the initiator.
type Role string

const (
	RoleResponder Role = "responder"
	RoleInitiator Role = "initiator"
)

// Phase is the room pairing state. Roles and the room-full refusal fall out
// of the phase transition, never out of ad hoc occupancy arithmetic.
type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseAwaitingPeer
	PhasePaired
)

// ErrRoomFull is returned for a third join attempt on an occupied room.
var ErrRoomFull = errors.New("meeting room is full")

// Peer is one connected signaling session. Send must not block; transport
// implementations enqueue to a buffered outbound channel.
type Peer interface {
	SessionID() string
	Send(ev ServerEvent)
}

type occupant struct {
	peer Peer
	role Role
}

// room holds the pairing state for one meeting room id. It is a plain state
// machine; the Hub's lock is its single mutation point.
type room struct {
	id        string
	phase     Phase
	occupants []*occupant // join order
}

// join admits a peer and returns its role plus the peer to notify with
// peer_ready (non-nil only on the Empty-to-Paired second join).
func (r *room) join(p Peer) (Role, Peer, error) {
	switch r.phase {
	case PhaseEmpty:
		r.occupants = append(r.occupants, &occupant{peer: p, role: RoleResponder})
		r.phase = PhaseAwaitingPeer
		return RoleResponder, nil, nil
	case PhaseAwaitingPeer:
		waiting := r.occupants[0].peer
		r.occupants = append(r.occupants, &occupant{peer: p, role: RoleInitiator})
		r.phase = PhasePaired
		return RoleInitiator, waiting, nil
	default:
		return "", nil, ErrRoomFull
	}
}

// leave removes the session if present and reports whether the room is now
// empty. A surviving occupant of a paired room goes back to waiting, so the
// next join is treated as brand new and assigned by current occupancy.
func (r *room) leave(sessionID string) (removed, empty bool) {
	kept := r.occupants[:0]
	for _, o := range r.occupants {
		if o.peer.SessionID() == sessionID {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	r.occupants = kept

	switch len(r.occupants) {
	case 0:
		r.phase = PhaseEmpty
	case 1:
		r.phase = PhaseAwaitingPeer
	}
	return removed, len(r.occupants) == 0
}

// others returns every occupant except the named session.
func (r *room) others(sessionID string) []Peer {
	var peers []Peer
	for _, o := range r.occupants {
		if o.peer.SessionID() != sessionID {
			peers = append(peers, o.peer)
		}
	}
	return peers
}
