package handlers

import (
	"net/http"
	"sync"
	"time"

	"meetbook/services/booking"
	"meetbook/services/signaling"
	"meetbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10

	outboundBuffer = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origins are vetted upstream by the CORS layer.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// meetingClient is one connected signaling session. All writes to the socket
// go through the outbound channel so a single goroutine owns the connection,
// which keeps per-sender delivery order intact.
type meetingClient struct {
	sessionID string
	conn      *websocket.Conn
	outbound  chan signaling.ServerEvent
	closeOnce sync.Once
}

func (cl *meetingClient) SessionID() string { return cl.sessionID }

// Send enqueues without blocking; a full buffer drops the event for this
// session rather than stalling the hub.
func (cl *meetingClient) Send(ev signaling.ServerEvent) {
	select {
	case cl.outbound <- ev:
	default:
		utils.GetLogger().Warn("signaling event dropped for slow session",
			zap.String("sessionID", cl.sessionID), zap.String("event", ev.Event))
	}
}

func (cl *meetingClient) close() {
	cl.closeOnce.Do(func() {
		close(cl.outbound)
	})
}

func (cl *meetingClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-cl.outbound:
			cl.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// MeetingSocket upgrades to a signaling session. The session joins at most
// one room; the access gate is consulted before the hub admits it. Dropping
// the connection leaves the room, and a reconnect is a brand-new join with a
// fresh role assignment.
func MeetingSocket(gate booking.AccessGate, hub *signaling.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("meeting socket upgrade failed", zap.Error(err))
			return
		}

		cl := &meetingClient{
			sessionID: uuid.New().String(),
			conn:      conn,
			outbound:  make(chan signaling.ServerEvent, outboundBuffer),
		}
		go cl.writePump()

		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})

		joinedRoom := ""
		defer func() {
			if joinedRoom != "" {
				hub.Leave(joinedRoom, cl.sessionID)
			}
			cl.close()
			conn.Close()
		}()

		for {
			var ev signaling.ClientEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}

			switch ev.Event {
			case signaling.EventJoinMeetingRoom:
				if joinedRoom != "" || ev.RoomID == "" {
					continue
				}
				decision, err := gate.CheckAccess(ev.RoomID, time.Now().UTC())
				if err != nil || !decision.Permitted {
					cl.Send(signaling.ServerEvent{Event: signaling.EventAccessDenied})
					continue
				}
				role, err := hub.Join(ev.RoomID, cl)
				if err == signaling.ErrRoomFull {
					cl.Send(signaling.ServerEvent{Event: signaling.EventRoomFull})
					continue
				}
				if err != nil {
					logger.Error("meeting room join failed",
						zap.String("roomID", ev.RoomID), zap.Error(err))
					continue
				}
				joinedRoom = ev.RoomID
				cl.Send(signaling.ServerEvent{
					Event:     signaling.EventRoleAssigned,
					Initiator: role == signaling.RoleInitiator,
				})

			case signaling.EventSignal:
				if joinedRoom == "" {
					continue
				}
				hub.Relay(joinedRoom, cl.sessionID, ev.Payload)
			}
		}
	}
}
