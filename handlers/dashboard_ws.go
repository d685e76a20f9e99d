package handlers

import (
	"net/http"
	"time"

	"meetbook/middleware"
	"meetbook/services/dashboard"
	"meetbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HostDashboardSocket streams host-scoped dashboard updates. Hosts may only
// watch their own scope; admins may watch any. There is no replay: the
// initial snapshot is pushed on connect and only live changes follow.
func HostDashboardSocket(bus *dashboard.EventBus, notifier *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		hostID := c.Param("hostID")
		if middleware.PrincipalID(c) != hostID && middleware.PrincipalRole(c) != middleware.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not your dashboard"})
			return
		}
		serveDashboardSocket(c, bus, hostID, func() (interface{}, error) {
			update, err := notifier.HostSnapshot(hostID)
			if err != nil {
				return nil, err
			}
			return update, nil
		}, dashboard.EventHostDashboardUpdated)
	}
}

// AdminDashboardSocket streams the global stats channel.
func AdminDashboardSocket(bus *dashboard.EventBus, notifier *dashboard.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveDashboardSocket(c, bus, dashboard.ScopeGlobal, func() (interface{}, error) {
			stats, err := notifier.AdminSnapshot()
			if err != nil {
				return nil, err
			}
			return stats, nil
		}, dashboard.EventGlobalDashboardUpdated)
	}
}

// serveDashboardSocket subscribes the connection to a bus scope and forwards
// events until either side closes. The reader goroutine only watches for
// disconnects; dashboard sessions never send anything meaningful upstream.
func serveDashboardSocket(c *gin.Context, bus *dashboard.EventBus, scope string,
	snapshot func() (interface{}, error), snapshotEvent string) {
	logger := utils.GetLogger()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("dashboard socket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sessionID := uuid.New().String()
	events := bus.Subscribe(scope, sessionID)
	defer bus.Unsubscribe(scope, sessionID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Seed the session with current state so it never renders empty while
	// waiting for the first change.
	if payload, err := snapshot(); err == nil {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(dashboard.Event{Type: snapshotEvent, Payload: payload}); err != nil {
			return
		}
	} else {
		logger.Error("failed to build initial dashboard snapshot",
			zap.String("scope", scope), zap.Error(err))
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
