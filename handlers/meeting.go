package handlers

import (
	"net/http"
	"time"

	"meetbook/services/booking"
	"meetbook/services/signaling"

	"github.com/gin-gonic/gin"
)

// MeetingAccess answers whether the caller may enter the meeting room right
// now. Clients poll this before opening the signaling socket; the response
// also says whether a peer is already waiting in the room.
func MeetingAccess(gate booking.AccessGate, presence signaling.Presence) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("roomID")

		decision, err := gate.CheckAccess(roomID, time.Now().UTC())
		if err != nil {
			writeSchedulingError(c, err)
			return
		}

		peerWaiting := false
		if presence != nil {
			peerWaiting = presence.Occupancy(roomID) > 0
		}

		// The summary deliberately omits the guest contact: anyone holding
		// the room link can call this endpoint.
		b := decision.Booking
		c.JSON(http.StatusOK, gin.H{
			"permitted": decision.Permitted,
			"bookingSummary": gin.H{
				"id":       b.ID,
				"hostId":   b.HostID,
				"start":    b.Start,
				"end":      b.End,
				"duration": b.Duration,
				"status":   b.Status,
			},
			"accessStart": decision.AccessStart,
			"accessEnd":   decision.AccessEnd,
			"peerWaiting": peerWaiting,
		})
	}
}
