package dashboard

import (
	"time"

	availabilityRepo "meetbook/database/repository/availability"
	bookingRepo "meetbook/database/repository/booking"
	"meetbook/models"
	"meetbook/utils"

	"go.uber.org/zap"
)

// Event types pushed over dashboard channels.
const (
	EventHostDashboardUpdated   = "host_dashboard_updated"
	EventGlobalDashboardUpdated = "global_dashboard_updated"
)

const (
	recentBookingsLimit = 5
	topHostsLimit       = 5
)

// Notifier assembles dashboard snapshots and publishes them on booking or
// availability mutations. Snapshot assembly runs off the caller's goroutine
// so mutation paths never wait on dashboard reads.
type Notifier struct {
	Bus       *EventBus
	Bookings  bookingRepo.Repository
	Templates availabilityRepo.Repository
}

// BookingChanged pushes a fresh host snapshot to the host's channel and
// fresh admin stats to the global channel.
func (n *Notifier) BookingChanged(hostID string) {
	go n.pushHost(hostID)
	go n.pushGlobal()
}

// AvailabilityChanged pushes a fresh host snapshot only; availability edits
// don't move the global stats.
func (n *Notifier) AvailabilityChanged(hostID string) {
	go n.pushHost(hostID)
}

func (n *Notifier) pushHost(hostID string) {
	if n.Bus.SubscriberCount(hostID) == 0 {
		return
	}
	update, err := n.HostSnapshot(hostID)
	if err != nil {
		utils.GetLogger().Error("failed to build host dashboard snapshot",
			zap.String("hostID", hostID), zap.Error(err))
		return
	}
	n.Bus.Publish(hostID, Event{Type: EventHostDashboardUpdated, Payload: update})
}

func (n *Notifier) pushGlobal() {
	if n.Bus.SubscriberCount(ScopeGlobal) == 0 {
		return
	}
	stats, err := n.AdminSnapshot()
	if err != nil {
		utils.GetLogger().Error("failed to build admin stats snapshot", zap.Error(err))
		return
	}
	n.Bus.Publish(ScopeGlobal, Event{Type: EventGlobalDashboardUpdated, Payload: stats})
}

// HostSnapshot builds the host dashboard payload: booking counters plus the
// most recent bookings.
func (n *Notifier) HostSnapshot(hostID string) (*models.HostDashboardUpdate, error) {
	total, err := n.Bookings.CountByHost(hostID)
	if err != nil {
		return nil, err
	}
	upcoming, err := n.Bookings.CountUpcomingConfirmed(hostID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	pending, err := n.Bookings.CountByHostStatus(hostID, models.StatusPending)
	if err != nil {
		return nil, err
	}
	cancelled, err := n.Bookings.CountByHostStatus(hostID, models.StatusCancelled)
	if err != nil {
		return nil, err
	}
	recent, err := n.Bookings.RecentByHost(hostID, recentBookingsLimit)
	if err != nil {
		return nil, err
	}
	templates, err := n.Templates.GetByHost(hostID)
	if err != nil {
		return nil, err
	}

	return &models.HostDashboardUpdate{
		HostID: hostID,
		Stats: models.HostDashboardStats{
			TotalBookings:     total,
			UpcomingBookings:  upcoming,
			PendingBookings:   pending,
			CancelledBookings: cancelled,
		},
		Availability:   templates,
		RecentBookings: recent,
	}, nil
}

// AdminSnapshot builds the global stats payload.
func (n *Notifier) AdminSnapshot() (*models.AdminStatsUpdate, error) {
	total, err := n.Bookings.CountAll()
	if err != nil {
		return nil, err
	}
	topHosts, err := n.Bookings.TopHosts(topHostsLimit)
	if err != nil {
		return nil, err
	}
	return &models.AdminStatsUpdate{
		TotalBookings: total,
		TopHosts:      topHosts,
	}, nil
}
