package models

// HostDashboardStats is the booking summary shown on a host's dashboard and
// pushed over the host-scoped event channel.
type HostDashboardStats struct {
	TotalBookings     int64 `json:"totalBookings"`
	UpcomingBookings  int64 `json:"upcomingBookings"`
	PendingBookings   int64 `json:"pendingBookings"`
	CancelledBookings int64 `json:"cancelledBookings"`
}

// HostDashboardUpdate is the payload for host_dashboard_updated events.
type HostDashboardUpdate struct {
	HostID         string                 `json:"hostId"`
	Stats          HostDashboardStats     `json:"stats"`
	Availability   []AvailabilityTemplate `json:"availability"`
	RecentBookings []Booking              `json:"recentBookings"`
}

// HostBookingCount pairs a host with their total booking count, for the
// admin top-hosts listing.
type HostBookingCount struct {
	HostID        string `bson:"_id" json:"hostId"`
	TotalBookings int64  `bson:"totalBookings" json:"totalBookings"`
}

// AdminStatsUpdate is the payload for global_dashboard_updated events and the
// admin stats endpoint.
type AdminStatsUpdate struct {
	TotalBookings int64              `json:"totalBookings"`
	TopHosts      []HostBookingCount `json:"topHosts"`
}
