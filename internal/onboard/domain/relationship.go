package domain

import "time"

// BookingRef is the slice of a booking kept in a relationship snapshot.
type BookingRef struct {
	ID        int64         `json:"id"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	ServiceID int64         `json:"service_id"`
	Status    BookingStatus `json:"status"`
}

func RefOf(b Booking) BookingRef {
	return BookingRef{ID: b.ID, Date: b.Date, Time: b.Time, ServiceID: b.ServiceID, Status: b.Status}
}

// RelationshipSnapshot is recomputed in full on every refresh.
type RelationshipSnapshot struct {
	NextBooking    *BookingRef  `json:"next_booking"`
	RecentBookings []BookingRef `json:"recent_bookings"`
	TotalPaid      float64      `json:"total_paid"`
	EstimatedCost  float64      `json:"estimated_cost"`
	PendingBalance float64      `json:"pending_balance"`
}

// RelationshipState is the persisted summary for one (professional, client)
// pair. At most one exists per pair.
type RelationshipState struct {
	ID             int64
	ProfessionalID int64
	ClientID       int64
	Snapshot       RelationshipSnapshot
	Summary        string
	Embedding      []float32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
