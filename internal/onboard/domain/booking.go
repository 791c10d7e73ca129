package domain

import (
	"slices"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingAttended  BookingStatus = "ATTENDED"
	BookingNoShow    BookingStatus = "NO_SHOW"
)

var bookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled, BookingAttended, BookingNoShow}

// UpcomingStatuses qualify a booking as the next appointment.
var UpcomingStatuses = []BookingStatus{BookingConfirmed, BookingAttended, BookingPending}

// BillableStatuses count towards the estimated cost.
var BillableStatuses = []BookingStatus{BookingAttended, BookingConfirmed}

func (s BookingStatus) Valid() bool { return slices.Contains(bookingStatuses, s) }

// Booking dates are "2006-01-02" and times "15:04", so lexical order is
// chronological order.
type Booking struct {
	ID             int64
	ProfessionalID int64
	ClientID       int64
	ServiceID      int64
	Date           string
	Time           string
	Status         BookingStatus
	CreatedAt      time.Time
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentVerified PaymentStatus = "VERIFIED"
	PaymentRejected PaymentStatus = "REJECTED"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentVerified || s == PaymentRejected
}

type Payment struct {
	ID             int64
	ProfessionalID int64
	ClientID       int64
	BookingID      *int64
	Amount         float64
	Status         PaymentStatus
	CreatedAt      time.Time
}
