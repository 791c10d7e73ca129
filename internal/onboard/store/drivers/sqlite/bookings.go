package sqlite

import (
	"context"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type bookingsRepo struct {
	q *gen.Queries
}

func (r *bookingsRepo) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	id, err := r.q.CreateBooking(ctx, gen.CreateBookingParams{
		ProfessionalID: b.ProfessionalID,
		ClientID:       b.ClientID,
		ServiceID:      b.ServiceID,
		Date:           b.Date,
		Time:           b.Time,
		Status:         string(b.Status),
	})
	if err != nil {
		return domain.Booking{}, mapConstraint(err)
	}

	row, err := r.q.GetBookingByID(ctx, id)
	if err != nil {
		return domain.Booking{}, mapNotFound(err)
	}
	return mapBooking(row), nil
}

func (r *bookingsRepo) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	n, err := r.q.UpdateBookingStatus(ctx, gen.UpdateBookingStatusParams{
		Status: string(status),
		ID:     id,
	})
	return requireOne(n, err, store.ErrNotFound)
}

func (r *bookingsRepo) NextUpcomingBooking(ctx context.Context, professionalID, clientID int64) (domain.Booking, error) {
	row, err := r.q.NextUpcomingBooking(ctx, gen.NextUpcomingBookingParams{
		ProfessionalID: professionalID,
		ClientID:       clientID,
	})
	if err != nil {
		return domain.Booking{}, mapNotFound(err)
	}
	return mapBooking(row), nil
}

func (r *bookingsRepo) RecentBookings(ctx context.Context, professionalID, clientID int64, limit int) ([]domain.Booking, error) {
	rows, err := r.q.RecentBookings(ctx, gen.RecentBookingsParams{
		ProfessionalID: professionalID,
		ClientID:       clientID,
		Limit:          int64(limit),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBooking(row))
	}
	return out, nil
}

func (r *bookingsRepo) FirstServiceID(ctx context.Context, professionalID, clientID int64) (int64, error) {
	id, err := r.q.FirstServiceID(ctx, gen.FirstServiceIDParams{
		ProfessionalID: professionalID,
		ClientID:       clientID,
	})
	if err != nil {
		return 0, mapNotFound(err)
	}
	return id, nil
}
