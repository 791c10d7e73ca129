package sqlite

import (
	"context"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type paymentsRepo struct {
	q *gen.Queries
}

func (r *paymentsRepo) CreatePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	id, err := r.q.CreatePayment(ctx, gen.CreatePaymentParams{
		ProfessionalID: p.ProfessionalID,
		ClientID:       p.ClientID,
		BookingID:      mapOptionalInt64(p.BookingID),
		Amount:         p.Amount,
		Status:         string(p.Status),
	})
	if err != nil {
		return domain.Payment{}, mapConstraint(err)
	}

	row, err := r.q.GetPaymentByID(ctx, id)
	if err != nil {
		return domain.Payment{}, mapNotFound(err)
	}
	return mapPayment(row), nil
}

func (r *paymentsRepo) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	n, err := r.q.UpdatePaymentStatus(ctx, gen.UpdatePaymentStatusParams{
		Status: string(status),
		ID:     id,
	})
	return requireOne(n, err, store.ErrNotFound)
}

func (r *paymentsRepo) SumVerifiedPayments(ctx context.Context, professionalID, clientID int64) (float64, error) {
	return r.q.SumVerifiedPayments(ctx, gen.SumVerifiedPaymentsParams{
		ProfessionalID: professionalID,
		ClientID:       clientID,
	})
}
