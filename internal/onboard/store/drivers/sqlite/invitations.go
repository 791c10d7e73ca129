package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite/gen"
)

type invitationsRepo struct {
	q *gen.Queries
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) (domain.Invitation, error) {
	partial, missing, err := encodeProgress(inv.Partial, inv.Missing)
	if err != nil {
		return domain.Invitation{}, err
	}

	if _, err := r.q.CreateInvitation(ctx, gen.CreateInvitationParams{
		Phone:         inv.Phone,
		PartialData:   partial,
		MissingFields: missing,
	}); err != nil {
		return domain.Invitation{}, mapConstraint(err)
	}
	return r.GetInvitationByPhone(ctx, inv.Phone)
}

func (r *invitationsRepo) GetInvitationByPhone(ctx context.Context, phone string) (domain.Invitation, error) {
	row, err := r.q.GetInvitationByPhone(ctx, phone)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	return mapInvitation(row)
}

func (r *invitationsRepo) UpdateInvitationProgress(
	ctx context.Context,
	phone string,
	expectedVersion int64,
	partial domain.ProfessionalFields,
	missing []domain.Field,
) error {
	p, m, err := encodeProgress(partial, missing)
	if err != nil {
		return err
	}
	n, err := r.q.UpdateInvitationProgress(ctx, gen.UpdateInvitationProgressParams{
		PartialData:   p,
		MissingFields: m,
		Phone:         phone,
		Version:       expectedVersion,
	})
	return requireOne(n, err, store.ErrConflict)
}

func (r *invitationsRepo) ConsumeInvitation(
	ctx context.Context,
	phone string,
	expectedVersion int64,
	professionalID int64,
	at time.Time,
) error {
	n, err := r.q.ConsumeInvitation(ctx, gen.ConsumeInvitationParams{
		ConsumedAt:     sql.NullTime{Time: at.UTC(), Valid: true},
		ProfessionalID: sql.NullInt64{Int64: professionalID, Valid: true},
		Phone:          phone,
		Version:        expectedVersion,
	})
	return requireOne(n, err, store.ErrConflict)
}

func (r *invitationsRepo) ListInvitations(ctx context.Context, includeConsumed bool) ([]domain.Invitation, error) {
	var (
		rows []gen.Invitation
		err  error
	)
	if includeConsumed {
		rows, err = r.q.ListAllInvitations(ctx)
	} else {
		rows, err = r.q.ListOpenInvitations(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		inv, err := mapInvitation(row)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}
