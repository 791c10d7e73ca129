package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/slogx"
)

type InvitationService struct {
	Store store.Store
}

// CreateInvitation opens onboarding for phone. A phone may hold either an
// invitation or a professional record, never both.
func (s *InvitationService) CreateInvitation(ctx context.Context, phone string) (domain.Invitation, error) {
	phone = NormalizePhone(phone)
	log := slogx.FromContext(ctx).With(slogx.Phone(phone))

	if phone == "" {
		return domain.Invitation{}, ErrInvalidPhone
	}

	var created domain.Invitation
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Professionals().GetProfessionalByPhone(ctx, phone)
		switch {
		case err == nil:
			return ErrAlreadyProfessional
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		inv, err := tx.Invitations().CreateInvitation(ctx, domain.Invitation{
			Phone:   phone,
			Missing: domain.RequiredFields,
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrInvitationExists
			}
			return err
		}
		created = inv
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyProfessional) || errors.Is(err, ErrInvitationExists) {
			log.Warn("invitation rejected", slog.Any("reason", err))
		} else {
			log.Error("failed to create invitation", slog.Any("error", err))
		}
		return domain.Invitation{}, err
	}

	log.Info("invitation created", slog.Int64("invitation_id", created.ID))
	return created, nil
}

func (s *InvitationService) ListInvitations(ctx context.Context, includeConsumed bool) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListInvitations(ctx, includeConsumed)
}
