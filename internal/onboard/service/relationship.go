package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

const DefaultRecentLimit = 5

// RelationshipService recomputes the derived state of a (professional,
// client) pair from its bookings and payments and stores it.
type RelationshipService struct {
	Store        store.Store
	Materializer *Materializer
	RecentLimit  int
}

// Refresh recomputes the snapshot for the pair in full and upserts it with a
// fresh summary and embedding. recentLimit <= 0 uses RecentLimit.
func (s *RelationshipService) Refresh(
	ctx context.Context,
	professionalID, clientID int64,
	recentLimit int,
) (domain.RelationshipState, error) {
	ctx = slogx.With(ctx,
		slog.Int64("professional_id", professionalID),
		slog.Int64("client_id", clientID),
	)
	log := slogx.FromContext(ctx)

	pro, err := s.Store.Professionals().GetProfessionalByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RelationshipState{}, ErrProfessionalNotFound
		}
		return domain.RelationshipState{}, err
	}
	client, err := s.Store.Clients().GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.RelationshipState{}, ErrClientNotFound
		}
		return domain.RelationshipState{}, err
	}

	snap, err := s.Aggregate(ctx, professionalID, clientID, recentLimit)
	if err != nil {
		log.Error("failed to aggregate relationship", slog.Any("error", err))
		return domain.RelationshipState{}, err
	}

	st, err := s.Materializer.Materialize(ctx, pro, client, snap)
	if err != nil {
		return domain.RelationshipState{}, err
	}

	log.Info("relationship refreshed",
		slog.Int("recent", len(snap.RecentBookings)),
		slog.Float64("pending_balance", snap.PendingBalance),
	)
	return st, nil
}

// Aggregate reads the pair's history and computes the snapshot. The four
// reads are independent and run concurrently.
func (s *RelationshipService) Aggregate(
	ctx context.Context,
	professionalID, clientID int64,
	recentLimit int,
) (domain.RelationshipSnapshot, error) {
	if recentLimit <= 0 {
		recentLimit = s.RecentLimit
	}
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	var (
		next   *domain.BookingRef
		recent []domain.Booking
		paid   float64
		price  float64
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b, err := s.Store.Bookings().NextUpcomingBooking(gctx, professionalID, clientID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return nil
		case err != nil:
			return fmt.Errorf("next booking: %w", err)
		}
		ref := domain.RefOf(b)
		next = &ref
		return nil
	})

	g.Go(func() error {
		var err error
		recent, err = s.Store.Bookings().RecentBookings(gctx, professionalID, clientID, recentLimit)
		if err != nil {
			return fmt.Errorf("recent bookings: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		paid, err = s.Store.Payments().SumVerifiedPayments(gctx, professionalID, clientID)
		if err != nil {
			return fmt.Errorf("verified payments: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		price, err = s.mainServicePrice(gctx, professionalID, clientID)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.RelationshipSnapshot{}, err
	}

	billable := 0
	refs := make([]domain.BookingRef, 0, len(recent))
	for _, b := range recent {
		refs = append(refs, domain.RefOf(b))
		if slices.Contains(domain.BillableStatuses, b.Status) {
			billable++
		}
	}

	estimated := float64(billable) * price
	return domain.RelationshipSnapshot{
		NextBooking:    next,
		RecentBookings: refs,
		TotalPaid:      paid,
		EstimatedCost:  estimated,
		PendingBalance: max(estimated-paid, 0),
	}, nil
}

// mainServicePrice prices the service of the first booking recorded for the
// pair. No booking, no service row or no price all count as 0.
func (s *RelationshipService) mainServicePrice(ctx context.Context, professionalID, clientID int64) (float64, error) {
	serviceID, err := s.Store.Bookings().FirstServiceID(ctx, professionalID, clientID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("main service: %w", err)
	}

	svc, err := s.Store.Services().GetServiceByID(ctx, serviceID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("main service %d: %w", serviceID, err)
	}
	if svc.Price == nil {
		return 0, nil
	}
	return *svc.Price, nil
}
