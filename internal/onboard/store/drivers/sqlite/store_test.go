package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func ptr[T any](v T) *T { return &v }

func seedPair(t *testing.T, st store.Store) (domain.Professional, domain.Client, domain.Service) {
	t.Helper()
	ctx := context.Background()

	p, err := st.Professionals().CreateProfessional(ctx, domain.Professional{
		Phone:     "5491100000001",
		Name:      "Ana López",
		Bio:       ptr("Psychologist"),
		Embedding: []float32{0.1, 0.2, 0.3},
	})
	require.NoError(t, err)

	c, err := st.Clients().CreateClient(ctx, domain.Client{Name: "Juan"})
	require.NoError(t, err)

	svc, err := st.Services().CreateService(ctx, domain.Service{
		ProfessionalID: p.ID,
		Name:           "Session",
		Price:          ptr(100.0),
	})
	require.NoError(t, err)

	return p, c, svc
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestInvitationLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	inv, err := st.Invitations().CreateInvitation(ctx, domain.Invitation{
		Phone:   "5491100000002",
		Missing: []domain.Field{domain.FieldName},
	})
	require.NoError(t, err)
	require.False(t, inv.Consumed)
	require.Equal(t, int64(1), inv.Version)
	require.Equal(t, []domain.Field{domain.FieldName}, inv.Missing)
	require.True(t, inv.Partial.Empty())

	_, err = st.Invitations().CreateInvitation(ctx, domain.Invitation{Phone: inv.Phone})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	email := "ana@example.com"
	err = st.Invitations().UpdateInvitationProgress(ctx, inv.Phone, inv.Version,
		domain.ProfessionalFields{Email: &email}, []domain.Field{domain.FieldName})
	require.NoError(t, err)

	// Stale version loses.
	err = st.Invitations().UpdateInvitationProgress(ctx, inv.Phone, inv.Version,
		domain.ProfessionalFields{}, nil)
	require.ErrorIs(t, err, store.ErrConflict)

	got, err := st.Invitations().GetInvitationByPhone(ctx, inv.Phone)
	require.NoError(t, err)
	require.Equal(t, int64(2), got.Version)
	v, ok := got.Partial.Get(domain.FieldEmail)
	require.True(t, ok)
	require.Equal(t, email, v)

	p, _, _ := seedPair(t, st)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.Invitations().ConsumeInvitation(ctx, inv.Phone, got.Version, p.ID, at))

	consumed, err := st.Invitations().GetInvitationByPhone(ctx, inv.Phone)
	require.NoError(t, err)
	require.True(t, consumed.Consumed)
	require.NotNil(t, consumed.ConsumedAt)
	require.True(t, at.Equal(*consumed.ConsumedAt))
	require.Equal(t, p.ID, *consumed.ProfessionalID)

	// Consumption is one-way: no further progress or consume succeeds.
	err = st.Invitations().UpdateInvitationProgress(ctx, inv.Phone, consumed.Version, domain.ProfessionalFields{}, nil)
	require.ErrorIs(t, err, store.ErrConflict)
	err = st.Invitations().ConsumeInvitation(ctx, inv.Phone, consumed.Version, p.ID, at)
	require.ErrorIs(t, err, store.ErrConflict)

	open, err := st.Invitations().ListInvitations(ctx, false)
	require.NoError(t, err)
	require.Empty(t, open)

	all, err := st.Invitations().ListInvitations(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestGetInvitationNotFound(t *testing.T) {
	st := newTestStore(t)
	_, err := st.Invitations().GetInvitationByPhone(context.Background(), "nope")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfessionalRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, _, _ := seedPair(t, st)

	got, err := st.Professionals().GetProfessionalByPhone(ctx, p.Phone)
	require.NoError(t, err)
	require.Equal(t, "Ana López", got.Name)
	require.Equal(t, []float32{0.1, 0.2, 0.3}, got.Embedding)
	require.Nil(t, got.Email)
	require.Equal(t, "Psychologist", *got.Bio)

	_, err = st.Professionals().CreateProfessional(ctx, domain.Professional{
		Phone: p.Phone, Name: "Dup", Embedding: []float32{1},
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestBookingQueries(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, c, svc := seedPair(t, st)

	_, err := st.Bookings().NextUpcomingBooking(ctx, p.ID, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Bookings().FirstServiceID(ctx, p.ID, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	mk := func(date, at string, status domain.BookingStatus) domain.Booking {
		b, err := st.Bookings().CreateBooking(ctx, domain.Booking{
			ProfessionalID: p.ID, ClientID: c.ID, ServiceID: svc.ID,
			Date: date, Time: at, Status: status,
		})
		require.NoError(t, err)
		return b
	}
	mk("2025-02-10", "10:00", domain.BookingCancelled)
	second := mk("2025-02-01", "09:00", domain.BookingAttended)
	mk("2025-01-20", "18:00", domain.BookingNoShow)
	latest := mk("2025-02-10", "11:00", domain.BookingConfirmed)

	next, err := st.Bookings().NextUpcomingBooking(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, next.ID)

	recent, err := st.Bookings().RecentBookings(ctx, p.ID, c.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, latest.ID, recent[0].ID)
	require.Equal(t, "10:00", recent[1].Time)

	sid, err := st.Bookings().FirstServiceID(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, svc.ID, sid)

	require.NoError(t, st.Bookings().UpdateBookingStatus(ctx, second.ID, domain.BookingCancelled))
	next, err = st.Bookings().NextUpcomingBooking(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, latest.ID, next.ID)

	require.ErrorIs(t, st.Bookings().UpdateBookingStatus(ctx, 9999, domain.BookingCancelled), store.ErrNotFound)
}

func TestSumVerifiedPayments(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, c, _ := seedPair(t, st)

	total, err := st.Payments().SumVerifiedPayments(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Zero(t, total)

	for _, pay := range []domain.Payment{
		{Amount: 50, Status: domain.PaymentVerified},
		{Amount: 25.5, Status: domain.PaymentVerified},
		{Amount: 1000, Status: domain.PaymentRejected},
		{Amount: 10, Status: domain.PaymentPending},
	} {
		pay.ProfessionalID, pay.ClientID = p.ID, c.ID
		_, err := st.Payments().CreatePayment(ctx, pay)
		require.NoError(t, err)
	}

	total, err = st.Payments().SumVerifiedPayments(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.InDelta(t, 75.5, total, 1e-9)
}

func TestRelationshipUniquePair(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, c, _ := seedPair(t, st)

	now := time.Now().UTC()
	rs := domain.RelationshipState{
		ProfessionalID: p.ID,
		ClientID:       c.ID,
		Snapshot:       domain.RelationshipSnapshot{RecentBookings: []domain.BookingRef{}},
		Summary:        "first",
		Embedding:      []float32{1, 0},
		UpdatedAt:      now,
	}
	created, err := st.Relationships().CreateRelationship(ctx, rs)
	require.NoError(t, err)
	require.Equal(t, "first", created.Summary)

	_, err = st.Relationships().CreateRelationship(ctx, rs)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	rs.Summary = "second"
	rs.Snapshot.TotalPaid = 12.5
	require.NoError(t, st.Relationships().UpdateRelationship(ctx, rs))

	got, err := st.Relationships().GetRelationship(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "second", got.Summary)
	require.InDelta(t, 12.5, got.Snapshot.TotalPaid, 1e-9)
	require.Equal(t, []float32{1, 0}, got.Embedding)

	list, err := st.Relationships().ListRelationshipsByProfessional(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUpdatesReportMissingRows(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, c, _ := seedPair(t, st)

	pay, err := st.Payments().CreatePayment(ctx, domain.Payment{
		ProfessionalID: p.ID, ClientID: c.ID, Amount: 40, Status: domain.PaymentPending,
	})
	require.NoError(t, err)
	require.NoError(t, st.Payments().UpdatePaymentStatus(ctx, pay.ID, domain.PaymentVerified))

	total, err := st.Payments().SumVerifiedPayments(ctx, p.ID, c.ID)
	require.NoError(t, err)
	require.InDelta(t, 40.0, total, 1e-9)

	require.ErrorIs(t, st.Payments().UpdatePaymentStatus(ctx, 9999, domain.PaymentVerified), store.ErrNotFound)

	err = st.Relationships().UpdateRelationship(ctx, domain.RelationshipState{
		ProfessionalID: p.ID,
		ClientID:       c.ID,
		Summary:        "never created",
		UpdatedAt:      time.Now(),
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	err = st.Invitations().UpdateInvitationProgress(ctx, "5490000000000", 1, domain.ProfessionalFields{}, nil)
	require.ErrorIs(t, err, store.ErrConflict)
}

func TestPurgeProfessional(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	p, c, svc := seedPair(t, st)

	inv, err := st.Invitations().CreateInvitation(ctx, domain.Invitation{Phone: p.Phone})
	require.NoError(t, err)
	require.NoError(t, st.Invitations().ConsumeInvitation(ctx, p.Phone, inv.Version, p.ID, time.Now()))

	b, err := st.Bookings().CreateBooking(ctx, domain.Booking{
		ProfessionalID: p.ID, ClientID: c.ID, ServiceID: svc.ID,
		Date: "2025-01-01", Time: "10:00", Status: domain.BookingAttended,
	})
	require.NoError(t, err)
	_, err = st.Payments().CreatePayment(ctx, domain.Payment{
		ProfessionalID: p.ID, ClientID: c.ID, BookingID: &b.ID, Amount: 10, Status: domain.PaymentVerified,
	})
	require.NoError(t, err)
	_, err = st.Relationships().CreateRelationship(ctx, domain.RelationshipState{
		ProfessionalID: p.ID, ClientID: c.ID, Summary: "s", Embedding: []float32{1}, UpdatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, st.Messages().AppendMessage(ctx, domain.Message{
		Direction: domain.DirectionIn, RawSender: p.Phone, ProfessionalID: &p.ID, Text: "hola",
	}))

	require.NoError(t, st.PurgeProfessional(ctx, p.ID))

	_, err = st.Professionals().GetProfessionalByID(ctx, p.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Relationships().GetRelationship(ctx, p.ID, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = st.Services().GetServiceByID(ctx, svc.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.Invitations().GetInvitationByPhone(ctx, p.Phone)
	require.NoError(t, err)
	require.True(t, got.Consumed)
	require.Nil(t, got.ProfessionalID)

	msgs, err := st.Messages().ListMessagesBySender(ctx, p.Phone, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Nil(t, msgs[0].ProfessionalID)

	require.ErrorIs(t, st.PurgeProfessional(ctx, p.ID), store.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	sentinel := context.Canceled
	err := st.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Invitations().CreateInvitation(ctx, domain.Invitation{Phone: "111"}); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	_, err = st.Invitations().GetInvitationByPhone(ctx, "111")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMessagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	for _, m := range []domain.Message{
		{Direction: domain.DirectionIn, RawSender: "222", Text: "one"},
		{Direction: domain.DirectionOut, RawSender: "222", Text: "two"},
		{Direction: domain.DirectionIn, RawSender: "333", Text: "other"},
	} {
		require.NoError(t, st.Messages().AppendMessage(ctx, m))
	}

	msgs, err := st.Messages().ListMessagesBySender(ctx, "222", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, "two", msgs[0].Text)
	require.Equal(t, domain.DirectionOut, msgs[0].Direction)
}
