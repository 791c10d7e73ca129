package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/internal/onboard/store/drivers/sqlite"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type pairFixture struct {
	st     *sqlite.Store
	pro    domain.Professional
	client domain.Client
	svc    domain.Service
}

func newPair(t *testing.T, price *float64) pairFixture {
	t.Helper()
	ctx := context.Background()
	st := newTestStore(t)

	pro, err := st.Professionals().CreateProfessional(ctx, domain.Professional{
		Phone: phoneP, Name: "Ana", Embedding: make([]float32, testDims),
	})
	require.NoError(t, err)
	client, err := st.Clients().CreateClient(ctx, domain.Client{Name: "Juan"})
	require.NoError(t, err)
	svc, err := st.Services().CreateService(ctx, domain.Service{
		ProfessionalID: pro.ID, Name: "Session", Price: price,
	})
	require.NoError(t, err)

	return pairFixture{st: st, pro: pro, client: client, svc: svc}
}

func (f pairFixture) book(t *testing.T, date, at string, status domain.BookingStatus) domain.Booking {
	t.Helper()
	b, err := f.st.Bookings().CreateBooking(context.Background(), domain.Booking{
		ProfessionalID: f.pro.ID, ClientID: f.client.ID, ServiceID: f.svc.ID,
		Date: date, Time: at, Status: status,
	})
	require.NoError(t, err)
	return b
}

func (f pairFixture) pay(t *testing.T, amount float64, status domain.PaymentStatus) {
	t.Helper()
	_, err := f.st.Payments().CreatePayment(context.Background(), domain.Payment{
		ProfessionalID: f.pro.ID, ClientID: f.client.ID, Amount: amount, Status: status,
	})
	require.NoError(t, err)
}

func newRelationshipService(st store.Store, emb *wordEmbedder) *RelationshipService {
	return &RelationshipService{
		Store: st,
		Materializer: &Materializer{
			Store:      st,
			Embedder:   emb,
			Dimensions: testDims,
			Retry:      fastRetry,
			Now:        func() time.Time { return time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC) },
		},
		RecentLimit: DefaultRecentLimit,
	}
}

func TestRefreshEmptyPair(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, ptr(100.0))
	svc := newRelationshipService(f.st, newWordEmbedder())

	st, err := svc.Refresh(ctx, f.pro.ID, f.client.ID, 0)
	require.NoError(t, err)
	require.Nil(t, st.Snapshot.NextBooking)
	require.Empty(t, st.Snapshot.RecentBookings)
	require.Zero(t, st.Snapshot.TotalPaid)
	require.Zero(t, st.Snapshot.EstimatedCost)
	require.Zero(t, st.Snapshot.PendingBalance)
	require.Equal(t,
		"Professional: Ana. Client: Juan. Next: no upcoming appointment. History: no history. Paid: 0.00. Estimated: 0.00. Pending balance: 0.00.",
		st.Summary)
	require.Len(t, st.Embedding, testDims)

	stored, err := f.st.Relationships().GetRelationship(ctx, f.pro.ID, f.client.ID)
	require.NoError(t, err)
	require.Equal(t, st.Summary, stored.Summary)
}

func TestRefreshComputesSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, ptr(100.0))
	b1 := f.book(t, "2025-01-01", "10:00", domain.BookingAttended)
	b2 := f.book(t, "2025-01-08", "10:00", domain.BookingConfirmed)
	b3 := f.book(t, "2025-01-15", "10:00", domain.BookingCancelled)
	b4 := f.book(t, "2025-01-22", "10:00", domain.BookingPending)
	f.pay(t, 150, domain.PaymentVerified)
	f.pay(t, 500, domain.PaymentRejected)

	svc := newRelationshipService(f.st, newWordEmbedder())
	st, err := svc.Refresh(ctx, f.pro.ID, f.client.ID, 5)
	require.NoError(t, err)

	ref := func(b domain.Booking) domain.BookingRef { return domain.RefOf(b) }
	next := ref(b1)
	want := domain.RelationshipSnapshot{
		NextBooking:    &next,
		RecentBookings: []domain.BookingRef{ref(b4), ref(b3), ref(b2), ref(b1)},
		TotalPaid:      150,
		EstimatedCost:  200,
		PendingBalance: 50,
	}
	if diff := cmp.Diff(want, st.Snapshot); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}

	stored, err := f.st.Relationships().GetRelationship(ctx, f.pro.ID, f.client.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(want, stored.Snapshot); diff != "" {
		t.Fatalf("stored snapshot mismatch (-want +got):\n%s", diff)
	}

	require.Contains(t, st.Summary, "Next: 2025-01-01 10:00 (service")
	require.Contains(t, st.Summary, "History: 2025-01-22 PENDING, 2025-01-15 CANCELLED, 2025-01-08 CONFIRMED, 2025-01-01 ATTENDED.")
	require.Contains(t, st.Summary, "Paid: 150.00. Estimated: 200.00. Pending balance: 50.00.")
}

func TestRefreshRecentLimitBoundsEstimate(t *testing.T) {
	f := newPair(t, ptr(80.0))
	f.book(t, "2025-01-01", "10:00", domain.BookingAttended)
	f.book(t, "2025-01-08", "10:00", domain.BookingNoShow)
	f.book(t, "2025-01-15", "10:00", domain.BookingConfirmed)

	snap, err := newRelationshipService(f.st, newWordEmbedder()).Aggregate(context.Background(), f.pro.ID, f.client.ID, 2)
	require.NoError(t, err)
	require.Len(t, snap.RecentBookings, 2)
	require.InDelta(t, 80.0, snap.EstimatedCost, 1e-9)
}

func TestPendingBalanceNeverNegative(t *testing.T) {
	f := newPair(t, ptr(10.0))
	f.book(t, "2025-01-01", "10:00", domain.BookingAttended)
	f.pay(t, 1000, domain.PaymentVerified)

	snap, err := newRelationshipService(f.st, newWordEmbedder()).Aggregate(context.Background(), f.pro.ID, f.client.ID, 0)
	require.NoError(t, err)
	require.InDelta(t, 10.0, snap.EstimatedCost, 1e-9)
	require.Zero(t, snap.PendingBalance)
}

func TestMissingPriceCountsAsZero(t *testing.T) {
	f := newPair(t, nil)
	f.book(t, "2025-01-01", "10:00", domain.BookingAttended)

	snap, err := newRelationshipService(f.st, newWordEmbedder()).Aggregate(context.Background(), f.pro.ID, f.client.ID, 0)
	require.NoError(t, err)
	require.Zero(t, snap.EstimatedCost)
	require.NotNil(t, snap.NextBooking)
}

func TestRefreshKeepsOneRowPerPair(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, ptr(100.0))
	svc := newRelationshipService(f.st, newWordEmbedder())

	first, err := svc.Refresh(ctx, f.pro.ID, f.client.ID, 0)
	require.NoError(t, err)

	f.book(t, "2025-02-01", "09:30", domain.BookingConfirmed)
	second, err := svc.Refresh(ctx, f.pro.ID, f.client.ID, 0)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Contains(t, second.Summary, "2025-02-01 09:30")

	rows, err := f.st.Relationships().ListRelationshipsByProfessional(ctx, f.pro.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, second.Summary, rows[0].Summary)
}

func TestConcurrentRefreshesKeepOneRow(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, ptr(100.0))
	f.book(t, "2025-01-01", "10:00", domain.BookingConfirmed)
	svc := newRelationshipService(f.st, newWordEmbedder())

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Refresh(ctx, f.pro.ID, f.client.ID, 0)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	rows, err := f.st.Relationships().ListRelationshipsByProfessional(ctx, f.pro.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestRefreshUnknownParties(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, nil)
	svc := newRelationshipService(f.st, newWordEmbedder())

	_, err := svc.Refresh(ctx, 9999, f.client.ID, 0)
	require.ErrorIs(t, err, ErrProfessionalNotFound)
	_, err = svc.Refresh(ctx, f.pro.ID, 9999, 0)
	require.ErrorIs(t, err, ErrClientNotFound)
}

func TestRefreshFailsWithoutEmbedding(t *testing.T) {
	ctx := context.Background()
	f := newPair(t, nil)
	svc := newRelationshipService(f.st, newWordEmbedder())
	svc.Materializer.Embedder = &downEmbedder{}

	_, err := svc.Refresh(ctx, f.pro.ID, f.client.ID, 0)
	require.ErrorIs(t, err, ErrEmbeddingUnavailable)

	_, err = f.st.Relationships().GetRelationship(ctx, f.pro.ID, f.client.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

// racingRelationships never finds the row yet always loses the insert.
type racingRelationships struct {
	store.Relationships
	creates atomic.Int32
}

func (r *racingRelationships) GetRelationship(context.Context, int64, int64) (domain.RelationshipState, error) {
	return domain.RelationshipState{}, store.ErrNotFound
}

func (r *racingRelationships) CreateRelationship(context.Context, domain.RelationshipState) (domain.RelationshipState, error) {
	r.creates.Add(1)
	return domain.RelationshipState{}, store.ErrAlreadyExists
}

type racingStore struct {
	store.Store
	rel *racingRelationships
}

func (s racingStore) Relationships() store.Relationships { return s.rel }

func TestMaterializeSecondConflictIsFatal(t *testing.T) {
	f := newPair(t, nil)
	rel := &racingRelationships{}
	m := &Materializer{
		Store:      racingStore{Store: f.st, rel: rel},
		Embedder:   newWordEmbedder(),
		Dimensions: testDims,
		Retry:      fastRetry,
	}

	_, err := m.Materialize(context.Background(), f.pro, f.client, domain.RelationshipSnapshot{})
	require.ErrorIs(t, err, ErrRelationshipConflict)
	require.EqualValues(t, 2, rel.creates.Load())
}

func TestRenderSummary(t *testing.T) {
	t.Parallel()

	snap := domain.RelationshipSnapshot{
		NextBooking: &domain.BookingRef{Date: "2025-03-01", Time: "15:00", ServiceID: 7, Status: domain.BookingConfirmed},
		RecentBookings: []domain.BookingRef{
			{Date: "2025-02-20", Status: domain.BookingAttended},
			{Date: "2025-02-13", Status: domain.BookingNoShow},
		},
		TotalPaid:      12.5,
		EstimatedCost:  20,
		PendingBalance: 7.5,
	}
	got := RenderSummary(domain.Professional{Name: "Ana"}, domain.Client{Name: "Juan"}, snap)
	require.Equal(t,
		"Professional: Ana. Client: Juan. Next: 2025-03-01 15:00 (service 7, CONFIRMED). History: 2025-02-20 ATTENDED, 2025-02-13 NO_SHOW. Paid: 12.50. Estimated: 20.00. Pending balance: 7.50.",
		got)
}
