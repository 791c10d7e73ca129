package domain_test

import (
	"testing"

	"github.com/fmalaspina/vallebot/internal/onboard/domain"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestMergeOverwritesOnlyPresentValues(t *testing.T) {
	cur := domain.ProfessionalFields{Name: ptr("Ana"), Bio: ptr("Psychologist")}
	got := cur.Merge(domain.ProfessionalFields{Email: ptr("ana@example.com"), Bio: ptr("  ")})

	name, _ := got.Get(domain.FieldName)
	email, _ := got.Get(domain.FieldEmail)
	bio, _ := got.Get(domain.FieldBio)
	require.Equal(t, "Ana", name)
	require.Equal(t, "ana@example.com", email)
	require.Equal(t, "Psychologist", bio)

	got = got.Merge(domain.ProfessionalFields{Name: ptr(" Ana López ")})
	name, _ = got.Get(domain.FieldName)
	require.Equal(t, "Ana López", name)
}

func TestMergeIsIdempotent(t *testing.T) {
	cur := domain.ProfessionalFields{Name: ptr("Ana")}
	again := cur.Merge(domain.ProfessionalFields{Name: ptr("Ana")})
	require.True(t, cur.Equal(again))
}

func TestMissingNeverGrowsForSatisfiedField(t *testing.T) {
	cur := domain.ProfessionalFields{Name: ptr("Ana")}
	require.Empty(t, cur.Missing(domain.RequiredFields))

	for _, newer := range []domain.ProfessionalFields{
		{},
		{Email: ptr("x@y.io")},
		{Name: ptr("")},
	} {
		require.Empty(t, cur.Merge(newer).Missing(domain.RequiredFields))
	}
}

func TestMissingListsRequiredAbsentFields(t *testing.T) {
	var empty domain.ProfessionalFields
	require.Equal(t, []domain.Field{domain.FieldName}, empty.Missing(domain.RequiredFields))
	require.Equal(t,
		[]domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldBio},
		empty.Missing(domain.KnownFields))
}

func TestFillGapsKeepsExistingValues(t *testing.T) {
	cur := domain.ProfessionalFields{Email: ptr("a@b.co")}
	got := cur.FillGaps(domain.ProfessionalFields{Name: ptr("Ana"), Email: ptr("other@b.co")})

	email, _ := got.Get(domain.FieldEmail)
	name, _ := got.Get(domain.FieldName)
	require.Equal(t, "a@b.co", email)
	require.Equal(t, "Ana", name)
}

func TestBookingStatusValid(t *testing.T) {
	require.True(t, domain.BookingNoShow.Valid())
	require.False(t, domain.BookingStatus("LATE").Valid())
	require.True(t, domain.PaymentVerified.Valid())
	require.False(t, domain.PaymentStatus("REFUNDED").Valid())
}
