package onboard_test

import (
	"net/http"
	"testing"

	"github.com/fmalaspina/vallebot/pkg/onboardsdk"
	"github.com/stretchr/testify/require"
)

func TestInvitationLifecycle(t *testing.T) {
	client, cleanup := setupContainer(t, nil)
	defer cleanup()
	ctx := t.Context()

	inv, err := client.CreateInvitation(ctx, "+54 9 11 5555-0000")
	require.NoError(t, err)
	require.Equal(t, "5491155550000", inv.Phone)
	require.False(t, inv.Consumed)
	require.Equal(t, []string{"name"}, inv.Missing)

	_, err = client.CreateInvitation(ctx, "5491155550000")
	assertAPIError(t, err, http.StatusConflict)

	invs, err := client.ListInvitations(ctx, false)
	require.NoError(t, err)
	require.Len(t, invs, 1)
}

func TestAdminTokenRequired(t *testing.T) {
	client, cleanup := setupContainer(t, nil)
	defer cleanup()

	anon := onboardsdk.NewClient(client.BaseURL, "wrong")
	_, err := anon.CreateInvitation(t.Context(), "5491100000001")
	assertAPIError(t, err, http.StatusUnauthorized)
}
