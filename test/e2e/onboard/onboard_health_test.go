package onboard_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLivezEndpoint(t *testing.T) {
	client, cleanup := setupContainer(t, nil)
	defer cleanup()

	health, err := client.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)
}

// The embedding backend is unreachable in the container, so readiness is
// degraded while the database check passes.
func TestReadyzReportsEmbedder(t *testing.T) {
	client, cleanup := setupContainer(t, nil)
	defer cleanup()

	_, err := client.GetReadiness(t.Context())
	assertAPIError(t, err, http.StatusServiceUnavailable)
}
