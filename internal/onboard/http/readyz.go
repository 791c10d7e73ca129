package http

import (
	"context"
	"net/http"
	"time"

	"github.com/fmalaspina/vallebot/internal/onboard/store"
	"github.com/fmalaspina/vallebot/pkg/embedx"
	"github.com/fmalaspina/vallebot/pkg/httpx"
	"github.com/fmalaspina/vallebot/pkg/onboardsdk"
)

const readinessTimeout = 3 * time.Second

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and, when the provider supports it, the embedding backend.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	onboardsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	onboardsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	embedder embedx.Embedder,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := &onboardsdk.HealthChecks{
			Database: "ok",
			Embedder: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		switch hc := embedder.(type) {
		case nil:
			checks.Embedder = "error: not configured"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		case embedx.HealthChecker:
			if err := hc.HealthCheck(ctx); err != nil {
				checks.Embedder = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		default:
			checks.Embedder = "unchecked"
		}

		httpx.WriteJSON(w, statusCode, onboardsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
