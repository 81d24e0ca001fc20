package http

import (
	"net/http"
	"time"

	"github.com/harborauth/clientreg/internal/registry/store"
	"github.com/harborauth/clientreg/pkg/httpx"
	"github.com/harborauth/clientreg/pkg/jwtx"
	"github.com/harborauth/clientreg/pkg/regsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and status of the database and token verifier
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	regsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	regsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	verifier *jwtx.Verifier,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &regsdk.HealthChecks{
			Database: "ok",
			Verifier: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check that token verification keys are loaded
		if !verifier.IsReady() {
			checks.Verifier = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := regsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
