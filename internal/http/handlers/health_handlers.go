package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HealthzHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /healthz [get]
func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, StatusResponse{Status: "ok"})
}

// ReadyzHandler godoc
// @Summary Readiness probe, pings the database
// @Tags health
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 503 {object} ErrorResponse
// @Router /readyz [get]
func ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	if dbPinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPinger.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("readiness check failed")
			respondError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	respond(w, r, http.StatusOK, StatusResponse{Status: "ready"})
}
