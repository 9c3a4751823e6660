package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/hlog"

	"github.com/AnshRaj112/journal-backend/internal/respond"
)

type HealthResponse struct {
	OK     bool       `json:"ok"`
	DBTime *time.Time `json:"db_time,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Health reports whether the database answers, with its clock.
func Health(dbNow func(ctx context.Context) (time.Time, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		now, err := dbNow(ctx)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("health check failed")
			respond.JSON(w, r, http.StatusInternalServerError, HealthResponse{OK: false, Error: "DB connection failed"})
			return
		}
		respond.JSON(w, r, http.StatusOK, HealthResponse{OK: true, DBTime: &now})
	}
}
