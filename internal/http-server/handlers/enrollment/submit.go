package enrollment

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Submit verifies the payment proof and, when accepted, completes the enrollment.
func Submit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		state, err := handler.SubmitEnrollment(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, logger, state, err)
	}
}
