package enrollment

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Next validates the current step and advances the session.
func Next(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		state, err := handler.NextStep(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, logger, state, err)
	}
}

func Previous(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		state, err := handler.PreviousStep(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, logger, state, err)
	}
}
