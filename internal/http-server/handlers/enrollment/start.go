package enrollment

import (
	"EnrollHub/internal/lib/i18n"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Start opens a new wizard session in the request locale.
func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		state, err := handler.StartEnrollment(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			respond(w, r, logger, nil, err)
			return
		}

		logger.Debug("enrollment started", slog.String("session_id", state.ID))
		render.Status(r, http.StatusCreated)
		respond(w, r, logger, state, nil)
	}
}
