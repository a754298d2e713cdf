package enrollment

import (
	"EnrollHub/internal/lib/api/response"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func Discard(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		id := chi.URLParam(r, "id")
		if err := handler.DiscardEnrollment(r.Context(), id); err != nil {
			respond(w, r, logger, nil, err)
			return
		}

		logger.Debug("enrollment discarded", slog.String("session_id", id))
		render.JSON(w, r, response.Ok(nil))
	}
}
