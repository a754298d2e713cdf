package errors

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// NotFound answers routes the router does not know, in the request language.
func NotFound(log *slog.Logger) http.HandlerFunc {
	return fallback(log, http.StatusNotFound, "http.not_found", "Requested resource not found")
}

// NotAllowed answers known routes called with the wrong method.
func NotAllowed(log *slog.Logger) http.HandlerFunc {
	return fallback(log, http.StatusMethodNotAllowed, "http.not_allowed", "Method not allowed")
}

func fallback(log *slog.Logger, status int, key, message string) http.HandlerFunc {
	log = log.With(sl.Module("http.handlers.errors"))
	return func(w http.ResponseWriter, r *http.Request) {
		log.With(
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		).Debug("unmatched route")

		render.Status(r, status)
		render.JSON(w, r, response.Error(i18n.Tc(r.Context(), key, message)))
	}
}
