package admin

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// GetDashboard returns registrations, programs, payment methods, coupons and
// the statistics, labelled in the request locale.
func GetDashboard(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		view, err := handler.Dashboard(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			logger.Error("failed to load dashboard", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load dashboard"))
			return
		}
		render.JSON(w, r, response.Ok(view))
	}
}

func RefreshDashboard(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		if _, err := handler.RefreshDashboard(r.Context()); err != nil {
			logger.Error("failed to refresh dashboard", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to refresh dashboard"))
			return
		}
		view, err := handler.Dashboard(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			logger.Error("failed to load dashboard", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load dashboard"))
			return
		}
		render.JSON(w, r, response.Ok(view))
	}
}
