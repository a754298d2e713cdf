package catalog

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func requestLogger(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With(
		sl.Module("http.handlers.catalog"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// GetCatalog returns the school levels with their programs and courses.
func GetCatalog(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Catalog()))
	}
}

// ListPrograms returns the stored programs with content in the request locale.
func ListPrograms(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		programs, err := handler.Programs(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			logger.Error("failed to list programs", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list programs"))
			return
		}
		render.JSON(w, r, response.Ok(programs))
	}
}

func ListPaymentMethods(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		methods, err := handler.PaymentMethods(r.Context(), i18n.FromContext(r.Context()))
		if err != nil {
			logger.Error("failed to list payment methods", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list payment methods"))
			return
		}
		render.JSON(w, r, response.Ok(methods))
	}
}
