package enrollment

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/api/response"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

type LocaleRequest struct {
	Locale string `json:"locale"`
}

// SetLocale switches the language of the session messages.
func SetLocale(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		var req LocaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		locale, ok := entity.ParseLocale(req.Locale)
		if !ok {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Unsupported locale"))
			return
		}

		state, err := handler.SetEnrollmentLocale(r.Context(), chi.URLParam(r, "id"), locale)
		respond(w, r, logger, state, err)
	}
}
