package enrollment

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/enrollment"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Update merges the posted fields into the session form.
func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)
		if handler == nil {
			serviceUnavailable(w, r, logger)
			return
		}

		var update enrollment.FieldUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logger.Debug("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		state, err := handler.UpdateEnrollment(r.Context(), chi.URLParam(r, "id"), update)
		respond(w, r, logger, state, err)
	}
}
