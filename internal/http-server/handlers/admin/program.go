package admin

import (
	"EnrollHub/entity"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SaveProgram creates or replaces the program named in the path.
func SaveProgram(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("program_id", id))

		var program entity.Program
		if err := decode(r, &program, func() { program.ID = id }); err != nil {
			badRequest(w, r, err)
			return
		}
		done(w, r, logger, "program saved", handler.SaveProgram(r.Context(), &program))
	}
}

func DeleteProgram(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("program_id", id))

		done(w, r, logger, "program deleted", handler.DeleteProgram(r.Context(), id))
	}
}
