package admin

import (
	"EnrollHub/impl/core"
	"EnrollHub/internal/lib/api/cont"
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func requestLogger(log *slog.Logger, r *http.Request) *slog.Logger {
	logger := log.With(
		sl.Module("http.handlers.admin"),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	if identity := cont.GetIdentity(r.Context()); identity != nil {
		logger = logger.With(slog.String("admin", identity.Email))
	}
	return logger
}

// decode reads a JSON body into v and then lets v fix up and validate itself.
func decode(r *http.Request, v render.Binder, fix func()) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	if fix != nil {
		fix()
	}
	return v.Bind(r)
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, response.Error(err.Error()))
}

// done answers a mutation; the dashboard has already been refetched by then.
func done(w http.ResponseWriter, r *http.Request, logger *slog.Logger, action string, err error) {
	switch {
	case err == nil:
		logger.Info(action)
		render.JSON(w, r, response.Ok(nil))
	case errors.Is(err, core.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Not found"))
	default:
		logger.Error(action+" failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed: "+action))
	}
}
