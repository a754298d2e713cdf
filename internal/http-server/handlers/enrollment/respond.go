package enrollment

import (
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/i18n"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/enrollment"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

const mod = "http.handlers.enrollment"

func requestLogger(log *slog.Logger, r *http.Request) *slog.Logger {
	return log.With(
		sl.Module(mod),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// respond renders the session after a wizard operation. Failures that leave a
// meaningful state behind (field errors, rejected payment) still carry it.
func respond(w http.ResponseWriter, r *http.Request, logger *slog.Logger, state *enrollment.State, err error) {
	if err == nil {
		render.JSON(w, r, response.Ok(state))
		return
	}

	ctx := r.Context()
	switch {
	case errors.Is(err, enrollment.ErrSessionNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(i18n.Tc(ctx, "enrollment.not_found", err.Error())))
	case errors.Is(err, enrollment.ErrValidation):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Fail(i18n.Tc(ctx, "enrollment.incomplete", err.Error()), state))
	case errors.Is(err, enrollment.ErrPaymentRejected):
		message := i18n.Tc(ctx, "verify.rejected", err.Error())
		if state != nil && state.Verdict != nil && state.Verdict.Message != "" {
			message = state.Verdict.Message
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Fail(message, state))
	case errors.Is(err, enrollment.ErrCompleted):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Fail(i18n.Tc(ctx, "enrollment.completed", err.Error()), state))
	case errors.Is(err, enrollment.ErrSubmitInFlight):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Fail(i18n.Tc(ctx, "enrollment.in_flight", err.Error()), state))
	case errors.Is(err, enrollment.ErrFirstStep),
		errors.Is(err, enrollment.ErrSubmitRequired),
		errors.Is(err, enrollment.ErrNotAtPayment):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Fail(err.Error(), state))
	case errors.Is(err, enrollment.ErrInvalidScreenshot):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	default:
		logger.Error("enrollment operation failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal error"))
	}
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	logger.Error("enrollment service not available")
	render.Status(r, http.StatusServiceUnavailable)
	render.JSON(w, r, response.Error("Enrollment service not available"))
}
