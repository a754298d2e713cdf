package admin

import (
	"EnrollHub/entity"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetVerification overrides the payment verification of a registration.
func SetVerification(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("registration_id", id))

		var update entity.VerificationUpdate
		if err := decode(r, &update, nil); err != nil {
			badRequest(w, r, err)
			return
		}

		err := handler.SetVerification(r.Context(), id, &update)
		done(w, r, logger.With(slog.Bool("verified", *update.PaymentVerified)), "registration verification set", err)
	}
}

func DeleteRegistration(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("registration_id", id))

		done(w, r, logger, "registration deleted", handler.DeleteRegistration(r.Context(), id))
	}
}
