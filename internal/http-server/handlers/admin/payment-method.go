package admin

import (
	"EnrollHub/entity"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SavePaymentMethod(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := chi.URLParam(r, "value")
		logger := requestLogger(log, r).With(slog.String("payment_method", value))

		var method entity.PaymentMethod
		if err := decode(r, &method, func() { method.Value = value }); err != nil {
			badRequest(w, r, err)
			return
		}
		done(w, r, logger, "payment method saved", handler.SavePaymentMethod(r.Context(), &method))
	}
}

func DeletePaymentMethod(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := chi.URLParam(r, "value")
		logger := requestLogger(log, r).With(slog.String("payment_method", value))

		done(w, r, logger, "payment method deleted", handler.DeletePaymentMethod(r.Context(), value))
	}
}
