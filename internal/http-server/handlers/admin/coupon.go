package admin

import (
	"EnrollHub/entity"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SaveCoupon(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("coupon_id", id))

		var coupon entity.Coupon
		if err := decode(r, &coupon, func() { coupon.ID = id }); err != nil {
			badRequest(w, r, err)
			return
		}
		done(w, r, logger.With(slog.String("code", coupon.Code)), "coupon saved", handler.SaveCoupon(r.Context(), &coupon))
	}
}

func DeleteCoupon(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger := requestLogger(log, r).With(slog.String("coupon_id", id))

		done(w, r, logger, "coupon deleted", handler.DeleteCoupon(r.Context(), id))
	}
}
