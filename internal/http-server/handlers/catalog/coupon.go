package catalog

import (
	"EnrollHub/impl/core"
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// GetCoupon looks up a usable coupon. With ?amount= the discounted price is previewed.
func GetCoupon(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := requestLogger(log, r)

		var amount *float64
		if raw := r.URL.Query().Get("amount"); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("Invalid amount"))
				return
			}
			amount = &v
		}

		code := chi.URLParam(r, "code")
		coupon, err := handler.Coupon(r.Context(), code, amount)
		if errors.Is(err, core.ErrNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Coupon not found or expired"))
			return
		}
		if err != nil {
			logger.Error("failed to look up coupon", slog.String("code", code), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to look up coupon"))
			return
		}
		render.JSON(w, r, response.Ok(coupon))
	}
}
