package auth

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/api/response"
	"EnrollHub/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type LoginResponse struct {
	Token    string           `json:"token"`
	Identity *entity.Identity `json:"identity"`
	IsAdmin  bool             `json:"is_admin"`
}

// Callback completes the sign-in and returns the ID token to use as the Bearer token.
func Callback(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.auth"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		query := r.URL.Query()
		cookie, err := r.Cookie(stateCookie)
		if err != nil || cookie.Value == "" || cookie.Value != query.Get("state") {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid sign-in state"))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

		code := query.Get("code")
		if code == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Authorization code not found"))
			return
		}

		token, identity, err := handler.CompleteLogin(r.Context(), code)
		if err != nil {
			logger.Error("sign-in failed", sl.Err(err))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Sign-in failed"))
			return
		}

		admin := handler.IsAdmin(identity)
		logger.Info("signed in",
			slog.String("email", identity.Email),
			slog.Bool("admin", admin),
		)
		render.JSON(w, r, response.Ok(LoginResponse{
			Token:    token,
			Identity: identity,
			IsAdmin:  admin,
		}))
	}
}
