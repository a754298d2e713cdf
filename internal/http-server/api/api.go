package api

import (
	"EnrollHub/internal/config"
	"EnrollHub/internal/http-server/handlers/admin"
	"EnrollHub/internal/http-server/handlers/auth"
	"EnrollHub/internal/http-server/handlers/catalog"
	"EnrollHub/internal/http-server/handlers/enrollment"
	"EnrollHub/internal/http-server/handlers/errors"
	"EnrollHub/internal/http-server/handlers/files"
	"EnrollHub/internal/http-server/middleware/authenticate"
	"EnrollHub/internal/http-server/middleware/locale"
	"EnrollHub/internal/http-server/middleware/logger"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	enrollment.Core
	catalog.Core
	files.Core
	auth.Core
	admin.Core
}

// NewRouter builds the /api/v1 routes. Admin routes need the administrator's
// Bearer token; the WebSocket takes the token from the query instead.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	maxScreenshot := conf.Enrollment.MaxScreenshotMB << 20

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(logger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(locale.New())

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/files/{file_id}", files.Download(log, handler))

		v1.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(conf.Listen.Timeout))
			r.Use(render.SetContentType(render.ContentTypeJSON))

			r.Get("/catalog", catalog.GetCatalog(log, handler))
			r.Get("/programs", catalog.ListPrograms(log, handler))
			r.Get("/payment-methods", catalog.ListPaymentMethods(log, handler))
			r.Get("/coupons/{code}", catalog.GetCoupon(log, handler))

			r.Route("/auth", func(r chi.Router) {
				r.Get("/login", auth.Login(log, handler))
				r.Get("/callback", auth.Callback(log, handler))
			})

			r.Route("/enrollment", func(r chi.Router) {
				r.Post("/", enrollment.Start(log, handler))
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", enrollment.Get(log, handler))
					r.Patch("/", enrollment.Update(log, handler))
					r.Delete("/", enrollment.Discard(log, handler))
					r.Put("/locale", enrollment.SetLocale(log, handler))
					r.Post("/next", enrollment.Next(log, handler))
					r.Post("/previous", enrollment.Previous(log, handler))
					r.Post("/screenshot", enrollment.AttachScreenshot(log, handler, maxScreenshot))
					r.Post("/submit", enrollment.Submit(log, handler))
				})
			})
		})

		v1.Route("/admin", func(a chi.Router) {
			a.Get("/ws", hub.Handler(handler))

			a.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(conf.Listen.Timeout))
				r.Use(render.SetContentType(render.ContentTypeJSON))
				r.Use(authenticate.New(log, handler))

				r.Get("/dashboard", admin.GetDashboard(log, handler))
				r.Post("/dashboard/refresh", admin.RefreshDashboard(log, handler))
				r.Get("/registrations/export", admin.ExportRegistrations(log, handler))
				r.Patch("/registrations/{id}", admin.SetVerification(log, handler))
				r.Delete("/registrations/{id}", admin.DeleteRegistration(log, handler))
				r.Put("/programs/{id}", admin.SaveProgram(log, handler))
				r.Delete("/programs/{id}", admin.DeleteProgram(log, handler))
				r.Put("/payment-methods/{value}", admin.SavePaymentMethod(log, handler))
				r.Delete("/payment-methods/{value}", admin.DeletePaymentMethod(log, handler))
				r.Put("/coupons/{id}", admin.SaveCoupon(log, handler))
				r.Delete("/coupons/{id}", admin.DeleteCoupon(log, handler))
			})
		})
	})

	return router
}

// New starts serving the API and blocks until ctx is cancelled or the listener fails.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {
	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(conf, log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.httpServer.Shutdown(shutdownCtx); err != nil {
			server.log.Error("shutting down api server", sl.Err(err))
		}
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	err = server.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
