package core

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/fileurl"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/enrollment"
	"context"
	"errors"
	"log/slog"
	"time"
)

var (
	ErrNoRepository    = errors.New("repository not configured")
	ErrNotFound        = entity.ErrNotFound
	ErrInvalidFileLink = errors.New("file link is invalid or expired")
)

type Repository interface {
	GetPrograms(ctx context.Context) ([]entity.Program, error)
	UpsertProgram(ctx context.Context, program *entity.Program) error
	DeleteProgram(ctx context.Context, id string) error

	GetPaymentMethods(ctx context.Context) ([]entity.PaymentMethod, error)
	UpsertPaymentMethod(ctx context.Context, method *entity.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, value string) error

	GetCoupons(ctx context.Context) ([]entity.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*entity.Coupon, error)
	UpsertCoupon(ctx context.Context, coupon *entity.Coupon) error
	DeleteCoupon(ctx context.Context, id string) error

	GetRegistrations(ctx context.Context) ([]entity.Registration, error)
	GetRegistration(ctx context.Context, id string) (*entity.Registration, error)
	SetRegistrationVerification(ctx context.Context, id string, verified bool, note string) error
	DeleteRegistration(ctx context.Context, id string) error

	OpenFile(ctx context.Context, id string) (*entity.StoredFile, error)
	DeleteFile(ctx context.Context, id string) error
}

// Enrollment is the wizard state machine.
type Enrollment interface {
	Start(ctx context.Context, locale entity.Locale) (*enrollment.State, error)
	Get(ctx context.Context, id string) (*enrollment.State, error)
	Discard(ctx context.Context, id string) error
	Update(ctx context.Context, id string, update enrollment.FieldUpdate) (*enrollment.State, error)
	SetLocale(ctx context.Context, id string, locale entity.Locale) (*enrollment.State, error)
	Next(ctx context.Context, id string) (*enrollment.State, error)
	Previous(ctx context.Context, id string) (*enrollment.State, error)
	AttachScreenshot(ctx context.Context, id string, image []byte) (*enrollment.State, error)
	Submit(ctx context.Context, id string) (*enrollment.State, error)
}

type AuthService interface {
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	IsAdmin(identity *entity.Identity) bool
	LoginURL(state string) string
	Exchange(ctx context.Context, code string) (string, *entity.Identity, error)
}

// Notifier tells the administrator about new registrations.
type Notifier interface {
	RegistrationCreated(reg entity.Registration)
}

type Broadcaster interface {
	Broadcast(eventType string, data interface{})
}

type Core struct {
	repo        Repository
	flow        Enrollment
	authService AuthService
	notifier    Notifier
	hub         Broadcaster
	catalog     *entity.Catalog
	dashboard   *Dashboard
	links       *fileurl.Signer
	log         *slog.Logger
}

func New(catalog *entity.Catalog, log *slog.Logger) *Core {
	return &Core{
		catalog:   catalog,
		dashboard: &Dashboard{},
		log:       log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetEnrollment(flow Enrollment) {
	c.flow = flow
}

func (c *Core) SetAuthService(authService AuthService) {
	c.authService = authService
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetBroadcaster(hub Broadcaster) {
	c.hub = hub
}

// SetFileSigning sets the secret and lifetime of screenshot download links.
// Without a secret the dashboard carries no screenshot links.
func (c *Core) SetFileSigning(secret string, ttl time.Duration) {
	c.links = fileurl.NewSigner(secret, ttl)
}

func (c *Core) Catalog() *entity.Catalog {
	return c.catalog
}
