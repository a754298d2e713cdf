package core

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/stats"
	"EnrollHub/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Dashboard caches the admin collections. The store stays the source of truth:
// every admin mutation is followed by a full refetch and a stats recompute.
type Dashboard struct {
	mu             sync.RWMutex
	refresh        sync.Mutex
	loaded         bool
	registrations  []entity.Registration
	programs       []entity.Program
	paymentMethods []entity.PaymentMethod
	coupons        []entity.Coupon
	stats          entity.Stats
	refreshedAt    time.Time
}

type RegistrationView struct {
	entity.Registration
	ScreenshotURL string `json:"screenshot_url,omitempty"`
}

type DashboardView struct {
	Registrations  []RegistrationView  `json:"registrations"`
	Programs       []ProgramView       `json:"programs"`
	PaymentMethods []PaymentMethodView `json:"payment_methods"`
	Coupons        []entity.Coupon     `json:"coupons"`
	Stats          entity.Stats        `json:"stats"`
	RefreshedAt    time.Time           `json:"refreshed_at"`
}

// RefreshDashboard refetches every collection and recomputes the statistics.
func (c *Core) RefreshDashboard(ctx context.Context) (entity.Stats, error) {
	if c.repo == nil {
		return entity.Stats{}, ErrNoRepository
	}
	d := c.dashboard
	d.refresh.Lock()
	defer d.refresh.Unlock()

	registrations, err := c.repo.GetRegistrations(ctx)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("fetching registrations: %w", err)
	}
	programs, err := c.repo.GetPrograms(ctx)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("fetching programs: %w", err)
	}
	methods, err := c.repo.GetPaymentMethods(ctx)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("fetching payment methods: %w", err)
	}
	coupons, err := c.repo.GetCoupons(ctx)
	if err != nil {
		return entity.Stats{}, fmt.Errorf("fetching coupons: %w", err)
	}

	st := stats.Compute(registrations, programs, c.catalog, entity.DefaultLocale)

	d.mu.Lock()
	d.registrations = registrations
	d.programs = programs
	d.paymentMethods = methods
	d.coupons = coupons
	d.stats = st
	d.refreshedAt = time.Now()
	d.loaded = true
	d.mu.Unlock()

	c.log.With(
		slog.Int("registrations", len(registrations)),
		slog.Int("programs", len(programs)),
	).Debug("dashboard refreshed")

	if c.hub != nil {
		c.hub.Broadcast(ws.EventDashboardUpdated, st)
	}
	return st, nil
}

// Dashboard returns the cached collections with labels and stats in locale,
// loading them on first use.
func (c *Core) Dashboard(ctx context.Context, locale entity.Locale) (*DashboardView, error) {
	d := c.dashboard
	d.mu.RLock()
	loaded := d.loaded
	d.mu.RUnlock()
	if !loaded {
		if _, err := c.RefreshDashboard(ctx); err != nil {
			return nil, err
		}
	}

	d.mu.RLock()
	registrations := slices.Clone(d.registrations)
	programs := slices.Clone(d.programs)
	methods := slices.Clone(d.paymentMethods)
	coupons := slices.Clone(d.coupons)
	refreshedAt := d.refreshedAt
	d.mu.RUnlock()

	view := &DashboardView{
		Registrations:  make([]RegistrationView, 0, len(registrations)),
		Programs:       make([]ProgramView, 0, len(programs)),
		PaymentMethods: make([]PaymentMethodView, 0, len(methods)),
		Coupons:        coupons,
		Stats:          stats.Compute(registrations, programs, c.catalog, locale),
		RefreshedAt:    refreshedAt,
	}
	for _, r := range registrations {
		rv := RegistrationView{Registration: r}
		rv.ScreenshotURL = c.links.Link(r.PaymentProof.ScreenshotFileID)
		view.Registrations = append(view.Registrations, rv)
	}
	for _, p := range programs {
		view.Programs = append(view.Programs, ProgramView{Program: p, Content: p.Content(locale)})
	}
	for _, m := range methods {
		view.PaymentMethods = append(view.PaymentMethods, PaymentMethodView{PaymentMethod: m, Content: m.Content(locale)})
	}
	return view, nil
}

// DashboardStats returns the last computed statistics.
func (c *Core) DashboardStats() entity.Stats {
	c.dashboard.mu.RLock()
	defer c.dashboard.mu.RUnlock()
	return c.dashboard.stats
}

// HandleRefresh serves a refresh request sent over the admin WebSocket.
func (c *Core) HandleRefresh(email string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_, err := c.RefreshDashboard(ctx)
	if err == nil {
		c.log.With(slog.String("by", email)).Debug("dashboard refresh requested")
	}
	return err
}

// mutate applies one admin change and then refetches everything.
func (c *Core) mutate(ctx context.Context, action string, fn func(repo Repository) error) error {
	if c.repo == nil {
		return ErrNoRepository
	}
	if err := fn(c.repo); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if _, err := c.RefreshDashboard(ctx); err != nil {
		c.log.With(slog.String("action", action)).Warn("refetch after mutation failed", sl.Err(err))
	}
	return nil
}

func (c *Core) SaveProgram(ctx context.Context, program *entity.Program) error {
	return c.mutate(ctx, "save program", func(repo Repository) error {
		return repo.UpsertProgram(ctx, program)
	})
}

func (c *Core) DeleteProgram(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete program", func(repo Repository) error {
		return repo.DeleteProgram(ctx, id)
	})
}

func (c *Core) SavePaymentMethod(ctx context.Context, method *entity.PaymentMethod) error {
	return c.mutate(ctx, "save payment method", func(repo Repository) error {
		return repo.UpsertPaymentMethod(ctx, method)
	})
}

func (c *Core) DeletePaymentMethod(ctx context.Context, value string) error {
	return c.mutate(ctx, "delete payment method", func(repo Repository) error {
		return repo.DeletePaymentMethod(ctx, value)
	})
}

func (c *Core) SaveCoupon(ctx context.Context, coupon *entity.Coupon) error {
	return c.mutate(ctx, "save coupon", func(repo Repository) error {
		return repo.UpsertCoupon(ctx, coupon)
	})
}

func (c *Core) DeleteCoupon(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete coupon", func(repo Repository) error {
		return repo.DeleteCoupon(ctx, id)
	})
}

// SetVerification overrides the payment verification of a registration.
func (c *Core) SetVerification(ctx context.Context, id string, update *entity.VerificationUpdate) error {
	return c.mutate(ctx, "set verification", func(repo Repository) error {
		reg, err := repo.GetRegistration(ctx, id)
		if err != nil {
			return err
		}
		if reg == nil {
			return ErrNotFound
		}
		return repo.SetRegistrationVerification(ctx, id, *update.PaymentVerified, update.AdminNote)
	})
}

// DeleteRegistration removes a registration together with its screenshot.
func (c *Core) DeleteRegistration(ctx context.Context, id string) error {
	return c.mutate(ctx, "delete registration", func(repo Repository) error {
		reg, err := repo.GetRegistration(ctx, id)
		if err != nil {
			return err
		}
		if reg == nil {
			return ErrNotFound
		}
		if err = repo.DeleteRegistration(ctx, id); err != nil {
			return err
		}
		if fileID := reg.PaymentProof.ScreenshotFileID; fileID != "" {
			if err = repo.DeleteFile(ctx, fileID); err != nil {
				c.log.With(slog.String("file_id", fileID)).Warn("screenshot left behind", sl.Err(err))
			}
		}
		return nil
	})
}
