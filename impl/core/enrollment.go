package core

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"EnrollHub/internal/service/enrollment"
	"EnrollHub/internal/ws"
	"context"
	"time"
)

func (c *Core) StartEnrollment(ctx context.Context, locale entity.Locale) (*enrollment.State, error) {
	return c.flow.Start(ctx, locale)
}

func (c *Core) GetEnrollment(ctx context.Context, id string) (*enrollment.State, error) {
	return c.flow.Get(ctx, id)
}

func (c *Core) DiscardEnrollment(ctx context.Context, id string) error {
	return c.flow.Discard(ctx, id)
}

func (c *Core) UpdateEnrollment(ctx context.Context, id string, update enrollment.FieldUpdate) (*enrollment.State, error) {
	return c.flow.Update(ctx, id, update)
}

func (c *Core) SetEnrollmentLocale(ctx context.Context, id string, locale entity.Locale) (*enrollment.State, error) {
	return c.flow.SetLocale(ctx, id, locale)
}

func (c *Core) NextStep(ctx context.Context, id string) (*enrollment.State, error) {
	return c.flow.Next(ctx, id)
}

func (c *Core) PreviousStep(ctx context.Context, id string) (*enrollment.State, error) {
	return c.flow.Previous(ctx, id)
}

func (c *Core) AttachScreenshot(ctx context.Context, id string, image []byte) (*enrollment.State, error) {
	return c.flow.AttachScreenshot(ctx, id, image)
}

func (c *Core) SubmitEnrollment(ctx context.Context, id string) (*enrollment.State, error) {
	return c.flow.Submit(ctx, id)
}

// RegistrationCreated is called by the wizard after a registration is stored. The
// admin is notified and the dashboard is refetched in the background, since the
// request that submitted the form should not wait for either.
func (c *Core) RegistrationCreated(_ context.Context, reg entity.Registration) {
	if c.hub != nil {
		c.hub.Broadcast(ws.EventRegistrationCreated, reg)
	}
	go func() {
		if c.notifier != nil {
			c.notifier.RegistrationCreated(reg)
		}
		if c.repo == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := c.RefreshDashboard(ctx); err != nil {
			c.log.Warn("refreshing dashboard after registration", sl.Err(err))
		}
	}()
}
