package core

import (
	"EnrollHub/entity"
	"context"
	"fmt"
)

func (c *Core) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	if c.authService == nil {
		return nil, fmt.Errorf("auth service not set")
	}
	return c.authService.Authenticate(ctx, token)
}

func (c *Core) IsAdmin(identity *entity.Identity) bool {
	if c.authService == nil {
		return false
	}
	return c.authService.IsAdmin(identity)
}

func (c *Core) LoginURL(state string) string {
	if c.authService == nil {
		return ""
	}
	return c.authService.LoginURL(state)
}

func (c *Core) CompleteLogin(ctx context.Context, code string) (string, *entity.Identity, error) {
	if c.authService == nil {
		return "", nil, fmt.Errorf("auth service not set")
	}
	return c.authService.Exchange(ctx, code)
}
