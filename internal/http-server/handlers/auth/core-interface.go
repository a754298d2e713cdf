package auth

import (
	"EnrollHub/entity"
	"context"
)

type Core interface {
	LoginURL(state string) string
	CompleteLogin(ctx context.Context, code string) (string, *entity.Identity, error)
	IsAdmin(identity *entity.Identity) bool
}
