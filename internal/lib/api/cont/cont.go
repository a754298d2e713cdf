package cont

import (
	"EnrollHub/entity"
	"context"
)

type ctxKey string

const identityKey ctxKey = "identity"

func PutIdentity(ctx context.Context, identity *entity.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func GetIdentity(ctx context.Context) *entity.Identity {
	identity, ok := ctx.Value(identityKey).(*entity.Identity)
	if !ok {
		return nil
	}
	return identity
}
