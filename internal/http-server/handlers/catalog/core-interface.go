package catalog

import (
	"EnrollHub/entity"
	"EnrollHub/impl/core"
	"context"
)

type Core interface {
	Catalog() *entity.Catalog
	Programs(ctx context.Context, locale entity.Locale) ([]core.ProgramView, error)
	PaymentMethods(ctx context.Context, locale entity.Locale) ([]core.PaymentMethodView, error)
	Coupon(ctx context.Context, code string, amount *float64) (*core.CouponView, error)
}
