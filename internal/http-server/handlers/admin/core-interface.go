package admin

import (
	"EnrollHub/entity"
	"EnrollHub/impl/core"
	"context"
)

type Core interface {
	Dashboard(ctx context.Context, locale entity.Locale) (*core.DashboardView, error)
	RefreshDashboard(ctx context.Context) (entity.Stats, error)

	SetVerification(ctx context.Context, id string, update *entity.VerificationUpdate) error
	DeleteRegistration(ctx context.Context, id string) error

	SaveProgram(ctx context.Context, program *entity.Program) error
	DeleteProgram(ctx context.Context, id string) error
	SavePaymentMethod(ctx context.Context, method *entity.PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, value string) error
	SaveCoupon(ctx context.Context, coupon *entity.Coupon) error
	DeleteCoupon(ctx context.Context, id string) error
}
