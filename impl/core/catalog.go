package core

import (
	"EnrollHub/entity"
	"context"
	"time"
)

// ProgramView is a program with its content resolved for one locale.
type ProgramView struct {
	entity.Program
	Content entity.ProgramContent `json:"content"`
}

type PaymentMethodView struct {
	entity.PaymentMethod
	Content entity.PaymentMethodContent `json:"content"`
}

// CouponView is what a student may see of a coupon, with an optional price preview.
type CouponView struct {
	Code          string     `json:"code"`
	DiscountType  string     `json:"discount_type"`
	DiscountValue float64    `json:"discount_value"`
	Description   string     `json:"description,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Amount        *float64   `json:"amount,omitempty"`
	Discounted    *float64   `json:"discounted,omitempty"`
}

func (c *Core) Programs(ctx context.Context, locale entity.Locale) ([]ProgramView, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	programs, err := c.repo.GetPrograms(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProgramView, 0, len(programs))
	for _, p := range programs {
		views = append(views, ProgramView{Program: p, Content: p.Content(locale)})
	}
	return views, nil
}

func (c *Core) PaymentMethods(ctx context.Context, locale entity.Locale) ([]PaymentMethodView, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	methods, err := c.repo.GetPaymentMethods(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]PaymentMethodView, 0, len(methods))
	for _, m := range methods {
		views = append(views, PaymentMethodView{PaymentMethod: m, Content: m.Content(locale)})
	}
	return views, nil
}

// Coupon returns a usable coupon by code. When amount is given the discounted
// price is previewed; the enrollment total itself never changes.
func (c *Core) Coupon(ctx context.Context, code string, amount *float64) (*CouponView, error) {
	if c.repo == nil {
		return nil, ErrNoRepository
	}
	coupon, err := c.repo.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.Usable(time.Now()) {
		return nil, ErrNotFound
	}
	view := &CouponView{
		Code:          coupon.Code,
		DiscountType:  coupon.DiscountType,
		DiscountValue: coupon.DiscountValue,
		Description:   coupon.Description,
		ExpiresAt:     coupon.ExpiresAt,
	}
	if amount != nil {
		discounted := coupon.Apply(*amount)
		view.Amount = amount
		view.Discounted = &discounted
	}
	return view, nil
}
