package entity

import (
	"math"
	"time"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

type Coupon struct {
	ID            string     `json:"id" bson:"_id" validate:"required"`
	Code          string     `json:"code" bson:"code" validate:"required"`
	DiscountType  string     `json:"discount_type" bson:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue float64    `json:"discount_value" bson:"discount_value" validate:"gte=0"`
	Description   string     `json:"description,omitempty" bson:"description,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	Active        bool       `json:"active" bson:"active"`
}

// Usable reports whether the coupon is active and not expired at now.
func (c *Coupon) Usable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}

// Apply returns amount after the discount, never below zero.
func (c *Coupon) Apply(amount float64) float64 {
	var discounted float64
	switch c.DiscountType {
	case DiscountPercentage:
		discounted = amount - amount*math.Min(c.DiscountValue, 100)/100
	case DiscountFixed:
		discounted = amount - c.DiscountValue
	default:
		return amount
	}
	if discounted < 0 {
		return 0
	}
	return math.Round(discounted*100) / 100
}
