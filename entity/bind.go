package entity

import (
	"EnrollHub/internal/lib/validate"
	"errors"
	"net/http"
	"strings"
)

var ErrMissingDefaultContent = errors.New("default locale label is required")

func (p *Program) Bind(_ *http.Request) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if strings.TrimSpace(p.Translations[DefaultLocale].Label) == "" {
		return ErrMissingDefaultContent
	}
	return nil
}

func (m *PaymentMethod) Bind(_ *http.Request) error {
	if err := validate.Struct(m); err != nil {
		return err
	}
	if strings.TrimSpace(m.Translations[DefaultLocale].Label) == "" {
		return ErrMissingDefaultContent
	}
	return nil
}

func (c *Coupon) Bind(_ *http.Request) error {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	return validate.Struct(c)
}

// VerificationUpdate is the admin override of a registration's payment status.
type VerificationUpdate struct {
	PaymentVerified *bool  `json:"payment_verified" validate:"required"`
	AdminNote       string `json:"admin_note" validate:"max=1000"`
}

func (v *VerificationUpdate) Bind(_ *http.Request) error {
	return validate.Struct(v)
}
