package i18n

import (
	"EnrollHub/entity"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		header string
		want   entity.Locale
	}{
		{name: "explicit", code: "ar", header: "fr", want: entity.LocaleArabic},
		{name: "unsupported explicit uses header", code: "de", header: "fr-CA,fr;q=0.9", want: entity.LocaleFrench},
		{name: "empty", want: entity.DefaultLocale},
		{name: "garbage header", header: ";;;", want: entity.DefaultLocale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.code, tt.header))
		})
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Paiement vérifié.", T(entity.LocaleFrench, "verify.valid", "x"))
	// missing in arabic, present in english
	assert.Equal(t, "Please provide the payment link.", T(entity.LocaleArabic, "verify.missing_link", "x"))
	assert.Equal(t, "literal", T(entity.LocaleArabic, "no.such.key", "literal"))

	ctx := WithLocale(context.Background(), entity.LocaleArabic)
	assert.Equal(t, entity.LocaleArabic, FromContext(ctx))
	assert.Equal(t, entity.DefaultLocale, FromContext(context.Background()))
}
