// Package i18n holds the UI string dictionaries and the per-request locale.
package i18n

import (
	"EnrollHub/entity"
	"context"

	"golang.org/x/text/language"
)

type ctxKey struct{}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.French,
	language.Arabic,
})

// Negotiate picks a supported locale from an explicit code or an Accept-Language header.
// The explicit code wins when it names a supported locale.
func Negotiate(code, acceptLanguage string) entity.Locale {
	if l, ok := entity.ParseLocale(code); ok {
		return l
	}
	if acceptLanguage == "" {
		return entity.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return entity.DefaultLocale
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return entity.DefaultLocale
	}
	return entity.SupportedLocales[idx]
}

func WithLocale(ctx context.Context, locale entity.Locale) context.Context {
	return context.WithValue(ctx, ctxKey{}, locale)
}

func FromContext(ctx context.Context) entity.Locale {
	if l, ok := ctx.Value(ctxKey{}).(entity.Locale); ok {
		return l
	}
	return entity.DefaultLocale
}

// T looks key up in the locale dictionary, then the default dictionary, then returns fallback.
func T(locale entity.Locale, key, fallback string) string {
	if s, ok := dictionaries[locale][key]; ok {
		return s
	}
	if s, ok := dictionaries[entity.DefaultLocale][key]; ok {
		return s
	}
	return fallback
}

// Tc is T with the locale taken from ctx.
func Tc(ctx context.Context, key, fallback string) string {
	return T(FromContext(ctx), key, fallback)
}
