package entity

// Locale is a language code from the closed set the service is translated into.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleFrench  Locale = "fr"
	LocaleArabic  Locale = "ar"

	DefaultLocale = LocaleEnglish
)

var SupportedLocales = []Locale{LocaleEnglish, LocaleFrench, LocaleArabic}

func ParseLocale(code string) (Locale, bool) {
	for _, l := range SupportedLocales {
		if string(l) == code {
			return l, true
		}
	}
	return DefaultLocale, false
}

func (l Locale) IsDefault() bool {
	return l == DefaultLocale
}
