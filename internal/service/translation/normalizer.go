// Package translation turns loosely shaped store records into canonical translated records.
package translation

import (
	"EnrollHub/entity"
	"EnrollHub/internal/lib/sl"
	"fmt"
	"log/slog"
	"maps"

	"go.mongodb.org/mongo-driver/bson"
)

// Record is a canonical translated record: Translations[default] holds every schema field.
type Record struct {
	ID           string
	Attributes   map[string]any
	Translations map[entity.Locale]Content
}

type Normalizer struct {
	defaultLocale entity.Locale
	locales       []entity.Locale
	log           *slog.Logger
}

func NewNormalizer(defaultLocale entity.Locale, log *slog.Logger) *Normalizer {
	return &Normalizer{
		defaultLocale: defaultLocale,
		locales:       entity.SupportedLocales,
		log:           log.With(sl.Module("translation")),
	}
}

// Classify resolves the shape of raw once so that callers never branch on legacy fields.
func (n *Normalizer) Classify(raw map[string]any, idField string, schema Schema) Shape {
	return classify(raw, idField, schema, n.defaultLocale, n.locales)
}

// Normalize returns a record whose default-locale content is always fully populated.
// Missing default content is synthesized from flat fields and the identifier, with a warning.
func (n *Normalizer) Normalize(raw map[string]any, idField string, schema Schema) Record {
	switch s := n.Classify(raw, idField, schema).(type) {
	case CanonicalShape:
		return n.complete(s.ID, s.Attributes, s.Flat, s.Translations, schema, false)
	case LegacyShape:
		return n.complete(s.ID, s.Attributes, s.Flat, s.Translations, schema, true)
	default:
		panic(fmt.Sprintf("translation: unexpected shape %T", s))
	}
}

func (n *Normalizer) complete(id string, attrs map[string]any, flat Content, translations map[entity.Locale]Content, schema Schema, legacy bool) Record {
	def := make(Content, len(schema.Fields))
	maps.Copy(def, translations[n.defaultLocale])

	var synthesized []string
	for _, f := range schema.Fields {
		if _, ok := def[f.Name]; ok {
			continue
		}
		value := flat[f.Name]
		if value == "" && f.FallbackToID {
			value = id
		}
		def[f.Name] = value
		synthesized = append(synthesized, f.Name)
	}
	translations[n.defaultLocale] = def

	if legacy || len(synthesized) > 0 {
		n.log.With(
			slog.String("kind", schema.Kind),
			slog.String("id", id),
			slog.String("locale", string(n.defaultLocale)),
			slog.Any("fields", synthesized),
		).Warn("default locale content synthesized from fallbacks")
	}

	return Record{
		ID:           id,
		Attributes:   attrs,
		Translations: translations,
	}
}

// Content returns the translation for locale, or the default one when absent.
func (r Record) Content(locale entity.Locale) Content {
	if c, ok := r.Translations[locale]; ok {
		return c
	}
	return r.Translations[entity.DefaultLocale]
}

// Raw rebuilds a canonical raw record keyed by idField.
func (r Record) Raw(idField string) map[string]any {
	raw := make(map[string]any, len(r.Attributes)+2)
	maps.Copy(raw, r.Attributes)
	raw[idField] = r.ID

	tr := make(map[string]any, len(r.Translations))
	for locale, content := range r.Translations {
		c := make(map[string]any, len(content))
		for k, v := range content {
			c[k] = v
		}
		tr[string(locale)] = c
	}
	raw[translationsKey] = tr
	return raw
}

// Decode maps the record onto a struct whose identifier is tagged bson:"_id".
func (r Record) Decode(out any) error {
	data, err := bson.Marshal(r.Raw("_id"))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.ID, err)
	}
	if err = bson.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", r.ID, err)
	}
	return nil
}
