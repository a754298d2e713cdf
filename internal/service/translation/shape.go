package translation

import (
	"EnrollHub/entity"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const translationsKey = "translations"

// Content is the translated sub-object of one locale.
type Content map[string]string

// Shape is the resolved form of a raw record: LegacyShape or CanonicalShape.
type Shape interface {
	isShape()
}

// LegacyShape has no default-locale translation; its text lives in flat top-level
// fields, if anywhere.
type LegacyShape struct {
	ID           string
	Attributes   map[string]any
	Flat         Content
	Translations map[entity.Locale]Content
}

// CanonicalShape carries a default-locale translation.
type CanonicalShape struct {
	ID           string
	Attributes   map[string]any
	Flat         Content
	Translations map[entity.Locale]Content
}

func (LegacyShape) isShape()    {}
func (CanonicalShape) isShape() {}

func classify(raw map[string]any, idField string, schema Schema, defaultLocale entity.Locale, supported []entity.Locale) Shape {
	id := recordID(raw, idField)
	attrs := make(map[string]any)
	flat := make(Content)
	for k, v := range raw {
		switch {
		case k == idField || k == "_id" || k == translationsKey:
		case schema.isTranslated(k):
			if s := stringValue(v); s != "" {
				flat[k] = s
			}
		default:
			attrs[k] = v
		}
	}

	translations := make(map[entity.Locale]Content)
	if tr, ok := asMap(raw[translationsKey]); ok {
		for _, locale := range supported {
			content, ok := asMap(tr[string(locale)])
			if !ok {
				continue
			}
			c := make(Content, len(content))
			for k, v := range content {
				if v == nil {
					continue
				}
				c[k] = stringValue(v)
			}
			translations[locale] = c
		}
	}

	if _, ok := translations[defaultLocale]; ok {
		return CanonicalShape{ID: id, Attributes: attrs, Flat: flat, Translations: translations}
	}
	return LegacyShape{ID: id, Attributes: attrs, Flat: flat, Translations: translations}
}

func recordID(raw map[string]any, idField string) string {
	v, ok := raw[idField]
	if !ok || v == nil {
		v = raw["_id"]
	}
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	default:
		return fmt.Sprint(id)
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case bson.M:
		return m, true
	case bson.D:
		out := make(map[string]any, len(m))
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}
