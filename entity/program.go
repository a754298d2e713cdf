package entity

const (
	CategoryDaycare               = "daycare"
	CategoryQuranKids             = "quran_kids"
	CategoryArabicWomen           = "arabic_women"
	CategoryGeneralIslamicStudies = "general_islamic_studies"
)

type ProgramContent struct {
	Label       string `json:"label" bson:"label"`
	Description string `json:"description" bson:"description"`
	Terms       string `json:"terms" bson:"terms"`
}

type Program struct {
	ID             string                    `json:"id" bson:"_id" validate:"required"`
	Price          float64                   `json:"price" bson:"price" validate:"gte=0"`
	Category       string                    `json:"category" bson:"category" validate:"required"`
	AgeRange       string                    `json:"age_range,omitempty" bson:"age_range,omitempty"`
	Duration       string                    `json:"duration,omitempty" bson:"duration,omitempty"`
	Schedule       string                    `json:"schedule,omitempty" bson:"schedule,omitempty"`
	IsChildProgram bool                      `json:"is_child_program" bson:"is_child_program"`
	Translations   map[Locale]ProgramContent `json:"translations" bson:"translations"`
}

// Content returns the translation for locale, or the default-locale one when it is absent.
func (p *Program) Content(locale Locale) ProgramContent {
	if c, ok := p.Translations[locale]; ok {
		return c
	}
	return p.Translations[DefaultLocale]
}
