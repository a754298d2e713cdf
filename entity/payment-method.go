package entity

type PaymentMethodContent struct {
	Label        string `json:"label" bson:"label"`
	AccountName  string `json:"accountName,omitempty" bson:"accountName"`
	Instructions string `json:"instructions,omitempty" bson:"instructions"`
}

type PaymentMethod struct {
	Value         string                          `json:"value" bson:"_id" validate:"required"`
	AccountNumber string                          `json:"account_number,omitempty" bson:"account_number,omitempty"`
	Icons         []string                        `json:"icons,omitempty" bson:"icons,omitempty"`
	Translations  map[Locale]PaymentMethodContent `json:"translations" bson:"translations"`
}

func (m *PaymentMethod) Content(locale Locale) PaymentMethodContent {
	if c, ok := m.Translations[locale]; ok {
		return c
	}
	return m.Translations[DefaultLocale]
}
