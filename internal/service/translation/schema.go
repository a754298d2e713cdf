package translation

// Field is one key of a translated sub-object.
type Field struct {
	Name string
	// FallbackToID makes the record identifier the last-resort value when
	// the default-locale content has to be synthesized.
	FallbackToID bool
}

// Schema names the translated fields of one record type.
type Schema struct {
	Kind   string
	Fields []Field
}

var ProgramSchema = Schema{
	Kind: "program",
	Fields: []Field{
		{Name: "label", FallbackToID: true},
		{Name: "description"},
		{Name: "terms"},
	},
}

var PaymentMethodSchema = Schema{
	Kind: "payment_method",
	Fields: []Field{
		{Name: "label", FallbackToID: true},
		{Name: "accountName"},
		{Name: "instructions"},
	},
}

func (s Schema) isTranslated(key string) bool {
	for _, f := range s.Fields {
		if f.Name == key {
			return true
		}
	}
	return false
}
