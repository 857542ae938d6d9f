package entity

// Localizer is implemented by every entity that carries bilingual fields.
// Localize returns a JSON view where each {en, ta} value is replaced by the
// resolved string.
type Localizer interface {
	Localize(lang Language) interface{}
}
