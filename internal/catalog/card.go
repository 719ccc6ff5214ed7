package catalog

// Card is a static catalog entry. Immutable for the session; display
// strings are keyed by locale with an "en" fallback.
type Card struct {
	ID       string            `yaml:"id"`
	Name     map[string]string `yaml:"name"`
	Upright  map[string]string `yaml:"upright"`
	Reversed map[string]string `yaml:"reversed"`
	Asset    string            `yaml:"asset"`
}

// DisplayName returns the card name for a locale, falling back to English.
func (c Card) DisplayName(locale string) string {
	return localized(c.Name, locale)
}

// Meaning returns the upright or reversed meaning text for a locale.
func (c Card) Meaning(locale string, reversed bool) string {
	if reversed {
		return localized(c.Reversed, locale)
	}
	return localized(c.Upright, locale)
}

func localized(m map[string]string, locale string) string {
	if s, ok := m[locale]; ok {
		return s
	}
	return m["en"]
}
