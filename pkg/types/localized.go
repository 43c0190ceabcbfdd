package types

import (
	"encoding/json"

	dbtypes "github.com/javohirtm/ombor-backend/pkg/db/types"
)

// Localized is the boundary shape for multilingual text. When a language was
// requested it marshals as the resolved string, otherwise as the raw
// language map. The decision happens once, where the response is built, so
// repositories never branch on language.
type Localized struct {
	raw      dbtypes.Translated
	resolved string
	isRaw    bool
}

// Localize resolves a multilingual value against the requested language.
// An empty lang keeps the raw map.
func Localize(value dbtypes.Translated, lang string) Localized {
	if lang == "" {
		return Localized{raw: value, isRaw: true}
	}
	return Localized{resolved: value.Resolve(lang)}
}

// String returns the resolved text, or empty when the value is raw.
func (l Localized) String() string {
	return l.resolved
}

func (l Localized) MarshalJSON() ([]byte, error) {
	if l.isRaw {
		if l.raw == nil {
			return json.Marshal(map[string]string{})
		}
		return json.Marshal(map[string]string(l.raw))
	}
	return json.Marshal(l.resolved)
}
