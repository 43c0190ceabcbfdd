package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Translated is a JSONB map of language code to text, e.g.
// {"uz": "Ko'ylak", "ru": "Рубашка", "en": "Shirt"}.
type Translated map[string]string

func (t *Translated) Scan(src any) error {
	if src == nil {
		*t = Translated{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return t.parseFromString(v)
	case []byte:
		return t.parseFromString(string(v))
	default:
		return fmt.Errorf("Translated: unsupported Scan type %T", src)
	}
}

func (t Translated) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]string(t))
	if err != nil {
		return nil, fmt.Errorf("Translated: marshal: %w", err)
	}
	return string(raw), nil
}

// Resolve returns the text for the given language, falling back to any
// available translation when the requested one is missing.
func (t Translated) Resolve(lang string) string {
	if len(t) == 0 {
		return ""
	}
	if text, ok := t[lang]; ok {
		return text
	}
	for _, text := range t {
		return text
	}
	return ""
}

func (t *Translated) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "{}" || s == "null" {
		*t = Translated{}
		return nil
	}
	out := map[string]string{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return fmt.Errorf("Translated: parse: %w", err)
	}
	*t = Translated(out)
	return nil
}

// GormDataType keeps sqlite test databases happy while postgres uses jsonb.
func (Translated) GormDataType() string {
	return "text"
}
