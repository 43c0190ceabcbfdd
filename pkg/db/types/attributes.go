package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Attributes is a free-form JSONB document for product information,
// e.g. {"screen": "6.1", "memory": "128GB"}.
type Attributes map[string]any

func (a *Attributes) Scan(src any) error {
	if src == nil {
		*a = Attributes{}
		return nil
	}

	switch v := src.(type) {
	case string:
		return a.parseFromString(v)
	case []byte:
		return a.parseFromString(string(v))
	default:
		return fmt.Errorf("Attributes: unsupported Scan type %T", src)
	}
}

func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	raw, err := json.Marshal(map[string]any(a))
	if err != nil {
		return nil, fmt.Errorf("Attributes: marshal: %w", err)
	}
	return string(raw), nil
}

func (a *Attributes) parseFromString(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "{}" || s == "null" {
		*a = Attributes{}
		return nil
	}
	out := map[string]any{}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return fmt.Errorf("Attributes: parse: %w", err)
	}
	*a = Attributes(out)
	return nil
}

func (Attributes) GormDataType() string {
	return "text"
}
