package enums

import "fmt"

// OrderType distinguishes regular fulfilment from express delivery.
type OrderType string

const (
	OrderTypeRegular OrderType = "regular"
	OrderTypeExpress OrderType = "express"
)

var validOrderTypes = []OrderType{
	OrderTypeRegular,
	OrderTypeExpress,
}

// IsValid reports whether the value matches the canonical order type enum.
func (t OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseOrderType converts the raw string to OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
