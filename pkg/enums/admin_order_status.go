package enums

import "fmt"

// AdminOrderStatus describes the allowed values for the `status` column in admin_orders.
type AdminOrderStatus string

const (
	AdminOrderStatusOpened    AdminOrderStatus = "opened"
	AdminOrderStatusCompleted AdminOrderStatus = "completed"
	AdminOrderStatusCancelled AdminOrderStatus = "cancelled"
)

var validAdminOrderStatuses = []AdminOrderStatus{
	AdminOrderStatusOpened,
	AdminOrderStatusCompleted,
	AdminOrderStatusCancelled,
}

// IsValid reports whether the value matches the canonical admin order status enum.
func (s AdminOrderStatus) IsValid() bool {
	for _, candidate := range validAdminOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAdminOrderStatus converts the raw string to AdminOrderStatus.
func ParseAdminOrderStatus(value string) (AdminOrderStatus, error) {
	for _, candidate := range validAdminOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin order status %q", value)
}
