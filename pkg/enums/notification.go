package enums

import "fmt"

// NotificationStatus is the severity label attached to a notification.
type NotificationStatus string

const (
	NotificationStatusSuccess NotificationStatus = "success"
	NotificationStatusInfo    NotificationStatus = "info"
	NotificationStatusDanger  NotificationStatus = "danger"
	NotificationStatusWarning NotificationStatus = "warning"
)

var validNotificationStatuses = []NotificationStatus{
	NotificationStatusSuccess,
	NotificationStatusInfo,
	NotificationStatusDanger,
	NotificationStatusWarning,
}

// IsValid reports whether the value matches the canonical notification status enum.
func (s NotificationStatus) IsValid() bool {
	for _, candidate := range validNotificationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseNotificationStatus converts the raw string to NotificationStatus.
func ParseNotificationStatus(value string) (NotificationStatus, error) {
	for _, candidate := range validNotificationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification status %q", value)
}
