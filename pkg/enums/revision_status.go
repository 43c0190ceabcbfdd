package enums

import "fmt"

// RevisionStatus describes the lifecycle of a stock revision.
type RevisionStatus string

const (
	RevisionStatusCreated   RevisionStatus = "created"
	RevisionStatusCompleted RevisionStatus = "completed"
	RevisionStatusCancelled RevisionStatus = "cancelled"
)

var validRevisionStatuses = []RevisionStatus{
	RevisionStatusCreated,
	RevisionStatusCompleted,
	RevisionStatusCancelled,
}

// IsValid reports whether the value matches the canonical revision status enum.
func (s RevisionStatus) IsValid() bool {
	for _, candidate := range validRevisionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRevisionStatus converts the raw string to RevisionStatus.
func ParseRevisionStatus(value string) (RevisionStatus, error) {
	for _, candidate := range validRevisionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid revision status %q", value)
}
