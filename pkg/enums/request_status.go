package enums

import "fmt"

// RequestStatus tracks the handling of a custom travel request.
type RequestStatus string

const (
	RequestStatusNew        RequestStatus = "new"
	RequestStatusInProgress RequestStatus = "in-progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusNew,
	RequestStatusInProgress,
	RequestStatusCompleted,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
