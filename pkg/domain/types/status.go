package types

import "strings"

// Status represents the terminal status of a tracked item
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusMerged Status = "merged"
)

// Statuses lists every status in stacking order
var Statuses = []Status{StatusOpen, StatusClosed, StatusMerged}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusClosed, StatusMerged:
		return true
	default:
		return false
	}
}

// NormalizeStatus lowercases and trims a raw state value. The result is
// not guaranteed to be valid; callers check IsValid.
func NormalizeStatus(raw string) Status {
	return Status(strings.ToLower(strings.TrimSpace(raw)))
}
