package models

import "fmt"

// TaskStatus is the closed set of task lifecycle states.
type TaskStatus string

// Priority is the closed set of task priorities.
type Priority string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
)

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether s is one of the known statuses. Values read back
// from storage must pass this check before use.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ParseTaskStatus converts a stored or user-supplied string into a
// TaskStatus, rejecting anything outside the closed set.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return status, nil
}

// ParsePriority converts a stored or user-supplied string into a Priority,
// rejecting anything outside the closed set.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return priority, nil
}
