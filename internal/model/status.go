package model

import (
	"fmt"
	"strings"
)

// TaskStatus is a closed enumeration validated at the boundary.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
	StatusOnHold     TaskStatus = "on_hold"
)

func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		StatusPending,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusOnHold,
	}
}

// ParseTaskStatus normalizes case and rejects anything outside the enumeration.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusOnHold:
		return true
	}
	return false
}

func (s TaskStatus) String() string {
	return string(s)
}
