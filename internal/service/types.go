// Package service defines the storage-agnostic interface for task operations.
package service

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeLayout is the persisted timestamp format: UTC with a fixed
// three-digit millisecond fraction.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus validates s as a task status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Task represents a single task item.
// Field order is the order fields are persisted in.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MarshalJSON writes the timestamps in TimeLayout.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Status      Status `json:"status"`
		CreatedAt   string `json:"createdAt"`
		UpdatedAt   string `json:"updatedAt"`
	}{
		ID:          t.ID,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt.UTC().Format(TimeLayout),
		UpdatedAt:   t.UpdatedAt.UTC().Format(TimeLayout),
	})
}
