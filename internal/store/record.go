package store

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"taskcli/internal/service"
)

// record is the on-disk shape of a task. Pointer fields let validation
// tell a missing field apart from a zero value.
type record struct {
	ID          *int       `json:"id" validate:"required,gt=0"`
	Description *string    `json:"description" validate:"required"`
	Status      *string    `json:"status" validate:"required,oneof=todo in-progress done"`
	CreatedAt   *time.Time `json:"createdAt" validate:"required"`
	UpdatedAt   *time.Time `json:"updatedAt" validate:"required"`
}

func (r record) task() service.Task {
	return service.Task{
		ID:          *r.ID,
		Description: *r.Description,
		Status:      service.Status(*r.Status),
		CreatedAt:   *r.CreatedAt,
		UpdatedAt:   *r.UpdatedAt,
	}
}

// toTasks validates every record and checks that ids are distinct.
func toTasks(v *validator.Validate, records []record) ([]service.Task, error) {
	tasks := make([]service.Task, 0, len(records))
	seen := make(map[int]struct{}, len(records))
	for i, r := range records {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("task at index %d: %w", i, err)
		}
		if _, dup := seen[*r.ID]; dup {
			return nil, fmt.Errorf("duplicate task id %d", *r.ID)
		}
		seen[*r.ID] = struct{}{}
		tasks = append(tasks, r.task())
	}
	return tasks, nil
}
