// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
	"time"

	"taskcli/internal/service"
)

// FakeTime is the timestamp FakeService stamps on every change.
var FakeTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Writes counts successful mutations.
	Writes int

	// Error injection for testing
	AddErr    error
	UpdateErr error
	DeleteErr error
	ListErr   error
	MarkErr   error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds a task with the given id, description and status.
func (f *FakeService) AddTask(id int, description string, status service.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          id,
		Description: description,
		Status:      status,
		CreatedAt:   FakeTime,
		UpdatedAt:   FakeTime,
	})
}

// Tasks returns a copy of the current collection.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, description string) (service.Task, error) {
	if f.AddErr != nil {
		return service.Task{}, f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := 1
	for _, t := range f.tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	task := service.Task{
		ID:          id,
		Description: description,
		Status:      service.StatusTodo,
		CreatedAt:   FakeTime,
		UpdatedAt:   FakeTime,
	}
	f.tasks = append(f.tasks, task)
	f.Writes++
	return task, nil
}

// Update implements service.Service.
func (f *FakeService) Update(ctx context.Context, id, description string) (service.Task, error) {
	if f.UpdateErr != nil {
		return service.Task{}, f.UpdateErr
	}
	return f.modify(id, func(t *service.Task) { t.Description = description })
}

// MarkInProgress implements service.Service.
func (f *FakeService) MarkInProgress(ctx context.Context, id string) (service.Task, error) {
	if f.MarkErr != nil {
		return service.Task{}, f.MarkErr
	}
	return f.modify(id, func(t *service.Task) { t.Status = service.StatusInProgress })
}

// MarkDone implements service.Service.
func (f *FakeService) MarkDone(ctx context.Context, id string) (service.Task, error) {
	if f.MarkErr != nil {
		return service.Task{}, f.MarkErr
	}
	return f.modify(id, func(t *service.Task) { t.Status = service.StatusDone })
}

// Delete implements service.Service.
func (f *FakeService) Delete(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	n, err := service.ParseID(id)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == n {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.Writes++
			return nil
		}
	}
	return service.ErrNotFound
}

// List implements service.Service.
func (f *FakeService) List(ctx context.Context, filter service.Status) ([]service.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []service.Task
	for _, t := range f.tasks {
		if filter == "" || t.Status == filter {
			result = append(result, t)
		}
	}
	return result, nil
}

func (f *FakeService) modify(id string, change func(*service.Task)) (service.Task, error) {
	n, err := service.ParseID(id)
	if err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == n {
			change(&f.tasks[i])
			f.tasks[i].UpdatedAt = FakeTime
			f.Writes++
			return f.tasks[i], nil
		}
	}
	return service.Task{}, service.ErrNotFound
}

var _ service.Service = (*FakeService)(nil)
