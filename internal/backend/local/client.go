// Package local implements the service.Service interface on top of the local tasks file.
package local

import (
	"context"
	"fmt"
	"time"

	"taskcli/internal/logger"
	"taskcli/internal/service"
	"taskcli/internal/store"
)

// Client implements service.Service using a store.Store.
// Each call loads the full collection, applies one change and saves it.
type Client struct {
	store *store.Store
	now   func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client backed by st.
func New(st *store.Store, opts ...Option) *Client {
	c := &Client{
		store: st,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// timestamp returns the current time in the precision persisted on disk.
func (c *Client) timestamp() time.Time {
	return c.now().UTC().Truncate(time.Millisecond)
}

// Add creates a new task with status todo.
func (c *Client) Add(ctx context.Context, description string) (service.Task, error) {
	var created service.Task
	err := c.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		now := c.timestamp()
		created = service.Task{
			ID:          nextID(tasks),
			Description: description,
			Status:      service.StatusTodo,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return append(tasks, created), nil
	})
	if err != nil {
		return service.Task{}, err
	}
	logger.FromContext(ctx).Debug("task added", "id", created.ID)
	return created, nil
}

// Update replaces the description of a task.
func (c *Client) Update(ctx context.Context, id, description string) (service.Task, error) {
	return c.modify(ctx, id, func(t *service.Task) {
		t.Description = description
	})
}

// MarkInProgress sets a task's status to in-progress.
func (c *Client) MarkInProgress(ctx context.Context, id string) (service.Task, error) {
	return c.modify(ctx, id, func(t *service.Task) {
		t.Status = service.StatusInProgress
	})
}

// MarkDone sets a task's status to done.
func (c *Client) MarkDone(ctx context.Context, id string) (service.Task, error) {
	return c.modify(ctx, id, func(t *service.Task) {
		t.Status = service.StatusDone
	})
}

// Delete removes a task, keeping the order of the rest.
func (c *Client) Delete(ctx context.Context, id string) error {
	n, err := service.ParseID(id)
	if err != nil {
		return err
	}
	err = c.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		i := indexOf(tasks, n)
		if i < 0 {
			return nil, service.ErrNotFound
		}
		return append(tasks[:i], tasks[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Debug("task deleted", "id", n)
	return nil
}

// List returns tasks matching filter in collection order.
// An empty filter returns every task. Nothing is written.
func (c *Client) List(ctx context.Context, filter service.Status) ([]service.Task, error) {
	tasks, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if filter == "" {
		return tasks, nil
	}

	matched := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == filter {
			matched = append(matched, t)
		}
	}
	logger.FromContext(ctx).Debug("tasks listed", "filter", string(filter), "matched", len(matched))
	return matched, nil
}

// modify applies change to the task with the given id and refreshes UpdatedAt.
func (c *Client) modify(ctx context.Context, id string, change func(*service.Task)) (service.Task, error) {
	n, err := service.ParseID(id)
	if err != nil {
		return service.Task{}, err
	}

	var updated service.Task
	err = c.mutate(ctx, func(tasks []service.Task) ([]service.Task, error) {
		i := indexOf(tasks, n)
		if i < 0 {
			return nil, service.ErrNotFound
		}
		change(&tasks[i])
		tasks[i].UpdatedAt = c.timestamp()
		updated = tasks[i]
		return tasks, nil
	})
	if err != nil {
		return service.Task{}, err
	}
	logger.FromContext(ctx).Debug("task updated", "id", updated.ID, "status", string(updated.Status))
	return updated, nil
}

// mutate runs one load → change → save cycle under the store lock.
// When change fails nothing is written.
func (c *Client) mutate(ctx context.Context, change func([]service.Task) ([]service.Task, error)) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, err := c.store.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("unlock tasks file: %w", uerr)
		}
	}()

	tasks, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	tasks, err = change(tasks)
	if err != nil {
		return err
	}
	if err := c.store.Save(tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// nextID is one greater than the largest id present, or 1 for an empty collection.
func nextID(tasks []service.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func indexOf(tasks []service.Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

var _ service.Service = (*Client)(nil)
