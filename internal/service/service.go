package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// ErrNotFound is returned when no task matches the requested id.
var ErrNotFound = errors.New("task not found")

// Service defines the interface for task operations.
// Every call reads the whole collection, applies one change and writes it back.
// Commands never touch the store directly.
type Service interface {
	// Add creates a task with status todo and returns it.
	Add(ctx context.Context, description string) (Task, error)

	// Update replaces the description of the task with the given id.
	// Returns ErrNotFound if no task matches.
	Update(ctx context.Context, id, description string) (Task, error)

	// Delete removes the task with the given id.
	// Returns ErrNotFound if no task matches.
	Delete(ctx context.Context, id string) error

	// List returns tasks in collection order.
	// An empty filter returns every task.
	List(ctx context.Context, filter Status) ([]Task, error)

	// MarkInProgress sets the task status to in-progress.
	MarkInProgress(ctx context.Context, id string) (Task, error)

	// MarkDone sets the task status to done.
	MarkDone(ctx context.Context, id string) (Task, error)
}

// ParseID normalizes caller-supplied id text to the integer it starts with.
// Leading whitespace and an optional sign are accepted and anything after the
// leading digits is ignored, so "12abc" and "1.5" name tasks 12 and 1.
// Returns ErrNotFound when there are no leading digits, so an unparsable id
// behaves like an id that matches nothing.
func ParseID(s string) (int, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrNotFound
	}
	id, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, ErrNotFound
	}
	return id, nil
}
