package task

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyDescription = errors.New("description is required")

// Task is a single todo item. The ID is assigned by the store on creation
// and never changes; everything else is mutable.
type Task struct {
	ID          int64
	Description string
	Completed   bool
	DueDate     *time.Time
	ProjectID   *string
}

// Fields is the mutable part of a task, used for create and update calls.
type Fields struct {
	Description string
	Completed   bool
	DueDate     *time.Time
	ProjectID   *string
}

// Validate rejects fields that must never reach the store.
// Project references are deliberately not checked against any catalog.
func (f Fields) Validate() error {
	if strings.TrimSpace(f.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// Fields returns a copy of the task's mutable fields.
func (t Task) Fields() Fields {
	return Fields{
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
	}
}
