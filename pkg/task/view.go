package task

import (
	"context"
	"time"
)

// View holds the displayed snapshot of the store and keeps it consistent.
// Mutations are optimistic: the snapshot is patched before the write, and a
// failed write rolls the snapshot back by refetching ground truth. A
// successful write makes the patched snapshot the new baseline without a
// refetch.
type View struct {
	store Storer
	tasks []Task
}

func NewView(s Storer) *View {
	return &View{store: s}
}

// Load replaces the snapshot with the store's current contents.
// On failure the previous snapshot is kept and the error surfaced.
func (v *View) Load(ctx context.Context) error {
	tasks, err := v.store.All(ctx)
	if err != nil {
		return err
	}
	v.tasks = tasks
	return nil
}

// Tasks returns the current snapshot.
func (v *View) Tasks() []Task {
	return v.tasks
}

// Get returns the snapshot task with the given id.
func (v *View) Get(id int64) (Task, bool) {
	for _, t := range v.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Groups classifies the current snapshot relative to now.
func (v *View) Groups(now time.Time) []Group {
	return Groups(v.tasks, now)
}

// Create validates and persists a new task, then refetches the collection:
// the id is store-assigned, so there is no optimistic insert. Validation
// failures never reach the store. A zero id with an error means nothing was
// persisted and the caller can keep its form state and retry; a non-zero id
// with an error means the task exists but the follow-up refetch failed, so
// retrying the create would duplicate it.
func (v *View) Create(ctx context.Context, f Fields) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	id, err := v.store.Create(ctx, f)
	if err != nil {
		return 0, err
	}
	if err := v.Load(ctx); err != nil {
		return id, err
	}
	return id, nil
}

// Update patches the snapshot immediately, then persists. A failed write
// reverts by refetch and returns the write error.
func (v *View) Update(ctx context.Context, id int64, f Fields) error {
	for i := range v.tasks {
		if v.tasks[i].ID == id {
			v.tasks[i] = Task{
				ID:          id,
				Description: f.Description,
				Completed:   f.Completed,
				DueDate:     f.DueDate,
				ProjectID:   f.ProjectID,
			}
			break
		}
	}
	if err := v.store.Update(ctx, id, f); err != nil {
		v.revert(ctx)
		return err
	}
	return nil
}

// Delete removes the task from the snapshot immediately, then persists,
// with the same revert-by-refetch contract as Update.
func (v *View) Delete(ctx context.Context, id int64) error {
	for i := range v.tasks {
		if v.tasks[i].ID == id {
			v.tasks = append(v.tasks[:i], v.tasks[i+1:]...)
			break
		}
	}
	if err := v.store.Delete(ctx, id); err != nil {
		v.revert(ctx)
		return err
	}
	return nil
}

// revert restores ground truth after a failed write. If the refetch itself
// fails the optimistic snapshot stays; the write error already told the
// caller the store is unhappy.
func (v *View) revert(ctx context.Context) {
	_ = v.Load(ctx)
}
