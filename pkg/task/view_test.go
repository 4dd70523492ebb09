package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory Storer whose operations can be made to fail.
type fakeStore struct {
	tasks  []Task
	nextID int64

	failAll    bool
	failCreate bool
	failUpdate bool
	failDelete bool

	creates int
}

func newFakeStore(tasks ...Task) *fakeStore {
	var next int64 = 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return &fakeStore{tasks: tasks, nextID: next}
}

func (f *fakeStore) Create(_ context.Context, fields Fields) (int64, error) {
	if f.failCreate {
		return 0, errStoreDown
	}
	f.creates++
	id := f.nextID
	f.nextID++
	f.tasks = append(f.tasks, Task{
		ID:          id,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		ProjectID:   fields.ProjectID,
	})
	return id, nil
}

func (f *fakeStore) All(_ context.Context) ([]Task, error) {
	if f.failAll {
		return nil, errStoreDown
	}
	out := make([]Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id int64, fields Fields) error {
	if f.failUpdate {
		return errStoreDown
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i] = Task{
				ID:          id,
				Description: fields.Description,
				Completed:   fields.Completed,
				DueDate:     fields.DueDate,
				ProjectID:   fields.ProjectID,
			}
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if f.failDelete {
		return errStoreDown
	}
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestView_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the snapshot", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 1, Description: "a"}, Task{ID: 2, Description: "b"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))
		is.Equal(len(v.Tasks()), 2)
	})

	t.Run("keeps the previous snapshot on failure", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 1, Description: "a"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		store.failAll = true
		is.Equal(v.Load(ctx), errStoreDown)
		is.Equal(len(v.Tasks()), 1)
	})
}

func TestView_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("commits optimistically without a refetch", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 3, Description: "laundry"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		// if Update refetched on success this would blow up
		store.failAll = true

		task, ok := v.Get(3)
		is.True(ok)
		fields := task.Fields()
		fields.Completed = true
		is.NoErr(v.Update(ctx, 3, fields))

		got, ok := v.Get(3)
		is.True(ok)
		is.Equal(got.Completed, true)

		store.failAll = false
		persisted, err := store.All(ctx)
		is.NoErr(err)
		is.Equal(persisted[0].Completed, true)
	})

	t.Run("reverts the patch when the write fails", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 3, Description: "laundry"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		store.failUpdate = true
		fields := Fields{Description: "laundry", Completed: true}
		is.Equal(v.Update(ctx, 3, fields), errStoreDown)

		got, ok := v.Get(3)
		is.True(ok)
		is.Equal(got.Completed, false) // ground truth restored
	})
}

func TestView_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes optimistically", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 5, Description: "old"}, Task{ID: 6, Description: "keep"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		is.NoErr(v.Delete(ctx, 5))
		_, ok := v.Get(5)
		is.True(!ok)
		is.Equal(len(v.Tasks()), 1)
	})

	t.Run("restores the task when the write fails", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 5, Description: "sticky"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		store.failDelete = true
		is.Equal(v.Delete(ctx, 5), errStoreDown)

		_, ok := v.Get(5)
		is.True(ok) // still displayed after reconciliation
	})
}

func TestView_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("refetches so the assigned id appears", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore()
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		id, err := v.Create(ctx, Fields{Description: "new"})
		is.NoErr(err)
		got, ok := v.Get(id)
		is.True(ok)
		is.Equal(got.Description, "new")
	})

	t.Run("empty description never reaches the store", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore()
		v := NewView(store)

		_, err := v.Create(ctx, Fields{Description: "  "})
		is.Equal(err, ErrEmptyDescription)
		is.Equal(store.creates, 0)
		is.Equal(len(store.tasks), 0) // store content unchanged
	})

	t.Run("refetch failure still reports the assigned id", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore()
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		store.failAll = true
		id, err := v.Create(ctx, Fields{Description: "new"})
		is.Equal(err, errStoreDown)
		is.True(id != 0) // persisted; the caller must not retry the create
		is.Equal(store.creates, 1)
	})

	t.Run("write failure leaves the snapshot alone", func(t *testing.T) {
		is := is.New(t)
		store := newFakeStore(Task{ID: 1, Description: "a"})
		v := NewView(store)
		is.NoErr(v.Load(ctx))

		store.failCreate = true
		_, err := v.Create(ctx, Fields{Description: "new"})
		is.Equal(err, errStoreDown)
		is.Equal(len(v.Tasks()), 1)
	})
}

func TestView_Groups(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	due := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	store := newFakeStore(Task{ID: 1, Description: "due today", DueDate: &due})
	v := NewView(store)
	is.NoErr(v.Load(ctx))

	now := time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)
	groups := v.Groups(now)
	is.Equal(len(groups[0].Tasks), 1)
}
