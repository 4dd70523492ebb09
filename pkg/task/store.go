package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("task not found")

// Storer defines the store operations the rest of the app depends on.
type Storer interface {
	Create(ctx context.Context, f Fields) (int64, error)
	All(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, id int64, f Fields) error
	Delete(ctx context.Context, id int64) error
}

var _ Storer = &SQLiteStore{}

// due dates are persisted in their serializable string form
const dueDateFormat = "2006-01-02"

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT NOT NULL,
	completed   BOOLEAN NOT NULL DEFAULT 0,
	due_date    TEXT,
	project_id  TEXT
);`

// SQLiteStore persists tasks in an embedded sqlite database.
// Each operation is atomic at single-record granularity; there are no
// multi-task transactions.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the database at path, creating it and its schema if needed.
// Use ":memory:" for a throwaway store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Create persists a new task and returns its store-assigned id.
// New tasks are never completed, whatever the caller put in f.
func (s *SQLiteStore) Create(ctx context.Context, f Fields) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (description, completed, due_date, project_id) VALUES (?, 0, ?, ?)`,
		f.Description, encodeDue(f.DueDate), f.ProjectID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// All returns every persisted task in id order.
func (s *SQLiteStore) All(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, description, completed, due_date, project_id FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var (
			t       Task
			due     sql.NullString
			project sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.Description, &t.Completed, &due, &project); err != nil {
			return nil, err
		}
		if due.Valid {
			d, err := time.Parse(dueDateFormat, due.String)
			if err != nil {
				return nil, fmt.Errorf("task %d: bad due date %q: %w", t.ID, due.String, err)
			}
			t.DueDate = &d
		}
		if project.Valid {
			p := project.String
			t.ProjectID = &p
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update overwrites the task's mutable fields.
// Returns ErrNotFound if no task has the given id.
func (s *SQLiteStore) Update(ctx context.Context, id int64, f Fields) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET description = ?, completed = ?, due_date = ?, project_id = ? WHERE id = ?`,
		f.Description, f.Completed, encodeDue(f.DueDate), f.ProjectID, id,
	)
	if err != nil {
		return err
	}
	return checkFound(res)
}

// Delete removes the task. Returns ErrNotFound if no task has the given id.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkFound(res)
}

func checkFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeDue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dueDateFormat)
}
