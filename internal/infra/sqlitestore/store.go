// Package sqlitestore provides a SQLite implementation of the goal, task and
// progress repositories.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// FileName is the database file name inside the store directory.
const FileName = "goalpilot.db"

const timeLayout = time.RFC3339Nano

// Store implements the repositories on a single SQLite database.
// Each table carries a seq column so listings keep insertion order.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and creates if needed) the database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create db dir: %w", domain.ErrStorage, err)
	}
	path := filepath.Join(dir, FileName)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", domain.ErrStorage, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.Initialize(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Goals returns the store as a GoalRepository.
func (s *Store) Goals() domain.GoalRepository { return goalRepo{s.db} }

// Tasks returns the store as a TaskRepository.
func (s *Store) Tasks() domain.TaskRepository { return taskRepo{s.db} }

// Progress returns the store as a ProgressRepository.
func (s *Store) Progress() domain.ProgressRepository { return progressRepo{s.db} }

// Initialize creates the tables if they don't exist.
func (s *Store) Initialize() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS goals (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  duration_days INTEGER NOT NULL,
  status TEXT NOT NULL,
  plan TEXT,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS tasks (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  goal_id TEXT NOT NULL,
  day INTEGER NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS tasks_goal_id ON tasks(goal_id);
CREATE TABLE IF NOT EXISTS progress (
  seq INTEGER PRIMARY KEY AUTOINCREMENT,
  id TEXT NOT NULL UNIQUE,
  goal_id TEXT NOT NULL,
  completed_tasks INTEGER NOT NULL,
  total_tasks INTEGER NOT NULL,
  progress_percentage INTEGER NOT NULL,
  timestamp TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS progress_goal_id ON progress(goal_id);
`
	if _, err := s.db.ExecContext(context.Background(), ddl); err != nil {
		return fmt.Errorf("%w: create tables: %w", domain.ErrStorage, err)
	}
	return nil
}

type goalRepo struct{ db *sql.DB }

func (r goalRepo) Save(goal *domain.Goal) error {
	var plan any
	if goal.Plan != nil {
		raw, err := json.Marshal(goal.Plan)
		if err != nil {
			return fmt.Errorf("%w: marshal plan: %w", domain.ErrStorage, err)
		}
		plan = string(raw)
	}

	const stmt = `
INSERT INTO goals (id, title, duration_days, status, plan, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  duration_days=excluded.duration_days,
  status=excluded.status,
  plan=excluded.plan,
  created_at=excluded.created_at;
`
	_, err := r.db.ExecContext(context.Background(), stmt,
		goal.ID,
		goal.Title,
		goal.DurationDays,
		string(goal.Status),
		plan,
		goal.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert goal: %w", domain.ErrStorage, err)
	}
	return nil
}

const goalColumns = `id, title, duration_days, status, plan, created_at`

func (r goalRepo) Get(id string) (*domain.Goal, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return goal, err
}

func (r goalRepo) List() ([]*domain.Goal, error) {
	rows, err := r.db.QueryContext(context.Background(),
		`SELECT `+goalColumns+` FROM goals ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: list goals: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list goals: %w", domain.ErrStorage, err)
	}
	return goals, nil
}

func (r goalRepo) Delete(id string) error {
	if _, err := r.db.ExecContext(context.Background(), `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("%w: delete goal: %w", domain.ErrStorage, err)
	}
	return nil
}

type taskRepo struct{ db *sql.DB }

func (r taskRepo) ReplaceForGoal(goalID string, tasks []*domain.Task) error {
	ctx := context.Background()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStorage, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE goal_id = ?`, goalID); err != nil {
		return fmt.Errorf("%w: clear tasks: %w", domain.ErrStorage, err)
	}

	const stmt = `
INSERT INTO tasks (id, goal_id, day, title, description, completed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  goal_id=excluded.goal_id,
  day=excluded.day,
  title=excluded.title,
  description=excluded.description,
  completed=excluded.completed,
  created_at=excluded.created_at,
  updated_at=excluded.updated_at;
`
	for _, t := range tasks {
		if _, err := tx.ExecContext(ctx, stmt,
			t.ID,
			t.GoalID,
			t.Day,
			t.Title,
			t.Description,
			t.Completed,
			t.CreatedAt.Format(timeLayout),
			formatOptional(t.UpdatedAt),
		); err != nil {
			return fmt.Errorf("%w: insert task: %w", domain.ErrStorage, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStorage, err)
	}
	return nil
}

const taskColumns = `id, goal_id, day, title, description, completed, created_at, updated_at`

func (r taskRepo) List() ([]*domain.Task, error) {
	return r.query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY seq`)
}

func (r taskRepo) ListByGoal(goalID string) ([]*domain.Task, error) {
	return r.query(`SELECT `+taskColumns+` FROM tasks WHERE goal_id = ? ORDER BY seq`, goalID)
}

func (r taskRepo) Get(id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(context.Background(),
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return task, err
}

func (r taskRepo) SetCompleted(id string, completed bool, at time.Time) (*domain.Task, error) {
	res, err := r.db.ExecContext(context.Background(),
		`UPDATE tasks SET completed = ?, updated_at = ? WHERE id = ?`,
		completed, at.Format(timeLayout), id)
	if err != nil {
		return nil, fmt.Errorf("%w: update task: %w", domain.ErrStorage, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return r.Get(id)
}

func (r taskRepo) query(q string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(context.Background(), q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list tasks: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list tasks: %w", domain.ErrStorage, err)
	}
	return tasks, nil
}

type progressRepo struct{ db *sql.DB }

func (r progressRepo) Save(p *domain.Progress) error {
	const stmt = `
INSERT INTO progress (id, goal_id, completed_tasks, total_tasks, progress_percentage, timestamp, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  goal_id=excluded.goal_id,
  completed_tasks=excluded.completed_tasks,
  total_tasks=excluded.total_tasks,
  progress_percentage=excluded.progress_percentage,
  timestamp=excluded.timestamp,
  updated_at=excluded.updated_at;
`
	_, err := r.db.ExecContext(context.Background(), stmt,
		p.ID,
		p.GoalID,
		p.CompletedTasks,
		p.TotalTasks,
		p.ProgressPercentage,
		p.Timestamp.Format(timeLayout),
		formatOptional(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert progress: %w", domain.ErrStorage, err)
	}
	return nil
}

const progressColumns = `id, goal_id, completed_tasks, total_tasks, progress_percentage, timestamp, updated_at`

func (r progressRepo) List() ([]*domain.Progress, error) {
	return r.query(`SELECT ` + progressColumns + ` FROM progress ORDER BY seq`)
}

func (r progressRepo) ListByGoal(goalID string) ([]*domain.Progress, error) {
	return r.query(`SELECT `+progressColumns+` FROM progress WHERE goal_id = ? ORDER BY seq`, goalID)
}

func (r progressRepo) query(q string, args ...any) ([]*domain.Progress, error) {
	rows, err := r.db.QueryContext(context.Background(), q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list progress: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	history := []*domain.Progress{}
	for rows.Next() {
		var (
			p         domain.Progress
			timestamp string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.GoalID, &p.CompletedTasks, &p.TotalTasks,
			&p.ProgressPercentage, &timestamp, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan progress: %w", domain.ErrStorage, err)
		}
		if p.Timestamp, err = time.Parse(timeLayout, timestamp); err != nil {
			return nil, fmt.Errorf("%w: parse timestamp: %w", domain.ErrStorage, err)
		}
		if p.UpdatedAt, err = parseOptional(updatedAt); err != nil {
			return nil, err
		}
		history = append(history, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list progress: %w", domain.ErrStorage, err)
	}
	return history, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (*domain.Goal, error) {
	var (
		goal      domain.Goal
		status    string
		plan      sql.NullString
		createdAt string
	)
	if err := row.Scan(&goal.ID, &goal.Title, &goal.DurationDays, &status, &plan, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan goal: %w", domain.ErrStorage, err)
	}
	goal.Status = domain.GoalStatus(status)

	var err error
	if goal.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("%w: parse created_at: %w", domain.ErrStorage, err)
	}
	if plan.Valid {
		goal.Plan = &domain.Plan{}
		if err := json.Unmarshal([]byte(plan.String), goal.Plan); err != nil {
			return nil, fmt.Errorf("%w: parse plan: %w", domain.ErrStorage, err)
		}
	}
	return &goal, nil
}

func scanTask(row scanner) (*domain.Task, error) {
	var (
		task      domain.Task
		createdAt string
		updatedAt sql.NullString
	)
	if err := row.Scan(&task.ID, &task.GoalID, &task.Day, &task.Title, &task.Description,
		&task.Completed, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan task: %w", domain.ErrStorage, err)
	}

	var err error
	if task.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("%w: parse created_at: %w", domain.ErrStorage, err)
	}
	if task.UpdatedAt, err = parseOptional(updatedAt); err != nil {
		return nil, err
	}
	return &task, nil
}

func formatOptional(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func parseOptional(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("%w: parse updated_at: %w", domain.ErrStorage, err)
	}
	return &t, nil
}

var (
	_ domain.StoreInitializer   = (*Store)(nil)
	_ domain.GoalRepository     = goalRepo{}
	_ domain.TaskRepository     = taskRepo{}
	_ domain.ProgressRepository = progressRepo{}
)
