// Package jsonstore provides a JSON file-based implementation of the goal,
// task and progress repositories.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// File names inside the store directory. Each holds a JSON array.
const (
	GoalsFile    = "goals.json"
	TasksFile    = "tasks.json"
	ProgressFile = "progress.json"
	lockFile     = ".store.lock"
)

// storeData holds the three collections in insertion order.
type storeData struct {
	Goals    []*domain.Goal
	Tasks    []*domain.Task
	Progress []*domain.Progress
	dirty    map[string]bool
}

func (d *storeData) touch(file string) {
	d.dirty[file] = true
}

// Store implements the goal, task and progress repositories on three JSON files.
// A single advisory lock file serializes access across processes.
type Store struct {
	dir      string
	lockPath string
}

// New creates a new Store rooted at dir.
// The files do not need to exist; a missing file reads as an empty collection.
func New(dir string) *Store {
	return &Store{
		dir:      dir,
		lockPath: filepath.Join(dir, lockFile),
	}
}

// Dir returns the directory holding the store files.
func (s *Store) Dir() string {
	return s.dir
}

// Goals returns the store as a GoalRepository.
func (s *Store) Goals() domain.GoalRepository { return goalRepo{s} }

// Tasks returns the store as a TaskRepository.
func (s *Store) Tasks() domain.TaskRepository { return taskRepo{s} }

// Progress returns the store as a ProgressRepository.
func (s *Store) Progress() domain.ProgressRepository { return progressRepo{s} }

// Initialize creates the directory and any missing collection file.
func (s *Store) Initialize() error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("%w: create directory: %w", domain.ErrStorage, err)
	}

	return s.withLockWrite(func(data *storeData) error {
		for _, name := range []string{GoalsFile, TasksFile, ProgressFile} {
			if _, err := os.Stat(filepath.Join(s.dir, name)); os.IsNotExist(err) {
				data.touch(name)
			}
		}
		return nil
	})
}

type goalRepo struct{ s *Store }

func (r goalRepo) Save(goal *domain.Goal) error {
	return r.s.withLockWrite(func(data *storeData) error {
		idx := slices.IndexFunc(data.Goals, func(g *domain.Goal) bool { return g.ID == goal.ID })
		if idx >= 0 {
			data.Goals[idx] = goal
		} else {
			data.Goals = append(data.Goals, goal)
		}
		data.touch(GoalsFile)
		return nil
	})
}

func (r goalRepo) Get(id string) (*domain.Goal, error) {
	var goal *domain.Goal
	err := r.s.withLock(func(data *storeData) error {
		for _, g := range data.Goals {
			if g.ID == id {
				goal = g
				break
			}
		}
		return nil
	})
	return goal, err
}

func (r goalRepo) List() ([]*domain.Goal, error) {
	var goals []*domain.Goal
	err := r.s.withLock(func(data *storeData) error {
		goals = data.Goals
		return nil
	})
	return goals, err
}

func (r goalRepo) Delete(id string) error {
	return r.s.withLockWrite(func(data *storeData) error {
		before := len(data.Goals)
		data.Goals = slices.DeleteFunc(data.Goals, func(g *domain.Goal) bool { return g.ID == id })
		if len(data.Goals) != before {
			data.touch(GoalsFile)
		}
		return nil
	})
}

type taskRepo struct{ s *Store }

func (r taskRepo) ReplaceForGoal(goalID string, tasks []*domain.Task) error {
	return r.s.withLockWrite(func(data *storeData) error {
		data.Tasks = slices.DeleteFunc(data.Tasks, func(t *domain.Task) bool { return t.GoalID == goalID })
		data.Tasks = append(data.Tasks, tasks...)
		data.touch(TasksFile)
		return nil
	})
}

func (r taskRepo) List() ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.s.withLock(func(data *storeData) error {
		tasks = data.Tasks
		return nil
	})
	return tasks, err
}

func (r taskRepo) ListByGoal(goalID string) ([]*domain.Task, error) {
	tasks := []*domain.Task{}
	err := r.s.withLock(func(data *storeData) error {
		for _, t := range data.Tasks {
			if t.GoalID == goalID {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	return tasks, err
}

func (r taskRepo) Get(id string) (*domain.Task, error) {
	var task *domain.Task
	err := r.s.withLock(func(data *storeData) error {
		for _, t := range data.Tasks {
			if t.ID == id {
				task = t
				break
			}
		}
		return nil
	})
	return task, err
}

func (r taskRepo) SetCompleted(id string, completed bool, at time.Time) (*domain.Task, error) {
	var task *domain.Task
	err := r.s.withLockWrite(func(data *storeData) error {
		for _, t := range data.Tasks {
			if t.ID == id {
				t.Completed = completed
				t.UpdatedAt = &at
				task = t
				data.touch(TasksFile)
				break
			}
		}
		return nil
	})
	return task, err
}

type progressRepo struct{ s *Store }

func (r progressRepo) Save(progress *domain.Progress) error {
	return r.s.withLockWrite(func(data *storeData) error {
		idx := slices.IndexFunc(data.Progress, func(p *domain.Progress) bool { return p.ID == progress.ID })
		if idx >= 0 {
			data.Progress[idx] = progress
		} else {
			data.Progress = append(data.Progress, progress)
		}
		data.touch(ProgressFile)
		return nil
	})
}

func (r progressRepo) List() ([]*domain.Progress, error) {
	var history []*domain.Progress
	err := r.s.withLock(func(data *storeData) error {
		history = data.Progress
		return nil
	})
	return history, err
}

func (r progressRepo) ListByGoal(goalID string) ([]*domain.Progress, error) {
	history := []*domain.Progress{}
	err := r.s.withLock(func(data *storeData) error {
		for _, p := range data.Progress {
			if p.GoalID == goalID {
				history = append(history, p)
			}
		}
		return nil
	})
	return history, err
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes back
// every collection fn touched.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, fmt.Errorf("%w: create lock directory: %w", domain.ErrStorage, err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("%w: open lock file: %w", domain.ErrStorage, err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("%w: acquire lock: %w", domain.ErrStorage, err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	data := &storeData{dirty: make(map[string]bool)}
	if err := readArray(filepath.Join(s.dir, GoalsFile), &data.Goals); err != nil {
		return nil, err
	}
	if err := readArray(filepath.Join(s.dir, TasksFile), &data.Tasks); err != nil {
		return nil, err
	}
	if err := readArray(filepath.Join(s.dir, ProgressFile), &data.Progress); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) write(data *storeData) error {
	if data.dirty[GoalsFile] {
		if err := writeArray(filepath.Join(s.dir, GoalsFile), data.Goals); err != nil {
			return err
		}
	}
	if data.dirty[TasksFile] {
		if err := writeArray(filepath.Join(s.dir, TasksFile), data.Tasks); err != nil {
			return err
		}
	}
	if data.dirty[ProgressFile] {
		if err := writeArray(filepath.Join(s.dir, ProgressFile), data.Progress); err != nil {
			return err
		}
	}
	return nil
}

// readArray decodes a JSON array file into out. A missing or empty file
// leaves out as an empty slice.
func readArray[T any](path string, out *[]T) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			*out = []T{}
			return nil
		}
		return fmt.Errorf("%w: read %s: %w", domain.ErrStorage, filepath.Base(path), err)
	}

	if len(content) == 0 {
		*out = []T{}
		return nil
	}

	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("%w: parse %s: %w", domain.ErrStorage, filepath.Base(path), err)
	}
	if *out == nil {
		*out = []T{}
	}
	return nil
}

func writeArray[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	content, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", domain.ErrStorage, filepath.Base(path), err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("%w: write temp file: %w", domain.ErrStorage, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("%w: rename temp file: %w", domain.ErrStorage, err)
	}

	return nil
}

var (
	_ domain.StoreInitializer   = (*Store)(nil)
	_ domain.GoalRepository     = goalRepo{}
	_ domain.TaskRepository     = taskRepo{}
	_ domain.ProgressRepository = progressRepo{}
)
