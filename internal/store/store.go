package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/logging"
)

// Store holds the task collection for one task file.
// It is not safe for concurrent use.
type Store struct {
	path   string
	tasks  []Task
	nextID int
	dirty  bool
	now    func() time.Time
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for task timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns an empty Store bound to path. Nothing is read from disk.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		tasks:  []Task{},
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store for path and loads the task file.
func Open(path string, opts ...Option) (*Store, error) {
	s := New(path, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Dirty reports whether the collection changed since it was loaded or saved.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Load replaces the in-memory collection with the file contents.
func (s *Store) Load() error {
	tasks, err := LoadFile(s.path)
	if err != nil {
		return err
	}
	s.tasks = tasks
	s.nextID = 1
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	s.dirty = false
	s.logger.Debug("loaded task file", "path", s.path, "tasks", len(tasks), "next_id", s.nextID)
	return nil
}

// Save writes the full collection to the task file.
func (s *Store) Save() error {
	if err := SaveFile(s.path, s.tasks); err != nil {
		return err
	}
	s.dirty = false
	s.logger.Debug("saved task file", "path", s.path, "tasks", len(s.tasks))
	return nil
}

// Add appends a new todo task and returns it.
func (s *Store) Add(description string) (Task, error) {
	desc, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	// nextID wraps past math.MaxInt.
	if s.nextID <= 0 {
		return Task{}, fmt.Errorf("%w: no task ids left", ErrValidation)
	}

	now := s.now()
	task := Task{
		ID:          s.nextID,
		Description: desc,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append(s.tasks, task)
	s.nextID++
	s.dirty = true
	s.logger.Debug("added task", "id", task.ID)
	return task, nil
}

// Update replaces a task's description. The status is left unchanged.
func (s *Store) Update(id int, description string) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	desc, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}

	s.tasks[i].Description = desc
	s.tasks[i].UpdatedAt = s.now()
	s.dirty = true
	s.logger.Debug("updated task", "id", id)
	return s.tasks[i], nil
}

// Delete removes a task. Remaining ids are not renumbered.
func (s *Store) Delete(id int) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.dirty = true
	s.logger.Debug("deleted task", "id", id)
	return nil
}

// SetStatus sets a task's status and updated_at.
func (s *Store) SetStatus(id int, status Status) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	s.tasks[i].Status = status
	s.tasks[i].UpdatedAt = s.now()
	s.dirty = true
	s.logger.Debug("set task status", "id", id, "status", status)
	return s.tasks[i], nil
}

// Get returns a task by id.
func (s *Store) Get(id int) (Task, error) {
	i, err := s.index(id)
	if err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// List returns tasks in insertion order. An empty filter returns all tasks;
// otherwise only tasks whose status equals filter are returned.
func (s *Store) List(filter Status) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter != "" && t.Status != filter {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Counts returns the number of tasks per status.
func (s *Store) Counts() map[Status]int {
	return CountByStatus(s.tasks)
}

// CountByStatus tallies tasks per status. Every known status has an entry.
func CountByStatus(tasks []Task) map[Status]int {
	counts := make(map[Status]int, len(Statuses()))
	for _, st := range Statuses() {
		counts[st] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

func (s *Store) index(id int) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d", ErrNotFound, id)
}

func cleanDescription(description string) (string, error) {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return "", fmt.Errorf("%w: description must not be empty", ErrValidation)
	}
	return desc, nil
}
