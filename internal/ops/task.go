// Package ops implements the task store and the batch selection controller.
package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/jacksmith/daily/internal/model"
	"go.uber.org/zap"
)

// TaskStore owns the ordered task sequence and persists it to a Medium
// under a single key after every mutation.
//
// A TaskStore is not safe for concurrent use. It assumes a single writer
// driven by one event loop.
type TaskStore struct {
	medium Medium
	key    string
	tasks  []model.Task
	now    func() time.Time
	log    *zap.Logger
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithClock sets the clock used to generate task IDs.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *TaskStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewTaskStore returns an empty store backed by medium under key.
// Call Initialize to load the persisted sequence.
func NewTaskStore(medium Medium, key string, opts ...Option) *TaskStore {
	s := &TaskStore{
		medium: medium,
		key:    key,
		tasks:  []model.Task{},
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted sequence. A missing, unreadable or
// malformed blob leaves the store empty; no error is surfaced.
func (s *TaskStore) Initialize() {
	s.tasks = []model.Task{}

	data, ok, err := s.medium.Get(s.key)
	if err != nil {
		s.log.Warn("task blob unreadable, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}
	if !ok {
		s.log.Debug("no task blob, starting empty", zap.String("key", s.key))
		return
	}

	tasks, err := model.DecodeTasks(data)
	if err != nil {
		s.log.Warn("task blob malformed, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}

	s.tasks = tasks
	s.log.Debug("tasks loaded", zap.String("key", s.key), zap.Int("count", len(tasks)))
}

// List returns a copy of the task sequence in insertion order.
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Pending returns the tasks that are not completed, in insertion order.
func (s *TaskStore) Pending() []model.Task {
	return s.filter(func(t *model.Task) bool { return !t.Completed })
}

// Completed returns the completed tasks, in insertion order.
func (s *TaskStore) Completed() []model.Task {
	return s.filter(func(t *model.Task) bool { return t.Completed })
}

// Find returns the tasks whose name or description contains query,
// ignoring case, in insertion order.
func (s *TaskStore) Find(query string) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	return s.filter(func(t *model.Task) bool {
		return strings.Contains(strings.ToLower(t.Name), q) ||
			strings.Contains(strings.ToLower(t.Desc), q)
	})
}

func (s *TaskStore) filter(keep func(*model.Task) bool) []model.Task {
	out := []model.Task{}
	for i := range s.tasks {
		if keep(&s.tasks[i]) {
			out = append(out, s.tasks[i])
		}
	}
	return out
}

// Get returns the task with the given ID.
func (s *TaskStore) Get(id int64) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: model.FormatID(id)}
	}
	return s.tasks[i], nil
}

// Resolve finds a task by reference: an exact ID, or a unique suffix of
// one (IDs are long clock readings, so listings show only their tail).
func (s *TaskStore) Resolve(ref string) (model.Task, error) {
	suffix, err := model.ParseRef(strings.TrimSpace(ref))
	if err != nil {
		return model.Task{}, &ValidationError{Field: "task ID", Message: err.Error()}
	}
	if id, err := model.ParseID(suffix); err == nil {
		if t, err := s.Get(id); err == nil {
			return t, nil
		}
	}

	var matches []model.Task
	for _, t := range s.tasks {
		if strings.HasSuffix(model.FormatID(t.ID), suffix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return model.Task{}, &NotFoundError{ID: ref}
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, t := range matches {
			ids[i] = model.FormatID(t.ID)
		}
		return model.Task{}, &AmbiguousError{Ref: ref, Matches: ids}
	}
}

// ValidateName checks that a task name is not empty or whitespace-only.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "task name must not be empty"}
	}
	return nil
}

// ValidatePriority checks that priority is one of high, medium, low.
func ValidatePriority(p model.Priority) error {
	if !p.Valid() {
		return &ValidationError{Field: "priority", Message: fmt.Sprintf("%q must be one of high, medium, low", p)}
	}
	return nil
}

// Add appends a new open task and persists the sequence.
func (s *TaskStore) Add(name, desc string, priority model.Priority) (model.Task, error) {
	if err := ValidateName(name); err != nil {
		return model.Task{}, err
	}
	if err := ValidatePriority(priority); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:       model.NewID(s.now(), model.MaxID(s.tasks)),
		Name:     name,
		Desc:     desc,
		Priority: priority,
	}
	s.tasks = append(s.tasks, task)

	if err := s.save(); err != nil {
		return model.Task{}, err
	}

	s.log.Debug("task added", zap.Int64("id", task.ID), zap.String("priority", string(priority)))
	return task, nil
}

// Update replaces the name, description and priority of a task in place.
// The completed flag and position are preserved. Returns a NotFoundError
// without writing anything if no task has the given ID.
func (s *TaskStore) Update(id int64, name, desc string, priority model.Priority) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: model.FormatID(id)}
	}
	if err := ValidateName(name); err != nil {
		return model.Task{}, err
	}
	if err := ValidatePriority(priority); err != nil {
		return model.Task{}, err
	}

	s.tasks[i].Name = name
	s.tasks[i].Desc = desc
	s.tasks[i].Priority = priority

	if err := s.save(); err != nil {
		return model.Task{}, err
	}

	s.log.Debug("task updated", zap.Int64("id", id))
	return s.tasks[i], nil
}

// ToggleStatus sets the completed flag of a task.
// Returns a NotFoundError without writing anything if no task has the given ID.
func (s *TaskStore) ToggleStatus(id int64, completed bool) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &NotFoundError{ID: model.FormatID(id)}
	}

	s.tasks[i].Completed = completed

	if err := s.save(); err != nil {
		return model.Task{}, err
	}

	s.log.Debug("task status set", zap.Int64("id", id), zap.Bool("completed", completed))
	return s.tasks[i], nil
}

// Delete removes the task with the given ID and persists the sequence.
// Deleting a missing ID is not an error.
func (s *TaskStore) Delete(id int64) error {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	removed := len(kept) != len(s.tasks)
	s.tasks = kept

	if err := s.save(); err != nil {
		return err
	}

	s.log.Debug("task deleted", zap.Int64("id", id), zap.Bool("existed", removed))
	return nil
}

// indexOf returns the position of the task with the given ID, or -1.
func (s *TaskStore) indexOf(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// save writes the whole sequence to the medium.
func (s *TaskStore) save() error {
	data, err := model.EncodeTasks(s.tasks)
	if err != nil {
		return err
	}
	if err := s.medium.Set(s.key, data); err != nil {
		s.log.Error("task blob write failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}
