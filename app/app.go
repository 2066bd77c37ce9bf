package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasklist/internal/ids"
	"tasklist/model"
	"tasklist/view"
)

const maxIDAttempts = 8

var (
	ErrValidationFailed  = errors.New("validation failed")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrTaskNotFound      = errors.New("task not found")
	ErrAmbiguousID       = errors.New("ambiguous task id prefix")

	ErrInvalidTask     = fmt.Errorf("%w: task text must not be empty", ErrValidationFailed)
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidationFailed)
	ErrInvalidFilter   = fmt.Errorf("%w: invalid filter", ErrValidationFailed)
)

// Persister loads the collection once and mirrors it after every mutation.
type Persister interface {
	Load() []model.Task
	Save(tasks []model.Task) error
}

// Service owns the task collection and the active criteria.
type Service struct {
	tasks    []model.Task
	criteria model.Criteria
	persist  Persister
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the default UUIDv7 generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService loads the collection from p and returns a service that writes
// back to it.
func NewService(p Persister, opts ...Option) *Service {
	s := &Service{
		persist:  p,
		criteria: model.DefaultCriteria(),
		now:      time.Now,
		newID:    newID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = p.Load()
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	return s
}

// Tasks returns a copy of the collection, newest first.
func (s *Service) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns a task by id.
func (s *Service) Task(id string) (model.Task, error) {
	if i := s.indexOf(id); i >= 0 {
		return s.tasks[i], nil
	}
	return model.Task{}, ErrTaskNotFound
}

// Resolve expands a case-insensitive id prefix to the full task id.
func (s *Service) Resolve(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", ErrTaskNotFound
	}
	match, found, ambiguous := ids.MatchPrefix(s.ids(), prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTaskNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
	return match, nil
}

// PrefixLengths returns the shortest unique prefix length for each task id.
func (s *Service) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengths(s.ids())
}

// Create trims text, inserts a new pending task at the front and saves.
// An empty priority means low. When only the save fails the created task is
// returned along with ErrPersistenceFailed.
func (s *Service) Create(text string, priority model.Priority) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrInvalidTask
	}
	if priority == "" {
		priority = model.PriorityLow
	}
	if !priority.Valid() {
		return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	task := model.Task{
		ID:        s.uniqueID(),
		Text:      text,
		Priority:  priority,
		Completed: false,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	return task, s.save()
}

// ToggleComplete flips the completed flag. Unknown ids are ignored.
func (s *Service) ToggleComplete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.save()
}

// Delete removes the task. Unknown ids are ignored. Callers confirm with
// the user before calling.
func (s *Service) Delete(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

// Criteria returns the active filter and search string.
func (s *Service) Criteria() model.Criteria {
	return s.criteria
}

// SetFilter changes the status scope. Unknown filters leave the criteria
// unchanged and return ErrInvalidFilter.
func (s *Service) SetFilter(filter model.Filter) error {
	if !filter.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}
	s.criteria.Filter = filter
	return nil
}

// SetSearch stores the raw query; View trims and lowercases it.
func (s *Service) SetSearch(query string) {
	s.criteria.Search = query
}

// View projects the collection through the active criteria.
func (s *Service) View() view.Projection {
	return view.Project(s.Tasks(), s.criteria)
}

func (s *Service) save() error {
	if err := s.persist.Save(s.Tasks()); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	}
	return nil
}

func (s *Service) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) ids() []string {
	out := make([]string, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.ID)
	}
	return out
}

// uniqueID retries the configured generator, then falls back to UUIDv7
// until it yields an id not already taken.
func (s *Service) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := s.newID(); id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
	for {
		if id := newID(); s.indexOf(id) < 0 {
			return id
		}
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
