// Package store persists the task collection as a single JSON blob under one
// key of a host-provided key-value store.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"tasklist/model"
)

// DefaultKey is the key the whole collection lives under.
const DefaultKey = "todoTasks"

var (
	ErrNotFound            = errors.New("key not found")
	ErrMalformed           = errors.New("malformed task data")
	ErrNoValidBackup       = errors.New("no valid backup found")
	ErrNotCorrupt          = errors.New("stored data is readable, nothing to recover")
	ErrRecoveryUnsupported = errors.New("backend keeps no backups")
)

// KV is the persistence boundary. Get returns ErrNotFound for a missing key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Restorer is implemented by backends that keep previous values around.
// Restore replaces the current value of key with the newest backup accepted
// by valid and reports where it came from.
type Restorer interface {
	Restore(key string, valid func([]byte) bool) (string, error)
}

// Store reads and writes the task collection through a KV.
type Store struct {
	kv     KV
	key    string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the diagnostic logger. A nil logger discards output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		s.logger = logger
	}
}

// New returns a Store backed by kv.
func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(os.Stderr, "tasklist: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the key the collection is stored under.
func (s *Store) Key() string {
	return s.key
}

// Load returns the persisted collection. Missing, unreadable or malformed
// data yields an empty collection; the cause is only logged.
func (s *Store) Load() []model.Task {
	data, err := s.kv.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Printf("load %s: %v", s.key, err)
		}
		return []model.Task{}
	}
	tasks, err := Decode(data)
	if err != nil {
		s.logger.Printf("load %s: %v", s.key, err)
		return []model.Task{}
	}
	return tasks
}

// Save serializes the full collection and writes it under the key.
func (s *Store) Save(tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Recover restores the newest decodable backup when the backend keeps any.
// A current value that still decodes is left alone and ErrNotCorrupt is
// returned; a missing key counts as damaged.
func (s *Store) Recover() (string, error) {
	r, ok := s.kv.(Restorer)
	if !ok {
		return "", ErrRecoveryUnsupported
	}
	data, err := s.kv.Get(s.key)
	switch {
	case err == nil:
		if _, decodeErr := Decode(data); decodeErr == nil {
			return "", fmt.Errorf("%s: %w", s.key, ErrNotCorrupt)
		}
	case !errors.Is(err, ErrNotFound):
		return "", fmt.Errorf("read %s: %w", s.key, err)
	}
	return r.Restore(s.key, func(data []byte) bool {
		_, err := Decode(data)
		return err == nil
	})
}

// createdAtLayout is RFC 3339 in UTC with exactly three fractional digits.
const createdAtLayout = "2006-01-02T15:04:05.000Z07:00"

// record is the stored shape of a task.
type record struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	Priority  model.Priority `json:"priority"`
	Completed bool           `json:"completed"`
	CreatedAt string         `json:"createdAt"`
}

// Encode renders tasks as an indented JSON array. A nil collection encodes
// as an empty array.
func Encode(tasks []model.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  t.Priority,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.UTC().Format(createdAtLayout),
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON array of tasks. A blob that does not parse, or holds
// a task with an empty or repeated id or an unreadable createdAt, is rejected
// as a whole. Unknown priorities are normalized to low.
func Decode(data []byte) ([]model.Task, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: task %d has no id", ErrMalformed, i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, r.ID)
		}
		seen[r.ID] = true

		createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: task %q: createdAt: %w", ErrMalformed, r.ID, err)
		}
		priority := r.Priority
		if !priority.Valid() {
			priority = model.PriorityLow
		}
		tasks = append(tasks, model.Task{
			ID:        r.ID,
			Text:      r.Text,
			Priority:  priority,
			Completed: r.Completed,
			CreatedAt: createdAt.UTC(),
		})
	}
	return tasks, nil
}
