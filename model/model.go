package model

import "time"

// Filter represents which tasks should be shown by completion state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
)

// Filters lists every filter value in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// Valid reports whether f is one of the known filter values.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterPending:
		return true
	default:
		return false
	}
}

// Next returns the filter that follows f when cycling through Filters.
func (f Filter) Next() Filter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Priority is fixed when a task is created.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Next returns the priority that follows p, wrapping from high to low.
func (p Priority) Next() Priority {
	for i, candidate := range Priorities {
		if candidate == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityLow
}

// Task is an individual todo item. Only Completed changes after creation.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Priority  Priority  `json:"priority"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Criteria is the active status filter plus the free-text search string.
// It is transient UI state and is never persisted.
type Criteria struct {
	Filter Filter `json:"filter"`
	Search string `json:"search"`
}

// DefaultCriteria shows every task with no search applied.
func DefaultCriteria() Criteria {
	return Criteria{Filter: FilterAll}
}

// Stats are aggregate counts over the whole collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// EmptyState selects the message shown when no task is visible.
type EmptyState int

const (
	EmptyNoTasks EmptyState = iota
	EmptyNoMatch
)

// Message returns the user-facing text for the empty state.
func (e EmptyState) Message() string {
	if e == EmptyNoMatch {
		return "No tasks match your criteria."
	}
	return "No tasks yet. Add one above!"
}
