// Package view derives what the UI shows from a task collection and the
// active criteria. Nothing here mutates its inputs.
package view

import (
	"strings"

	"tasklist/model"
)

// Projection is everything a renderer needs for one frame.
type Projection struct {
	Tasks      []model.Task
	Stats      model.Stats
	Empty      bool
	EmptyState model.EmptyState
}

// Project applies criteria to tasks and bundles the result with stats and
// the empty-state selection.
func Project(tasks []model.Task, criteria model.Criteria) Projection {
	visible := Filter(tasks, criteria)
	return Projection{
		Tasks:      visible,
		Stats:      Stats(tasks),
		Empty:      len(visible) == 0,
		EmptyState: EmptyStateFor(criteria),
	}
}

// Filter returns the tasks matching both the status filter and the search
// string, preserving input order.
func Filter(tasks []model.Task, criteria model.Criteria) []model.Task {
	q := strings.ToLower(strings.TrimSpace(criteria.Search))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesFilter(criteria.Filter, t.Completed) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Text), q) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// EmptyStateFor picks the no-match message whenever any criterion narrows
// the view.
func EmptyStateFor(criteria model.Criteria) model.EmptyState {
	if criteria.Filter != model.FilterAll || strings.TrimSpace(criteria.Search) != "" {
		return model.EmptyNoMatch
	}
	return model.EmptyNoTasks
}

// Stats counts the whole collection.
func Stats(tasks []model.Task) model.Stats {
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return model.Stats{
		Total:     len(tasks),
		Completed: completed,
		Pending:   len(tasks) - completed,
	}
}

func matchesFilter(filter model.Filter, completed bool) bool {
	switch filter {
	case model.FilterCompleted:
		return completed
	case model.FilterPending:
		return !completed
	default:
		return true
	}
}
