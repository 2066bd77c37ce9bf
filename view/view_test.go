package view

import (
	"reflect"
	"testing"
	"time"

	"tasklist/model"
)

func sampleTasks() []model.Task {
	now := time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: "a", Text: "Buy Milk", Priority: model.PriorityHigh, CreatedAt: now},
		{ID: "b", Text: "Read book", Priority: model.PriorityLow, Completed: true, CreatedAt: now},
		{ID: "c", Text: "Milkshake recipe", Priority: model.PriorityMedium, Completed: true, CreatedAt: now},
		{ID: "d", Text: "Call client", Priority: model.PriorityLow, CreatedAt: now},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterByStatusPreservesOrder(t *testing.T) {
	tasks := sampleTasks()

	cases := []struct {
		filter model.Filter
		want   []string
	}{
		{model.FilterAll, []string{"a", "b", "c", "d"}},
		{model.FilterPending, []string{"a", "d"}},
		{model.FilterCompleted, []string{"b", "c"}},
	}
	for _, tc := range cases {
		got := ids(Filter(tasks, model.Criteria{Filter: tc.filter}))
		if !reflect.DeepEqual(tc.want, got) {
			t.Fatalf("filter %q: want %v, got %v", tc.filter, tc.want, got)
		}
	}
}

func TestFilterSearchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	tasks := sampleTasks()

	got := ids(Filter(tasks, model.Criteria{Filter: model.FilterAll, Search: "  milk "}))
	if !reflect.DeepEqual([]string{"a", "c"}, got) {
		t.Fatalf("expected both milk tasks, got %v", got)
	}

	got = ids(Filter(tasks, model.Criteria{Filter: model.FilterCompleted, Search: "MILK"}))
	if !reflect.DeepEqual([]string{"c"}, got) {
		t.Fatalf("expected only completed milk task, got %v", got)
	}

	got = ids(Filter(tasks, model.Criteria{Filter: model.FilterAll, Search: "   "}))
	if len(got) != len(tasks) {
		t.Fatalf("expected blank search to match everything, got %v", got)
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	tasks := sampleTasks()
	out := Filter(tasks, model.Criteria{Filter: model.FilterAll})
	out[0].Text = "changed"
	if tasks[0].Text != "Buy Milk" {
		t.Fatalf("expected input untouched, got %q", tasks[0].Text)
	}
}

func TestEmptyStateFor(t *testing.T) {
	cases := []struct {
		criteria model.Criteria
		want     model.EmptyState
	}{
		{model.Criteria{Filter: model.FilterAll}, model.EmptyNoTasks},
		{model.Criteria{Filter: model.FilterAll, Search: "  "}, model.EmptyNoTasks},
		{model.Criteria{Filter: model.FilterAll, Search: "x"}, model.EmptyNoMatch},
		{model.Criteria{Filter: model.FilterPending}, model.EmptyNoMatch},
		{model.Criteria{Filter: model.FilterCompleted}, model.EmptyNoMatch},
	}
	for _, tc := range cases {
		if got := EmptyStateFor(tc.criteria); got != tc.want {
			t.Fatalf("criteria %+v: want %v, got %v", tc.criteria, tc.want, got)
		}
	}
}

func TestStatsTotalsAddUp(t *testing.T) {
	if got := Stats(nil); got != (model.Stats{}) {
		t.Fatalf("expected zero stats for empty collection, got %+v", got)
	}

	got := Stats(sampleTasks())
	want := model.Stats{Total: 4, Completed: 2, Pending: 2}
	if got != want {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	if got.Total != got.Completed+got.Pending {
		t.Fatalf("expected total == completed + pending, got %+v", got)
	}
}

func TestProjectCountsWholeCollection(t *testing.T) {
	p := Project(sampleTasks(), model.Criteria{Filter: model.FilterPending, Search: "nothing here"})
	if !p.Empty {
		t.Fatalf("expected empty projection, got %v", ids(p.Tasks))
	}
	if p.EmptyState != model.EmptyNoMatch {
		t.Fatalf("expected no-match empty state")
	}
	if p.Stats.Total != 4 {
		t.Fatalf("expected stats over all tasks, got %+v", p.Stats)
	}

	p = Project(nil, model.DefaultCriteria())
	if !p.Empty || p.EmptyState != model.EmptyNoTasks {
		t.Fatalf("expected no-tasks empty state for empty collection, got %+v", p)
	}
}
