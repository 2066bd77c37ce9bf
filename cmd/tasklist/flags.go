package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"tasklist/model"
)

// priorityValue is a pflag.Value restricted to the known priorities.
type priorityValue struct {
	p *model.Priority
}

func newPriorityValue(p *model.Priority) *priorityValue {
	return &priorityValue{p: p}
}

func (v *priorityValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *priorityValue) Set(s string) error {
	p := model.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return fmt.Errorf("must be one of %s", joinPriorities())
	}
	*v.p = p
	return nil
}

func (v *priorityValue) Type() string { return "priority" }

// filterValue is a pflag.Value restricted to the status filters.
type filterValue struct {
	f *model.Filter
}

func newFilterValue(f *model.Filter) *filterValue {
	return &filterValue{f: f}
}

func (v *filterValue) String() string {
	if v.f == nil {
		return ""
	}
	return string(*v.f)
}

func (v *filterValue) Set(s string) error {
	f := model.Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return fmt.Errorf("must be one of %s", joinFilters())
	}
	*v.f = f
	return nil
}

func (v *filterValue) Type() string { return "filter" }

var priorityFlagAliases = map[string]string{
	"prio": "priority",
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}

func joinPriorities() string {
	names := make([]string, len(model.Priorities))
	for i, p := range model.Priorities {
		names[i] = string(p)
	}
	return strings.Join(names, "|")
}

func joinFilters() string {
	names := make([]string, len(model.Filters))
	for i, f := range model.Filters {
		names[i] = string(f)
	}
	return strings.Join(names, "|")
}
