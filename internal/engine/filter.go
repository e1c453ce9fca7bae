package engine

import (
	"fmt"
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

// OverdueMode selects how a filter treats due dates.
type OverdueMode int

const (
	// OverdueAll matches regardless of due date.
	OverdueAll OverdueMode = iota
	// OverdueOnly matches only tasks whose due date is strictly before
	// today. Tasks without a due date never match.
	OverdueOnly
	// NotOverdueOnly matches tasks that are not overdue, including
	// tasks without a due date.
	NotOverdueOnly
)

// Filter is an optional AND-combination of independent criteria
// evaluated per task. Criteria are added one at a time; setting the
// same criterion twice is a conflict. A filter with no criteria
// matches everything and is distinguishable via Empty so callers can
// keep an unfiltered fast path.
type Filter struct {
	completed  *bool
	priority   *model.Priority
	overdue    OverdueMode
	overdueSet bool
	category   *string
}

// NewFilter returns a filter with no criteria.
func NewFilter() *Filter {
	return &Filter{}
}

// SetStatus restricts matches to completed (true) or pending (false)
// tasks.
func (f *Filter) SetStatus(completed bool) error {
	if f.completed != nil {
		return fmt.Errorf("status: %w", ErrFilterConflict)
	}
	f.completed = &completed
	return nil
}

// SetPriority restricts matches to the given priority level.
func (f *Filter) SetPriority(p model.Priority) error {
	if f.priority != nil {
		return fmt.Errorf("priority: %w", ErrFilterConflict)
	}
	f.priority = &p
	return nil
}

// SetOverdue restricts matches by overdue-ness.
func (f *Filter) SetOverdue(mode OverdueMode) error {
	if f.overdueSet {
		return fmt.Errorf("overdue: %w", ErrFilterConflict)
	}
	f.overdue = mode
	f.overdueSet = true
	return nil
}

// SetCategory restricts matches to an exact, case-sensitive category.
// Uncategorized tasks never match a category criterion.
func (f *Filter) SetCategory(category string) error {
	if f.category != nil {
		return fmt.Errorf("category: %w", ErrFilterConflict)
	}
	f.category = &category
	return nil
}

// Empty reports whether no criteria have been set.
func (f *Filter) Empty() bool {
	return f.completed == nil && f.priority == nil && !f.overdueSet && f.category == nil
}

// Match evaluates the filter against one task. Overdue-ness is judged
// against the calendar day of today.
func (f *Filter) Match(t model.Task, today time.Time) bool {
	if f.completed != nil && t.Completed != *f.completed {
		return false
	}
	if f.priority != nil && t.Priority != *f.priority {
		return false
	}
	if f.overdueSet {
		switch f.overdue {
		case OverdueOnly:
			if !t.IsOverdue(today) {
				return false
			}
		case NotOverdueOnly:
			if t.IsOverdue(today) {
				return false
			}
		}
	}
	if f.category != nil && (t.Category == "" || t.Category != *f.category) {
		return false
	}
	return true
}

// Apply returns the tasks matching the filter, preserving order. An
// empty filter returns the input unchanged.
func (f *Filter) Apply(tasks []model.Task, today time.Time) []model.Task {
	if f.Empty() {
		return tasks
	}
	var out []model.Task
	for _, t := range tasks {
		if f.Match(t, today) {
			out = append(out, t)
		}
	}
	return out
}
