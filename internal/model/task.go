package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the importance level of a task.
// Levels are totally ordered: PriorityLow < PriorityMedium < PriorityHigh.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// String returns the lowercase name of the priority level.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "medium"
	}
}

// ParsePriority converts a user-supplied priority name to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return PriorityLow, nil
	case "medium", "med", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	}
	return 0, fmt.Errorf("unknown priority %q (want low, medium, or high)", s)
}

// Recurrence is the repetition pattern for a task's due date.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// ParseRecurrence converts a user-supplied pattern name to a Recurrence.
// An empty string or "none" clears the pattern.
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RecurrenceNone, nil
	case "daily":
		return RecurrenceDaily, nil
	case "weekly":
		return RecurrenceWeekly, nil
	case "monthly":
		return RecurrenceMonthly, nil
	}
	return "", fmt.Errorf("unknown recurrence %q (want daily, weekly, or monthly)", s)
}

// Task is a single tracked work item.
type Task struct {
	// ID is assigned by the owning list, strictly increasing from 1,
	// and never reused after deletion.
	ID int `json:"id" db:"id"`

	// Description is the task text. Empty descriptions are legal.
	Description string `json:"description" db:"description"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed" db:"completed"`

	// Priority is the importance level (default PriorityMedium).
	Priority Priority `json:"priority" db:"priority"`

	// DueDate is the optional due date. Only the calendar day is
	// meaningful; time-of-day components are ignored.
	DueDate *time.Time `json:"due_date,omitempty" db:"due_date"`

	// Category is an optional free-form tag ("" = uncategorized).
	Category string `json:"category,omitempty" db:"category"`

	// ParentID references another task's ID; when set this task is a
	// subtask and is deleted along with its parent.
	ParentID *int `json:"parent_id,omitempty" db:"parent_id"`

	// Recurrence is the optional repetition pattern.
	Recurrence Recurrence `json:"recurrence,omitempty" db:"recurrence"`

	// DependsOn holds the IDs of tasks this task is blocked by.
	// No duplicates, no self-reference; the edge set stays acyclic.
	DependsOn []int `json:"depends_on,omitempty" db:"-"`
}

// IsSubtask reports whether the task has a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != nil
}

// IsOverdue reports whether the task's due date is strictly before the
// given day. A task without a due date is never overdue.
func (t Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return DateOnly(*t.DueDate).Before(DateOnly(today))
}

// DependsOnTask reports whether id is in the task's dependency set.
func (t Task) DependsOnTask(id int) bool {
	for _, dep := range t.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// DateOnly truncates a time to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
