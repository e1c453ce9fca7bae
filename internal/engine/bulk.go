package engine

import (
	"sort"
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

// Bulk operations apply independently per id: a missing id never aborts
// the rest. Each returns the number of tasks updated and the ids that
// were not found, in the order visited.

// CompleteMany marks each id done.
func (l *List) CompleteMany(ids []int) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.Complete(id)
		return err
	})
}

// UncompleteMany marks each id not done.
func (l *List) UncompleteMany(ids []int) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.Uncomplete(id)
		return err
	})
}

// ToggleMany flips each id's completion state.
func (l *List) ToggleMany(ids []int) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.Toggle(id)
		return err
	})
}

// SetPriorityMany updates the priority of each id.
func (l *List) SetPriorityMany(ids []int, p model.Priority) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.SetPriority(id, p)
		return err
	})
}

// SetCategoryMany updates the category of each id.
func (l *List) SetCategoryMany(ids []int, category string) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.SetCategory(id, category)
		return err
	})
}

// SetRecurrenceMany updates the recurrence of each id.
func (l *List) SetRecurrenceMany(ids []int, rec model.Recurrence) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.SetRecurrence(id, rec)
		return err
	})
}

// SetDueDateMany updates the due date of each id.
func (l *List) SetDueDateMany(ids []int, due *time.Time) (int, []int) {
	return l.each(ids, func(id int) error {
		_, err := l.SetDueDate(id, due)
		return err
	})
}

// RemoveMany removes each id with full subtask cascade. Ids are
// processed in descending order so a parent cannot cascade away a
// lower-numbered entry of the set before it is visited; a subtask
// listed alongside its parent is simply removed first and both count
// as successes.
func (l *List) RemoveMany(ids []int) (int, []int) {
	ordered := make([]int, len(ids))
	copy(ordered, ids)
	sort.Sort(sort.Reverse(sort.IntSlice(ordered)))
	return l.each(ordered, func(id int) error {
		_, err := l.Remove(id)
		return err
	})
}

func (l *List) each(ids []int, op func(id int) error) (int, []int) {
	succeeded := 0
	var notFound []int
	for _, id := range ids {
		if err := op(id); err != nil {
			notFound = append(notFound, id)
			continue
		}
		succeeded++
	}
	return succeeded, notFound
}
