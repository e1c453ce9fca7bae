// Package recur materializes follow-up occurrences of recurring tasks
// for the front ends. It composes public engine operations; the engine
// itself only computes dates.
package recur

import (
	"errors"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
)

// SpawnNext creates the next occurrence of a completed recurring dated
// task: a fresh pending task with the advanced due date carrying over
// priority, category, parent linkage and the pattern, plus fresh
// uncompleted copies of its subtask tree. It reports whether an
// occurrence was created. Callers invoke it only for tasks that just
// transitioned to completed; the helper cannot tell a transition from
// a re-complete on its own.
func SpawnNext(l *engine.List, id int) (model.Task, bool) {
	t, err := l.Get(id)
	if err != nil || !t.Completed {
		return model.Task{}, false
	}
	next := engine.NextDueDate(t.DueDate, t.Recurrence)
	if next == nil {
		return model.Task{}, false
	}

	var created model.Task
	if t.ParentID != nil {
		created, err = l.AddSubtask(*t.ParentID, t.Description)
		if errors.Is(err, engine.ErrNotFound) {
			created = l.Add(t.Description)
		}
	} else {
		created = l.Add(t.Description)
	}
	l.SetPriority(created.ID, t.Priority)
	l.SetCategory(created.ID, t.Category)
	l.SetRecurrence(created.ID, t.Recurrence)
	created, _ = l.SetDueDate(created.ID, next)
	copySubtaskTree(l, t.ID, created.ID)
	return created, true
}

// copySubtaskTree recreates the subtasks of src under dst, fresh and
// uncompleted, recursing into nested subtasks.
func copySubtaskTree(l *engine.List, srcID, dstID int) {
	for _, sub := range l.Subtasks(srcID) {
		copied, err := l.AddSubtask(dstID, sub.Description)
		if err != nil {
			continue
		}
		l.SetPriority(copied.ID, sub.Priority)
		l.SetCategory(copied.ID, sub.Category)
		copySubtaskTree(l, sub.ID, copied.ID)
	}
}
