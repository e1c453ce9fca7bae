package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nhle/tasktrack/internal/model"
)

// List is the single source of truth for one project's tasks. It owns
// the task collection and the id sequence, and enforces subtask cascade
// and dependency acyclicity.
//
// A List is not safe for concurrent use; callers serialize access.
type List struct {
	tasks  []model.Task
	nextID int
}

// New returns an empty list whose first assigned id will be 1.
func New() *List {
	return &List{nextID: 1}
}

// Restore rebuilds a list from persisted tasks and the saved id counter,
// preserving insertion order so that post-load id assignment continues
// without collision.
func Restore(tasks []model.Task, nextID int) (*List, error) {
	if nextID < 1 {
		return nil, fmt.Errorf("invalid next id %d", nextID)
	}
	for _, t := range tasks {
		if t.ID >= nextID {
			return nil, fmt.Errorf("next id %d not above existing id %d", nextID, t.ID)
		}
	}
	l := &List{nextID: nextID, tasks: make([]model.Task, len(tasks))}
	for i, t := range tasks {
		l.tasks[i] = cloneTask(t)
	}
	return l, nil
}

// find returns the slice index of the task with the given id, or -1.
func (l *List) find(id int) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add creates a task with the given description and default fields,
// assigns the next id, and returns the stored task.
func (l *List) Add(description string) model.Task {
	t := model.Task{
		ID:          l.nextID,
		Description: description,
		Priority:    model.PriorityMedium,
	}
	l.nextID++
	l.tasks = append(l.tasks, t)
	return t
}

// AddSubtask creates a task under parentID. The parent must exist.
func (l *List) AddSubtask(parentID int, description string) (model.Task, error) {
	if l.find(parentID) < 0 {
		return model.Task{}, fmt.Errorf("parent %d: %w", parentID, ErrNotFound)
	}
	t := l.Add(description)
	pid := parentID
	l.tasks[len(l.tasks)-1].ParentID = &pid
	t.ParentID = &pid
	return t, nil
}

// Remove deletes the task and, transitively, every subtask beneath it.
// Tasks that merely depend on a removed id keep their (now dangling)
// edges; readers tolerate these.
func (l *List) Remove(id int) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	removed := cloneTask(l.tasks[i])

	// Worklist over the flat collection: grow the doomed set until no
	// task's parent chain resolves into it.
	doomed := map[int]bool{id: true}
	for changed := true; changed; {
		changed = false
		for _, t := range l.tasks {
			if t.ParentID != nil && doomed[*t.ParentID] && !doomed[t.ID] {
				doomed[t.ID] = true
				changed = true
			}
		}
	}

	kept := l.tasks[:0]
	for _, t := range l.tasks {
		if !doomed[t.ID] {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	return removed, nil
}

// Complete marks the task done. Completing an already-completed task is
// a no-op success.
func (l *List) Complete(id int) (model.Task, error) {
	return l.setCompleted(id, true)
}

// Uncomplete marks the task not done.
func (l *List) Uncomplete(id int) (model.Task, error) {
	return l.setCompleted(id, false)
}

func (l *List) setCompleted(id int, done bool) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Completed = done
	return cloneTask(l.tasks[i]), nil
}

// Toggle flips the task's completion state.
func (l *List) Toggle(id int) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Completed = !l.tasks[i].Completed
	return cloneTask(l.tasks[i]), nil
}

// SetPriority updates the task's priority level.
func (l *List) SetPriority(id int, p model.Priority) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Priority = p
	return cloneTask(l.tasks[i]), nil
}

// SetDueDate updates the task's due date; nil clears it.
func (l *List) SetDueDate(id int, due *time.Time) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if due == nil {
		l.tasks[i].DueDate = nil
	} else {
		d := model.DateOnly(*due)
		l.tasks[i].DueDate = &d
	}
	return cloneTask(l.tasks[i]), nil
}

// SetCategory updates the task's category; "" clears it.
func (l *List) SetCategory(id int, category string) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Category = category
	return cloneTask(l.tasks[i]), nil
}

// SetRecurrence updates the task's recurrence pattern.
func (l *List) SetRecurrence(id int, rec model.Recurrence) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Recurrence = rec
	return cloneTask(l.tasks[i]), nil
}

// EditDescription replaces the task's description.
func (l *List) EditDescription(id int, description string) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	l.tasks[i].Description = description
	return cloneTask(l.tasks[i]), nil
}

// Get returns a copy of the task with the given id.
func (l *List) Get(id int) (model.Task, error) {
	i := l.find(id)
	if i < 0 {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return cloneTask(l.tasks[i]), nil
}

// Tasks returns a copy of all tasks in insertion order.
func (l *List) Tasks() []model.Task {
	out := make([]model.Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = cloneTask(t)
	}
	return out
}

// Len returns the number of stored tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// NextID exposes the id counter for the persistence layer.
func (l *List) NextID() int {
	return l.nextID
}

// Subtasks returns the direct subtasks of parentID in insertion order.
func (l *List) Subtasks(parentID int) []model.Task {
	var out []model.Task
	for _, t := range l.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// SubtaskCount returns the number of direct subtasks of parentID.
func (l *List) SubtaskCount(parentID int) int {
	n := 0
	for _, t := range l.tasks {
		if t.ParentID != nil && *t.ParentID == parentID {
			n++
		}
	}
	return n
}

// CompletedSubtaskCount returns the number of completed direct subtasks.
func (l *List) CompletedSubtaskCount(parentID int) int {
	n := 0
	for _, t := range l.tasks {
		if t.ParentID != nil && *t.ParentID == parentID && t.Completed {
			n++
		}
	}
	return n
}

// Search returns tasks whose description contains the keyword,
// case-insensitively, in insertion order.
func (l *List) Search(keyword string) []model.Task {
	needle := strings.ToLower(keyword)
	var out []model.Task
	for _, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, cloneTask(t))
		}
	}
	return out
}

// Categories returns the sorted unique non-empty categories in use.
func (l *List) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.tasks {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// cloneTask copies a task, detaching its DependsOn backing array.
func cloneTask(t model.Task) model.Task {
	if t.DependsOn != nil {
		deps := make([]int, len(t.DependsOn))
		copy(deps, t.DependsOn)
		t.DependsOn = deps
	}
	if t.ParentID != nil {
		pid := *t.ParentID
		t.ParentID = &pid
	}
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}
