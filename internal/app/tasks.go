package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/recur"
)

// taskSavedMsg reports the outcome of persisting the task list.
type taskSavedMsg struct {
	err error
}

// createTask applies a form submission for a new task and persists.
func (m *Model) createTask(t model.Task) tea.Cmd {
	created := m.list.Add(t.Description)
	m.list.SetPriority(created.ID, t.Priority)
	m.list.SetDueDate(created.ID, t.DueDate)
	m.list.SetCategory(created.ID, t.Category)
	m.list.SetRecurrence(created.ID, t.Recurrence)
	return tea.Batch(m.taskList.LoadTasks(), m.persist())
}

// updateTask applies a form submission for an existing task and persists.
func (m *Model) updateTask(t model.Task) tea.Cmd {
	if _, err := m.list.Get(t.ID); err != nil {
		return m.taskList.LoadTasks()
	}
	m.list.EditDescription(t.ID, t.Description)
	m.list.SetPriority(t.ID, t.Priority)
	m.list.SetDueDate(t.ID, t.DueDate)
	m.list.SetCategory(t.ID, t.Category)
	m.list.SetRecurrence(t.ID, t.Recurrence)
	if t.Completed {
		m.list.Complete(t.ID)
	} else {
		m.list.Uncomplete(t.ID)
	}
	return tea.Batch(m.taskList.LoadTasks(), m.persist())
}

// deleteTask removes a task and its subtasks and persists.
func (m *Model) deleteTask(id int) tea.Cmd {
	if _, err := m.list.Remove(id); err != nil {
		return m.taskList.LoadTasks()
	}
	return tea.Batch(m.taskList.LoadTasks(), m.persist())
}

// toggleTask flips completion state. Completing a recurring task with a
// due date spawns its next occurrence; a toggle always transitions, so
// completed-after means just-completed.
func (m *Model) toggleTask(id int) tea.Cmd {
	if _, err := m.list.Toggle(id); err != nil {
		return m.taskList.LoadTasks()
	}
	recur.SpawnNext(m.list, id)
	return tea.Batch(m.taskList.LoadTasks(), m.persist())
}

// persist returns a command that writes a task list snapshot to the
// store. The snapshot is detached here, on the event loop; the command
// goroutine never reads the live list. A nil store disables
// persistence.
func (m *Model) persist() tea.Cmd {
	if m.store == nil {
		return nil
	}
	snapshot, err := engine.Restore(m.list.Tasks(), m.list.NextID())
	if err != nil {
		return func() tea.Msg { return taskSavedMsg{err: err} }
	}
	s := m.store
	projectID := m.projectID
	return func() tea.Msg {
		return taskSavedMsg{err: s.SaveTasks(context.Background(), projectID, snapshot)}
	}
}
