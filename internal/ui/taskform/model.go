package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/theme"
)

// TaskCreatedMsg is dispatched when a new task is created via the form.
type TaskCreatedMsg struct {
	Task model.Task
}

// TaskUpdatedMsg is dispatched when an existing task is updated via the form.
type TaskUpdatedMsg struct {
	Task model.Task
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	description string
	priority    model.Priority
	dueDate     string
	category    string
	recurrence  model.Recurrence
	completed   bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{priority: model.PriorityMedium},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.fb.description = ""
	m.fb.priority = model.PriorityMedium
	m.fb.dueDate = ""
	m.fb.category = ""
	m.fb.recurrence = model.RecurrenceNone
	m.fb.completed = false
	m.form = m.buildCreateForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.fb.description = task.Description
	m.fb.priority = task.Priority
	m.fb.category = task.Category
	m.fb.recurrence = task.Recurrence
	m.fb.completed = task.Completed
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.Format("2006-01-02")
	} else {
		m.fb.dueDate = ""
	}
	m.form = m.buildEditForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildCreateForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(m.coreFields()...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildEditForm() *huh.Form {
	fields := m.coreFields()
	fields = append(fields,
		huh.NewSelect[bool]().
			Title("Status").
			Options(
				huh.NewOption("Pending", false),
				huh.NewOption("Completed", true),
			).
			Value(&m.fb.completed),
	)

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) coreFields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Description").
			Placeholder("What needs to be done?").
			Value(&m.fb.description).
			Validate(validateRequired("Description")),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Category").
			Placeholder("work, home... (optional)").
			Value(&m.fb.category),
		huh.NewSelect[model.Recurrence]().
			Title("Repeat").
			Options(
				huh.NewOption("Never", model.RecurrenceNone),
				huh.NewOption("Daily", model.RecurrenceDaily),
				huh.NewOption("Weekly", model.RecurrenceWeekly),
				huh.NewOption("Monthly", model.RecurrenceMonthly),
			).
			Value(&m.fb.recurrence),
	}
}

func (m Model) handleSubmit() tea.Cmd {
	task := model.Task{
		Description: strings.TrimSpace(m.fb.description),
		Priority:    m.fb.priority,
		Category:    strings.TrimSpace(m.fb.category),
		Recurrence:  m.fb.recurrence,
		Completed:   m.fb.completed,
	}

	if m.fb.dueDate != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dueDate))
		if err == nil {
			d := model.DateOnly(t)
			task.DueDate = &d
		}
	}

	if m.editMode {
		task.ID = m.editID
		return func() tea.Msg { return TaskUpdatedMsg{Task: task} }
	}
	return func() tea.Msg { return TaskCreatedMsg{Task: task} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
