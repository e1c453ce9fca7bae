package tasklist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/keys"
	"github.com/nhle/tasktrack/internal/theme"
)

// TasksLoadedMsg is sent when tasks have been loaded from the engine.
type TasksLoadedMsg struct {
	Items []TaskItem
}

// statusFilter cycles through the pending/completed toggles.
type statusFilter int

const (
	statusAll statusFilter = iota
	statusPending
	statusCompleted
)

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []engine.SortKey{
	engine.SortByID,
	engine.SortByPriority,
	engine.SortByDueDate,
	engine.SortByCategory,
	engine.SortByStatus,
}

// Model is the main task list view component.
type Model struct {
	list        list.Model
	tasks       *engine.List
	keys        *keys.KeyMap
	status      statusFilter
	overdueOnly bool
	sortIndex   int
	sortDesc    bool
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new task list model over the given engine list.
func New(tasks *engine.List, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{Now: time.Now}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Tasks"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search tasks..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		tasks:       tasks,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of tasks.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Searching reports whether the search input currently has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Selected returns the task id under the cursor, or 0 when the list is
// empty.
func (m Model) Selected() int {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return 0
	}
	return item.Task.ID
}

// Update handles messages for the task list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		items := make([]list.Item, len(msg.Items))
		for i, item := range msg.Items {
			items[i] = item
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterPending):
		if m.status == statusPending {
			m.status = statusAll
		} else {
			m.status = statusPending
		}
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.FilterDone):
		if m.status == statusCompleted {
			m.status = statusAll
		} else {
			m.status = statusCompleted
		}
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.FilterOverdue):
		m.overdueOnly = !m.overdueOnly
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.ReverseSort):
		m.sortDesc = !m.sortDesc
		return m, m.LoadTasks()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the task list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no tasks are visible.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.status != statusAll || m.overdueOnly || m.query != "" {
		return style.Render("No matching tasks.\nTry adjusting your filters.")
	}

	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// LoadTasks snapshots the engine with the current filter, sort, and
// search query. The snapshot is taken here, on the event loop; the
// returned command only delivers it. Commands run on goroutines, so
// they must never touch the live list.
func (m Model) LoadTasks() tea.Cmd {
	filter := engine.NewFilter()
	switch m.status {
	case statusPending:
		filter.SetStatus(false)
	case statusCompleted:
		filter.SetStatus(true)
	}
	if m.overdueOnly {
		filter.SetOverdue(engine.OverdueOnly)
	}

	snapshot := m.tasks.Tasks()
	if m.query != "" {
		snapshot = m.tasks.Search(m.query)
	}
	matched := filter.Apply(snapshot, time.Now())
	engine.Sort(matched, sortModes[m.sortIndex], m.sortDesc)

	items := make([]TaskItem, len(matched))
	for i, t := range matched {
		items[i] = TaskItem{
			Task:         t,
			SubtaskCount: m.tasks.SubtaskCount(t.ID),
			SubtaskDone:  m.tasks.CompletedSubtaskCount(t.ID),
		}
	}
	return func() tea.Msg {
		return TasksLoadedMsg{Items: items}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
