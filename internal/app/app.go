package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasktrack/internal/engine"
	"github.com/nhle/tasktrack/internal/keys"
	"github.com/nhle/tasktrack/internal/store"
	"github.com/nhle/tasktrack/internal/theme"
	"github.com/nhle/tasktrack/internal/ui"
	"github.com/nhle/tasktrack/internal/ui/taskform"
	"github.com/nhle/tasktrack/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewTaskCreate
	ViewTaskEdit
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and persistence of the in-memory task list.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	list        *engine.List
	store       store.Store
	projectID   string
	projectName string
	keys        *keys.KeyMap
	taskList    tasklist.Model
	taskForm    taskform.Model
	helpView    help.Model
	showHelp    bool
	ready       bool
	statusMsg   string
}

// New creates a new root application model. The store may be nil, in
// which case changes are kept in memory only.
func New(list *engine.List, s store.Store, projectID, projectName string) Model {
	k := keys.DefaultKeyMap()

	h := help.New()
	h.Styles.ShortKey = theme.HelpStyle
	h.Styles.FullKey = theme.HelpStyle

	return Model{
		currentView: ViewList,
		list:        list,
		store:       s,
		projectID:   projectID,
		projectName: projectName,
		keys:        k,
		taskList:    tasklist.New(list, k, 80, 24),
		taskForm:    taskform.New(80, 24),
		helpView:    h,
	}
}

// Init returns the initial command to load the task list.
func (m Model) Init() tea.Cmd {
	return m.taskList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.helpView.Width = contentWidth
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case tasklist.TasksLoadedMsg:
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case taskform.TaskCreatedMsg:
		m.currentView = ViewList
		return m, m.createTask(msg.Task)

	case taskform.TaskUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateTask(msg.Task)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.statusMsg = "save failed: " + msg.err.Error()
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.currentView != ViewList {
			break
		}
		if m.taskList.Searching() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.helpView.ShowAll = m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.New):
			m.currentView = ViewTaskCreate
			return m, m.taskForm.StartCreate()

		case key.Matches(msg, m.keys.Edit):
			id := m.taskList.Selected()
			if id == 0 {
				return m, nil
			}
			task, err := m.list.Get(id)
			if err != nil {
				return m, nil
			}
			m.currentView = ViewTaskEdit
			return m, m.taskForm.StartEdit(task)

		case key.Matches(msg, m.keys.Delete):
			id := m.taskList.Selected()
			if id == 0 {
				return m, nil
			}
			return m, m.deleteTask(id)

		case key.Matches(msg, m.keys.Toggle):
			id := m.taskList.Selected()
			if id == 0 {
				return m, nil
			}
			return m, m.toggleTask(id)
		}
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("TaskTrack", m.projectName)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	default:
		if m.showHelp {
			return m.taskList.View() + "\n" + m.helpView.View(m.keys)
		}
		return m.taskList.View()
	}
}

// keyHints returns status bar content for the current view.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewTaskCreate, ViewTaskEdit:
		return "enter submit | esc cancel"
	default:
		stats := m.list.Stats()
		return fmt.Sprintf(
			"%d tasks, %d pending | q quit | ? help | n new | / search | tab sort",
			stats.Total, stats.Pending,
		)
	}
}
