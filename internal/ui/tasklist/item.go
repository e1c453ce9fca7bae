package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task

	// SubtaskCount and SubtaskDone are populated by the list loader
	// for parent tasks.
	SubtaskCount int
	SubtaskDone  int
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Description }

// ItemDelegate implements list.ItemDelegate for rendering task lines.
type ItemDelegate struct {
	// Now supplies the reference day for overdue highlighting.
	Now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(TaskItem)
	if !ok {
		return
	}
	t := i.Task

	prefix := "○"
	if t.Completed {
		prefix = "✓"
	}

	priBadge := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))

	indent := ""
	if t.IsSubtask() {
		indent = "  └ "
	}

	description := t.Description
	if t.Completed {
		description = theme.CompletedStyle.Render(description)
	}

	var extras strings.Builder
	if t.Category != "" {
		extras.WriteString(" " + theme.CategoryStyle.Render("@"+t.Category))
	}
	if t.DueDate != nil {
		label := " " + t.DueDate.Format("Jan 02")
		now := time.Now()
		if d.Now != nil {
			now = d.Now()
		}
		if t.IsOverdue(now) && !t.Completed {
			extras.WriteString(theme.OverdueStyle.Render(label + " OVERDUE"))
		} else {
			extras.WriteString(theme.DueDateStyle.Render(label))
		}
	}
	if t.Recurrence != model.RecurrenceNone {
		extras.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ↻" + string(t.Recurrence)))
	}
	if len(t.DependsOn) > 0 {
		extras.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorOrange).
			Render(fmt.Sprintf(" ⊘%d", len(t.DependsOn))))
	}
	if i.SubtaskCount > 0 {
		extras.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(fmt.Sprintf(" [%d/%d]", i.SubtaskDone, i.SubtaskCount)))
	}

	line := fmt.Sprintf(
		"%s #%-3d %s %s%s%s",
		prefix, t.ID, priBadge, indent, description, extras.String(),
	)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns a short label for the given priority level.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "P1"
	case model.PriorityLow:
		return "P3"
	default:
		return "P2"
	}
}
