package cli

import (
	"fmt"
	"strings"

	"github.com/nhle/tasktrack/internal/model"
	"github.com/nhle/tasktrack/internal/theme"
)

// renderTask formats one task line:
//
//	[x] #3 write report  !high @work due:2026-01-31 repeat:weekly blocked-by:2
func (r *Runner) renderTask(t model.Task, indent int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", indent))

	if t.Completed {
		b.WriteString("[x] ")
	} else {
		b.WriteString("[ ] ")
	}
	b.WriteString(fmt.Sprintf("#%d ", t.ID))

	description := t.Description
	if t.Completed {
		description = theme.CompletedStyle.Render(description)
	}
	b.WriteString(description)

	if t.Priority != model.PriorityMedium {
		b.WriteString("  " + theme.PriorityStyle(t.Priority).Render("!"+t.Priority.String()))
	}
	if t.Category != "" {
		b.WriteString(" " + theme.CategoryStyle.Render("@"+t.Category))
	}
	if t.DueDate != nil {
		label := "due:" + t.DueDate.Format("2006-01-02")
		if t.IsOverdue(r.now()) && !t.Completed {
			b.WriteString(" " + theme.OverdueStyle.Render(label))
		} else {
			b.WriteString(" " + theme.DueDateStyle.Render(label))
		}
	}
	if t.Recurrence != model.RecurrenceNone {
		b.WriteString(" " + theme.HelpStyle.Render("repeat:"+string(t.Recurrence)))
	}
	if len(t.DependsOn) > 0 {
		b.WriteString(" " + theme.HelpStyle.Render("blocked-by:"+joinIDs(t.DependsOn)))
	}
	if n := r.list.SubtaskCount(t.ID); n > 0 {
		b.WriteString(" " + theme.HelpStyle.Render(
			fmt.Sprintf("[%d/%d]", r.list.CompletedSubtaskCount(t.ID), n)))
	}
	return b.String()
}
