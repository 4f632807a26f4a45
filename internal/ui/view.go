// Package ui provides the terminal user interface for grove.
// This file renders the App: the tree view, the kanban view, the input
// line and the status bar.
package ui

import (
	"fmt"
	"strings"
	"time"

	"grove/internal/task"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the whole application.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.viewHeader())
	b.WriteString("\n")

	if a.kanban {
		b.WriteString(a.viewKanban())
	} else {
		b.WriteString(a.viewTree())
	}

	if a.mode != modeNormal {
		b.WriteString("\n")
		b.WriteString(a.styles.InputPromptStyle.Render("> "))
		b.WriteString(a.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.viewStatusBar())
	if a.showHelp {
		b.WriteString("\n")
		b.WriteString(a.viewHelp())
	}
	return b.String()
}

func (a *App) viewHeader() string {
	f := a.hist.Present()
	done := 0
	for _, t := range f {
		if t.Completed {
			done++
		}
	}

	title := a.styles.TitleStyle.Render("grove")
	parts := []string{fmt.Sprintf("%d/%d done", done, len(f))}
	parts = append(parts, "sort: "+a.sortMode.String())
	if a.statusFilter != task.StatusAll {
		parts = append(parts, "show: "+string(a.statusFilter))
	}
	if a.filterTag != "" {
		parts = append(parts, "tag: #"+a.filterTag)
	}
	if a.filterText != "" {
		parts = append(parts, "filter: "+truncate(a.filterText, 16))
	}
	return title + "  " + a.styles.HeaderStyle.Render(strings.Join(parts, " · "))
}

func (a *App) viewTree() string {
	var b strings.Builder

	if len(a.rows) == 0 {
		b.WriteString(a.styles.HelpStyle.Render("  No tasks. Press 'a' to add one."))
		b.WriteString("\n")
		return b.String()
	}

	maxRows := a.height - 6
	if maxRows < 5 {
		maxRows = 5
	}
	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}

	for i, r := range a.rows {
		if i < start || i >= start+maxRows {
			continue
		}
		b.WriteString(a.renderRow(r, i == a.cursor && a.mode == modeNormal))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderRow(r row, selected bool) string {
	indent := strings.Repeat("  ", r.depth)

	marker := "  "
	if len(r.task.Subtasks) > 0 {
		if a.collapsed[r.task.ID] {
			marker = "▸ "
		} else {
			marker = "▾ "
		}
	}

	checkbox := a.styles.CheckboxPending
	if r.task.Completed {
		checkbox = a.styles.CheckboxDone
	}

	badge := a.priorityBadge(r.task.Priority)

	// Trailing decorations: progress, recurrence, due date, tags.
	var extras []string
	if len(r.task.Subtasks) > 0 {
		done, total := task.ChildProgress(r.task)
		extras = append(extras, a.styles.ProgressStyle.Render(fmt.Sprintf("%d/%d", done, total)))
	}
	if r.task.Recurrence != task.RecurrenceNone {
		extras = append(extras, a.styles.RecurStyle.Render("↻"+string(r.task.Recurrence[0])))
	}
	if due := a.dueIndicator(r.task.DueDate); due != "" {
		extras = append(extras, due)
	}
	for _, tag := range r.task.Tags {
		extras = append(extras, a.styles.TagStyle.Render("#"+tag))
	}
	suffix := ""
	if len(extras) > 0 {
		suffix = " " + strings.Join(extras, " ")
	}

	avail := a.width - 10 - runewidth.StringWidth(indent) - lipgloss.Width(suffix)
	if avail < 8 {
		avail = 8
	}
	text := truncate(r.task.Text, avail)

	var styledText string
	switch {
	case selected:
		styledText = a.styles.TaskSelectedStyle.Render(text)
	case r.task.Completed:
		styledText = a.styles.TaskDoneStyle.Render(text)
	default:
		styledText = a.styles.TaskPendingStyle.Render(text)
	}

	cursor := " "
	if selected {
		cursor = ">"
	}
	return fmt.Sprintf("%s %s%s%s%s %s%s", cursor, indent, marker, badge, checkbox, styledText, suffix)
}

func (a *App) viewKanban() string {
	buckets := task.Kanban(a.visibleForest(), a.now())

	colWidth := (a.width - 8) / 3
	if colWidth < 18 {
		colWidth = 18
	}

	overdue := a.renderColumn("OVERDUE", buckets.Overdue, colWidth, a.styles.DueOverdueStyle)
	upcoming := a.renderColumn("UPCOMING", buckets.Upcoming, colWidth, a.styles.DueFutureStyle)
	completed := a.renderColumn("COMPLETED", buckets.Completed, colWidth, a.styles.TaskDoneStyle)

	return lipgloss.JoinHorizontal(lipgloss.Top, overdue, " ", upcoming, " ", completed)
}

func (a *App) renderColumn(title string, tasks []task.Task, width int, textStyle lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(a.styles.ColumnTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(tasks))))
	b.WriteString("\n")
	for _, t := range tasks {
		b.WriteString(textStyle.Render(truncate(t.Text, width-4)))
		b.WriteString("\n")
	}
	return a.styles.ColumnStyle.Width(width).Render(b.String())
}

func (a *App) viewStatusBar() string {
	if a.status != "" && a.now().Before(a.statusUntil) {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	hints := []string{"a add", "d done", "x del", "/ filter", "b kanban", "ctrl+z undo", "? help"}
	if a.hist.CanRedo() {
		hints = append(hints, "ctrl+y redo")
	}
	return a.styles.HelpStyle.Render(strings.Join(hints, " · "))
}

func (a *App) viewHelp() string {
	lines := []string{
		"j/k move · g/G top/bottom · h/l collapse/expand",
		"a add task · A add subtask · e edit · p priority · x delete",
		"d/space/enter toggle done (cascades to subtasks)",
		"K/J move root task up/down · C clear completed",
		"/ text filter · t tag filter · f all/active/done · s sort · b kanban",
		"ctrl+z undo · ctrl+y redo · q quit",
	}
	return a.styles.HelpStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) priorityBadge(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return a.styles.PriorityHighStyle.Render("!")
	case task.PriorityMedium:
		return a.styles.PriorityMediumStyle.Render("~")
	case task.PriorityLow:
		return a.styles.PriorityLowStyle.Render("·")
	default:
		return " "
	}
}

// dueIndicator returns a compact, styled due date marker: "!" overdue,
// "T" today, "+1" tomorrow, "3d", "2w", ">1m".
func (a *App) dueIndicator(due *time.Time) string {
	if due == nil {
		return ""
	}

	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	days := int(day.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return a.styles.DueOverdueStyle.Render("!")
	case days == 0:
		return a.styles.DueTodayStyle.Render("T")
	case days == 1:
		return a.styles.DueFutureStyle.Render("+1")
	case days <= 7:
		return a.styles.DueFutureStyle.Render(fmt.Sprintf("%dd", days))
	case days <= 30:
		return a.styles.DueFutureStyle.Render(fmt.Sprintf("%dw", days/7))
	default:
		return a.styles.DueFutureStyle.Render(">1m")
	}
}
