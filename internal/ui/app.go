// Package ui provides the terminal user interface for grove.
// This file contains the main App model: a single tree pane over the
// history-wrapped task forest. The UI never mutates state itself; every
// change is an action dispatched through the history wrapper, and the
// snapshot is persisted after each accepted transition.
package ui

import (
	"fmt"
	"strings"
	"time"

	"grove/internal/config"
	"grove/internal/history"
	"grove/internal/notify"
	"grove/internal/storage"
	"grove/internal/task"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
)

// TaskHistory is the undo/redo wrapper instantiated for the task forest.
type TaskHistory = history.History[task.Forest, task.Action]

// NewHistory builds a TaskHistory around a reducer, seeded with the
// loaded forest.
func NewHistory(initial task.Forest, r *task.Reducer) *TaskHistory {
	return history.New(initial, r.Reduce, task.Forest.Equal)
}

// reminderInterval is how often the due-date scan runs.
const reminderInterval = time.Hour

// statusTimeout is how long transient status messages stay visible.
const statusTimeout = 4 * time.Second

type inputMode int

const (
	modeNormal inputMode = iota
	modeAddRoot
	modeAddSub
	modeEdit
	modeFilter
)

// row is one visible line of the flattened tree.
type row struct {
	task  task.Task
	path  task.Path
	depth int
}

type reminderTickMsg time.Time

// App is the main application model.
type App struct {
	store    *storage.Store
	hist     *TaskHistory
	styles   *Styles
	logger   *log.Logger
	reminder *notify.Reminder

	keys      GlobalKeyMap
	treeKeys  TreeKeyMap
	inputKeys InputKeyMap

	rows      []row
	cursor    int
	collapsed map[string]bool

	mode       inputMode
	input      textinput.Model
	actionPath task.Path // parent for modeAddSub, target for modeEdit

	filterText   string
	filterTag    string
	statusFilter task.Status
	sortMode     task.SortMode
	kanban       bool
	showHelp     bool

	width  int
	height int

	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	now func() time.Time // injectable clock for deterministic tests
}

// NewApp creates the application model. store and reminder may be nil
// (persistence and notifications disabled, used in tests); logger nil
// falls back to the default logger.
func NewApp(store *storage.Store, hist *TaskHistory, styles *Styles, keysCfg *config.KeysConfig, logger *log.Logger, reminder *notify.Reminder) *App {
	if logger == nil {
		logger = log.Default()
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 200
	ti.Width = 40

	a := &App{
		store:        store,
		hist:         hist,
		styles:       styles,
		logger:       logger,
		reminder:     reminder,
		keys:         NewGlobalKeyMap(keysCfg),
		treeKeys:     NewTreeKeyMap(keysCfg),
		inputKeys:    NewInputKeyMap(keysCfg),
		collapsed:    make(map[string]bool),
		input:        ti,
		statusFilter: task.StatusAll,
		sortMode:     task.SortCreated,
		width:        80,
		height:       24,
		now:          time.Now,
	}
	a.rebuildRows()
	return a
}

// Run starts the TUI event loop.
func Run(app *App) error {
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Init schedules the first reminder scan.
func (a *App) Init() tea.Cmd {
	if a.reminder == nil {
		return nil
	}
	return tea.Batch(
		func() tea.Msg { return reminderTickMsg(a.now()) },
		reminderTick(),
	)
}

func reminderTick() tea.Cmd {
	return tea.Tick(reminderInterval, func(t time.Time) tea.Msg {
		return reminderTickMsg(t)
	})
}

// Update routes messages to the current mode.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = maxInt(10, a.width-6)
		return a, nil

	case reminderTickMsg:
		// Read-only scan over the present state; runs between
		// transitions, never during one.
		if a.reminder != nil {
			a.reminder.Check(a.hist.Present(), time.Time(msg))
			return a, reminderTick()
		}
		return a, nil

	case tea.KeyMsg:
		if a.mode != modeNormal {
			return a, a.updateInput(msg)
		}
		return a, a.updateNormal(msg)
	}

	return a, nil
}

func (a *App) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp

	case key.Matches(msg, a.keys.Undo):
		if a.hist.Undo() {
			a.persist()
			a.rebuildRows()
			a.setStatus("undid last change", false)
		} else {
			a.setStatus("nothing to undo", false)
		}

	case key.Matches(msg, a.keys.Redo):
		if a.hist.Redo() {
			a.persist()
			a.rebuildRows()
			a.setStatus("redid change", false)
		} else {
			a.setStatus("nothing to redo", false)
		}

	case key.Matches(msg, a.treeKeys.Down):
		if len(a.rows) > 0 {
			a.cursor = minInt(a.cursor+1, len(a.rows)-1)
		}

	case key.Matches(msg, a.treeKeys.Up):
		a.cursor = maxInt(a.cursor-1, 0)

	case key.Matches(msg, a.treeKeys.Top):
		a.cursor = 0

	case key.Matches(msg, a.treeKeys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.treeKeys.Collapse):
		if r, ok := a.currentRow(); ok && len(r.task.Subtasks) > 0 {
			a.collapsed[r.task.ID] = true
			a.rebuildRows()
		}

	case key.Matches(msg, a.treeKeys.Expand):
		if r, ok := a.currentRow(); ok {
			delete(a.collapsed, r.task.ID)
			a.rebuildRows()
		}

	case key.Matches(msg, a.treeKeys.Add):
		a.enterInput(modeAddRoot, "What needs to be done?", "")
		return textinput.Blink

	case key.Matches(msg, a.treeKeys.AddSubtask):
		if r, ok := a.currentRow(); ok {
			a.actionPath = r.path
			a.enterInput(modeAddSub, "Subtask of "+truncate(r.task.Text, 24), "")
			return textinput.Blink
		}

	case key.Matches(msg, a.treeKeys.Toggle):
		if r, ok := a.currentRow(); ok {
			a.dispatch(task.ToggleTask{Path: r.path})
		}

	case key.Matches(msg, a.treeKeys.Delete):
		if r, ok := a.currentRow(); ok {
			a.dispatch(task.DeleteTask{Path: r.path})
		}

	case key.Matches(msg, a.treeKeys.Edit):
		if r, ok := a.currentRow(); ok {
			a.actionPath = r.path
			a.enterInput(modeEdit, "", r.task.Text)
			return textinput.Blink
		}

	case key.Matches(msg, a.treeKeys.Priority):
		if r, ok := a.currentRow(); ok {
			next := nextPriority(r.task.Priority)
			a.dispatch(task.UpdateTask{Path: r.path, Patch: task.Patch{Priority: &next}})
		}

	case key.Matches(msg, a.treeKeys.MoveUp):
		a.moveRoot(-1)

	case key.Matches(msg, a.treeKeys.MoveDown):
		a.moveRoot(1)

	case key.Matches(msg, a.treeKeys.ClearDone):
		a.dispatch(task.ClearCompleted{})

	case key.Matches(msg, a.treeKeys.Filter):
		a.enterInput(modeFilter, "filter text", a.filterText)
		return textinput.Blink

	case key.Matches(msg, a.treeKeys.CycleTag):
		a.cycleTag()

	case key.Matches(msg, a.treeKeys.CycleState):
		a.cycleStatus()

	case key.Matches(msg, a.treeKeys.CycleSort):
		a.sortMode = (a.sortMode + 1) % 3
		a.rebuildRows()
		a.setStatus("sort: "+a.sortMode.String(), false)

	case key.Matches(msg, a.treeKeys.Kanban):
		a.kanban = !a.kanban
	}

	return nil
}

func (a *App) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.inputKeys.Confirm):
		text := strings.TrimSpace(a.input.Value())
		mode := a.mode
		a.leaveInput()

		switch mode {
		case modeAddRoot:
			if text != "" {
				a.dispatch(task.AddTask{Text: text, Tags: []string{}})
			}
		case modeAddSub:
			if text != "" {
				a.dispatch(task.AddSubtask{Path: a.actionPath, Text: text, Tags: []string{}})
				delete(a.collapsed, a.actionPath[len(a.actionPath)-1])
				a.rebuildRows()
			}
		case modeEdit:
			if text != "" {
				a.dispatch(task.UpdateTask{Path: a.actionPath, Patch: task.Patch{Text: &text}})
			}
		case modeFilter:
			// filterText already tracks the input live.
		}
		return nil

	case key.Matches(msg, a.inputKeys.Cancel):
		if a.mode == modeFilter {
			a.filterText = ""
		}
		a.leaveInput()
		a.rebuildRows()
		return nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if a.mode == modeFilter {
		a.filterText = a.input.Value()
		a.rebuildRows()
	}
	return cmd
}

func (a *App) enterInput(mode inputMode, placeholder, value string) {
	a.mode = mode
	if placeholder != "" {
		a.input.Placeholder = placeholder
	}
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
}

func (a *App) leaveInput() {
	a.mode = modeNormal
	a.input.Reset()
	a.input.Blur()
	a.input.Placeholder = "What needs to be done?"
}

// dispatch runs an action through the history wrapper. Errors (stale
// paths, unknown IDs) surface as a status message and leave both the
// forest and the history untouched.
func (a *App) dispatch(action task.Action) {
	changed, err := a.hist.Dispatch(action)
	if err != nil {
		a.setStatus(err.Error(), true)
		return
	}
	if changed {
		a.persist()
	}
	a.rebuildRows()
}

// persist snapshots the present state. Failures are logged and shown
// but never roll back the in-memory transition.
func (a *App) persist() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.hist.Present()); err != nil {
		a.logger.Error("save snapshot failed", "err", err)
		a.setStatus("save failed: "+err.Error(), true)
	}
}

func (a *App) moveRoot(delta int) {
	r, ok := a.currentRow()
	if !ok {
		return
	}
	if len(r.path) != 1 {
		a.setStatus("only root tasks can be reordered", false)
		return
	}
	f := a.hist.Present()
	idx := -1
	for i, t := range f {
		if t.ID == r.task.ID {
			idx = i
			break
		}
	}
	j := idx + delta
	if idx < 0 || j < 0 || j >= len(f) {
		return
	}
	a.dispatch(task.ReorderTasks{DragID: r.task.ID, DropID: f[j].ID})
}

func (a *App) cycleTag() {
	tags := task.AllTags(a.hist.Present())
	if len(tags) == 0 {
		a.filterTag = ""
		a.setStatus("no tags", false)
		return
	}
	// "" -> tags[0] -> ... -> tags[n-1] -> ""
	next := ""
	for i, t := range tags {
		if t == a.filterTag {
			if i+1 < len(tags) {
				next = tags[i+1]
			}
			break
		}
	}
	if a.filterTag == "" {
		next = tags[0]
	}
	a.filterTag = next
	a.rebuildRows()
	if next == "" {
		a.setStatus("tag filter off", false)
	} else {
		a.setStatus("tag: #"+next, false)
	}
}

func (a *App) cycleStatus() {
	switch a.statusFilter {
	case task.StatusAll:
		a.statusFilter = task.StatusActive
	case task.StatusActive:
		a.statusFilter = task.StatusCompleted
	default:
		a.statusFilter = task.StatusAll
	}
	a.rebuildRows()
	a.setStatus("show: "+string(a.statusFilter), false)
}

// visibleForest applies the derived-view pipeline to the present state.
func (a *App) visibleForest() task.Forest {
	f := a.hist.Present()
	f = task.FilterText(f, a.filterText)
	f = task.FilterTag(f, a.filterTag)
	f = task.FilterStatus(f, a.statusFilter)
	return task.Sort(f, a.sortMode, a.sortMode == task.SortDueDate)
}

// rebuildRows recomputes the flattened visible tree and clamps the
// cursor.
func (a *App) rebuildRows() {
	a.rows = a.rows[:0]
	a.flatten([]task.Task(a.visibleForest()), nil, 0)
	if a.cursor >= len(a.rows) {
		a.cursor = maxInt(0, len(a.rows)-1)
	}
}

func (a *App) flatten(tasks []task.Task, prefix task.Path, depth int) {
	for _, t := range tasks {
		path := make(task.Path, 0, len(prefix)+1)
		path = append(path, prefix...)
		path = append(path, t.ID)
		a.rows = append(a.rows, row{task: t, path: path, depth: depth})
		if len(t.Subtasks) > 0 && !a.collapsed[t.ID] {
			a.flatten(t.Subtasks, path, depth+1)
		}
	}
}

func (a *App) currentRow() (row, bool) {
	if len(a.rows) == 0 || a.cursor >= len(a.rows) {
		return row{}, false
	}
	return a.rows[a.cursor], true
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	a.statusUntil = a.now().Add(statusTimeout)
}

func nextPriority(p task.Priority) task.Priority {
	switch p {
	case task.PriorityNone:
		return task.PriorityLow
	case task.PriorityLow:
		return task.PriorityMedium
	case task.PriorityMedium:
		return task.PriorityHigh
	default:
		return task.PriorityNone
	}
}

func truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
