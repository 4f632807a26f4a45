// Package task defines the hierarchical task model.
// This file implements the reducer: the single pure transition function
// that turns a forest plus an action into the next forest. All mutation
// semantics live here; callers (UI, CLI) only construct actions.
package task

import (
	"errors"
	"fmt"
	"time"
)

// ErrPathNotFound is returned when an action addresses a path that does
// not resolve in the current forest, e.g. because the UI holds a stale
// path to an already-deleted ancestor.
var ErrPathNotFound = errors.New("task path not found")

// ErrTaskNotFound is returned when an action references a root task ID
// that does not exist.
var ErrTaskNotFound = errors.New("task not found")

// Action is a request for a single state transition. The concrete types
// below are the only mutation surface of the forest.
type Action interface {
	isAction()
}

// AddTask prepends a new root-level task.
type AddTask struct {
	Text        string
	Priority    Priority
	Tags        []string
	DueDate     *time.Time
	Description string
}

// AddSubtask prepends a new task into the subtasks of the task
// addressed by Path.
type AddSubtask struct {
	Path        Path
	Text        string
	Priority    Priority
	Tags        []string
	DueDate     *time.Time
	StartDate   *time.Time
	Recurrence  Recurrence
	Description string
}

// ToggleTask flips the completed flag of the task addressed by Path and
// cascades the new value to every descendant. A path of length 1
// toggles a root task.
type ToggleTask struct {
	Path Path
}

// DeleteTask removes the task addressed by Path together with its whole
// subtree.
type DeleteTask struct {
	Path Path
}

// UpdateTask shallow-merges a patch into the task addressed by Path.
type UpdateTask struct {
	Path  Path
	Patch Patch
}

// Patch holds optional field updates for UpdateTask. Nil pointers leave
// the field unchanged; ID, CreatedAt and Subtasks are not patchable.
type Patch struct {
	Text        *string
	Description *string
	Priority    *Priority
	Recurrence  *Recurrence
	DueDate     *time.Time
	StartDate   *time.Time
	Tags        []string // nil leaves tags unchanged
	ClearDue    bool
	ClearStart  bool
}

// ReorderTasks moves the root task DragID to the position currently
// occupied by DropID. Only root-level tasks can be reordered.
type ReorderTasks struct {
	DragID string
	DropID string
}

// ClearCompleted removes every completed task at every depth. A node
// survives iff it is not completed; surviving nodes keep only their
// surviving descendants.
type ClearCompleted struct{}

// ImportTasks replaces the entire forest.
type ImportTasks struct {
	Forest Forest
}

func (AddTask) isAction()        {}
func (AddSubtask) isAction()     {}
func (ToggleTask) isAction()     {}
func (DeleteTask) isAction()     {}
func (UpdateTask) isAction()     {}
func (ReorderTasks) isAction()   {}
func (ClearCompleted) isAction() {}
func (ImportTasks) isAction()    {}

// Reducer computes forest transitions. The clock and ID source are
// injectable for deterministic tests.
type Reducer struct {
	now   func() time.Time
	newID func() (string, error)
}

// NewReducer creates a Reducer backed by the real clock and random IDs.
func NewReducer() *Reducer {
	return &Reducer{now: time.Now, newID: NewID}
}

// SetNowFunc overrides the reducer's clock. Passing nil resets it to
// time.Now.
func (r *Reducer) SetNowFunc(now func() time.Time) {
	if now == nil {
		r.now = time.Now
		return
	}
	r.now = now
}

// SetIDFunc overrides the reducer's ID source. Passing nil resets it to
// NewID.
func (r *Reducer) SetIDFunc(newID func() (string, error)) {
	if newID == nil {
		r.newID = NewID
		return
	}
	r.newID = newID
}

// Reduce applies an action to the forest and returns the next forest.
// The input forest is never modified. Unknown actions are an identity
// transition. An unresolvable path is a reported error, not a silent
// no-op; the input forest is returned alongside it.
func (r *Reducer) Reduce(f Forest, a Action) (Forest, error) {
	switch a := a.(type) {
	case AddTask:
		t, err := r.buildTask(a.Text, a.Priority, a.Tags, a.DueDate, nil, RecurrenceNone, a.Description)
		if err != nil {
			return f, err
		}
		return prepend(f, t), nil

	case AddSubtask:
		t, err := r.buildTask(a.Text, a.Priority, a.Tags, a.DueDate, a.StartDate, a.Recurrence, a.Description)
		if err != nil {
			return f, err
		}
		out, ok := UpdateAtPath(f, a.Path, func(parent Task) Task {
			parent.Subtasks = prependTasks(parent.Subtasks, t)
			return parent
		})
		if !ok {
			return f, fmt.Errorf("add subtask under %q: %w", a.Path, ErrPathNotFound)
		}
		return out, nil

	case ToggleTask:
		out, ok := UpdateAtPath(f, a.Path, func(t Task) Task {
			done := !t.Completed
			if done && t.Recurrence != RecurrenceNone {
				now := r.now()
				t.DueDate = NextOccurrence(t.DueDate, t.Recurrence, now)
				t.StartDate = NextOccurrence(t.StartDate, t.Recurrence, now)
			}
			return setCompleted(t, done)
		})
		if !ok {
			return f, fmt.Errorf("toggle %q: %w", a.Path, ErrPathNotFound)
		}
		return out, nil

	case DeleteTask:
		if len(a.Path) == 0 {
			return f, fmt.Errorf("delete: empty path: %w", ErrPathNotFound)
		}
		target := a.Path[len(a.Path)-1]
		removed := false
		out, ok := UpdateParentOf(f, a.Path, func(siblings []Task) []Task {
			kept := make([]Task, 0, len(siblings))
			for _, t := range siblings {
				if t.ID == target {
					removed = true
					continue
				}
				kept = append(kept, t)
			}
			return kept
		})
		if !ok || !removed {
			return f, fmt.Errorf("delete %q: %w", a.Path, ErrPathNotFound)
		}
		return out, nil

	case UpdateTask:
		out, ok := UpdateAtPath(f, a.Path, func(t Task) Task {
			return applyPatch(t, a.Patch)
		})
		if !ok {
			return f, fmt.Errorf("update %q: %w", a.Path, ErrPathNotFound)
		}
		return out, nil

	case ReorderTasks:
		return reorder(f, a.DragID, a.DropID)

	case ClearCompleted:
		return Forest(clearCompleted([]Task(f))), nil

	case ImportTasks:
		return a.Forest.Normalize(), nil

	default:
		return f, nil
	}
}

func (r *Reducer) buildTask(text string, prio Priority, tags []string, due, start *time.Time, rec Recurrence, desc string) (Task, error) {
	id, err := r.newID()
	if err != nil {
		return Task{}, err
	}
	if tags == nil {
		tags = []string{}
	} else {
		tags = append([]string(nil), tags...)
	}
	return Task{
		ID:          id,
		Text:        text,
		CreatedAt:   r.now(),
		DueDate:     due,
		StartDate:   start,
		Priority:    prio,
		Recurrence:  rec,
		Tags:        tags,
		Description: desc,
		Subtasks:    []Task{},
	}, nil
}

func prepend(f Forest, t Task) Forest {
	return Forest(prependTasks([]Task(f), t))
}

func prependTasks(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

// setCompleted sets the flag on t and overwrites it on every descendant
// regardless of their prior state.
func setCompleted(t Task, done bool) Task {
	t.Completed = done
	if len(t.Subtasks) == 0 {
		return t
	}
	subs := make([]Task, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subs[i] = setCompleted(st, done)
	}
	t.Subtasks = subs
	return t
}

func applyPatch(t Task, p Patch) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.ClearDue {
		t.DueDate = nil
	}
	if p.StartDate != nil {
		t.StartDate = p.StartDate
	}
	if p.ClearStart {
		t.StartDate = nil
	}
	if p.Tags != nil {
		t.Tags = append([]string(nil), p.Tags...)
	}
	return t
}

// reorder moves drag to the position drop occupies. Indices are taken
// before removal, mirroring a drag-and-drop splice.
func reorder(f Forest, dragID, dropID string) (Forest, error) {
	from, to := -1, -1
	for i, t := range f {
		if t.ID == dragID {
			from = i
		}
		if t.ID == dropID {
			to = i
		}
	}
	if from < 0 {
		return f, fmt.Errorf("reorder %q: %w", dragID, ErrTaskNotFound)
	}
	if to < 0 {
		return f, fmt.Errorf("reorder %q: %w", dropID, ErrTaskNotFound)
	}
	if from == to {
		return f, nil
	}

	out := make([]Task, len(f))
	copy(out, f)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)

	rest := make([]Task, 0, len(f))
	rest = append(rest, out[:to]...)
	rest = append(rest, moved)
	rest = append(rest, out[to:]...)
	return Forest(rest), nil
}

func clearCompleted(tasks []Task) []Task {
	kept := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		t.Subtasks = clearCompleted(t.Subtasks)
		kept = append(kept, t)
	}
	return kept
}
