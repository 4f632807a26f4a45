// Package task defines the hierarchical task model and the pure state
// transitions over it. A Forest is the full ordered collection of root
// tasks; every mutation produces a new Forest and leaves the old one
// untouched, so snapshots can be kept for undo/redo.
package task

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Priority represents task priority levels.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityNone   Priority = "" // zero value for tasks without a priority
)

// Valid reports whether p is a known priority (including none).
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityNone:
		return true
	}
	return false
}

// Value returns the numeric rank used for sorting (high=3 .. none=0).
func (p Priority) Value() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Recurrence represents how often a task repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

// Valid reports whether r is a known recurrence (including none).
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is a single node in the task tree. Subtasks nest to arbitrary
// depth; an empty Subtasks slice denotes a leaf.
type Task struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Recurrence  Recurrence `json:"recurrence,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Description string     `json:"description,omitempty"`
	Subtasks    []Task     `json:"subtasks"`
}

// Forest is the entire managed dataset: the ordered root-level tasks.
type Forest []Task

// Path addresses a node in a Forest as the sequence of task IDs from a
// root down to the target. A path of length 1 addresses a root task.
type Path []string

// String renders a path as "a/b/c" for error messages.
func (p Path) String() string {
	return strings.Join(p, "/")
}

// NewID generates a unique task identifier.
func NewID() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return fmt.Sprintf("t_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(b[:])), nil
}

// Normalize returns a copy of the forest with nil Subtasks and Tags
// slices replaced by empty ones, recursively. Data loaded from JSON may
// omit both fields.
func (f Forest) Normalize() Forest {
	return Forest(normalizeTasks([]Task(f)))
}

func normalizeTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		if t.Tags == nil {
			t.Tags = []string{}
		}
		t.Subtasks = normalizeTasks(t.Subtasks)
		out[i] = t
	}
	return out
}

// Equal reports structural equality of two forests. It is used by the
// history wrapper to detect no-op transitions.
func (f Forest) Equal(other Forest) bool {
	return tasksEqual([]Task(f), []Task(other))
}

// Equal reports structural equality of two tasks, subtrees included.
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID ||
		t.Text != other.Text ||
		t.Completed != other.Completed ||
		!t.CreatedAt.Equal(other.CreatedAt) ||
		t.Priority != other.Priority ||
		t.Recurrence != other.Recurrence ||
		t.Description != other.Description {
		return false
	}
	if !timePtrEqual(t.DueDate, other.DueDate) || !timePtrEqual(t.StartDate, other.StartDate) {
		return false
	}
	if len(t.Tags) != len(other.Tags) {
		return false
	}
	for i := range t.Tags {
		if t.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return tasksEqual(t.Subtasks, other.Subtasks)
}

func tasksEqual(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func timePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Count returns the number of tasks reachable in the forest, at every
// depth.
func (f Forest) Count() int {
	return countTasks([]Task(f))
}

func countTasks(tasks []Task) int {
	n := len(tasks)
	for _, t := range tasks {
		n += countTasks(t.Subtasks)
	}
	return n
}

// IDs returns the set of every task ID in the forest.
func (f Forest) IDs() map[string]struct{} {
	ids := make(map[string]struct{})
	collectIDs([]Task(f), ids)
	return ids
}

func collectIDs(tasks []Task, ids map[string]struct{}) {
	for _, t := range tasks {
		ids[t.ID] = struct{}{}
		collectIDs(t.Subtasks, ids)
	}
}

// Merge appends the root tasks of src to dst. Subtrees whose IDs collide
// with existing ones get fresh IDs so the uniqueness invariant holds.
// It returns the merged forest and the number of root tasks added.
func Merge(dst, src Forest) (Forest, int, error) {
	ids := dst.IDs()
	out := make(Forest, len(dst), len(dst)+len(src))
	copy(out, dst)

	added := 0
	for _, t := range src {
		if subtreeCollides(t, ids) {
			fresh, err := reassignIDs(t)
			if err != nil {
				return dst, added, err
			}
			t = fresh
		}
		collectIDs([]Task{t}, ids)
		out = append(out, t)
		added++
	}
	return out, added, nil
}

func subtreeCollides(t Task, ids map[string]struct{}) bool {
	if _, ok := ids[t.ID]; ok {
		return true
	}
	for _, st := range t.Subtasks {
		if subtreeCollides(st, ids) {
			return true
		}
	}
	return false
}

func reassignIDs(t Task) (Task, error) {
	id, err := NewID()
	if err != nil {
		return t, err
	}
	t.ID = id
	subs := make([]Task, len(t.Subtasks))
	for i, st := range t.Subtasks {
		fresh, err := reassignIDs(st)
		if err != nil {
			return t, err
		}
		subs[i] = fresh
	}
	t.Subtasks = subs
	return t, nil
}
