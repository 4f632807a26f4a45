// Package task defines the hierarchical task model.
// This file contains the derived-view functions: filtering, sorting,
// tagging, progress aggregation and kanban bucketing. All of them are
// computed fresh from the current forest on every call and never cache
// anything.
package task

import (
	"sort"
	"strings"
	"time"
)

// Status selects tasks by completion state.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// SortMode selects the root-level ordering.
type SortMode int

const (
	// SortCreated orders by creation time, newest first (default).
	SortCreated SortMode = iota
	// SortPriority orders by priority rank (high > medium > low).
	SortPriority
	// SortDueDate orders by due date; tasks without one sort as
	// infinitely late in ascending order.
	SortDueDate
)

// String returns a short label for display.
func (m SortMode) String() string {
	switch m {
	case SortPriority:
		return "priority"
	case SortDueDate:
		return "due"
	default:
		return "created"
	}
}

// FilterText returns the root tasks whose text or description contains
// query, case-insensitively. Nested tasks are not searched on their
// own; an empty query returns the forest unchanged.
func FilterText(f Forest, query string) Forest {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return f
	}
	out := make(Forest, 0, len(f))
	for _, t := range f {
		if strings.Contains(strings.ToLower(t.Text), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			out = append(out, t)
		}
	}
	return out
}

// FilterTag returns the root tasks carrying tag. An empty tag returns
// the forest unchanged.
func FilterTag(f Forest, tag string) Forest {
	if tag == "" {
		return f
	}
	out := make(Forest, 0, len(f))
	for _, t := range f {
		for _, have := range t.Tags {
			if have == tag {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// FilterStatus returns the root tasks matching the completion filter.
func FilterStatus(f Forest, status Status) Forest {
	if status == StatusAll || status == "" {
		return f
	}
	want := status == StatusCompleted
	out := make(Forest, 0, len(f))
	for _, t := range f {
		if t.Completed == want {
			out = append(out, t)
		}
	}
	return out
}

// AllTags returns every distinct root-level tag in first-seen order.
func AllTags(f Forest) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, t := range f {
		for _, tag := range t.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// Sort returns a copy of the forest's root tasks ordered by mode.
// asc toggles the direction for priority and due-date sorts; SortCreated
// ignores it and always puts the newest first. Ties fall back to
// creation time, newest first.
func Sort(f Forest, mode SortMode, asc bool) Forest {
	out := make(Forest, len(f))
	copy(out, f)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		switch mode {
		case SortPriority:
			av, bv := a.Priority.Value(), b.Priority.Value()
			if av != bv {
				if asc {
					return av < bv
				}
				return av > bv
			}

		case SortDueDate:
			ak, aHas := dueKey(a)
			bk, bHas := dueKey(b)
			if aHas != bHas {
				// Missing due date sorts as infinitely late.
				if asc {
					return aHas
				}
				return !aHas
			}
			if aHas && !ak.Equal(bk) {
				if asc {
					return ak.Before(bk)
				}
				return ak.After(bk)
			}
		}

		return a.CreatedAt.After(b.CreatedAt)
	})

	return out
}

func dueKey(t Task) (time.Time, bool) {
	if t.DueDate == nil {
		return time.Time{}, false
	}
	return *t.DueDate, true
}

// SubtreeProgress counts completed and total tasks in the subtree
// rooted at t, the task itself included.
func SubtreeProgress(t Task) (done, total int) {
	total = 1
	if t.Completed {
		done = 1
	}
	for _, st := range t.Subtasks {
		d, n := SubtreeProgress(st)
		done += d
		total += n
	}
	return done, total
}

// ChildProgress counts completed and total descendants of t, the task
// itself excluded.
func ChildProgress(t Task) (done, total int) {
	for _, st := range t.Subtasks {
		d, n := SubtreeProgress(st)
		done += d
		total += n
	}
	return done, total
}

// SubtreePercent reports the completion percentage of the subtree
// including t. A leaf reports 100 when completed and 0 otherwise.
func SubtreePercent(t Task) int {
	done, total := SubtreeProgress(t)
	return percent(done, total)
}

// ChildPercent reports the completion percentage of t's descendants.
// A task without subtasks reports 100 when itself completed and 0
// otherwise.
func ChildPercent(t Task) int {
	done, total := ChildProgress(t)
	if total == 0 {
		if t.Completed {
			return 100
		}
		return 0
	}
	return percent(done, total)
}

func percent(done, total int) int {
	if total == 0 {
		return 0
	}
	return done * 100 / total
}

// KanbanBuckets partitions root tasks into the three mutually exclusive
// kanban columns.
type KanbanBuckets struct {
	Overdue   []Task
	Upcoming  []Task
	Completed []Task
}

// Kanban buckets the root tasks relative to now. Completed tasks land
// in Completed regardless of due date; tasks without a due date and not
// completed appear in no bucket.
func Kanban(f Forest, now time.Time) KanbanBuckets {
	var b KanbanBuckets
	for _, t := range f {
		switch {
		case t.Completed:
			b.Completed = append(b.Completed, t)
		case t.DueDate == nil:
			// unbucketed
		case t.DueDate.Before(now):
			b.Overdue = append(b.Overdue, t)
		default:
			b.Upcoming = append(b.Upcoming, t)
		}
	}
	return b
}
