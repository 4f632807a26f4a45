package task

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestReducer returns a reducer with a frozen clock and sequential IDs.
func newTestReducer() *Reducer {
	r := NewReducer()
	r.SetNowFunc(func() time.Time { return testNow })
	n := 0
	r.SetIDFunc(func() (string, error) {
		n++
		return fmt.Sprintf("id%d", n), nil
	})
	return r
}

func mkTask(id, text string, subs ...Task) Task {
	if subs == nil {
		subs = []Task{}
	}
	return Task{
		ID:        id,
		Text:      text,
		CreatedAt: testNow,
		Tags:      []string{},
		Subtasks:  subs,
	}
}

func TestReduce_AddTaskPrepends(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "first")}

	got, err := r.Reduce(f, AddTask{Text: "second", Priority: PriorityHigh, Tags: []string{"work"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(forest) = %d, want 2", len(got))
	}
	if got[0].Text != "second" || got[1].ID != "a" {
		t.Errorf("new task not prepended: %+v", got)
	}
	if got[0].Priority != PriorityHigh {
		t.Errorf("Priority = %q, want %q", got[0].Priority, PriorityHigh)
	}
	if got[0].ID == "" || got[0].CreatedAt.IsZero() {
		t.Errorf("new task missing identity: %+v", got[0])
	}
	if len(f) != 1 {
		t.Errorf("input forest modified, len = %d", len(f))
	}
}

func TestReduce_AddSubtask(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "parent", mkTask("a1", "old"))}

	got, err := r.Reduce(f, AddSubtask{Path: Path{"a"}, Text: "new"})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	subs := got[0].Subtasks
	if len(subs) != 2 || subs[0].Text != "new" || subs[1].ID != "a1" {
		t.Errorf("subtask not prepended: %+v", subs)
	}
	if len(f[0].Subtasks) != 1 {
		t.Error("input forest modified")
	}
}

func TestReduce_AddSubtaskMissingParent(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "parent")}

	got, err := r.Reduce(f, AddSubtask{Path: Path{"ghost"}, Text: "x"})
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("Reduce() error = %v, want ErrPathNotFound", err)
	}
	if !got.Equal(f) {
		t.Error("forest changed on failed action")
	}
}

func TestReduce_ToggleCascadesDown(t *testing.T) {
	r := newTestReducer()
	f := Forest{
		mkTask("r", "root",
			mkTask("a", "a",
				mkTask("a1", "a1")),
			mkTask("b", "b")),
	}
	f[0].Subtasks[1].Completed = true // mixed child states

	got, err := r.Reduce(f, ToggleTask{Path: Path{"r"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	root := got[0]
	if !root.Completed || !root.Subtasks[0].Completed ||
		!root.Subtasks[0].Subtasks[0].Completed || !root.Subtasks[1].Completed {
		t.Errorf("completion did not cascade: %+v", root)
	}

	// Toggling back clears every descendant too.
	back, err := r.Reduce(got, ToggleTask{Path: Path{"r"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	root = back[0]
	if root.Completed || root.Subtasks[0].Completed ||
		root.Subtasks[0].Subtasks[0].Completed || root.Subtasks[1].Completed {
		t.Errorf("un-completion did not cascade: %+v", root)
	}
}

func TestReduce_ToggleNestedLeavesSiblings(t *testing.T) {
	r := newTestReducer()
	f := Forest{
		mkTask("r", "root",
			mkTask("a", "a"),
			mkTask("b", "b")),
		mkTask("s", "other"),
	}

	got, err := r.Reduce(f, ToggleTask{Path: Path{"r", "a"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if !got[0].Subtasks[0].Completed {
		t.Error("target not toggled")
	}
	if got[0].Completed || got[0].Subtasks[1].Completed || got[1].Completed {
		t.Error("toggle leaked to parent or siblings")
	}
}

func TestReduce_ToggleRecurringAdvancesDates(t *testing.T) {
	r := newTestReducer()
	due := testNow.AddDate(0, 0, -2)
	start := testNow.AddDate(0, 0, -3)
	f := Forest{mkTask("r", "water plants")}
	f[0].Recurrence = RecurrenceWeekly
	f[0].DueDate = &due
	f[0].StartDate = &start

	got, err := r.Reduce(f, ToggleTask{Path: Path{"r"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	task := got[0]
	if !task.Completed {
		t.Error("task not completed")
	}
	wantDue := due.AddDate(0, 0, 7)
	wantStart := start.AddDate(0, 0, 7)
	if task.DueDate == nil || !task.DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", task.DueDate, wantDue)
	}
	if task.StartDate == nil || !task.StartDate.Equal(wantStart) {
		t.Errorf("StartDate = %v, want %v", task.StartDate, wantStart)
	}

	// Un-completing must not advance again.
	back, err := r.Reduce(got, ToggleTask{Path: Path{"r"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if !back[0].DueDate.Equal(wantDue) {
		t.Errorf("DueDate moved on un-complete: %v", back[0].DueDate)
	}
}

func TestReduce_DeleteRemovesSubtree(t *testing.T) {
	r := newTestReducer()
	f := Forest{
		mkTask("r", "root",
			mkTask("a", "a",
				mkTask("a1", "a1"),
				mkTask("a2", "a2")),
			mkTask("b", "b")),
	}
	before := f.Count()

	got, err := r.Reduce(f, DeleteTask{Path: Path{"r", "a"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if got.Count() != before-3 {
		t.Errorf("Count() = %d, want %d", got.Count(), before-3)
	}
	if len(got[0].Subtasks) != 1 || got[0].Subtasks[0].ID != "b" {
		t.Errorf("wrong subtree removed: %+v", got[0].Subtasks)
	}
}

func TestReduce_DeleteRoot(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "a"), mkTask("b", "b")}

	got, err := r.Reduce(f, DeleteTask{Path: Path{"a"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Errorf("forest = %+v, want only b", got)
	}
}

func TestReduce_DeleteMissing(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "a")}

	tests := []struct {
		name string
		path Path
	}{
		{"missing root", Path{"ghost"}},
		{"missing child", Path{"a", "ghost"}},
		{"stale ancestor", Path{"ghost", "child"}},
		{"empty path", Path{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Reduce(f, DeleteTask{Path: tt.path})
			if !errors.Is(err, ErrPathNotFound) {
				t.Fatalf("Reduce() error = %v, want ErrPathNotFound", err)
			}
			if !got.Equal(f) {
				t.Error("forest changed on failed delete")
			}
		})
	}
}

func TestReduce_UpdatePatch(t *testing.T) {
	r := newTestReducer()
	due := testNow.AddDate(0, 0, 5)
	f := Forest{mkTask("a", "old")}
	f[0].DueDate = &due
	f[0].Priority = PriorityLow
	f[0].Tags = []string{"home"}

	text := "new"
	prio := PriorityHigh
	got, err := r.Reduce(f, UpdateTask{
		Path: Path{"a"},
		Patch: Patch{
			Text:     &text,
			Priority: &prio,
			Tags:     []string{"work", "urgent"},
			ClearDue: true,
		},
	})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	u := got[0]
	if u.Text != "new" || u.Priority != PriorityHigh {
		t.Errorf("patch not applied: %+v", u)
	}
	if u.DueDate != nil {
		t.Errorf("DueDate = %v, want cleared", u.DueDate)
	}
	if len(u.Tags) != 2 || u.Tags[0] != "work" {
		t.Errorf("Tags = %v", u.Tags)
	}
	if u.ID != "a" || !u.CreatedAt.Equal(testNow) {
		t.Errorf("identity fields changed: %+v", u)
	}
	if f[0].Text != "old" {
		t.Error("input forest modified")
	}
}

func TestReduce_UpdateEmptyPatchIsIdentity(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "text")}

	got, err := r.Reduce(f, UpdateTask{Path: Path{"a"}})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if !got.Equal(f) {
		t.Errorf("empty patch changed the task: %+v", got[0])
	}
}

func TestReduce_Reorder(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("a", "a"), mkTask("b", "b"), mkTask("c", "c")}

	tests := []struct {
		name       string
		drag, drop string
		want       []string
	}{
		{"move down", "a", "c", []string{"b", "c", "a"}},
		{"move up", "c", "a", []string{"c", "a", "b"}},
		{"adjacent swap", "a", "b", []string{"b", "a", "c"}},
		{"onto itself", "b", "b", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Reduce(f, ReorderTasks{DragID: tt.drag, DropID: tt.drop})
			if err != nil {
				t.Fatalf("Reduce() error = %v", err)
			}
			ids := make([]string, len(got))
			for i, tk := range got {
				ids[i] = tk.ID
			}
			for i := range tt.want {
				if ids[i] != tt.want[i] {
					t.Fatalf("order = %v, want %v", ids, tt.want)
				}
			}
		})
	}

	if _, err := r.Reduce(f, ReorderTasks{DragID: "ghost", DropID: "a"}); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("unknown drag id error = %v, want ErrTaskNotFound", err)
	}
}

func TestReduce_ClearCompleted(t *testing.T) {
	r := newTestReducer()
	done := func(tk Task) Task { tk.Completed = true; return tk }
	f := Forest{
		done(mkTask("gone", "completed root",
			mkTask("orphan", "active child of completed parent"))),
		mkTask("keep", "active root",
			done(mkTask("sub-gone", "completed child")),
			mkTask("sub-keep", "active child")),
	}

	got, err := r.Reduce(f, ClearCompleted{})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	// A completed parent takes its whole subtree with it, active
	// descendants included.
	if len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("roots = %+v, want only keep", got)
	}
	if len(got[0].Subtasks) != 1 || got[0].Subtasks[0].ID != "sub-keep" {
		t.Errorf("subtasks = %+v, want only sub-keep", got[0].Subtasks)
	}
}

func TestReduce_ImportReplaces(t *testing.T) {
	r := newTestReducer()
	f := Forest{mkTask("old", "old")}
	incoming := Forest{{ID: "new", Text: "new"}}

	got, err := r.Reduce(f, ImportTasks{Forest: incoming})
	if err != nil {
		t.Fatalf("Reduce() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("forest = %+v, want only imported task", got)
	}
	if got[0].Tags == nil || got[0].Subtasks == nil {
		t.Error("imported tasks not normalized")
	}
}
