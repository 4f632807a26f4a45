package history

import (
	"errors"
	"testing"
)

// counter reducer: "inc" adds one, "same" returns the state unchanged,
// "boom" fails.
func counterReduce(s int, a string) (int, error) {
	switch a {
	case "inc":
		return s + 1, nil
	case "same":
		return s, nil
	case "boom":
		return s, errors.New("boom")
	}
	return s, nil
}

func intsEqual(a, b int) bool { return a == b }

func newCounter() *History[int, string] {
	return New(0, counterReduce, intsEqual)
}

func TestDispatchRecordsStates(t *testing.T) {
	h := newCounter()

	for i := 1; i <= 3; i++ {
		changed, err := h.Dispatch("inc")
		if err != nil || !changed {
			t.Fatalf("Dispatch() = (%v, %v)", changed, err)
		}
		if h.Present() != i {
			t.Fatalf("Present() = %d, want %d", h.Present(), i)
		}
	}
	if h.Len() != 4 {
		t.Errorf("Len() = %d, want 4", h.Len())
	}
}

func TestDispatchErrorLeavesHistoryUntouched(t *testing.T) {
	h := newCounter()
	h.Dispatch("inc")

	changed, err := h.Dispatch("boom")
	if err == nil || changed {
		t.Fatalf("Dispatch(boom) = (%v, %v), want error and no change", changed, err)
	}
	if h.Present() != 1 || h.Len() != 2 {
		t.Errorf("state after failed dispatch: Present=%d Len=%d", h.Present(), h.Len())
	}
	if h.CanRedo() {
		t.Error("CanRedo() = true after failed dispatch")
	}
}

func TestDispatchNoOpRecordsNothing(t *testing.T) {
	h := newCounter()
	h.Dispatch("inc")

	changed, err := h.Dispatch("same")
	if err != nil {
		t.Fatalf("Dispatch(same) error = %v", err)
	}
	if changed || h.Len() != 2 {
		t.Errorf("no-op recorded a state: changed=%v Len=%d", changed, h.Len())
	}
}

func TestUndoRedo(t *testing.T) {
	h := newCounter()
	h.Dispatch("inc")
	h.Dispatch("inc")

	if !h.Undo() || h.Present() != 1 {
		t.Fatalf("after first Undo: Present = %d", h.Present())
	}
	if !h.Undo() || h.Present() != 0 {
		t.Fatalf("after second Undo: Present = %d", h.Present())
	}
	if h.Undo() {
		t.Error("Undo() = true at the oldest state")
	}
	if h.Present() != 0 {
		t.Errorf("Present() = %d after clamped undo", h.Present())
	}

	if !h.Redo() || h.Present() != 1 {
		t.Fatalf("after first Redo: Present = %d", h.Present())
	}
	if !h.Redo() || h.Present() != 2 {
		t.Fatalf("after second Redo: Present = %d", h.Present())
	}
	if h.Redo() {
		t.Error("Redo() = true at the newest state")
	}
}

func TestDispatchAfterUndoTruncatesFuture(t *testing.T) {
	h := newCounter()
	h.Dispatch("inc") // 1
	h.Dispatch("inc") // 2
	h.Undo()          // back to 1

	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	changed, err := h.Dispatch("inc") // new branch, 2 again but fresh
	if err != nil || !changed {
		t.Fatalf("Dispatch() = (%v, %v)", changed, err)
	}
	if h.CanRedo() {
		t.Error("CanRedo() = true after branching dispatch")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (future discarded)", h.Len())
	}
	if h.Present() != 2 {
		t.Errorf("Present() = %d, want 2", h.Present())
	}
}

func TestInitialState(t *testing.T) {
	h := newCounter()
	if h.Present() != 0 || h.Len() != 1 {
		t.Errorf("fresh history: Present=%d Len=%d", h.Present(), h.Len())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history claims undo/redo available")
	}
}
