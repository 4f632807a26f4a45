// Package history implements linear undo/redo as a decorator over an
// opaque reducer. It keeps every state the reducer ever produced and a
// cursor into that sequence; undo and redo just move the cursor.
//
// The wrapper is generic over the state and action types, so it knows
// nothing about tasks. It is not safe for concurrent use: the event
// loop serializes all dispatches.
package history

// ReduceFunc is any pure state-transition function. It must return the
// input state unchanged (alongside the error) when the action fails.
type ReduceFunc[S, A any] func(S, A) (S, error)

// History wraps a reducer with undo/redo over its produced states.
// The invariant 0 <= index < len(states) always holds.
type History[S, A any] struct {
	reduce ReduceFunc[S, A]
	equal  func(S, S) bool
	states []S
	index  int
}

// New creates a history seeded with the initial state. equal is used to
// detect no-op transitions; it must implement structural equality.
func New[S, A any](initial S, reduce ReduceFunc[S, A], equal func(S, S) bool) *History[S, A] {
	return &History[S, A]{
		reduce: reduce,
		equal:  equal,
		states: []S{initial},
	}
}

// Present returns the current state.
func (h *History[S, A]) Present() S {
	return h.states[h.index]
}

// CanUndo reports whether an earlier state exists.
func (h *History[S, A]) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether a later state exists.
func (h *History[S, A]) CanRedo() bool {
	return h.index < len(h.states)-1
}

// Len returns the number of recorded states.
func (h *History[S, A]) Len() int {
	return len(h.states)
}

// Dispatch runs the reducer against the present state. A transition
// that errors leaves the history untouched and returns the error. A
// transition whose result equals the present state is a no-op and
// records nothing. Otherwise any redoable future is discarded, the new
// state appended, and the cursor moved to it. changed reports whether a
// new state was recorded.
func (h *History[S, A]) Dispatch(action A) (changed bool, err error) {
	next, err := h.reduce(h.Present(), action)
	if err != nil {
		return false, err
	}
	if h.equal(next, h.Present()) {
		return false, nil
	}
	h.states = append(h.states[:h.index+1], next)
	h.index = len(h.states) - 1
	return true, nil
}

// Undo moves the cursor one state back. It reports whether anything
// changed; at the oldest state it is a no-op.
func (h *History[S, A]) Undo() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Redo moves the cursor one state forward. It reports whether anything
// changed; at the newest state it is a no-op.
func (h *History[S, A]) Redo() bool {
	if h.index == len(h.states)-1 {
		return false
	}
	h.index++
	return true
}
