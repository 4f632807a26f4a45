// Package ui provides the terminal user interface for grove.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching and help text generation.
package ui

import (
	"strings"

	"grove/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit key.Binding
	Help key.Binding
	Undo key.Binding
	Redo key.Binding
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
		Undo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Undo, "ctrl+z", "u")...),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Redo, "ctrl+y", "ctrl+r")...),
			key.WithHelp("ctrl+y", "redo"),
		),
	}
}

// TreeKeyMap defines keys for navigating and mutating the task tree.
type TreeKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Collapse   key.Binding
	Expand     key.Binding
	Add        key.Binding
	AddSubtask key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Priority   key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	ClearDone  key.Binding
	Filter     key.Binding
	CycleTag   key.Binding
	CycleState key.Binding
	CycleSort  key.Binding
	Kanban     key.Binding
}

// NewTreeKeyMap creates tree key bindings from config.
func NewTreeKeyMap(cfg *config.KeysConfig) TreeKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return TreeKeyMap{
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Top, "g")...),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Bottom, "G")...),
			key.WithHelp("G", "bottom"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Collapse, "h", "left")...),
			key.WithHelp("h", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Expand, "l", "right")...),
			key.WithHelp("l", "expand"),
		),
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add task"),
		),
		AddSubtask: key.NewBinding(
			key.WithKeys(parseKeys(cfg.AddSubtask, "A")...),
			key.WithHelp("A", "add subtask"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Toggle, "d", "enter", " ")...),
			key.WithHelp("d", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Edit, "e")...),
			key.WithHelp("e", "edit text"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "cycle priority"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveUp, "K")...),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys(parseKeys(cfg.MoveDown, "J")...),
			key.WithHelp("J", "move down"),
		),
		ClearDone: key.NewBinding(
			key.WithKeys(parseKeys(cfg.ClearDone, "C")...),
			key.WithHelp("C", "clear completed"),
		),
		Filter: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Filter, "/")...),
			key.WithHelp("/", "filter"),
		),
		CycleTag: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleTag, "t")...),
			key.WithHelp("t", "cycle tag"),
		),
		CycleState: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleState, "f")...),
			key.WithHelp("f", "all/active/done"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys(parseKeys(cfg.CycleSort, "s")...),
			key.WithHelp("s", "sort"),
		),
		Kanban: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Kanban, "b")...),
			key.WithHelp("b", "kanban"),
		),
	}
}

// InputKeyMap defines keys used while a text input is focused.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
	}
}
