package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadForest(t *testing.T) {
	input := `[
  {
    "id": "a",
    "text": "pack bags",
    "completed": false,
    "created_at": "2026-03-01T12:00:00Z",
    "priority": "high",
    "tags": ["travel"],
    "subtasks": [
      {"id": "a1", "text": "passport", "subtasks": []}
    ]
  }
]`
	f, err := ReadForest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadForest() error = %v", err)
	}
	if len(f) != 1 || f[0].ID != "a" {
		t.Fatalf("forest = %+v", f)
	}
	if len(f[0].Subtasks) != 1 || f[0].Subtasks[0].ID != "a1" {
		t.Errorf("subtasks = %+v", f[0].Subtasks)
	}
	// Normalized even when the input omits the slices.
	if f[0].Subtasks[0].Tags == nil || f[0].Subtasks[0].Subtasks == nil {
		t.Error("imported tasks not normalized")
	}
}

func TestReadForestToleratesHandEdits(t *testing.T) {
	input := `[
  // things to do before the trip
  {
    "id": "a",
    "text": "pack bags",
  },
]`
	f, err := ReadForest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadForest() error = %v", err)
	}
	if len(f) != 1 || f[0].Text != "pack bags" {
		t.Errorf("forest = %+v", f)
	}
}

func TestReadForestRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"object instead of array", `{"tasks": []}`},
		{"string instead of array", `"hello"`},
		{"not json", `]]]`},
		{"task without id", `[{"text": "x"}]`},
		{"task without text", `[{"id": "a"}]`},
		{"empty text", `[{"id": "a", "text": ""}]`},
		{"bad priority", `[{"id": "a", "text": "x", "priority": "urgent"}]`},
		{"bad recurrence", `[{"id": "a", "text": "x", "recurrence": "hourly"}]`},
		{"invalid nested task", `[{"id": "a", "text": "x", "subtasks": [{"id": "a1"}]}]`},
		{"non-string tag", `[{"id": "a", "text": "x", "tags": [1]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadForest(strings.NewReader(tt.input)); err == nil {
				t.Errorf("ReadForest(%s) error = nil, want validation failure", tt.input)
			}
		})
	}
}

func TestReadForestEmptyArray(t *testing.T) {
	f, err := ReadForest(strings.NewReader("[]"))
	if err != nil {
		t.Fatalf("ReadForest([]) error = %v", err)
	}
	if len(f) != 0 {
		t.Errorf("forest = %+v, want empty", f)
	}
}

func TestReadForestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")
	if err := os.WriteFile(path, []byte(`[{"id": "a", "text": "x"}]`), 0600); err != nil {
		t.Fatal(err)
	}

	f, err := ReadForestFile(path)
	if err != nil {
		t.Fatalf("ReadForestFile() error = %v", err)
	}
	if len(f) != 1 {
		t.Errorf("forest = %+v", f)
	}

	if _, err := ReadForestFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadForestFile(missing) error = nil")
	}
}
