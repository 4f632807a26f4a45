package task

import "testing"

func pathFixture() Forest {
	return Forest{
		mkTask("a", "a",
			mkTask("a1", "a1",
				mkTask("a11", "a11")),
			mkTask("a2", "a2")),
		mkTask("b", "b"),
	}
}

func TestFindAtPath(t *testing.T) {
	f := pathFixture()

	tests := []struct {
		name   string
		path   Path
		wantID string
		ok     bool
	}{
		{"root", Path{"a"}, "a", true},
		{"nested", Path{"a", "a1", "a11"}, "a11", true},
		{"sibling branch", Path{"a", "a2"}, "a2", true},
		{"wrong branch", Path{"b", "a1"}, "", false},
		{"missing leaf", Path{"a", "ghost"}, "", false},
		{"missing root", Path{"ghost"}, "", false},
		{"empty", Path{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindAtPath(f, tt.path)
			if ok != tt.ok {
				t.Fatalf("FindAtPath(%v) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("FindAtPath(%v) = %q, want %q", tt.path, got.ID, tt.wantID)
			}
		})
	}
}

func TestUpdateAtPathIdentity(t *testing.T) {
	f := pathFixture()
	identity := func(tk Task) Task { return tk }

	for _, path := range []Path{{"a"}, {"a", "a1"}, {"a", "a1", "a11"}, {"b"}} {
		got, ok := UpdateAtPath(f, path, identity)
		if !ok {
			t.Fatalf("UpdateAtPath(%v) ok = false", path)
		}
		if !got.Equal(f) {
			t.Errorf("identity update at %v changed the forest", path)
		}
	}
}

func TestUpdateAtPath(t *testing.T) {
	f := pathFixture()

	got, ok := UpdateAtPath(f, Path{"a", "a1", "a11"}, func(tk Task) Task {
		tk.Text = "changed"
		return tk
	})
	if !ok {
		t.Fatal("UpdateAtPath() ok = false")
	}
	if got[0].Subtasks[0].Subtasks[0].Text != "changed" {
		t.Error("target not updated")
	}
	if f[0].Subtasks[0].Subtasks[0].Text != "a11" {
		t.Error("input forest modified")
	}
}

func TestUpdateAtPathSharesUnrelatedBranches(t *testing.T) {
	f := pathFixture()

	got, ok := UpdateAtPath(f, Path{"a", "a1"}, func(tk Task) Task {
		tk.Text = "changed"
		return tk
	})
	if !ok {
		t.Fatal("UpdateAtPath() ok = false")
	}
	if len(got[0].Subtasks[1].Subtasks) != len(f[0].Subtasks[1].Subtasks) {
		t.Error("unrelated branch rebuilt differently")
	}
	if !got[1].Equal(f[1]) {
		t.Error("unrelated root changed")
	}
}

func TestUpdateAtPathMissing(t *testing.T) {
	f := pathFixture()

	tests := []Path{
		{"ghost"},
		{"a", "ghost"},
		{"ghost", "a1"},
		{},
	}
	for _, path := range tests {
		got, ok := UpdateAtPath(f, path, func(tk Task) Task {
			tk.Text = "changed"
			return tk
		})
		if ok {
			t.Errorf("UpdateAtPath(%v) ok = true", path)
		}
		if !got.Equal(f) {
			t.Errorf("UpdateAtPath(%v) changed the forest", path)
		}
	}
}

func TestUpdateParentOf(t *testing.T) {
	f := pathFixture()

	// Root path hands the forest itself to fn.
	got, ok := UpdateParentOf(f, Path{"b"}, func(siblings []Task) []Task {
		if len(siblings) != 2 {
			t.Errorf("root container has %d tasks, want 2", len(siblings))
		}
		return siblings[:1]
	})
	if !ok || len(got) != 1 {
		t.Fatalf("root container update failed: ok=%v len=%d", ok, len(got))
	}

	// Nested path hands the parent's Subtasks to fn.
	got, ok = UpdateParentOf(f, Path{"a", "a1"}, func(siblings []Task) []Task {
		if len(siblings) != 2 || siblings[0].ID != "a1" {
			t.Errorf("wrong container: %+v", siblings)
		}
		return siblings
	})
	if !ok {
		t.Fatal("nested container update failed")
	}

	// A missing ancestor fails.
	if _, ok := UpdateParentOf(f, Path{"ghost", "a1"}, func(s []Task) []Task { return s }); ok {
		t.Error("UpdateParentOf resolved a missing ancestor")
	}
}
