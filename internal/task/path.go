// Package task defines the hierarchical task model.
// This file implements path-based addressing: nodes are located by the
// sequence of IDs from a root to the target, and updates rebuild only
// the spine along that path while sharing every unrelated branch.
package task

// UpdateAtPath returns a new forest where the task reachable by path is
// replaced with fn(task). Ancestors along the path are rebuilt to thread
// the change up; siblings and unrelated branches are shared unchanged.
// If any path component fails to resolve, the input forest is returned
// with ok=false.
func UpdateAtPath(f Forest, path Path, fn func(Task) Task) (Forest, bool) {
	if len(path) == 0 {
		return f, false
	}
	out, ok := updateIn([]Task(f), path, fn)
	return Forest(out), ok
}

func updateIn(tasks []Task, path Path, fn func(Task) Task) ([]Task, bool) {
	for i := range tasks {
		if tasks[i].ID != path[0] {
			continue
		}
		if len(path) == 1 {
			out := make([]Task, len(tasks))
			copy(out, tasks)
			out[i] = fn(tasks[i])
			return out, true
		}
		sub, ok := updateIn(tasks[i].Subtasks, path[1:], fn)
		if !ok {
			return tasks, false
		}
		out := make([]Task, len(tasks))
		copy(out, tasks)
		out[i].Subtasks = sub
		return out, true
	}
	return tasks, false
}

// UpdateParentOf applies fn to the sibling container holding the task
// addressed by path: for a path of length 1 that is the forest root,
// otherwise the Subtasks of the path's parent. This is the hook for
// delete and insert operations, which act on the container rather than
// the node.
func UpdateParentOf(f Forest, path Path, fn func([]Task) []Task) (Forest, bool) {
	if len(path) == 0 {
		return f, false
	}
	if len(path) == 1 {
		return Forest(fn([]Task(f))), true
	}
	return UpdateAtPath(f, path[:len(path)-1], func(t Task) Task {
		t.Subtasks = fn(t.Subtasks)
		return t
	})
}

// FindAtPath resolves path to its task. The second result is false when
// any component fails to resolve.
func FindAtPath(f Forest, path Path) (Task, bool) {
	if len(path) == 0 {
		return Task{}, false
	}
	tasks := []Task(f)
	var found Task
	for _, id := range path {
		ok := false
		for _, t := range tasks {
			if t.ID == id {
				found = t
				tasks = t.Subtasks
				ok = true
				break
			}
		}
		if !ok {
			return Task{}, false
		}
	}
	return found, true
}
