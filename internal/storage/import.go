// Package storage persists the task forest.
// This file implements import of external task files. Imports are
// parsed leniently (comments and trailing commas are tolerated) but
// validated strictly against a schema before anything reaches the
// forest: a file whose top level is not an array of tasks is a reported
// error, never a silent no-op.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"grove/internal/task"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tailscale/hujson"
)

// forestSchema describes the import file format: a JSON array of task
// objects, subtasks nesting recursively.
const forestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": { "$ref": "#/definitions/task" },
  "definitions": {
    "task": {
      "type": "object",
      "required": ["id", "text"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "text": { "type": "string", "minLength": 1 },
        "completed": { "type": "boolean" },
        "created_at": { "type": "string" },
        "due_date": { "type": "string" },
        "start_date": { "type": "string" },
        "priority": { "enum": ["", "low", "medium", "high"] },
        "recurrence": { "enum": ["", "daily", "weekly", "monthly"] },
        "tags": { "type": "array", "items": { "type": "string" } },
        "description": { "type": "string" },
        "subtasks": { "type": "array", "items": { "$ref": "#/definitions/task" } }
      }
    }
  }
}`

var compiledForestSchema = jsonschema.MustCompileString("grove://forest.schema.json", forestSchema)

// ReadForest parses and validates an import stream into a forest.
func ReadForest(r io.Reader) (task.Forest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	// Hand-edited files may carry comments or trailing commas.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}

	var doc any
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	if err := compiledForestSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid import: %w", err)
	}

	var f task.Forest
	if err := json.Unmarshal(standardized, &f); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}
	return f.Normalize(), nil
}

// ReadForestFile parses and validates an import file.
func ReadForestFile(path string) (task.Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import: %w", err)
	}
	defer file.Close()
	return ReadForest(file)
}
