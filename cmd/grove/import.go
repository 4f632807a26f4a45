// Package main is the entry point for the grove application.
// This file contains the import subcommand handler.
package main

import (
	"fmt"
	"os"

	"grove/internal/storage"
	"grove/internal/task"

	flag "github.com/spf13/pflag"
)

const importHelpText = `grove import - Import tasks from a JSON file

USAGE:
    grove import [OPTIONS] FILE

OPTIONS:
    --replace    Replace all existing tasks with the imported file
    --dry-run    Validate and report without changing anything
    -h, --help   Show this help message

DESCRIPTION:
    Imports a JSON array of tasks, as produced by 'grove export'.
    The file is validated before anything is written: a file whose top
    level is not an array of tasks is rejected with an error.

    By default imported tasks are merged: they are appended after your
    existing tasks, and any subtree with a clashing ID gets fresh IDs.
    With --replace the snapshot is overwritten wholesale.

    Comments and trailing commas in hand-edited files are tolerated.

EXAMPLES:
    # Merge a backup into your tasks
    grove import backup.json

    # Start over from a backup
    grove import --replace backup.json

    # Check a file without touching anything
    grove import --dry-run backup.json
`

// runImport handles the "grove import" subcommand.
func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	replace := fs.Bool("replace", false, "replace all existing tasks")
	dryRun := fs.Bool("dry-run", false, "validate without importing")
	help := fs.BoolP("help", "h", false, "show help message")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, importHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *help {
		fmt.Print(importHelpText)
		os.Exit(0)
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n\n")
		fmt.Fprintf(os.Stderr, "Usage: grove import [--replace] [--dry-run] FILE\n")
		fmt.Fprintf(os.Stderr, "Run 'grove import --help' for more information.\n")
		os.Exit(1)
	}

	imported, err := storage.ReadForestFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("OK: %d root tasks (%d total) in %s\n",
			len(imported), imported.Count(), fs.Arg(0))
		return
	}

	store := openStore()

	if *replace {
		if err := store.Save(imported); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d root tasks (%d total), replacing previous tasks\n",
			len(imported), imported.Count())
		return
	}

	existing, err := store.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	merged, added, err := task.Merge(existing, imported)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := store.Save(merged); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Imported %d root tasks (now %d total)\n", added, merged.Count())
}
