// Package main is the entry point for the grove application.
// This file contains the export subcommand handler.
package main

import (
	"fmt"
	"os"

	"grove/internal/config"
	"grove/internal/storage"

	flag "github.com/spf13/pflag"
)

const exportHelpText = `grove export - Write all tasks as JSON

USAGE:
    grove export [OPTIONS]

OPTIONS:
    -o, --output FILE  Write to a file instead of stdout
    -h, --help         Show this help message

DESCRIPTION:
    Writes the full task forest as an indented JSON array, structurally
    identical to the persisted snapshot. The output can be re-imported
    with 'grove import'.

EXAMPLES:
    # Print tasks to stdout
    grove export

    # Save a backup
    grove export -o backup.json
`

// runExport handles the "grove export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	output := fs.StringP("output", "o", "", "write to file instead of stdout")
	help := fs.BoolP("help", "h", false, "show help message")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *help {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	store := openStore()

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := store.Export(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		fmt.Printf("Exported tasks to %s\n", *output)
	}
}

// openStore loads config and opens the snapshot store, exiting on
// failure. Shared by the export and import subcommands.
func openStore() *storage.Store {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	store, err := storage.New(cfg.GetDataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}
	return store
}
