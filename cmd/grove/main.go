// Package main is the entry point for the grove application.
// It loads configuration, initializes storage, restores the persisted
// forest and starts the TUI.
package main

import (
	"fmt"
	"os"
	"time"

	"grove/internal/config"
	"grove/internal/notify"
	"grove/internal/storage"
	"grove/internal/task"
	"grove/internal/ui"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
)

// Version information - set by the release build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `grove - A hierarchical task manager for your terminal

USAGE:
    grove [OPTIONS]
    grove <command> [ARGS]

COMMANDS:
    export           Write all tasks as JSON to stdout
    export -o FILE   Write the export to a file
    import FILE      Import tasks from a JSON file (merged into yours)
    import --replace Replace all tasks with the imported file

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    grove is a keyboard-driven todo tree: tasks nest to any depth,
    completing a task completes its whole subtree, and every change can
    be undone.

KEYBINDINGS:
    j/k, ↓/↑     Navigate
    h/l          Collapse / expand subtasks
    a / A        Add task / add subtask
    d, Space     Toggle done (cascades to subtasks)
    e            Edit text
    p            Cycle priority
    x            Delete task and subtree
    K/J          Move root task up/down
    C            Clear completed tasks
    /            Filter by text
    t / f / s    Tag filter / status filter / sort mode
    b            Kanban view (overdue · upcoming · completed)
    Ctrl+Z       Undo
    Ctrl+Y       Redo
    q            Quit

DATA STORAGE:
    Tasks live in ~/.grove/tasks.json as a plain JSON array. Only the
    current state is stored; undo history is in-memory per session.

CONFIGURATION:
    Optional config file: ~/.config/grove/config.yaml
    (data_dir, theme colors, key bindings, notifications)

EXAMPLES:
    # Start the app
    grove

    # Back up your tasks
    grove export -o backup.json

    # Bring them back elsewhere
    grove import backup.json
`

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "export":
			runExport(os.Args[2:])
			return
		case "import":
			runImport(os.Args[2:])
			return
		}
	}

	showVersion := flag.BoolP("version", "v", false, "show version information")
	showHelp := flag.BoolP("help", "h", false, "show help message")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("grove version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "grove",
	})

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

	// A damaged snapshot degrades to whatever could be recovered;
	// the app still starts.
	forest, err := store.Load()
	if err != nil {
		logger.Warn("snapshot load", "err", err)
	}

	hist := ui.NewHistory(forest, task.NewReducer())
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	var reminder *notify.Reminder
	if cfg.Notifications.Enabled {
		window := time.Duration(cfg.Notifications.LookaheadHours) * time.Hour
		reminder = notify.NewReminder(notify.New(), logger, window, cfg.Notifications.Sound)
	}

	app := ui.NewApp(store, hist, styles, &cfg.Keys, logger, reminder)
	if err := ui.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
