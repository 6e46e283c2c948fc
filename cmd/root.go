// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/exitcode"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// runner carries per-invocation state to the subcommands.
type runner struct {
	cfg     *config.Config
	sources map[string]config.ConfigSource
	files   []string
	logger  *log.Logger
	stdout  io.Writer
	stderr  io.Writer
}

// Execute runs the CLI with args and returns the process exit code.
// Errors are written to stderr as "Error: <message>".
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	err := run(ctx, args, stdout, stderr)
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, flag.ErrHelp):
		return exitcode.Success
	case ctx.Err() != nil:
		fmt.Fprintf(stderr, "\nInterrupted\n")
		return exitcode.Interrupted
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitcode.For(err)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	loaded, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	r := &runner{
		cfg:     loaded.Config,
		sources: loaded.Sources,
		files:   loaded.Files,
		logger:  logging.NewFromConfig(stderr, loaded.Config.LogLevel, loaded.Config.LogFormat, loaded.Config.LogTimestamps),
		stdout:  stdout,
		stderr:  stderr,
	}

	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return r.versionCommand()
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, stderr)
		return errors.New("no command given")
	}
	subcommand, rest := remaining[0], remaining[1:]
	r.logger.Debug("dispatching command", "command", subcommand, "storage", r.cfg.StoragePath)

	// Execute the subcommand
	switch subcommand {
	case "add":
		return r.addCommand(rest)
	case "update":
		return r.updateCommand(rest)
	case "delete", "rm":
		return r.deleteCommand(rest)
	case "mark-todo":
		return r.markCommand(subcommand, store.StatusTodo, rest)
	case "mark-in-progress":
		return r.markCommand(subcommand, store.StatusInProgress, rest)
	case "mark-done":
		return r.markCommand(subcommand, store.StatusDone, rest)
	case "list", "ls":
		return r.listCommand(rest)
	case "tui":
		return r.tuiCommand(ctx, rest)
	case "doctor":
		return r.doctorCommand(rest)
	case "init":
		return r.initCommand(rest)
	case "version":
		return r.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (run '%s help' for usage)", subcommand, config.AppName)
	}
}

// parseArgs parses subcommand flags and returns the positional arguments.
func (r *runner) parseArgs(name string, args []string, define func(fs *flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(config.AppName+" "+name, flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	if define != nil {
		define(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// openStore loads the task file named by the config.
func (r *runner) openStore() (*store.Store, error) {
	return store.Open(r.cfg.StoragePath, store.WithLogger(r.logger))
}

// mutate loads the task file, applies fn, and saves only if fn changed it.
// Nothing is written when fn fails.
func (r *runner) mutate(fn func(s *store.Store) error) error {
	s, err := r.openStore()
	if err != nil {
		return err
	}
	if err := fn(s); err != nil {
		return err
	}
	if !s.Dirty() {
		return nil
	}
	return s.Save()
}

func (r *runner) versionCommand() error {
	fmt.Fprintf(r.stdout, "%s %s\n", config.AppName, Version)
	return nil
}

func usageError(syntax string) error {
	return fmt.Errorf("usage: %s %s", config.AppName, syntax)
}

// parseID parses a task id argument. Ids are positive integers.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid task id %q", store.ErrValidation, arg)
	}
	return id, nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "task-cli - track tasks in a local JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  task-cli [global options] <command> [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>            Add a new task")
	fmt.Fprintln(w, "  update <id> <description>    Change a task's description")
	fmt.Fprintln(w, "  delete <id>                  Delete a task")
	fmt.Fprintln(w, "  mark-todo <id>               Mark a task as todo")
	fmt.Fprintln(w, "  mark-in-progress <id>        Mark a task as in progress")
	fmt.Fprintln(w, "  mark-done <id>               Mark a task as done")
	fmt.Fprintln(w, "  list [status]                List tasks, optionally by status (todo|in-progress|done)")
	fmt.Fprintln(w, "  tui                          Browse tasks in a terminal UI")
	fmt.Fprintln(w, "  doctor                       Check config and task file validity")
	fmt.Fprintln(w, "  init                         Write an example config and an empty task file")
	fmt.Fprintln(w, "  version                      Show version information")
	fmt.Fprintln(w, "  help                         Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(io.Discard)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -status string")
	fmt.Fprintln(w, "        Filter by status (todo|in-progress|done)")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print tasks in the storage JSON format")
}
