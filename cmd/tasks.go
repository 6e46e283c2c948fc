package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/task-cli/internal/store"
	"github.com/nibzard/task-cli/internal/ui"
)

const defaultRefresh = 2 * time.Second

// addCommand appends a new todo task.
func (r *runner) addCommand(args []string) error {
	rest, err := r.parseArgs("add", args, nil)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return usageError("add <description>")
	}

	var added store.Task
	err = r.mutate(func(s *store.Store) error {
		added, err = s.Add(strings.Join(rest, " "))
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task added successfully (ID: %d)\n", added.ID)
	return nil
}

// updateCommand replaces a task's description.
func (r *runner) updateCommand(args []string) error {
	rest, err := r.parseArgs("update", args, nil)
	if err != nil {
		return err
	}
	if len(rest) < 2 {
		return usageError("update <id> <description>")
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}

	err = r.mutate(func(s *store.Store) error {
		_, err := s.Update(id, strings.Join(rest[1:], " "))
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task %d updated successfully\n", id)
	return nil
}

// deleteCommand removes a task.
func (r *runner) deleteCommand(args []string) error {
	rest, err := r.parseArgs("delete", args, nil)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return usageError("delete <id>")
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}

	if err := r.mutate(func(s *store.Store) error { return s.Delete(id) }); err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task %d deleted successfully\n", id)
	return nil
}

// markCommand sets a task's status.
func (r *runner) markCommand(name string, status store.Status, args []string) error {
	rest, err := r.parseArgs(name, args, nil)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return usageError(name + " <id>")
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}

	err = r.mutate(func(s *store.Store) error {
		_, err := s.SetStatus(id, status)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Task %d marked as %s\n", id, status)
	return nil
}

// listCommand prints tasks, optionally filtered by status. It never writes.
func (r *runner) listCommand(args []string) error {
	var statusFlag string
	var asJSON bool
	rest, err := r.parseArgs("list", args, func(fs *flag.FlagSet) {
		fs.StringVar(&statusFlag, "status", "", "Filter by status (todo|in-progress|done)")
		fs.BoolVar(&asJSON, "json", false, "Print tasks in the storage JSON format")
	})
	if err != nil {
		return err
	}

	switch {
	case len(rest) > 1:
		return usageError("list [status]")
	case len(rest) == 1 && statusFlag != "":
		return fmt.Errorf("%w: status given twice", store.ErrValidation)
	case len(rest) == 1:
		statusFlag = rest[0]
	}

	var filter store.Status
	if statusFlag != "" {
		filter, err = store.ParseStatus(statusFlag)
		if err != nil {
			return err
		}
	}

	s, err := r.openStore()
	if err != nil {
		return err
	}
	tasks := s.List(filter)

	if asJSON {
		data, err := store.Encode(tasks)
		if err != nil {
			return err
		}
		_, err = r.stdout.Write(data)
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(r.stdout, "No tasks found.")
		return nil
	}
	fmt.Fprintln(r.stdout, ui.RenderTable(tasks, r.cfg.DateFormat))
	if filter == "" {
		fmt.Fprintln(r.stdout, ui.Summary(s.Counts()))
	}
	return nil
}

// tuiCommand starts the interactive viewer.
func (r *runner) tuiCommand(ctx context.Context, args []string) error {
	var statusFlag string
	interval := defaultRefresh
	rest, err := r.parseArgs("tui", args, func(fs *flag.FlagSet) {
		fs.StringVar(&statusFlag, "status", "", "Initial status filter (todo|in-progress|done)")
		fs.DurationVar(&interval, "refresh", defaultRefresh, "How often the task file is re-read")
	})
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return usageError("tui [-status <status>] [-refresh <duration>]")
	}

	opts := []ui.TUIOption{ui.WithRefreshInterval(interval)}
	if statusFlag != "" {
		filter, err := store.ParseStatus(statusFlag)
		if err != nil {
			return err
		}
		opts = append(opts, ui.WithFilter(filter))
	}

	r.logger.Debug("starting tui", "path", r.cfg.StoragePath, "refresh", interval)
	return ui.RunTUI(ctx, r.cfg.StoragePath, r.cfg.DateFormat, opts...)
}
