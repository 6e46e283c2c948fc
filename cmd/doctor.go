package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/store"
)

// doctorCommand checks config, the storage location, and task file validity.
func (r *runner) doctorCommand(args []string) error {
	var verbose bool
	rest, err := r.parseArgs("doctor", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&verbose, "v", false, "Verbose output")
	})
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	w := r.stdout
	fmt.Fprintln(w, "Task CLI Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Config files and values
	fmt.Fprintln(w, "Config:")
	if len(r.files) == 0 {
		fmt.Fprintln(w, "  No config files found (using defaults)")
	}
	for _, f := range r.files {
		fmt.Fprintf(w, "  File: %s\n", f)
	}
	if verbose {
		fields := make([]string, 0, len(r.sources))
		for field := range r.sources {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(w, "  %s: %s\n", field, r.sources[field])
		}
	}
	if logging.ValidLevel(r.cfg.LogLevel) {
		fmt.Fprintf(w, "  ✅ Log level: %s\n", r.cfg.LogLevel)
	} else {
		fmt.Fprintf(w, "  ❌ Log level: %s (expected debug|info|warn|error)\n", r.cfg.LogLevel)
		allOK = false
	}
	if logging.ValidFormat(r.cfg.LogFormat) {
		fmt.Fprintf(w, "  ✅ Log format: %s\n", r.cfg.LogFormat)
	} else {
		fmt.Fprintf(w, "  ❌ Log format: %s (expected text|json|logfmt)\n", r.cfg.LogFormat)
		allOK = false
	}
	fmt.Fprintf(w, "  ✅ Date format: %s\n", r.cfg.DateFormat)
	fmt.Fprintln(w)

	// Storage directory
	dir := filepath.Dir(r.cfg.StoragePath)
	fmt.Fprintf(w, "Storage directory: %s\n", dir)
	if info, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first write)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Task file
	fmt.Fprintf(w, "Task file: %s\n", r.cfg.StoragePath)
	if !r.checkTaskFile(verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile reports every problem in the task file. A missing file is fine.
func (r *runner) checkTaskFile(verbose bool) bool {
	w := r.stdout
	info, err := os.Stat(r.cfg.StoragePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first add)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(r.cfg.StoragePath)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if errs := store.Check(data); len(errs) > 0 {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range errs {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}

	tasks, err := store.Decode(data)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")
	if verbose {
		fmt.Fprintf(w, "  Tasks: %d\n", len(tasks))
		for _, t := range tasks {
			fmt.Fprintf(w, "    - [%s] %d: %s\n", t.Status, t.ID, t.Description)
		}
	}
	return true
}

// initCommand writes an example project config and an empty task file.
// Existing files are left alone.
func (r *runner) initCommand(args []string) error {
	var force bool
	rest, err := r.parseArgs("init", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&force, "force", false, "Overwrite an existing project config")
	})
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %v", rest)
	}

	cfgPath := filepath.Join(r.cfg.WorkDir, config.ProjectConfigNames[0])
	if existing := config.FindProjectConfigFile(r.cfg.WorkDir); existing != "" && !force {
		fmt.Fprintf(r.stdout, "Config already exists: %s\n", existing)
	} else {
		if err := os.WriteFile(cfgPath, []byte(config.ExampleConfig()), 0644); err != nil {
			return fmt.Errorf("%w: write %s: %w", store.ErrIO, cfgPath, err)
		}
		fmt.Fprintf(r.stdout, "Wrote config: %s\n", cfgPath)
	}

	if _, err := os.Stat(r.cfg.StoragePath); err == nil {
		fmt.Fprintf(r.stdout, "Task file already exists: %s\n", r.cfg.StoragePath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: stat %s: %w", store.ErrIO, r.cfg.StoragePath, err)
	}
	if err := store.New(r.cfg.StoragePath, store.WithLogger(r.logger)).Save(); err != nil {
		return err
	}
	fmt.Fprintf(r.stdout, "Created task file: %s\n", r.cfg.StoragePath)
	return nil
}
