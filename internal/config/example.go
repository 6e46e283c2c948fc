package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by TASK_CLI_* environment variables or CLI flags

# Task file, or a directory that holds tasks.json
# (relative paths resolve against the working directory, ~ is expanded)
storage_path = "tasks.json"

# Go time layout used by "list" and "tui"
date_format = "2006-01-02 15:04"

# Diagnostics written to stderr
log_level = "warn"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
`
}
