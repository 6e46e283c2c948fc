package config

import (
	"flag"
)

// parseFlags defines and parses the global CLI flags.
// Only flags that were explicitly set override the config.
// If sources is non-nil, it tracks the source of each value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet(AppName, flag.ContinueOnError)
	}

	var storagePath, dateFormat, logLevel, logFormat string
	var logTimestamps bool

	fs.StringVar(&storagePath, "storage-path", cfg.StoragePath, "Task file, or directory holding "+DefaultStorageFile)
	fs.StringVar(&dateFormat, "date-format", cfg.DateFormat, "Go time layout for displayed timestamps")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"storage-path":   "storage_path",
		"date-format":    "date_format",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "storage-path":
			cfg.StoragePath = storagePath
		case "date-format":
			cfg.DateFormat = dateFormat
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		default:
			return
		}
		if sources != nil {
			sources[flagToSource[f.Name]] = SourceFlag
		}
	})

	return nil
}
