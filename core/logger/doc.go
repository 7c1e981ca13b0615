// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a run identifier that ties together every line
// written by one invocation.
//
// # Run Correlation
//
// NewRunID generates a UUID per run and WithRunID attaches it as the run_id field,
// so the log lines of a merge over dozens of libraries can be told apart from the
// next run's.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRunID(log, logger.NewRunID())
//	log.Info("Loaded sources", zap.Int("files", 3))
package logger
