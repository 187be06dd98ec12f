// Package logging configures the charmbracelet logger used by the patron
// CLI and installs it as the log/slog default, so library code logging
// through either API ends up in the same stream.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Setup builds a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json", "logfmt" (default: "text")
//
// Use "json" or "logfmt" when the output is collected by another program.
func Setup(w io.Writer, level, format string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Level:           parseLevel(level),
		Formatter:       parseFormat(format),
		ReportTimestamp: true,
		Prefix:          "patron",
	})
	slog.SetDefault(slog.New(logger))
	return logger
}

// parseLevel converts a string log level, falling back to info.
func parseLevel(level string) log.Level {
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return log.InfoLevel
	}
	return l
}

func parseFormat(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
