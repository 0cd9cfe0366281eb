// Package logging configures the structured slog.Logger shared by
// cmd/mdnsbridged, internal/listener, internal/publisher and
// internal/adminapi. There is exactly one Configure call per process
// (see cmd/mdnsbridged/main.go); every other package just receives the
// resulting *slog.Logger and adds its own attrs (e.g. the publisher's
// per-datagram correlation ID, the admin API's per-request latency).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the process-wide logger built by Configure.
type Config struct {
	Level            string
	Structured       bool
	StructuredFormat string
	IncludePID       bool
	// ExtraFields are attached to every record; used for deployment
	// labels an operator wants on every line regardless of which
	// component emitted it (e.g. a host or site name distinguishing
	// one bridge instance's logs from another's in aggregated output).
	ExtraFields map[string]string
	// Component identifies which binary built this logger ("mdnsbridged"
	// today; reserved for any future standalone daemon). Omitted from
	// the attrs entirely when empty, so single-component deployments
	// don't carry a redundant field.
	Component string
	// Output overrides where records are written; nil defaults to
	// process stderr. Exists for tests, mirroring the io.Writer
	// injection publisher.JSONLines and cmd/mdnsdump's run() already
	// use for the same reason.
	Output io.Writer
}

// Configure builds a *slog.Logger from cfg, installs it as slog's
// process-wide default (so library code that logs via the package-level
// slog functions picks up the same level/format/attrs), and returns it
// for explicit injection into the daemon's components.
func Configure(cfg Config) *slog.Logger {
	level := parseLevel(cfg.Level)
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	attrs := make([]slog.Attr, 0, len(cfg.ExtraFields)+2)
	if cfg.Component != "" {
		attrs = append(attrs, slog.String("component", cfg.Component))
	}
	for k, v := range cfg.ExtraFields {
		attrs = append(attrs, slog.String(k, v))
	}
	if cfg.IncludePID {
		attrs = append(attrs, slog.Int("pid", os.Getpid()))
	}

	var handler slog.Handler
	if cfg.Structured && strings.ToLower(cfg.StructuredFormat) == "json" {
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	} else {
		// Unstructured or "structured" but non-json: slog's text handler,
		// logfmt-ish key=value pairs either way.
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	}

	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
