// Command mdnsbridged is the long-running daemon: it joins the mDNS
// multicast group, decodes every datagram, and republishes a structured
// summary of each one to stdout, alongside a small admin HTTP surface.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdnsbridge/mdnsbridge/internal/adminapi"
	"github.com/mdnsbridge/mdnsbridge/internal/config"
	"github.com/mdnsbridge/mdnsbridge/internal/listener"
	"github.com/mdnsbridge/mdnsbridge/internal/logging"
	"github.com/mdnsbridge/mdnsbridge/internal/publisher"
	"github.com/mdnsbridge/mdnsbridge/internal/summary"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds parsed command-line flag values.
type cliFlags struct {
	configPath  string
	workers     int
	jsonLogs    bool
	debug       bool
	adminAPIOff bool
	adminPort   int
}

func parseFlags(args []string) cliFlags {
	fs := flag.NewFlagSet("mdnsbridged", flag.ContinueOnError)
	var f cliFlags
	fs.StringVar(&f.configPath, "config", "", "Path to YAML config file")
	fs.IntVar(&f.workers, "workers", -1, "Override listener worker pool size (-1 means config/auto)")
	fs.BoolVar(&f.jsonLogs, "json-logs", false, "Enable JSON structured logging")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&f.adminAPIOff, "no-admin-api", false, "Disable the admin HTTP surface")
	fs.IntVar(&f.adminPort, "admin-port", 0, "Override admin API bind port")
	_ = fs.Parse(args)
	return f
}

func applyCLIOverrides(cfg *config.Config, f cliFlags) {
	if f.workers >= 0 {
		cfg.Listener.WorkersPerSocket.Mode = config.WorkersFixed
		cfg.Listener.WorkersPerSocket.Value = f.workers
	}
	if f.jsonLogs {
		cfg.Logging.Structured = true
		cfg.Logging.StructuredFormat = "json"
	}
	if f.debug {
		cfg.Logging.Level = "DEBUG"
	}
	if f.adminAPIOff {
		cfg.AdminAPI.Enabled = false
	}
	if f.adminPort != 0 {
		cfg.AdminAPI.Port = f.adminPort
	}
}

func run() error {
	flags := parseFlags(os.Args[1:])

	cfg, err := config.Load(config.ResolveConfigPath(flags.configPath))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCLIOverrides(cfg, flags)

	logger := logging.Configure(logging.Config{
		Level:            cfg.Logging.Level,
		Structured:       cfg.Logging.Structured,
		StructuredFormat: cfg.Logging.StructuredFormat,
		IncludePID:       cfg.Logging.IncludePID,
		ExtraFields:      cfg.Logging.ExtraFields,
		Component:        "mdnsbridged",
	})
	logger.Info("mdnsbridged starting",
		"workers_per_socket", cfg.Listener.WorkersPerSocket.String(),
		"rate_limit_qps", cfg.RateLimit.QPS,
		"publisher_sink", cfg.Publisher.Sink,
		"admin_api_enabled", cfg.AdminAPI.Enabled,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pub, closeSink, err := buildPublisher(cfg, logger)
	if err != nil {
		return err
	}
	if closeSink != nil {
		defer closeSink()
	}

	recent := adminapi.NewRecentBuffer(cfg.AdminAPI.RecentBufSize)
	fanoutPub := fanout{primary: pub, recent: recent}

	limiter := listener.NewRateLimiter(listener.RateLimiterConfig{
		QPS:             cfg.RateLimit.QPS,
		Burst:           cfg.RateLimit.Burst,
		CleanupInterval: time.Duration(cfg.RateLimit.CleanupSeconds * float64(time.Second)),
		MaxEntries:      cfg.RateLimit.MaxEntries,
	})

	l := listener.New(fanoutPub, limiter, logger)
	if cfg.Listener.WorkersPerSocket.Mode == config.WorkersFixed && cfg.Listener.WorkersPerSocket.Value > 0 {
		l.WorkersPerSocket = cfg.Listener.WorkersPerSocket.Value
	}

	var adminSrv *adminapi.Server
	if cfg.AdminAPI.Enabled {
		adminSrv = adminapi.New(cfg.AdminAPI.Host, cfg.AdminAPI.Port, logger, l.Stats, recent)
		logger.Info("admin API starting", "addr", adminSrv.Addr())
		go func() {
			if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin API error", "err", err)
				cancel()
			}
		}()
	}

	err = l.Run(ctx)

	if adminSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = adminSrv.Shutdown(shutdownCtx)
		shutdownCancel()
		logger.Info("admin API stopped")
	}

	if err != nil {
		return fmt.Errorf("listener exited with error: %w", err)
	}
	return nil
}

// buildPublisher constructs the configured sink. For "jsonlines" with a
// path, it opens the file and returns a close func; for "stdout" (or
// "jsonlines" with no path), it writes JSON lines to the process's own
// stdout and the close func is nil.
func buildPublisher(cfg *config.Config, logger *slog.Logger) (publisher.Publisher, func(), error) {
	switch cfg.Publisher.Sink {
	case "jsonlines":
		if cfg.Publisher.Path == "" {
			return publisher.NewJSONLines(os.Stdout), nil, nil
		}
		f, err := os.OpenFile(cfg.Publisher.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open publisher sink file: %w", err)
		}
		return publisher.NewJSONLines(f), func() { _ = f.Close() }, nil
	default:
		return publisher.NewStdout(slog.New(slog.NewJSONHandler(os.Stdout, nil))), nil, nil
	}
}

// fanout publishes to the configured sink and records into the admin
// API's recent-activity buffer, without either depending on the other.
type fanout struct {
	primary publisher.Publisher
	recent  *adminapi.RecentBuffer
}

func (f fanout) Publish(ctx context.Context, s summary.Summary) error {
	f.recent.Add(s)
	return f.primary.Publish(ctx, s)
}
