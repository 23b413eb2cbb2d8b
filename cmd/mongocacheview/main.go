package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/filipemansano-mongodb/MongoCacheView/internal/client"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/config"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/engine"
	"github.com/filipemansano-mongodb/MongoCacheView/internal/tui"
)

const uriEnv = "MONGO_URI"

// parseMongoURI validates a MongoDB connection string and returns it without
// credentials, options or database path, suitable for display.
func parseMongoURI(uri string) (display string, err error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return "", fmt.Errorf("invalid URI %q: missing scheme", uri)
	}
	srv := false
	switch scheme {
	case "mongodb":
	case "mongodb+srv":
		srv = true
	default:
		return "", fmt.Errorf("unsupported scheme %q (must be mongodb or mongodb+srv)", scheme)
	}

	authority := rest
	if i := strings.IndexAny(authority, "/?"); i >= 0 {
		authority = authority[:i]
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	if authority == "" {
		return "", fmt.Errorf("invalid URI %q: host is required", redact(uri))
	}

	hosts := strings.Split(authority, ",")
	if srv && len(hosts) > 1 {
		return "", fmt.Errorf("invalid URI %q: mongodb+srv takes a single host", redact(uri))
	}
	for _, h := range hosts {
		if err := validateHost(h, srv); err != nil {
			return "", fmt.Errorf("invalid URI %q: %w", redact(uri), err)
		}
	}
	return scheme + "://" + authority, nil
}

func validateHost(h string, srv bool) error {
	host, port := h, ""
	switch {
	case strings.HasPrefix(h, "["):
		end := strings.Index(h, "]")
		if end < 0 {
			return fmt.Errorf("unterminated IPv6 host %q", h)
		}
		host, port = h[1:end], strings.TrimPrefix(h[end+1:], ":")
	case strings.Contains(h, ":"):
		host, port, _ = strings.Cut(h, ":")
	}
	if host == "" {
		return fmt.Errorf("host is required")
	}
	if port == "" {
		return nil
	}
	if srv {
		return fmt.Errorf("mongodb+srv host %q must not have a port", h)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("invalid port %q", port)
	}
	return nil
}

// redact hides the password of a URI that failed validation.
func redact(uri string) string {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return uri
	}
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return uri
	}
	user, _, _ := strings.Cut(rest[:at], ":")
	return scheme + "://" + user + ":***@" + rest[at+1:]
}

// parseArgs builds the run configuration from the command line. Precedence:
// flags, then the config file, then defaults. The URI comes from the
// positional argument, MONGO_URI, or the config file, in that order.
func parseArgs(args []string, getenv func(string) string, stderr io.Writer) (config.Config, error) {
	fs := flag.NewFlagSet("mongocacheview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath   = fs.String("config", "", "TOML configuration file")
		interval     = fs.Duration("interval", config.DefaultReportInterval, "time between samples (e.g. 20s, 1m)")
		rows         = fs.Int("rows", config.DefaultRowsToShow, "number of rows to show")
		plain        = fs.Bool("plain", false, "print plain tables instead of the interactive view")
		logFile      = fs.String("log-file", "", "write logs to this file")
		logLevel     = fs.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
		fetchTimeout = fs.Duration("fetch-timeout", config.DefaultFetchTimeout, "timeout of a single collStats call")
		concurrency  = fs.Int("concurrency", config.DefaultFetchConcurrency, "maximum collStats calls in flight")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: mongocacheview [flags] [<mongodb-uri>]\n\n")
		fmt.Fprintf(stderr, "examples:\n")
		fmt.Fprintf(stderr, "  mongocacheview mongodb://localhost:27017\n")
		fmt.Fprintf(stderr, "  mongocacheview --plain --interval 20s 'mongodb+srv://user:pw@cluster0.example.net'\n")
		fmt.Fprintf(stderr, "  MONGO_URI=mongodb://localhost mongocacheview --config cache.toml\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config.Config{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			return config.Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.ReportInterval.Duration = *interval
		case "rows":
			cfg.RowsToShow = *rows
		case "plain":
			cfg.Plain = *plain
		case "log-file":
			cfg.LogFile = *logFile
		case "log-level":
			cfg.LogLevel = *logLevel
		case "fetch-timeout":
			cfg.FetchTimeout.Duration = *fetchTimeout
		case "concurrency":
			cfg.FetchConcurrency = *concurrency
		}
	})

	// flag parsing stops at the first non-flag argument, so trailing flags
	// would otherwise be silently ignored.
	rest := fs.Args()
	if len(rest) > 1 {
		extra := rest[1]
		if len(extra) > 1 && extra[0] == '-' {
			return config.Config{}, fmt.Errorf("flag %q must be placed before the URI", extra)
		}
		return config.Config{}, fmt.Errorf("unexpected argument %q", extra)
	}
	switch {
	case len(rest) == 1:
		cfg.URI = rest[0]
	case getenv(uriEnv) != "":
		cfg.URI = getenv(uriEnv)
	}
	if cfg.URI == "" {
		return config.Config{}, fmt.Errorf("MongoDB URI is required (argument, %s or config uri)", uriEnv)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger returns the process logger. The interactive view owns the
// terminal, so without a log file its logs are discarded.
func newLogger(cfg config.Config, stderr io.Writer) (*log.Logger, func() error, error) {
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	logger := log.New()
	logger.SetLevel(lvl)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	closer := func() error { return nil }
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f.Close
	case cfg.Plain:
		logger.SetOutput(stderr)
	default:
		logger.SetOutput(io.Discard)
	}
	return logger, closer, nil
}

func run(ctx context.Context, cfg config.Config, displayURI string, logger *log.Logger) error {
	c, err := client.NewMongoClient(client.ClientConfig{
		URI:            cfg.URI,
		DisplayURI:     displayURI,
		ConnectTimeout: cfg.ConnectTimeout.Duration,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrDiscovery, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("disconnect failed")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout.Duration)
	err = c.Ping(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("%w: %w", engine.ErrDiscovery, err)
	}

	policy := engine.CatalogPolicy{
		ExcludedDatabases: cfg.ExcludedDatabases,
		ExcludedPrefix:    cfg.ExcludedDatabasePrefix,
		IncludedDatabases: cfg.IncludedDatabases,
	}
	cat, err := engine.BuildCatalog(ctx, c, policy, logger)
	if err != nil {
		return err
	}

	sampler := engine.NewSampler(c, cat, engine.SamplerConfig{
		Scale:        cfg.ScaleDivisor,
		FetchTimeout: cfg.FetchTimeout.Duration,
		Concurrency:  cfg.FetchConcurrency,
	}, logger)
	schedCfg := engine.SchedulerConfig{
		Interval:   cfg.ReportInterval.Duration,
		RowsToShow: cfg.RowsToShow,
	}

	if cfg.Plain {
		return engine.NewScheduler(sampler, tui.NewPlainSink(os.Stdout), schedCfg, logger).Run(ctx)
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	app := tui.NewApp(displayURI, cfg.ReportInterval.Duration)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	sched := engine.NewScheduler(sampler, tui.NewProgramSink(p), schedCfg, logger)
	app.OnRefresh(sched.Refresh)

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	_, err = p.Run()
	stop()
	<-done
	if errors.Is(err, tea.ErrProgramKilled) {
		return ctx.Err()
	}
	return err
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	displayURI, err := parseMongoURI(cfg.URI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	defer closeLog()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Fprintf(os.Stderr, "discovering collections on %s...\n", displayURI)
	if err := run(ctx, cfg, displayURI, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("monitor stopped")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		closeLog()
		os.Exit(1)
	}
}
