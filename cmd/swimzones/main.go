// Command swimzones reads swim session descriptions and prints the detected
// training zones as JSON lines.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	app "github.com/okian/swimzones/internal/app"
	"github.com/okian/swimzones/internal/config"
	"github.com/okian/swimzones/internal/domain/detector"
	"github.com/okian/swimzones/pkg/logger"
	"github.com/okian/swimzones/pkg/metrics"
)

// Process constants.
const (
	shutdownTimeout   = 30 * time.Second
	maxLineBytes      = 1 << 20
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

// Input formats and run modes.
const (
	formatText  = "text"
	formatJSONL = "jsonl"
	modeBatch   = "batch"
	modeLive    = "live"
)

var errUsage = errors.New("usage")

type options struct {
	input  string
	format string
	mode   string
	locale string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals, returning the exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "swimzones: %v\n", err)
		return 2
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}
	if opts.locale != "" {
		cfg.Locale = opts.locale
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "swimzones: %v\n", err)
			return 2
		}
	}

	closeLog, err := initLogging(cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return 1
	}
	defer closeLog()
	log := logger.Named("swimzones")

	in, closeIn, err := openInput(opts.input, stdin)
	if err != nil {
		log.Error(ctx, "failed to open input", logger.String("input", opts.input), logger.Error(err))
		return 1
	}
	defer closeIn()

	svc, err := newService(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build service", logger.Error(err))
		return 1
	}

	switch opts.mode {
	case modeLive:
		err = runLive(ctx, svc, in, opts.format, stdout)
	default:
		err = runBatch(ctx, svc, in, opts.format, stdout)
	}

	if cfg.MetricsFile != "" {
		if werr := metrics.WriteTextfile(cfg.MetricsFile); werr != nil {
			log.Warn(ctx, "failed to write metrics file", logger.String("path", cfg.MetricsFile), logger.Error(werr))
		}
	}

	if err != nil {
		log.Error(ctx, "run failed", logger.String("mode", opts.mode), logger.Error(err))
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("swimzones", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.input, "input", "", "Input file (default: stdin)")
	fs.StringVar(&opts.format, "format", formatText, "Input format: text (one session per line) or jsonl")
	fs.StringVar(&opts.mode, "mode", modeBatch, "Run mode: batch or live")
	fs.StringVar(&opts.locale, "locale", "", "Keyword locale, overrides SWIMZONES_LOCALE (en, es)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.format != formatText && opts.format != formatJSONL {
		return opts, fmt.Errorf("%w: unknown format %q", errUsage, opts.format)
	}
	if opts.mode != modeBatch && opts.mode != modeLive {
		return opts, fmt.Errorf("%w: unknown mode %q", errUsage, opts.mode)
	}
	return opts, nil
}

// initLogging sends logs to stderr, or to a rotating file when log_file is set.
func initLogging(cfg *config.Config, stderr io.Writer) (func(), error) {
	var w io.Writer = stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
		}
		w = lj
		closeFn = func() { _ = lj.Close() }
	}

	if err := logger.InitWithWriter(w, cfg.LogFormat); err != nil {
		closeFn()
		return nil, err
	}
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(context.Background(), "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return closeFn, nil
}

func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	lx, err := cfg.Lexicon()
	if err != nil {
		return nil, err
	}
	det := detector.New(
		detector.WithLexicon(lx),
		detector.WithTuning(cfg.Tuning()),
	)
	return app.New(
		app.WithLogger(log),
		app.WithDetector(det),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithCacheSize(cfg.CacheSize),
		app.WithDebounce(cfg.Debounce()),
	), nil
}
