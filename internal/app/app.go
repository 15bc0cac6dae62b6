// Package app wires the logging gate, the event aggregator and the optional
// metrics collector into one value owned by the running command.
package app

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/Iron-Ham/groundcrew/internal/config"
	"github.com/Iron-Ham/groundcrew/internal/errors"
	"github.com/Iron-Ham/groundcrew/internal/event"
	"github.com/Iron-Ham/groundcrew/internal/logging"
	"github.com/Iron-Ham/groundcrew/internal/metrics"
)

// App holds the long-lived services of one process. Each App has exactly
// one logging Service and one Aggregator; commands pass them to the
// components they start rather than reaching for globals.
type App struct {
	Config  *config.Config
	Logger  *logging.Logger   // operational diagnostics
	Log     *logging.Service  // category/level gate for domain messages
	Events  *event.Aggregator // domain event hub
	Metrics *metrics.Metrics  // nil unless metrics are enabled

	subs   event.Group
	closer io.Closer // log destination opened by New, if any
}

// Option configures New.
type Option func(*options)

type options struct {
	out io.Writer
}

// WithOutput sends log output to w instead of stderr when no log file is
// configured.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New builds an App from cfg. The logging filter is resolved from the
// config before anything is opened, so an invalid preset or category fails
// fast.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.NewInvalidArgumentError("config must not be nil").WithField("cfg")
	}
	o := options{out: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	level, cats, err := cfg.Logging.Filter()
	if err != nil {
		return nil, errors.Wrap(err, "resolve logging filter")
	}

	a := &App{Config: cfg}

	sink, err := a.openSink(&cfg.Logging, o.out)
	if err != nil {
		return nil, err
	}
	a.Log = logging.NewService(sink, logging.WithLevel(level), logging.WithCategories(cats))

	eventOpts := []event.Option{
		event.WithErrorHook(a.reportHandlerError),
	}
	if cfg.Events.LogHandlerPanics {
		eventOpts = append(eventOpts, event.WithLogger(a.Logger.WithComponent("event")))
	}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
		eventOpts = append(eventOpts, event.WithObserver(a.Metrics))
	}
	a.Events = event.NewAggregator(eventOpts...)

	a.Logger.Debug("app initialized",
		"level", level.String(),
		"categories", cats.String(),
		"format", cfg.Logging.Format,
		"metrics", cfg.Metrics.Enabled,
	)
	return a, nil
}

// openSink opens the configured destination and returns the sink for the
// Service. It also sets a.Logger, which shares the destination.
func (a *App) openSink(cfg *config.LoggingConfig, out io.Writer) (logging.Sink, error) {
	console := cfg.Format == config.FormatConsole

	if cfg.File != "" && !console {
		logger, err := logging.NewLoggerWithRotation(cfg.File, logging.LevelDebug, cfg.Rotation())
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		a.Logger = logger
		return logger, nil
	}

	noColor := !isTerminal(out)
	if cfg.File != "" {
		rw, err := logging.NewRotatingWriter(cfg.File, cfg.Rotation())
		if err != nil {
			return nil, errors.Wrap(err, "open log file")
		}
		a.closer = rw
		out = rw
		noColor = true
	}

	if !console {
		a.Logger = logging.NewLoggerTo(out, logging.LevelDebug)
		return a.Logger, nil
	}

	// Human-readable domain messages; operational records stay JSON and
	// are limited to warnings so they do not drown the console output.
	a.Logger = logging.NewLoggerTo(out, logging.LevelWarning)
	return logging.NewConsoleSink(out, noColor), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// reportHandlerError routes subscriber failures through the Events category
// so they obey the same filter as other domain messages.
func (a *App) reportHandlerError(herr *event.HandlerError) {
	a.Log.Log(logging.LevelError, "event", herr.Error(), logging.CategoryEvents)
}

// ApplyConfig re-applies the logging filter from a reloaded config. On
// error the current filter is kept.
func (a *App) ApplyConfig(cfg *config.Config) error {
	level, cats, err := cfg.Logging.Filter()
	if err != nil {
		return errors.Wrap(err, "resolve logging filter")
	}
	a.Log.Apply(level, cats)
	a.Config = cfg
	a.Log.Log(logging.LevelInfo, "config",
		"logging filter updated: level="+level.String()+" categories="+cats.String(),
		logging.CategoryConfiguration)
	return nil
}

// Track registers fn as a subscriber owned by the App. It is released by
// Close.
func Track[K any](a *App, fn func(K)) (event.Token, error) {
	return event.Track(&a.subs, a.Events, fn)
}

// Close releases the App's subscriptions and closes the log destination.
func (a *App) Close() error {
	a.subs.Close()

	var errs []error
	if err := a.Logger.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "close log file"))
		}
		a.closer = nil
	}
	return errors.Join(errs...)
}
