package event

import "github.com/Iron-Ham/groundcrew/internal/logging"

// Observer is notified about dispatch activity. Implementations must be
// safe for concurrent use and must not call back into the Aggregator.
type Observer interface {
	// Published is called once per Publish with the number of subscribers
	// in the delivery snapshot.
	Published(kind string, subscribers int)

	// HandlerFailed is called for every subscriber that panicked.
	HandlerFailed(kind string)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger used to report subscriber panics.
func WithLogger(logger *logging.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithErrorHook registers fn to receive every subscriber failure as it
// happens, before Publish returns.
func WithErrorHook(fn func(*HandlerError)) Option {
	return func(a *Aggregator) {
		a.onError = fn
	}
}

// WithObserver attaches an Observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(a *Aggregator) {
		a.observer = o
	}
}
