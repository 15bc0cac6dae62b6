package logging

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// filter is an immutable snapshot of the gate state. Writers build a new
// filter and swap the pointer; readers load it once per call.
type filter struct {
	level      Level
	categories Category
}

// Service is the process-wide logging gate. Every call site consults the
// same minimum level and active category set before anything reaches the
// sink. It is safe for concurrent use: Log and the read accessors never
// take a lock, and configuration changes become visible all at once.
type Service struct {
	sink Sink

	writeMu sync.Mutex // serializes read-modify-write updates
	state   atomic.Pointer[filter]
}

// ServiceOption configures a Service at construction.
type ServiceOption func(*filter)

// WithLevel sets the initial minimum level.
func WithLevel(level Level) ServiceOption {
	return func(f *filter) {
		f.level = level
	}
}

// WithCategories sets the initial active category set.
func WithCategories(cats ...Category) ServiceOption {
	return func(f *filter) {
		f.categories = Categories(cats...)
	}
}

// NewService creates a Service that forwards passing messages to sink.
// The initial configuration is every category at LevelInfo. A nil sink
// discards output.
func NewService(sink Sink, opts ...ServiceOption) *Service {
	if sink == nil {
		sink = DiscardSink
	}

	initial := &filter{level: LevelInfo, categories: CategoryAll}
	for _, opt := range opts {
		opt(initial)
	}

	s := &Service{sink: sink}
	s.state.Store(initial)
	return s
}

// Enabled reports whether a message at level in the given categories would
// pass the gate. No categories means every category.
func (s *Service) Enabled(level Level, categories ...Category) bool {
	f := s.state.Load()
	return level >= f.level && f.categories.Intersects(messageCategories(categories))
}

// Log forwards context and message to the sink when level meets the minimum
// and the message categories intersect the active set. With no categories
// the message belongs to every category.
func (s *Service) Log(level Level, context, message string, categories ...Category) {
	cats := messageCategories(categories)
	f := s.state.Load()
	if level < f.level || !f.categories.Intersects(cats) {
		return
	}
	s.sink.Write(level, cats, context, message)
}

// Logf is Log with fmt.Sprintf formatting, performed only when the message
// passes the gate.
func (s *Service) Logf(level Level, category Category, context, format string, args ...any) {
	f := s.state.Load()
	if level < f.level || !f.categories.Intersects(category) {
		return
	}
	s.sink.Write(level, category, context, fmt.Sprintf(format, args...))
}

// SetActiveCategories replaces the active set with exactly cats.
func (s *Service) SetActiveCategories(cats ...Category) {
	set := Categories(cats...)
	s.update(func(f *filter) {
		f.categories = set
	})
}

// AddActiveCategories adds cats to the active set.
func (s *Service) AddActiveCategories(cats ...Category) {
	set := Categories(cats...)
	s.update(func(f *filter) {
		f.categories = f.categories.Union(set)
	})
}

// RemoveActiveCategories removes cats from the active set.
func (s *Service) RemoveActiveCategories(cats ...Category) {
	set := Categories(cats...)
	s.update(func(f *filter) {
		f.categories = f.categories.Without(set)
	})
}

// SetLogLevel replaces the minimum level.
func (s *Service) SetLogLevel(level Level) {
	s.update(func(f *filter) {
		f.level = level
	})
}

// Apply replaces the minimum level and the active set in one step.
func (s *Service) Apply(level Level, categories Category) {
	s.update(func(f *filter) {
		f.level = level
		f.categories = categories & CategoryAll
	})
}

// SetupServiceLogging applies the named preset. An unknown name returns an
// invalid-argument error and leaves the current configuration untouched.
func (s *Service) SetupServiceLogging(name string) error {
	preset, err := LookupPreset(name)
	if err != nil {
		return err
	}
	s.update(func(f *filter) {
		f.categories = preset.Categories
		if preset.SetsLevel {
			f.level = preset.Level
		}
	})
	return nil
}

// IsCategoryActive reports whether every category in cat is active.
func (s *Service) IsCategoryActive(cat Category) bool {
	return s.state.Load().categories.Has(cat)
}

// LogLevel returns the current minimum level.
func (s *Service) LogLevel() Level {
	return s.state.Load().level
}

// ActiveCategories returns the current active set.
func (s *Service) ActiveCategories() Category {
	return s.state.Load().categories
}

// update copies the current filter, applies fn and publishes the result.
func (s *Service) update(fn func(*filter)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := *s.state.Load()
	fn(&next)
	s.state.Store(&next)
}

func messageCategories(categories []Category) Category {
	if len(categories) == 0 {
		return CategoryAll
	}
	return Categories(categories...)
}
