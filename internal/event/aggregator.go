package event

import (
	"reflect"
	"runtime/debug"
	"slices"
	"sync"

	"github.com/Iron-Ham/groundcrew/internal/errors"
	"github.com/Iron-Ham/groundcrew/internal/logging"
)

// subscriber is a registered callback for event kind K.
type subscriber[K any] struct {
	token Token
	fn    func(K)
}

// bucket is the type-erased view of a typedBucket, used by operations that
// do not know K.
type bucket interface {
	size() int
}

// typedBucket holds the subscribers of one kind in registration order.
type typedBucket[K any] struct {
	subs []subscriber[K]
}

func (b *typedBucket[K]) size() int { return len(b.subs) }

// Aggregator is a synchronous publish/subscribe hub keyed by event type.
// Subscribers registered for type K receive only values published as K,
// in the order they subscribed, on the publisher's goroutine.
//
// Publish copies the subscriber list under a read lock and releases the lock
// before invoking callbacks, so a callback may subscribe, unsubscribe or
// publish on the same Aggregator. Changes made during a Publish take effect
// from the next Publish of that kind.
//
// An Aggregator is safe for concurrent use. Because Go methods cannot take
// type parameters, the typed operations are the package-level functions
// Subscribe, Publish and Unsubscribe.
type Aggregator struct {
	mu      sync.RWMutex
	buckets map[reflect.Type]bucket // event type -> *typedBucket[K]

	logger   *logging.Logger
	onError  func(*HandlerError)
	observer Observer
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		buckets: make(map[reflect.Type]bucket),
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// KindOf returns the name used for event kind K in logs, metrics and errors.
func KindOf[K any]() string {
	return reflect.TypeFor[K]().String()
}

// Subscribe registers fn for events of kind K and returns the token that
// removes it again. A nil fn is rejected with an invalid-argument error.
// Subscribing the same function twice creates two independent subscriptions.
func Subscribe[K any](a *Aggregator, fn func(K)) (Token, error) {
	if fn == nil {
		return Token{}, errors.NewInvalidArgumentError("subscriber callback must not be nil").
			WithField("fn").
			WithValue(KindOf[K]()).
			WithCause(errors.ErrNilCallback)
	}

	key := reflect.TypeFor[K]()
	tok := newToken()

	a.mu.Lock()
	defer a.mu.Unlock()

	b, _ := a.buckets[key].(*typedBucket[K])
	if b == nil {
		b = &typedBucket[K]{}
		a.buckets[key] = b
	}
	b.subs = append(b.subs, subscriber[K]{token: tok, fn: fn})
	return tok, nil
}

// Unsubscribe removes the subscription identified by tok from kind K.
// Unknown, zero and already-removed tokens are ignored, as are tokens that
// were issued for a different kind.
func Unsubscribe[K any](a *Aggregator, tok Token) {
	if tok.IsZero() {
		return
	}
	key := reflect.TypeFor[K]()

	a.mu.Lock()
	defer a.mu.Unlock()

	b, _ := a.buckets[key].(*typedBucket[K])
	if b == nil {
		return
	}

	i := slices.IndexFunc(b.subs, func(s subscriber[K]) bool { return s.token == tok })
	if i < 0 {
		return
	}
	// Build a new slice: in-flight Publish snapshots may share the old array.
	next := make([]subscriber[K], 0, len(b.subs)-1)
	next = append(next, b.subs[:i]...)
	next = append(next, b.subs[i+1:]...)
	if len(next) == 0 {
		delete(a.buckets, key)
		return
	}
	b.subs = next
}

// Publish delivers ev to every subscriber of kind K that was registered when
// the call started, in registration order. Publishing a kind with no
// subscribers does nothing.
//
// A subscriber that panics is recovered and reported; the remaining
// subscribers still run. Publish returns nil when every subscriber returned
// normally and a *PublishError otherwise. The error matches
// ErrAllSubscribersFailed only when no subscriber succeeded.
func Publish[K any](a *Aggregator, ev K) error {
	key := reflect.TypeFor[K]()

	a.mu.RLock()
	var snapshot []subscriber[K]
	if b, ok := a.buckets[key].(*typedBucket[K]); ok {
		snapshot = slices.Clone(b.subs)
	}
	a.mu.RUnlock()

	kind := key.String()
	if a.observer != nil {
		a.observer.Published(kind, len(snapshot))
	}

	var failures []*HandlerError
	for i, sub := range snapshot {
		value, stack, panicked := safeCall(sub.fn, ev)
		if !panicked {
			continue
		}
		herr := &HandlerError{Kind: kind, Token: sub.token, Index: i, Value: value, Stack: stack}
		a.report(herr)
		failures = append(failures, herr)
	}

	if len(failures) == 0 {
		return nil
	}
	return &PublishError{Kind: kind, Delivered: len(snapshot), Failures: failures}
}

// safeCall invokes fn and recovers from any panic, returning the recovered
// value and the stack at the point of recovery.
func safeCall[K any](fn func(K), ev K) (value any, stack []byte, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			value, stack, panicked = r, debug.Stack(), true
		}
	}()
	fn(ev)
	return nil, nil, false
}

// report logs a subscriber failure and forwards it to the error hook and
// observer. It runs on the publishing goroutine without holding the lock.
func (a *Aggregator) report(herr *HandlerError) {
	a.logger.Error("event subscriber panicked",
		"kind", herr.Kind,
		"token", herr.Token.String(),
		"index", herr.Index,
		"panic", herr.Value,
		"stack", string(herr.Stack),
	)
	if a.observer != nil {
		a.observer.HandlerFailed(herr.Kind)
	}
	if a.onError != nil {
		a.onError(herr)
	}
}

// Count returns the number of live subscriptions for kind K.
func Count[K any](a *Aggregator) int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if b, ok := a.buckets[reflect.TypeFor[K]()]; ok {
		return b.size()
	}
	return 0
}

// SubscriptionCount returns the total number of live subscriptions across
// all kinds.
func (a *Aggregator) SubscriptionCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	count := 0
	for _, b := range a.buckets {
		count += b.size()
	}
	return count
}

// Clear removes every subscription of every kind. Tokens issued before the
// call become stale.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buckets = make(map[reflect.Type]bucket)
}
