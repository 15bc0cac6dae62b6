package event

import (
	"fmt"

	"github.com/Iron-Ham/groundcrew/internal/errors"
)

// ErrAllSubscribersFailed is matched by a PublishError when every
// subscriber in the delivery snapshot failed.
var ErrAllSubscribersFailed = errors.New("all subscribers failed")

// HandlerError describes a subscriber callback that panicked during Publish.
type HandlerError struct {
	Kind  string // event kind being delivered
	Token Token  // subscription whose callback failed
	Index int    // position of the subscriber in the delivery snapshot
	Value any    // value recovered from the panic
	Stack []byte // stack trace captured at recovery
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("subscriber %d for %s panicked: %v", e.Index, e.Kind, e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *HandlerError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// PublishError reports the subscribers that failed during one Publish call.
// Subscribers after a failing one were still invoked.
type PublishError struct {
	Kind      string
	Delivered int // subscribers in the snapshot, failed ones included
	Failures  []*HandlerError
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("publish %s: %v", e.Kind, e.Failures[0])
	}
	return fmt.Sprintf("publish %s: %d of %d subscribers failed", e.Kind, len(e.Failures), e.Delivered)
}

// AllFailed reports whether no subscriber completed normally.
func (e *PublishError) AllFailed() bool {
	return e.Delivered > 0 && len(e.Failures) == e.Delivered
}

// Unwrap returns the individual handler errors.
func (e *PublishError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Is matches ErrAllSubscribersFailed when every subscriber failed.
func (e *PublishError) Is(target error) bool {
	return target == ErrAllSubscribersFailed && e.AllFailed()
}
