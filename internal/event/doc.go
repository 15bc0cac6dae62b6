// Package event provides the typed publish/subscribe aggregator that
// decouples producers and consumers of domain events inside groundcrew.
//
// Pollers, state machines and status watchers publish plain value types;
// any number of components subscribe to the kinds they care about and
// detach again when they shut down. Neither side knows about the other.
//
// # Main Types
//
//   - [Aggregator]: synchronous dispatcher holding one ordered bucket of
//     subscribers per event type
//   - [Token]: opaque handle returned by [Subscribe], used only to
//     [Unsubscribe]
//   - [Group]: collects the subscriptions of one component for release on
//     every exit path
//   - [PublishError] and [HandlerError]: failures of individual subscribers
//
// # Type Isolation
//
// The event kind is the Go type parameter K. Two named types never share a
// bucket even when their underlying structure is identical, so a subscriber
// for ConnectionStatusChanged never sees a ServiceStatusChanged.
// Unsubscribe is scoped to the same K that was used to subscribe.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Publish snapshots the bucket
// and releases the lock before calling subscribers, which lets a subscriber
// publish other kinds, subscribe or unsubscribe without deadlocking. A
// subscriber that panics is recovered, logged with its stack, and reported
// through [PublishError]; the remaining subscribers of that Publish still
// run.
//
// # Basic Usage
//
//	agg := event.NewAggregator(event.WithLogger(logger))
//
//	tok, err := event.Subscribe(agg, func(e events.ConnectionStatusChanged) {
//	    log.Printf("%s connected=%v", e.ConnectionName, e.IsConnected)
//	})
//	if err != nil {
//	    return err
//	}
//	defer event.Unsubscribe[events.ConnectionStatusChanged](agg, tok)
//
//	if err := event.Publish(agg, events.NewConnectionStatusChanged("Prosim", true)); err != nil {
//	    var pubErr *event.PublishError
//	    if errors.As(err, &pubErr) {
//	        // inspect pubErr.Failures
//	    }
//	}
//
// Components holding several subscriptions use a [Group]:
//
//	var subs event.Group
//	defer subs.Close()
//	event.Track(&subs, agg, onConnection)
//	event.Track(&subs, agg, onFlightPhase)
package event
