package event

import "sync"

// Group collects subscriptions owned by one component so they can be
// released together, typically with a deferred Close. The zero value is
// ready to use.
type Group struct {
	mu      sync.Mutex
	cancels []func()
	closed  bool
}

// Add records cancel to run on Close. If the group is already closed,
// cancel runs immediately.
func (g *Group) Add(cancel func()) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		cancel()
		return
	}
	g.cancels = append(g.cancels, cancel)
	g.mu.Unlock()
}

// Len returns the number of subscriptions still held by the group.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cancels)
}

// Close releases every tracked subscription, newest first. Calling Close
// more than once is safe.
func (g *Group) Close() {
	g.mu.Lock()
	cancels := g.cancels
	g.cancels = nil
	g.closed = true
	g.mu.Unlock()

	for i := len(cancels) - 1; i >= 0; i-- {
		cancels[i]()
	}
}

// Track subscribes fn to kind K on a and records the matching Unsubscribe
// in g.
func Track[K any](g *Group, a *Aggregator, fn func(K)) (Token, error) {
	tok, err := Subscribe(a, fn)
	if err != nil {
		return Token{}, err
	}
	g.Add(func() { Unsubscribe[K](a, tok) })
	return tok, nil
}
