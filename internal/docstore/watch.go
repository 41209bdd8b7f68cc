package docstore

import (
	"sync"
)

// Subscription delivers updates for a single watched document. The channel
// holds at most one pending document; when the consumer lags, newer writes
// replace the pending one.
type Subscription struct {
	updates chan Document
	hub     *watchHub
	key     string

	// guarded by hub.mu
	closed bool
}

// Updates returns the channel on which document versions arrive. The
// channel is closed when the subscription or its store is closed.
func (s *Subscription) Updates() <-chan Document {
	return s.updates
}

// Close detaches the subscription and closes its channel. Safe to call
// more than once.
func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// deliver performs a conflating send. Callers must hold hub.mu.
func (s *Subscription) deliver(doc Document) {
	select {
	case s.updates <- doc:
	default:
		// Drop the stale pending document, then send the new one
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- doc:
		default:
		}
	}
}

// watchHub fans document writes out to subscriptions. All channel sends
// and closes happen under mu, so a send can never race a close.
type watchHub struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[string]map[*Subscription]struct{})}
}

// subscribe registers a new subscription for key. The snapshot func runs
// under the hub lock so the initial version and later notifications
// cannot arrive out of order; it reports whether a document exists yet.
func (h *watchHub) subscribe(key string, snapshot func() (Document, bool, error)) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s := &Subscription{
		updates: make(chan Document, 1),
		hub:     h,
		key:     key,
	}

	if snapshot != nil {
		doc, ok, err := snapshot()
		if err != nil {
			return nil, err
		}
		if ok {
			s.deliver(doc)
		}
	}

	if h.subs[key] == nil {
		h.subs[key] = make(map[*Subscription]struct{})
	}
	h.subs[key][s] = struct{}{}
	return s, nil
}

// unsubscribe removes s from the hub and closes its channel once
func (h *watchHub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	if set, ok := h.subs[s.key]; ok {
		delete(set, s)
		if len(set) == 0 {
			delete(h.subs, s.key)
		}
	}
	close(s.updates)
}

// notify delivers doc to every subscription watching key
func (h *watchHub) notify(key string, doc Document) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subs[key] {
		s.deliver(doc)
	}
}

// closeAll closes every subscription on the hub
func (h *watchHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, set := range h.subs {
		for s := range set {
			s.closed = true
			close(s.updates)
		}
		delete(h.subs, key)
	}
}

// watchKey builds the hub key for a document address
func watchKey(identity, collection, id string) string {
	return identity + "/" + collection + "/" + id
}
