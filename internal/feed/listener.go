// Package feed delivers "records of kind K changed" notifications to
// in-process subscribers. A Listener fans notifications out; a backend
// (memory, Redis or Postgres) decides where notifications come from.
package feed

import (
	"sync"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/metrics"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

// Handle identifies one subscription.
type Handle struct {
	kind sports.Kind
	id   uint64
}

// Listener is an in-process pub/sub keyed by record kind. Callbacks run on
// the dispatching goroutine and must not block.
type Listener struct {
	mu   sync.RWMutex
	next uint64
	subs map[sports.Kind]map[uint64]func()
}

func NewListener() *Listener {
	return &Listener{
		subs: make(map[sports.Kind]map[uint64]func()),
	}
}

// Subscribe registers onChange for every change to kind.
func (l *Listener) Subscribe(kind sports.Kind, onChange func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := Handle{kind: kind, id: l.next}
	if l.subs[kind] == nil {
		l.subs[kind] = make(map[uint64]func())
	}
	l.subs[kind][h.id] = onChange
	return h
}

// Unsubscribe removes the subscription. Unknown or already removed handles
// are ignored.
func (l *Listener) Unsubscribe(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.subs[h.kind], h.id)
	if len(l.subs[h.kind]) == 0 {
		delete(l.subs, h.kind)
	}
}

// Dispatch invokes every callback subscribed to kind.
func (l *Listener) Dispatch(kind sports.Kind) {
	l.mu.RLock()
	fns := make([]func(), 0, len(l.subs[kind]))
	for _, fn := range l.subs[kind] {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	metrics.FeedNotifications.WithLabelValues(string(kind)).Inc()
	for _, fn := range fns {
		fn()
	}
}

// Count returns the number of live subscriptions across all kinds.
func (l *Listener) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, s := range l.subs {
		n += len(s)
	}
	return n
}
