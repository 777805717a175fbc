package views

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/umendra-pardhi/Sports-Management-Platform/internal/feed"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/metrics"
	"github.com/umendra-pardhi/Sports-Management-Platform/internal/sports"
)

var ErrActive = errors.New("view already active")

// LoadFunc fetches the full state of a view.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Screen owns the state of one mounted view. While active it reloads on
// every change to the kinds it watches. Notifications that arrive during a
// load collapse into a single follow-up load.
type Screen[T any] struct {
	name     string
	kinds    []sports.Kind
	load     LoadFunc[T]
	listener *feed.Listener
	logger   *slog.Logger

	mu       sync.Mutex
	snapshot T
	loaded   bool
	gen      uint64
	handles  []feed.Handle
	cancel   context.CancelFunc
	done     chan struct{}

	dirty   chan struct{}
	updates chan struct{}
}

func NewScreen[T any](name string, l *feed.Listener, kinds []sports.Kind, load LoadFunc[T], logger *slog.Logger) *Screen[T] {
	return &Screen[T]{
		name:     name,
		kinds:    kinds,
		load:     load,
		listener: l,
		logger:   logger.With("view", name),
		dirty:    make(chan struct{}, 1),
		updates:  make(chan struct{}, 1),
	}
}

func (s *Screen[T]) Name() string { return s.name }

// Activate subscribes to the watched kinds and starts loading. It returns
// immediately; Updates signals when the first snapshot is ready.
func (s *Screen[T]) Activate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return ErrActive
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.gen++

	for _, k := range s.kinds {
		s.handles = append(s.handles, s.listener.Subscribe(k, s.markDirty))
	}
	s.markDirty()

	metrics.ActiveViews.WithLabelValues(s.name).Inc()
	go s.loop(ctx, s.gen, s.done)
	return nil
}

// Deactivate releases every subscription and stops the refresh loop. Loads
// still in flight are discarded. Safe to call on an inactive screen.
func (s *Screen[T]) Deactivate() {
	s.mu.Lock()
	if s.cancel == nil {
		s.mu.Unlock()
		return
	}
	for _, h := range s.handles {
		s.listener.Unsubscribe(h)
	}
	s.handles = nil
	s.gen++
	s.cancel()
	s.cancel = nil
	done := s.done
	s.mu.Unlock()

	<-done
	metrics.ActiveViews.WithLabelValues(s.name).Dec()

	select {
	case <-s.dirty:
	default:
	}
}

// Snapshot returns the latest loaded state and whether any load has
// completed yet.
func (s *Screen[T]) Snapshot() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, s.loaded
}

// Updates receives a value after each successful load. Signals coalesce:
// a slow reader sees the newest snapshot, not every one.
func (s *Screen[T]) Updates() <-chan struct{} { return s.updates }

func (s *Screen[T]) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func (s *Screen[T]) loop(ctx context.Context, gen uint64, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.dirty:
			s.refresh(ctx, gen)
		}
	}
}

func (s *Screen[T]) refresh(ctx context.Context, gen uint64) {
	v, err := s.load(ctx)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.mu.Unlock()
		if ctx.Err() == nil {
			metrics.ViewRefreshes.WithLabelValues(s.name, "error").Inc()
			s.logger.Error("refreshing view", "error", err)
		}
		return
	}
	s.snapshot = v
	s.loaded = true
	s.mu.Unlock()

	metrics.ViewRefreshes.WithLabelValues(s.name, "ok").Inc()
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
