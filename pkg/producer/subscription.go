package producer

import (
	"context"
	"sync"
)

// Outcome is the terminal event of a subscription: a value, an empty
// completion, or a failure. Present and Err are mutually exclusive.
type Outcome[T any] struct {
	Value   T
	Present bool
	Err     error
}

// Subscription is one live consumption of a producer. The terminal outcome
// is delivered exactly once; after that the subscription is absorbing and
// late events are impossible by construction (the worker completes once).
type Subscription[T any] struct {
	done   chan struct{}
	cancel context.CancelFunc

	once    sync.Once
	mu      sync.Mutex
	outcome Outcome[T]
}

// Subscribe starts consuming p on a new worker goroutine. The returned
// subscription completes when the producer terminates or ctx is cancelled.
func Subscribe[T any](ctx context.Context, p Producer[T]) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		v, ok, err := produceSafe(ctx, p)
		s.complete(Outcome[T]{Value: v, Present: ok, Err: err})
	}()
	return s
}

// complete records the terminal outcome exactly once.
func (s *Subscription[T]) complete(o Outcome[T]) {
	s.once.Do(func() {
		s.mu.Lock()
		s.outcome = o
		s.mu.Unlock()
		close(s.done)
	})
}

// Done returns a channel closed when the terminal outcome is available.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Outcome returns the terminal outcome and whether it has been delivered.
func (s *Subscription[T]) Outcome() (Outcome[T], bool) {
	select {
	case <-s.done:
		s.mu.Lock()
		o := s.outcome
		s.mu.Unlock()
		return o, true
	default:
		return Outcome[T]{}, false
	}
}

// Wait blocks until the terminal outcome or until ctx is done, whichever
// comes first.
func (s *Subscription[T]) Wait(ctx context.Context) (Outcome[T], error) {
	select {
	case <-s.done:
		o, _ := s.Outcome()
		return o, nil
	case <-ctx.Done():
		return Outcome[T]{}, ctx.Err()
	}
}

// Cancel aborts the subscription. The worker observes the cancelled
// context at its next blocking point and terminates; whatever it was
// about to emit is discarded by the caller, never re-delivered.
func (s *Subscription[T]) Cancel() {
	s.cancel()
}
