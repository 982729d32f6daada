package producer

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrAlreadyConsumed is returned by a Once-wrapped producer when a second
// subscription is attempted.
var ErrAlreadyConsumed = errors.New("producer already consumed")

type onceProducer[T any] struct {
	p        Producer[T]
	consumed atomic.Bool
}

// Once restricts p to a single consumption. Plain producers are
// restartable (each subscription re-runs the chain); wrap sources with
// one-shot side effects in Once so a second subscription fails with
// ErrAlreadyConsumed instead of repeating them.
func Once[T any](p Producer[T]) Producer[T] {
	return &onceProducer[T]{p: p}
}

func (o *onceProducer[T]) Produce(ctx context.Context) (T, bool, error) {
	if !o.consumed.CompareAndSwap(false, true) {
		var zero T
		return zero, false, ErrAlreadyConsumed
	}
	return o.p.Produce(ctx)
}
