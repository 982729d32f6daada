package producer

import (
	"context"
	"fmt"
	"time"
)

// Map transforms the terminal value if present. Empty completions and
// failures pass through unchanged. The function runs on the subscription
// worker, in declared chain order.
func Map[T, U any](p Producer[T], f func(T) U) Producer[U] {
	return Func[U](func(ctx context.Context) (U, bool, error) {
		v, ok, err := p.Produce(ctx)
		if err != nil || !ok {
			var zero U
			return zero, false, err
		}
		return f(v), true, nil
	})
}

// SwitchMap continues the chain with the producer returned by f for the
// upstream value. Failures from either stage propagate; an empty upstream
// never invokes f.
func SwitchMap[T, U any](p Producer[T], f func(T) Producer[U]) Producer[U] {
	return Func[U](func(ctx context.Context) (U, bool, error) {
		v, ok, err := p.Produce(ctx)
		if err != nil || !ok {
			var zero U
			return zero, false, err
		}
		return f(v).Produce(ctx)
	})
}

// SwitchIfEmpty substitutes fallback when the upstream completes without a
// value. When the upstream emits, fallback is never consulted and none of
// its side effects run. Failures propagate without triggering fallback.
func SwitchIfEmpty[T any](p, fallback Producer[T]) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		v, ok, err := p.Produce(ctx)
		if err != nil || ok {
			return v, ok, err
		}
		return fallback.Produce(ctx)
	})
}

// OnErrorReturn converts a failure into the substitute terminal value
// computed by f. Values and empty completions pass through.
func OnErrorReturn[T any](p Producer[T], f func(error) T) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		v, ok, err := p.Produce(ctx)
		if err != nil {
			return f(err), true, nil
		}
		return v, ok, nil
	})
}

// WithTimeout bounds the upstream with a deadline. On expiry the producer
// fails with a wrapped context.DeadlineExceeded; the upstream's context is
// cancelled so in-flight IO is abandoned.
func WithTimeout[T any](p Producer[T], d time.Duration) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		v, ok, err := p.Produce(ctx)
		if err != nil && ctx.Err() != nil {
			var zero T
			return zero, false, fmt.Errorf("producer timed out after %v: %w", d, ctx.Err())
		}
		return v, ok, err
	})
}
