package producer

import (
	"context"
	"fmt"
)

// Producer is a cold source of zero-or-one eventual value of type T.
//
// Produce computes the terminal outcome: (value, true, nil) on a value,
// (zero, false, nil) on empty completion, (zero, false, err) on failure.
// It is invoked on a worker goroutine owned by the subscription and must
// honor ctx cancellation at its blocking points.
type Producer[T any] interface {
	Produce(ctx context.Context) (T, bool, error)
}

// Func adapts an ordinary function to a Producer.
type Func[T any] func(ctx context.Context) (T, bool, error)

// Produce implements Producer.
func (f Func[T]) Produce(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Just returns a producer that always emits v.
func Just[T any](v T) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}
		return v, true, nil
	})
}

// Empty returns a producer that completes without a value.
func Empty[T any]() Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		var zero T
		return zero, false, ctx.Err()
	})
}

// Error returns a producer that always fails with err.
func Error[T any](err error) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		var zero T
		return zero, false, err
	})
}

// From wraps a blocking fetch that either yields a value or fails.
// Use Func directly when the source can also complete empty.
func From[T any](fetch func(ctx context.Context) (T, error)) Producer[T] {
	return Func[T](func(ctx context.Context) (T, bool, error) {
		v, err := fetch(ctx)
		if err != nil {
			var zero T
			return zero, false, err
		}
		return v, true, nil
	})
}

// produceSafe invokes p.Produce converting panics into failures, so a
// defective stage surfaces as a terminal error instead of crashing the
// worker goroutine.
func produceSafe[T any](ctx context.Context, p Producer[T]) (v T, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, ok = zero, false
			err = fmt.Errorf("producer panicked: %v", r)
		}
	}()
	return p.Produce(ctx)
}
