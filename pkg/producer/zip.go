package producer

import "context"

type result[T any] struct {
	v   T
	ok  bool
	err error
}

// Zip subscribes both inputs concurrently and combines their terminal
// values once both have emitted. If either input fails, the combined
// producer fails with that cause (first failure wins) and the other input
// is cancelled. If either completes empty, the result is empty. The
// combining function runs exactly once, only when both inputs emitted.
func Zip[A, B, C any](a Producer[A], b Producer[B], combine func(A, B) C) Producer[C] {
	return Func[C](func(ctx context.Context) (C, bool, error) {
		var zero C
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		// Buffered so a late input never blocks after we return.
		aCh := make(chan result[A], 1)
		bCh := make(chan result[B], 1)
		go func() {
			v, ok, err := produceSafe(ctx, a)
			aCh <- result[A]{v, ok, err}
		}()
		go func() {
			v, ok, err := produceSafe(ctx, b)
			bCh <- result[B]{v, ok, err}
		}()

		var av A
		var bv B
		aPending, bPending := true, true
		for aPending || bPending {
			select {
			case r := <-aCh:
				if r.err != nil {
					return zero, false, r.err
				}
				if !r.ok {
					return zero, false, nil
				}
				av, aPending = r.v, false
			case r := <-bCh:
				if r.err != nil {
					return zero, false, r.err
				}
				if !r.ok {
					return zero, false, nil
				}
				bv, bPending = r.v, false
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		}
		return combine(av, bv), true, nil
	})
}
