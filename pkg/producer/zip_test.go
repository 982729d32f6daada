package producer_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/sluice/pkg/producer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZip_CombinesBothValues(t *testing.T) {
	p := producer.Zip(
		producer.Just([]string{"b1", "b2"}),
		producer.Just(int64(2)),
		func(items []string, count int64) map[string]any {
			return map[string]any{"items": items, "count": count}
		},
	)

	v, ok, err := p.Produce(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"b1", "b2"}, v["items"])
	assert.Equal(t, int64(2), v["count"])
}

func TestZip_SubscribesInputsConcurrently(t *testing.T) {
	// Each input blocks until both have started; the test only
	// terminates when subscription is in fact concurrent.
	var barrier sync.WaitGroup
	barrier.Add(2)
	input := func(v int) producer.Producer[int] {
		return producer.Func[int](func(ctx context.Context) (int, bool, error) {
			barrier.Done()
			barrier.Wait()
			return v, true, nil
		})
	}

	p := producer.Zip(input(1), input(2), func(a, b int) int { return a + b })
	v, ok, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestZip_FirstFailureWins(t *testing.T) {
	boom := errors.New("a failed")
	var combinerRuns atomic.Int32

	slow := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		select {
		case <-time.After(5 * time.Second):
			return 2, true, nil
		case <-ctx.Done():
			return 0, false, ctx.Err()
		}
	})

	p := producer.Zip(producer.Error[int](boom), slow, func(a, b int) int {
		combinerRuns.Add(1)
		return a + b
	})

	start := time.Now()
	_, ok, err := p.Produce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
	assert.Zero(t, combinerRuns.Load(), "combiner must not run on failure")
	assert.Less(t, time.Since(start), time.Second, "failure must not wait for the slow input")
}

func TestZip_FailureWinsEvenIfOtherEmitted(t *testing.T) {
	boom := errors.New("late failure")
	late := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		time.Sleep(10 * time.Millisecond)
		return 0, false, boom
	})

	_, ok, err := producer.Zip(producer.Just(1), late, func(a, b int) int { return a + b }).Produce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestZip_EmptyInputMakesResultEmpty(t *testing.T) {
	var combinerRuns atomic.Int32
	p := producer.Zip(producer.Just(1), producer.Empty[int](), func(a, b int) int {
		combinerRuns.Add(1)
		return a + b
	})

	_, ok, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, combinerRuns.Load())
}

func TestZip_InputPanicSurfacesAsFailure(t *testing.T) {
	bad := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		panic("zip input exploded")
	})

	_, ok, err := producer.Zip(bad, producer.Just(1), func(a, b int) int { return a + b }).Produce(context.Background())
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zip input exploded")
}
