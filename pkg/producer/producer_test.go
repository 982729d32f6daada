package producer_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/sluice/pkg/producer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJust_EmitsValue(t *testing.T) {
	v, ok, err := producer.Just(42).Produce(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestEmpty_CompletesWithoutValue(t *testing.T) {
	_, ok, err := producer.Empty[int]().Produce(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestError_Fails(t *testing.T) {
	boom := errors.New("boom")
	_, ok, err := producer.Error[int](boom).Produce(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func TestFrom_WrapsFetch(t *testing.T) {
	p := producer.From(func(ctx context.Context) (string, error) {
		return "fetched", nil
	})
	v, ok, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fetched", v)
}

func TestSubscribe_DeliversTerminalOutcome(t *testing.T) {
	sub := producer.Subscribe(context.Background(), producer.Just("done"))

	out, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.True(t, out.Present)
	assert.Equal(t, "done", out.Value)

	// The outcome is absorbing: polling after Done agrees with Wait.
	polled, ok := sub.Outcome()
	assert.True(t, ok)
	assert.Equal(t, out, polled)
}

func TestSubscribe_OutcomeBeforeTerminalIsNotReady(t *testing.T) {
	release := make(chan struct{})
	p := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		select {
		case <-release:
			return 1, true, nil
		case <-ctx.Done():
			return 0, false, ctx.Err()
		}
	})

	sub := producer.Subscribe(context.Background(), p)
	_, ok := sub.Outcome()
	assert.False(t, ok, "outcome must not be readable before the terminal event")

	close(release)
	out, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Value)
}

func TestSubscribe_RunsOffCallerGoroutine(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	p := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		close(started)
		<-release
		return 7, true, nil
	})

	// Subscribe must return immediately even though the producer blocks.
	sub := producer.Subscribe(context.Background(), p)
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("producer never started")
	}

	close(release)
	out, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, out.Value)
}

func TestSubscribe_PanicBecomesFailure(t *testing.T) {
	p := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		panic("stage exploded")
	})

	sub := producer.Subscribe(context.Background(), p)
	out, err := sub.Wait(context.Background())
	require.NoError(t, err)
	require.Error(t, out.Err)
	assert.Contains(t, out.Err.Error(), "stage exploded")
}

func TestCancel_LateTerminalEventIsDiscarded(t *testing.T) {
	var emitted atomic.Int32
	release := make(chan struct{})
	p := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		select {
		case <-release:
			emitted.Add(1)
			return 9, true, nil
		case <-ctx.Done():
			return 0, false, ctx.Err()
		}
	})

	sub := producer.Subscribe(context.Background(), p)
	sub.Cancel()

	out, err := sub.Wait(context.Background())
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, context.Canceled)

	// A stage racing past cancellation must not change the outcome.
	close(release)
	time.Sleep(20 * time.Millisecond)
	final, ok := sub.Outcome()
	require.True(t, ok)
	assert.ErrorIs(t, final.Err, context.Canceled)
	assert.False(t, final.Present)
	assert.Zero(t, emitted.Load(), "cancelled worker must not have emitted")
}

func TestOnce_SecondSubscriptionFails(t *testing.T) {
	var runs atomic.Int32
	p := producer.Once(producer.Func[int](func(ctx context.Context) (int, bool, error) {
		runs.Add(1)
		return 5, true, nil
	}))

	v, ok, err := p.Produce(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, _, err = p.Produce(context.Background())
	assert.ErrorIs(t, err, producer.ErrAlreadyConsumed)
	assert.Equal(t, int32(1), runs.Load(), "side effect must run once")
}

func TestRestartable_EachSubscriptionIsIndependent(t *testing.T) {
	var runs atomic.Int32
	p := producer.Func[int](func(ctx context.Context) (int, bool, error) {
		return int(runs.Add(1)), true, nil
	})

	a, _ := producer.Subscribe(context.Background(), p).Wait(context.Background())
	b, _ := producer.Subscribe(context.Background(), p).Wait(context.Background())
	assert.Equal(t, 1, a.Value)
	assert.Equal(t, 2, b.Value)
}
