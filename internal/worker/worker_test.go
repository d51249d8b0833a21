package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(context.Background(), 3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		p.Submit(func(context.Context) error {
			mu.Lock()
			count++
			mu.Unlock()
			return nil
		})
	}
	p.Submit(nil)
	require.NoError(t, p.Wait())
	require.Equal(t, 5, count)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(context.Background(), 0)
	var running, peak int32
	for i := 0; i < 4; i++ {
		p.Submit(func(context.Context) error {
			n := atomic.AddInt32(&running, 1)
			if n > atomic.LoadInt32(&peak) {
				atomic.StoreInt32(&peak, n)
			}
			atomic.AddInt32(&running, -1)
			return nil
		})
	}
	require.NoError(t, p.Wait())
	require.EqualValues(t, 1, peak)
}

func TestPoolFirstErrorCancels(t *testing.T) {
	p := NewPool(context.Background(), 1)
	boom := errors.New("boom")
	var ran int32

	p.Submit(func(context.Context) error { return boom })
	for i := 0; i < 10; i++ {
		p.Submit(func(ctx context.Context) error {
			atomic.AddInt32(&ran, 1)
			return errors.New("later")
		})
	}
	require.ErrorIs(t, p.Wait(), boom)
	// with a single worker the first failure is observed before any later
	// task starts, so none of them run.
	require.Zero(t, atomic.LoadInt32(&ran))
}

func TestPoolParentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPool(ctx, 2)
	var ran atomic.Bool
	p.Submit(func(context.Context) error { ran.Store(true); return nil })
	require.ErrorIs(t, p.Wait(), context.Canceled)
	require.False(t, ran.Load())
}
