package task

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunDeliversResult(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	v, err := pool.Run(context.Background(), func(ctx context.Context) (interface{}, error) {
		return "translated", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "translated", v)
}

func TestPoolPropagatesError(t *testing.T) {
	pool := NewPool(1)
	defer pool.Shutdown()

	wantErr := assert.AnError
	_, err := pool.Run(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestPoolBoundsConcurrency(t *testing.T) {
	pool := NewPool(2)
	defer pool.Shutdown()

	var running, peak int32
	fn := func(ctx context.Context) (interface{}, error) {
		cur := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if cur <= old || atomic.CompareAndSwapInt32(&peak, old, cur) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil, nil
	}

	futures := make([]*Future, 0, 6)
	for i := 0; i < 6; i++ {
		futures = append(futures, pool.Submit(context.Background(), fn))
	}
	for _, f := range futures {
		_, err := f.Await(context.Background())
		require.NoError(t, err)
	}

	// 同时运行的任务数不能超过池大小
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestPoolAwaitHonorsContext(t *testing.T) {
	pool := NewPool(1)
	defer pool.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	f := pool.Submit(context.Background(), func(ctx context.Context) (interface{}, error) {
		time.Sleep(200 * time.Millisecond)
		return nil, nil
	})
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPoolClosedRejectsSubmit(t *testing.T) {
	pool := NewPool(1)
	pool.Shutdown()

	_, err := pool.Run(context.Background(), func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrPoolClosed)
}
