package workerpool_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domonda/go-asyncjob"
	"github.com/domonda/go-asyncjob/workerpool"
)

func TestPoolSubmit(t *testing.T) {
	t.Run("Submitted tasks run to completion", func(t *testing.T) {
		pool := workerpool.New(4, 16)
		defer pool.Finish()

		var ran atomic.Int64
		handles := make([]asyncjob.Handle, 10)
		for i := range handles {
			handle, err := pool.Submit(func(ctx context.Context) {
				ran.Add(1)
			})
			require.NoError(t, err)
			handles[i] = handle
		}
		for _, handle := range handles {
			<-handle.Done()
			assert.NoError(t, handle.Err())
		}

		assert.Equal(t, int64(10), ran.Load())
		assert.Equal(t, int64(10), pool.Stats().Completed)
	})

	t.Run("Nil task is an error", func(t *testing.T) {
		pool := workerpool.New(1, 0)
		defer pool.Finish()

		_, err := pool.Submit(nil)
		assert.ErrorIs(t, err, asyncjob.ErrNilTask)
	})

	t.Run("Submit after Finish returns ErrPoolClosed", func(t *testing.T) {
		pool := workerpool.New(1, 0)
		pool.Finish()

		_, err := pool.Submit(func(ctx context.Context) {})
		assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
	})

	t.Run("Submit after Stop returns ErrPoolClosed", func(t *testing.T) {
		pool := workerpool.New(1, 0)
		pool.Stop()

		_, err := pool.Submit(func(ctx context.Context) {})
		assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
	})

	// With free queue capacity the queue send is always ready,
	// so rejection after shutdown must not depend on select order
	t.Run("Submit after Finish with buffered queue returns ErrPoolClosed", func(t *testing.T) {
		pool := workerpool.New(1, 8)
		pool.Finish()

		for range 100 {
			handle, err := pool.Submit(func(ctx context.Context) {})
			assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
			assert.Nil(t, handle)
		}
	})

	t.Run("Submit after Stop with buffered queue returns ErrPoolClosed", func(t *testing.T) {
		pool := workerpool.New(2, 8)
		pool.Stop()

		for range 100 {
			handle, err := pool.Submit(func(ctx context.Context) {})
			assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
			assert.Nil(t, handle)
		}
	})
}

func TestPoolSerialization(t *testing.T) {
	pool := workerpool.New(1, 16)
	defer pool.Finish()

	var (
		concurrent    atomic.Int64
		maxConcurrent atomic.Int64
	)
	handles := make([]asyncjob.Handle, 5)
	for i := range handles {
		handle, err := pool.Submit(func(ctx context.Context) {
			n := concurrent.Add(1)
			if n > maxConcurrent.Load() {
				maxConcurrent.Store(n)
			}
			time.Sleep(10 * time.Millisecond)
			concurrent.Add(-1)
		})
		require.NoError(t, err)
		handles[i] = handle
	}
	for _, handle := range handles {
		<-handle.Done()
	}

	assert.Equal(t, int64(1), maxConcurrent.Load())
}

func TestTaskCancellation(t *testing.T) {
	t.Run("Cancel before start prevents execution", func(t *testing.T) {
		pool := workerpool.New(1, 8)
		defer pool.Finish()

		blockerRunning := make(chan struct{})
		releaseBlocker := make(chan struct{})
		_, err := pool.Submit(func(ctx context.Context) {
			close(blockerRunning)
			<-releaseBlocker
		})
		require.NoError(t, err)
		<-blockerRunning

		var ran atomic.Bool
		handle, err := pool.Submit(func(ctx context.Context) {
			ran.Store(true)
		})
		require.NoError(t, err)

		handle.Cancel()
		close(releaseBlocker)
		<-handle.Done()

		assert.False(t, ran.Load())
		assert.ErrorIs(t, handle.Err(), asyncjob.ErrCancelled)

		taskHandle, ok := handle.(*workerpool.TaskHandle)
		require.True(t, ok)
		assert.True(t, taskHandle.IsCancelled())
	})

	t.Run("Cancel of a running task cancels its context", func(t *testing.T) {
		pool := workerpool.New(1, 0)
		defer pool.Finish()

		interrupted := make(chan struct{})
		handle, err := pool.Submit(func(ctx context.Context) {
			<-ctx.Done()
			close(interrupted)
		})
		require.NoError(t, err)

		handle.Cancel()

		select {
		case <-interrupted:
		case <-time.After(time.Second):
			t.Fatal("task context was not cancelled")
		}
		<-handle.Done()
		assert.NoError(t, handle.Err())
	})

	t.Run("Wait returns the task error", func(t *testing.T) {
		pool := workerpool.New(1, 8)
		defer pool.Finish()

		handle, err := pool.Submit(func(ctx context.Context) {})
		require.NoError(t, err)

		taskHandle, ok := handle.(*workerpool.TaskHandle)
		require.True(t, ok)
		assert.NoError(t, taskHandle.Wait(context.Background()))
	})
}

func TestTaskPanicCapture(t *testing.T) {
	pool := workerpool.New(1, 8)
	defer pool.Finish()

	handle, err := pool.Submit(func(ctx context.Context) {
		panic("NUCLEAR_MELTDOWN")
	})
	require.NoError(t, err)
	<-handle.Done()

	require.Error(t, handle.Err())
	assert.Contains(t, handle.Err().Error(), "NUCLEAR_MELTDOWN")
	assert.Equal(t, int64(1), pool.Stats().Failed)

	// The worker survives a panicking task
	var ran atomic.Bool
	handle, err = pool.Submit(func(ctx context.Context) {
		ran.Store(true)
	})
	require.NoError(t, err)
	<-handle.Done()

	assert.True(t, ran.Load())
	assert.NoError(t, handle.Err())
}

func TestPoolFinish(t *testing.T) {
	pool := workerpool.New(2, 16)

	var ran atomic.Int64
	for range 10 {
		_, err := pool.Submit(func(ctx context.Context) {
			time.Sleep(5 * time.Millisecond)
			ran.Add(1)
		})
		require.NoError(t, err)
	}

	pool.Finish()

	assert.Equal(t, int64(10), ran.Load())
	assert.Equal(t, 0, pool.Stats().Queued)
}

func TestPoolStop(t *testing.T) {
	pool := workerpool.New(1, 8)

	blockerRunning := make(chan struct{})
	blocker, err := pool.Submit(func(ctx context.Context) {
		close(blockerRunning)
		<-ctx.Done()
	})
	require.NoError(t, err)
	<-blockerRunning

	queued, err := pool.Submit(func(ctx context.Context) {
		t.Error("queued task must not run after Stop")
	})
	require.NoError(t, err)

	pool.Stop()

	<-queued.Done()
	assert.ErrorIs(t, queued.Err(), asyncjob.ErrCancelled)

	// Stop abandons the running blocker without cancelling it,
	// release it here so its goroutine can end
	blocker.Cancel()
	<-blocker.Done()
}
