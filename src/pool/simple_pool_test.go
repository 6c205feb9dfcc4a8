package pool

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

func testLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func makeTasks(n int) []entity.URLTask {
	tasks := make([]entity.URLTask, n)
	for i := range tasks {
		tasks[i] = entity.URLTask{Index: i, Raw: fmt.Sprintf("https://example.com/%d.js", i)}
	}
	return tasks
}

func TestSimplePool_Run(t *testing.T) {
	t.Run("processes every task exactly once", func(t *testing.T) {
		var mu sync.Mutex
		seen := map[int]int{}

		p := NewSimplePool(testLogger(), 8, 0, func(ctx context.Context, task entity.URLTask) {
			mu.Lock()
			seen[task.Index]++
			mu.Unlock()
		})

		err := p.Run(context.Background(), makeTasks(100))
		require.NoError(t, err)

		assert.Len(t, seen, 100)
		for idx, count := range seen {
			assert.Equal(t, 1, count, "task %d ran %d times", idx, count)
		}
	})

	t.Run("never exceeds the worker bound", func(t *testing.T) {
		const workers = 4
		var current, peak int64

		p := NewSimplePool(testLogger(), workers, 0, func(ctx context.Context, task entity.URLTask) {
			n := atomic.AddInt64(&current, 1)
			for {
				old := atomic.LoadInt64(&peak)
				if n <= old || atomic.CompareAndSwapInt64(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&current, -1)
		})

		require.NoError(t, p.Run(context.Background(), makeTasks(40)))
		assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(workers))
		assert.Greater(t, atomic.LoadInt64(&peak), int64(1), "pool actually ran concurrently")
		assert.Zero(t, p.InFlight(), "all workers drained")
	})

	t.Run("cancellation stops dispatch and surfaces the error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		var started int64
		release := make(chan struct{})
		p := NewSimplePool(testLogger(), 2, 0, func(ctx context.Context, task entity.URLTask) {
			if atomic.AddInt64(&started, 1) == 2 {
				cancel()
			}
			<-release
		})

		done := make(chan error, 1)
		go func() { done <- p.Run(ctx, makeTasks(50)) }()

		// wait for cancellation to take effect, then let workers finish
		assert.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, time.Millisecond)
		close(release)

		err := <-done
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, atomic.LoadInt64(&started), int64(50), "unstarted tasks were not dispatched")
	})

	t.Run("rate limit spaces out task starts", func(t *testing.T) {
		var count int64
		p := NewSimplePool(testLogger(), 4, 50, func(ctx context.Context, task entity.URLTask) {
			atomic.AddInt64(&count, 1)
		})

		start := time.Now()
		require.NoError(t, p.Run(context.Background(), makeTasks(6)))

		assert.Equal(t, int64(6), atomic.LoadInt64(&count))
		// 6 starts at 50/s with burst 1 require at least ~100ms
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})
}
