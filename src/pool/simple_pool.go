package pool

import (
	"context"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Iborrareddy/js-url-checker/src/entity"
)

// Work processes one task to completion. It must not panic and must
// produce a result even under a cancelled context.
type Work func(ctx context.Context, task entity.URLTask)

// SimplePool owns its whole lifecycle: Run starts the workers, feeds them
// over an unbuffered channel (so the producer blocks once all workers are
// busy instead of fanning out unboundedly), drains them, and stops. A pool
// is single-use per Run but safe to Run again afterwards.
type SimplePool struct {
	logger  *log.Logger
	size    int
	limiter *rate.Limiter
	work    Work

	inflight int64
}

// NewSimplePool creates a pool of size workers. ratePerSec > 0 adds a
// global token-bucket limit on probe starts across all workers.
func NewSimplePool(logger *log.Logger, size int, ratePerSec float64, work Work) *SimplePool {
	if size < 1 {
		size = 1
	}
	p := &SimplePool{
		logger: logger,
		size:   size,
		work:   work,
	}
	if ratePerSec > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return p
}

func (p *SimplePool) Run(ctx context.Context, tasks []entity.URLTask) error {
	queue := make(chan entity.URLTask)
	var wg sync.WaitGroup

	for i := 0; i < p.size; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if p.limiter != nil {
					// A cancelled wait still runs the task: the worker's
					// validator sees the dead context and reports the task
					// as cancelled rather than dropping it.
					_ = p.limiter.Wait(ctx)
				}
				atomic.AddInt64(&p.inflight, 1)
				p.work(ctx, task)
				atomic.AddInt64(&p.inflight, -1)
			}
		}()
	}

dispatch:
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			p.logger.WithError(ctx.Err()).Warn("run cancelled, no further tasks dispatched")
			break dispatch
		case queue <- task:
		}
	}
	close(queue)
	wg.Wait()

	return ctx.Err()
}

// InFlight is an instrumentation gauge of tasks currently being worked on.
func (p *SimplePool) InFlight() int64 {
	return atomic.LoadInt64(&p.inflight)
}
