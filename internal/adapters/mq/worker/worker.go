// Package worker runs the transform stage on a pool of goroutines fed by
// the bounded row queue. Results keep input order.
package worker

import (
	"context"
	"runtime"
	"strconv"
	"sync"

	"github.com/okian/hiredw/internal/adapters/mq/queue"
	"github.com/okian/hiredw/pkg/logger"
	"github.com/okian/hiredw/pkg/metrics"
)

// Pool holds the sizing of a worker pool. It is stateless between calls
// and safe for concurrent use.
type Pool struct {
	workers   int
	queueSize int
	logger    logger.Logger
}

// NewPool creates a pool. Zero workers means one per CPU.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.queueSize < 1 {
		p.queueSize = p.workers * 2
	}
	return p
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int { return p.workers }

// Map applies fn to every item and returns results in input order. Every
// item is processed unless ctx is canceled; when several items fail, the
// error of the earliest item is returned so failures are deterministic.
func Map[In, Out any](ctx context.Context, p *Pool, items []In, fn func(ctx context.Context, item In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(items))
	if len(items) == 0 {
		return out, nil
	}

	workers := min(p.workers, len(items))
	q := queue.NewInMemoryQueue[In](queue.WithCapacity(p.queueSize))
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	wg.Add(workers)
	metrics.UpdateWorkerActiveCount(workers)
	for i := range workers {
		log := p.logger.Named("worker-" + strconv.Itoa(i))
		go func() {
			defer wg.Done()
			for j := range q.Dequeue() {
				if ctx.Err() != nil {
					continue
				}
				res, err := fn(ctx, j.Item)
				if err != nil {
					log.Debug(ctx, "item failed", logger.Int("index", j.Index), logger.Error(err))
					errs[j.Index] = err
					continue
				}
				out[j.Index] = res
			}
		}()
	}

	var enqueueErr error
	for i, item := range items {
		if enqueueErr = q.Enqueue(ctx, queue.Job[In]{Index: i, Item: item}); enqueueErr != nil {
			break
		}
	}
	_ = q.Close()
	wg.Wait()
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateQueueSize(0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if enqueueErr != nil {
		return nil, enqueueErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
