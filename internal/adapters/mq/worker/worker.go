// Package worker runs queued sessions through the analyzer and stores the results.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/okian/swimzones/internal/domain/detector"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/logger"
	"github.com/okian/swimzones/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU(); analysis is CPU bound
	poolShutdownTimeout     = 30 * time.Second
)

// Analyzer turns a session text into a detection result. It must always
// return a well-formed result, even alongside an error.
type Analyzer interface {
	Analyze(ctx context.Context, text string, dc *model.DetectionContext) (model.DetectionResult, error)
}

// Store keeps finished analyses.
type Store interface {
	Put(ctx context.Context, a model.Analysis) error
}

// Queue defines how workers receive sessions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Session
}

// Worker processes sessions until the queue is drained.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue is closed and empty.
	Run(ctx context.Context)

	// Shutdown stops the worker without waiting for the queue to drain.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue    Queue
	analyzer Analyzer
	store    Store
	name     string

	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, analyzer Analyzer, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    queue,
		analyzer: analyzer,
		store:    store,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	sessions := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-sessions:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			if err := w.process(ctx, s); err != nil {
				w.logger.Error(ctx, "error processing session", logger.String("session", s.ID), logger.Error(err))
			}
		}
	}
}

// Shutdown stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.signalStop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) signalStop() {
	w.stopOnce.Do(func() { close(w.shutdown) })
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} { return w.done }

// process analyzes one session and stores the outcome. A failed analysis is
// still stored, with its empty result, so every session gets an answer.
func (w *InMemoryWorker) process(ctx context.Context, s model.Session) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	res, err := w.analyzer.Analyze(ctx, s.Text, s.Context)
	if err != nil && !errors.Is(err, detector.ErrInputTooShort) {
		metrics.RecordWorkerError()
		w.logger.Warn(ctx, "analysis failed, storing empty result",
			logger.String("session", s.ID),
			logger.Error(err),
		)
	}

	a := model.Analysis{SessionID: s.ID, Result: res, AnalyzedAt: time.Now()}
	if err := w.store.Put(ctx, a); err != nil {
		metrics.RecordWorkerError()
		return fmt.Errorf("store analysis %s: %w", s.ID, err)
	}
	metrics.RecordWorkerProcessed()
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	logger logger.Logger
}

// NewPool creates a new worker pool. A non-positive count picks one based on the CPU count.
func NewPool(workerCount int, queue Queue, analyzer Analyzer, store Store) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(
			queue,
			analyzer,
			store,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(0)

	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		go worker.Run(ctx)
	}
	metrics.UpdateWorkerCount(len(p.workers))
}

// Stop signals every worker to stop after its current session and waits
// for them.
func (p *Pool) Stop(ctx context.Context) error {
	var errs []error
	for _, worker := range p.workers {
		if err := worker.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	metrics.UpdateWorkerCount(0)
	return errors.Join(errs...)
}

// Shutdown closes the queue and lets the workers drain it. Workers still
// busy when the drain deadline passes are stopped.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	drainCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, worker := range p.workers {
		select {
		case <-worker.done:
		case <-drainCtx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			worker.signalStop()
			<-worker.done
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
