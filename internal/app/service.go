// Package service wires the zone detector into a batch pipeline and into
// debounced live analyzers.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	sessionqueue "github.com/okian/swimzones/internal/adapters/mq/queue"
	workerpool "github.com/okian/swimzones/internal/adapters/mq/worker"
	repository "github.com/okian/swimzones/internal/adapters/repository"
	"github.com/okian/swimzones/internal/domain/dedupe"
	"github.com/okian/swimzones/internal/domain/detector"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/logger"
	"github.com/okian/swimzones/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerMultiplier = 2
	defaultQueueSize        = 1024
	defaultDedupeSize       = 50000
	defaultCacheSize        = 512
	defaultDebounce         = 300 * time.Millisecond
)

// Service runs sessions through the detector, either one at a time through
// Analyze or asynchronously through Submit and the worker pool.
type Service struct {
	mu sync.RWMutex

	// Core components
	detector *detector.Detector
	cache    *lru.Cache[string, model.DetectionResult]
	store    repository.Store
	deduper  dedupe.Deduper
	queue    *sessionqueue.InMemoryQueue
	pool     *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	cacheSize   int
	debounce    time.Duration

	// State
	started bool
	pending sync.WaitGroup
	order   []string

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * defaultWorkerMultiplier,
		queueSize:   defaultQueueSize,
		dedupeSize:  defaultDedupeSize,
		cacheSize:   defaultCacheSize,
		debounce:    defaultDebounce,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.detector == nil {
		s.detector = detector.New()
	}
	if s.cacheSize > 0 {
		// lru.New only fails on a non-positive size.
		s.cache, _ = lru.New[string, model.DetectionResult](s.cacheSize)
	}

	return s
}

// Detector returns the detector the service analyzes with.
func (s *Service) Detector() *detector.Detector { return s.detector }

// Start initializes the batch pipeline. Analyze and live analyzers work
// without it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.store = repository.NewMemoryStore()
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = sessionqueue.NewInMemoryQueue(sessionqueue.WithCapacity(s.queueSize))
	s.order = nil

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s, &completionStore{store: s.store, done: s.pending.Done})
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "swimzones service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.String("locale", s.detector.Lexicon().Locale),
	)

	return nil
}

// Stop closes the queue and waits for the workers to drain it.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	s.logger.Info(ctx, "stopping swimzones service...")
	err := s.pool.Shutdown(ctx)
	s.started = false
	s.logger.Info(ctx, "swimzones service stopped", logger.Int("analyses", s.store.Count(ctx)))
	return err
}

// Submit queues a session for asynchronous analysis and returns its ID.
// A session without an ID gets a random UUID.
func (s *Service) Submit(ctx context.Context, session model.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return "", ErrNotStarted
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if s.deduper.SeenAndRecord(ctx, session.ID) {
		s.logger.Debug(ctx, "duplicate session skipped", logger.String("session", session.ID))
		return session.ID, fmt.Errorf("%w: %s", ErrDuplicateSession, session.ID)
	}
	session.SubmittedAt = time.Now()

	s.pending.Add(1)
	if err := s.queue.Enqueue(ctx, session); err != nil {
		s.pending.Done()
		s.deduper.Unrecord(ctx, session.ID)
		return session.ID, fmt.Errorf("submit %s: %w", session.ID, err)
	}
	s.order = append(s.order, session.ID)

	return session.ID, nil
}

// Wait blocks until every submitted session has been analyzed or ctx ends.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result returns the analysis of one submitted session.
func (s *Service) Result(ctx context.Context, id string) (model.Analysis, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()

	if store == nil {
		return model.Analysis{}, ErrNotStarted
	}
	return store.Get(ctx, id)
}

// Results returns the finished analyses in submission order. Sessions still
// in flight are left out.
func (s *Service) Results(ctx context.Context) []model.Analysis {
	s.mu.RLock()
	store := s.store
	order := append([]string(nil), s.order...)
	s.mu.RUnlock()

	if store == nil {
		return nil
	}

	out := make([]model.Analysis, 0, len(order))
	for _, id := range order {
		a, err := store.Get(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Analyze runs one detection synchronously. Results are memoized by locale,
// context and text. Each call returns its own copy, so callers may modify it.
func (s *Service) Analyze(ctx context.Context, text string, dc *model.DetectionContext) (model.DetectionResult, error) {
	if s.cache == nil {
		return s.detector.Analyze(ctx, text, dc)
	}

	key := s.cacheKey(text, dc)
	if res, ok := s.cache.Get(key); ok {
		metrics.RecordCacheHit()
		return res.Clone(), nil
	}
	metrics.RecordCacheMiss()

	res, err := s.detector.Analyze(ctx, text, dc)
	if err == nil {
		s.cache.Add(key, res.Clone())
	}
	return res, err
}

// cacheKey covers every input the extractors read.
func (s *Service) cacheKey(text string, dc *model.DetectionContext) string {
	var tt, phase string
	if dc != nil {
		tt, phase = dc.TrainingType, dc.Phase
	}
	return strings.Join([]string{s.detector.Lexicon().Locale, tt, phase, text}, "\x1f")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"cacheSize":   s.cacheSize,
		"locale":      s.detector.Lexicon().Locale,
	}
	if s.cache != nil {
		stats["cached"] = s.cache.Len()
	}

	if s.store != nil {
		stats["submitted"] = len(s.order)
		stats["analyzed"] = s.store.Count(ctx)
	}
	if s.started {
		queueLen := s.queue.Len(ctx)
		stats["queueLength"] = queueLen
		metrics.UpdateQueueSize(queueLen)
	}

	return stats
}

// completionStore marks a submitted session finished once its analysis has
// been handed to the store, whether or not the write succeeded.
type completionStore struct {
	store repository.Store
	done  func()
}

func (c *completionStore) Put(ctx context.Context, a model.Analysis) error {
	defer c.done()
	return c.store.Put(ctx, a)
}
