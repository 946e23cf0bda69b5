package service

import (
	"context"
	"sync/atomic"

	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/debounce"
	"github.com/okian/swimzones/pkg/metrics"
)

// ResultFunc receives the analysis of the text that was current when the
// input paused.
type ResultFunc func(text string, res model.DetectionResult)

// LiveAnalyzer analyzes one text field as it is being edited. Each Update
// replaces the pending analysis, so a burst of edits costs one detection.
type LiveAnalyzer struct {
	svc       *Service
	db        *debounce.Debouncer
	onResult  ResultFunc
	analyzing atomic.Bool
}

// NewLiveAnalyzer creates a live analyzer that delivers results to onResult
// from the debouncer's goroutine.
func (s *Service) NewLiveAnalyzer(onResult ResultFunc) *LiveAnalyzer {
	return &LiveAnalyzer{
		svc: s,
		db: debounce.New(
			debounce.WithDelay(s.debounce),
			debounce.WithHooks(metrics.RecordDebounceCoalesced, metrics.RecordDebounceFired),
		),
		onResult: onResult,
	}
}

// Update schedules an analysis of text. It returns false after Stop.
func (l *LiveAnalyzer) Update(ctx context.Context, text string, dc *model.DetectionContext) bool {
	metrics.RecordDebounceTrigger()
	return l.db.Trigger(func() {
		l.analyzing.Store(true)
		defer l.analyzing.Store(false)

		res, _ := l.svc.Analyze(ctx, text, dc)
		if l.onResult != nil {
			l.onResult(text, res)
		}
	})
}

// Pending reports whether an analysis is scheduled but has not started.
func (l *LiveAnalyzer) Pending() bool { return l.db.Pending() }

// Analyzing reports whether an analysis is running right now.
func (l *LiveAnalyzer) Analyzing() bool { return l.analyzing.Load() }

// Flush runs the pending analysis, if any, on the calling goroutine.
func (l *LiveAnalyzer) Flush() bool { return l.db.Flush() }

// Cancel drops the pending analysis without running it.
func (l *LiveAnalyzer) Cancel() bool { return l.db.Cancel() }

// Stop drops the pending analysis and rejects further updates.
func (l *LiveAnalyzer) Stop() { l.db.Stop() }
