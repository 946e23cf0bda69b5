// Package detector sequences the zone detection pipeline: signal extraction,
// fusion, volume figures, label detection and suggestions.
package detector

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/signals"
	"github.com/okian/swimzones/internal/domain/suggest"
	"github.com/okian/swimzones/internal/domain/tuning"
	"github.com/okian/swimzones/internal/domain/volume"
	"github.com/okian/swimzones/pkg/logger"
	"github.com/okian/swimzones/pkg/metrics"
)

// Detector analyzes session text. It holds only immutable tables and may be
// shared by concurrent callers.
type Detector struct {
	lx         *lexicon.Lexicon
	t          tuning.Tuning
	log        logger.Logger
	extractors []signals.Extractor
}

// New creates a detector.
func New(opts ...Option) *Detector {
	d := &Detector{
		lx:  lexicon.English(),
		t:   tuning.Default(),
		log: logger.Named("detector"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if len(d.extractors) == 0 {
		d.extractors = []signals.Extractor{
			signals.NewKeywords(d.lx, d.t),
			signals.NewMetrics(d.lx, d.t),
			signals.NewPriors(d.lx, d.t),
		}
	}
	return d
}

// Lexicon returns the locale tables in use.
func (d *Detector) Lexicon() *lexicon.Lexicon { return d.lx }

// Analyze runs the pipeline. Text shorter than the minimum length yields the
// empty result with ErrInputTooShort; a failing stage yields the empty result
// with ErrInternalAnalysis.
func (d *Detector) Analyze(ctx context.Context, text string, dc *model.DetectionContext) (res model.DetectionResult, err error) {
	start := time.Now()
	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < d.t.MinTextLength {
		metrics.RecordDetection(metrics.OutcomeShortInput)
		d.log.Debug(ctx, "input too short, skipping analysis",
			logger.Int("length", n),
			logger.Int("min_length", d.t.MinTextLength),
		)
		return model.EmptyResult(), ErrInputTooShort
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordDetection(metrics.OutcomeError)
			d.log.Error(ctx, "zone analysis failed",
				logger.Any("panic", r),
				logger.Int("length", len(text)),
				logger.String("locale", d.lx.Locale),
			)
			res, err = model.EmptyResult(), fmt.Errorf("%w: %v", ErrInternalAnalysis, r)
		}
	}()

	res = d.run(lexicon.Prepare(text), dc)

	metrics.RecordDetection(metrics.OutcomeOK)
	metrics.RecordDetectionLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordOverallConfidence(res.OverallConfidence)
	for _, z := range res.DetectedZones {
		metrics.RecordZoneDetected(string(z.Zone))
	}
	return res, nil
}

// Detect is Analyze without the error: it always returns a well-formed result.
func (d *Detector) Detect(ctx context.Context, text string, dc *model.DetectionContext) model.DetectionResult {
	res, _ := d.Analyze(ctx, text, dc)
	return res
}

func (d *Detector) run(doc lexicon.Document, dc *model.DetectionContext) model.DetectionResult {
	groups := make([][]model.ZoneSignal, 0, len(d.extractors))
	for _, e := range d.extractors {
		groups = append(groups, e.Extract(doc, dc))
	}
	zones := signals.Merge(d.t.MaxZones, groups...)

	total := volume.TotalDistance(d.lx, doc)
	dist := volume.Distribution(zones)
	strokes := signals.Strokes(d.lx, doc)
	intensities := signals.Intensities(d.lx, doc)

	res := model.DetectionResult{
		DetectedZones:            zones,
		TotalDistanceMeters:      total,
		EstimatedDurationMinutes: volume.EstimateDuration(total, d.t.PaceMinutesPerKM),
		ZoneDistribution:         dist,
		ZoneBreakdown:            volume.Breakdown(total, dist),
		DetectedStrokes:          strokes,
		DetectedIntensities:      intensities,
	}
	res.OverallConfidence = volume.OverallConfidence(volume.Evidence{
		Zones:       len(zones) > 0,
		Distance:    total > 0,
		Strokes:     len(strokes) > 0,
		Intensities: len(intensities) > 0,
	}, d.t.Overall)
	res.Suggestions = suggest.Generate(d.lx.Suggestions, suggest.Input{
		Zones:             zones,
		HasDistance:       d.lx.HasDistance(doc),
		Strokes:           strokes,
		ExplicitThreshold: d.t.ExplicitThreshold,
	})
	return res
}
