package detector

import (
	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/signals"
	"github.com/okian/swimzones/internal/domain/tuning"
	"github.com/okian/swimzones/pkg/logger"
)

// Option applies a configuration option to the Detector.
type Option func(*Detector)

// WithLexicon sets the locale tables. Defaults to English.
func WithLexicon(lx *lexicon.Lexicon) Option {
	return func(d *Detector) {
		if lx != nil {
			d.lx = lx
		}
	}
}

// WithTuning replaces the calibrated constants.
func WithTuning(t tuning.Tuning) Option {
	return func(d *Detector) {
		d.t = t
	}
}

// WithLogger sets the logger used for failures and short inputs.
func WithLogger(l logger.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.log = l
		}
	}
}

// WithExtractors replaces the default keyword, metric and context extractors.
func WithExtractors(extractors ...signals.Extractor) Option {
	return func(d *Detector) {
		if len(extractors) > 0 {
			d.extractors = extractors
		}
	}
}
