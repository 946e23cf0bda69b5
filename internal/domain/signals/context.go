package signals

import (
	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
)

// Priors maps the caller's training type and phase to expected zones.
type Priors struct {
	lx *lexicon.Lexicon
	t  tuning.Tuning
}

// NewPriors returns a context extractor over lx.
func NewPriors(lx *lexicon.Lexicon, t tuning.Tuning) *Priors {
	return &Priors{lx: lx, t: t}
}

// Name implements Extractor.
func (p *Priors) Name() string { return "context" }

// Extract implements Extractor. The text is not consulted.
func (p *Priors) Extract(_ lexicon.Document, dc *model.DetectionContext) []model.ZoneSignal {
	if dc == nil {
		return nil
	}
	var out []model.ZoneSignal
	if zones, ok := p.lx.TrainingTypeZones(dc.TrainingType); ok {
		for _, z := range zones {
			out = append(out, model.ZoneSignal{
				Zone:       z,
				Confidence: Clamp(p.t.TrainingTypeConfidence),
				Context:    "training type " + dc.TrainingType,
			})
		}
	}
	if zones, ok := p.lx.PhaseZones(dc.Phase); ok {
		for _, z := range zones {
			out = append(out, model.ZoneSignal{
				Zone:       z,
				Confidence: Clamp(p.t.PhaseConfidence),
				Context:    "phase " + dc.Phase,
			})
		}
	}
	return out
}
