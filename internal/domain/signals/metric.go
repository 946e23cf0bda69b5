package signals

import (
	"fmt"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
)

// Metrics classifies interval sets and rest periods by their numbers.
type Metrics struct {
	lx *lexicon.Lexicon
	t  tuning.Tuning
}

// NewMetrics returns a numeric extractor over lx.
func NewMetrics(lx *lexicon.Lexicon, t tuning.Tuning) *Metrics {
	return &Metrics{lx: lx, t: t}
}

// Name implements Extractor.
func (m *Metrics) Name() string { return "metric" }

// Extract implements Extractor. Each interval and each rest emits its own signal.
func (m *Metrics) Extract(doc lexicon.Document, _ *model.DetectionContext) []model.ZoneSignal {
	var out []model.ZoneSignal
	for _, iv := range m.lx.Intervals(doc) {
		zone, conf, perRep := m.classifyInterval(iv.Meters)
		out = append(out, model.ZoneSignal{
			Zone:       zone,
			Confidence: Clamp(conf),
			Context:    fmt.Sprintf("interval %s", doc.Text[iv.Start:iv.End]),
			Metrics: &model.SignalMetrics{
				Distance:  iv.Total(),
				Duration:  float64(iv.Reps) * perRep,
				Intensity: m.lx.Zones[zone].Label,
			},
		})
	}
	rt := m.t.Rest
	for _, rest := range m.lx.Rests(doc) {
		var (
			zone model.Zone
			conf float64
		)
		switch {
		case rest <= rt.Short:
			zone, conf = model.Z5, rt.ShortConfidence
		case rest <= rt.Medium:
			zone, conf = model.Z4, rt.MediumConfidence
		default:
			// long rests say nothing on their own
			continue
		}
		out = append(out, model.ZoneSignal{
			Zone:       zone,
			Confidence: Clamp(conf),
			Context:    fmt.Sprintf("rest %s", rest),
			Metrics:    &model.SignalMetrics{Intensity: m.lx.Zones[zone].Label},
		})
	}
	return out
}

func (m *Metrics) classifyInterval(meters float64) (model.Zone, float64, float64) {
	it := m.t.Interval
	switch {
	case meters <= it.SprintMaxMeters:
		return model.Z5, it.SprintConfidence, it.SprintRepSeconds
	case meters <= it.VO2MaxMeters:
		return model.Z4, it.VO2Confidence, it.VO2RepSeconds
	default:
		return model.Z3, it.ThresholdConfidence, it.ThresholdRepSeconds
	}
}
