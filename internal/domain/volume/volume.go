// Package volume derives session volume figures from the text and the merged
// zone signals: total distance, per-zone share, duration estimate and the
// overall confidence score.
package volume

import (
	"math"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
)

const (
	percentScale = 100
	metersPerKM  = 1000
)

// TotalDistance sums every interval (reps x distance) and every standalone
// distance in meters.
func TotalDistance(lx *lexicon.Lexicon, doc lexicon.Document) float64 {
	var total float64
	for _, iv := range lx.Intervals(doc) {
		total += iv.Total()
	}
	for _, d := range lx.Distances(doc) {
		total += d.Meters
	}
	return total
}

// Distribution splits 100 percent across zones in proportion to confidence.
// It returns an empty map when no zone carries any confidence.
func Distribution(zones []model.ZoneSignal) map[model.Zone]float64 {
	out := make(map[model.Zone]float64, len(zones))
	var sum float64
	for _, z := range zones {
		sum += z.Confidence
	}
	if sum <= 0 {
		return out
	}
	for _, z := range zones {
		out[z.Zone] = z.Confidence / sum * percentScale
	}
	return out
}

// Breakdown attributes totalMeters to zones by their distribution percentage.
func Breakdown(totalMeters float64, dist map[model.Zone]float64) map[model.Zone]model.ZoneVolume {
	out := make(map[model.Zone]model.ZoneVolume, len(dist))
	for z, pct := range dist {
		out[z] = model.ZoneVolume{Distance: totalMeters * pct / percentScale, Percent: pct}
	}
	return out
}

// EstimateDuration converts meters to whole minutes at a fixed pace.
func EstimateDuration(totalMeters, paceMinutesPerKM float64) float64 {
	if totalMeters <= 0 || paceMinutesPerKM <= 0 {
		return 0
	}
	return math.Round(totalMeters / metersPerKM * paceMinutesPerKM)
}

// Evidence records which kinds of evidence a result carries.
type Evidence struct {
	Zones       bool
	Distance    bool
	Strokes     bool
	Intensities bool
}

// OverallConfidence adds the weight of each kind of evidence present, capped at 100.
func OverallConfidence(e Evidence, w tuning.Overall) float64 {
	var score float64
	if e.Zones {
		score += w.Zones
	}
	if e.Distance {
		score += w.Distance
	}
	if e.Strokes {
		score += w.Strokes
	}
	if e.Intensities {
		score += w.Intensities
	}
	return math.Max(0, math.Min(percentScale, score))
}
