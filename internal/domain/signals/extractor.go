// Package signals turns a prepared session text into candidate zone signals and
// fuses the candidates of several extractors into one ranked list.
package signals

import (
	"sort"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
)

const (
	minConfidence = 0
	maxConfidence = 100
)

// Extractor produces zone signals from one kind of evidence.
// Implementations must not retain doc or dc.
type Extractor interface {
	Name() string
	Extract(doc lexicon.Document, dc *model.DetectionContext) []model.ZoneSignal
}

// Clamp bounds a confidence to [0,100].
func Clamp(v float64) float64 {
	switch {
	case v < minConfidence:
		return minConfidence
	case v > maxConfidence:
		return maxConfidence
	default:
		return v
	}
}

// Sort orders signals by confidence, highest first. Equal confidences keep zone
// order so the output is deterministic.
func Sort(sigs []model.ZoneSignal) {
	sort.SliceStable(sigs, func(i, j int) bool {
		if sigs[i].Confidence != sigs[j].Confidence {
			return sigs[i].Confidence > sigs[j].Confidence
		}
		return sigs[i].Zone.Index() < sigs[j].Zone.Index()
	})
}
