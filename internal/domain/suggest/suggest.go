// Package suggest produces advisory messages for gaps in a session description.
package suggest

import (
	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
)

// Input is what the rules look at.
type Input struct {
	Zones       []model.ZoneSignal
	HasDistance bool
	Strokes     []string
	// ExplicitThreshold: if every zone scores below it the language is ambiguous.
	ExplicitThreshold float64
}

// Generate evaluates every rule independently and returns the messages of the
// rules that fire, in a fixed reading order. The result is never nil.
func Generate(msgs lexicon.Suggestions, in Input) []string {
	out := []string{}
	hasZones := len(in.Zones) > 0
	hasZ1, hasHigh := false, false
	allWeak := hasZones
	for _, z := range in.Zones {
		if z.Zone == model.Z1 {
			hasZ1 = true
		}
		if z.Zone.IsHighIntensity() {
			hasHigh = true
		}
		if z.Confidence >= in.ExplicitThreshold {
			allWeak = false
		}
	}

	if !hasZones {
		out = append(out, msgs.TagZones)
	}
	if hasZones && !hasZ1 {
		out = append(out, msgs.AddWarmUp)
	}
	if hasHigh && !hasZ1 {
		out = append(out, msgs.AddCoolDown)
	}
	if !in.HasDistance {
		out = append(out, msgs.SpecifyDistances)
	}
	if len(in.Strokes) == 0 {
		out = append(out, msgs.NameStrokes)
	}
	if allWeak {
		out = append(out, msgs.ExplicitIntensity)
	}
	return out
}
