// Package model contains domain models passed between layers.
package model

import (
	"strings"
)

// Zone is a swim-training intensity band, Z1 (recovery) to Z5 (maximal).
type Zone string

// Intensity zones.
const (
	Z1 Zone = "Z1"
	Z2 Zone = "Z2"
	Z3 Zone = "Z3"
	Z4 Zone = "Z4"
	Z5 Zone = "Z5"
)

// AllZones lists zones from lowest to highest intensity.
var AllZones = []Zone{Z1, Z2, Z3, Z4, Z5}

// Index returns the zero-based position of z in AllZones, or -1 when unknown.
func (z Zone) Index() int {
	for i, known := range AllZones {
		if known == z {
			return i
		}
	}
	return -1
}

// Valid reports whether z is one of the five zones.
func (z Zone) Valid() bool { return z.Index() >= 0 }

// IsHighIntensity reports whether z is Z3 or above.
func (z Zone) IsHighIntensity() bool { return z.Index() >= Z3.Index() }

// ParseZone accepts "Z3", "z3" or "3".
func ParseZone(s string) (Zone, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "Z") {
		s = "Z" + s
	}
	z := Zone(s)
	return z, z.Valid()
}

// SignalMetrics carries numeric evidence derived alongside a zone signal.
// Zero fields are treated as absent.
type SignalMetrics struct {
	Distance  float64 `json:"distance,omitempty"`  // meters
	Duration  float64 `json:"duration,omitempty"`  // seconds
	Intensity string  `json:"intensity,omitempty"` // qualitative label
}

// Merge returns a copy of m with every set field of other written over it.
// Either side may be nil.
func (m *SignalMetrics) Merge(other *SignalMetrics) *SignalMetrics {
	if m == nil && other == nil {
		return nil
	}
	out := &SignalMetrics{}
	if m != nil {
		*out = *m
	}
	if other == nil {
		return out
	}
	if other.Distance != 0 {
		out.Distance = other.Distance
	}
	if other.Duration != 0 {
		out.Duration = other.Duration
	}
	if other.Intensity != "" {
		out.Intensity = other.Intensity
	}
	return out
}

// ZoneSignal is one candidate zone classification with its evidence.
type ZoneSignal struct {
	Zone       Zone           `json:"zone"`
	Confidence float64        `json:"confidence"`
	Context    string         `json:"context"`
	Metrics    *SignalMetrics `json:"metrics,omitempty"`
}
