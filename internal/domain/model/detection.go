package model

import "time"

// DetectionContext is optional caller-supplied information about the session.
type DetectionContext struct {
	TrainingType  string   `json:"trainingType,omitempty"`
	Phase         string   `json:"phase,omitempty"`
	Competition   bool     `json:"competition,omitempty"`
	PreviousZones []string `json:"previousZones,omitempty"`
}

// ZoneVolume is the share of the session volume attributed to one zone.
type ZoneVolume struct {
	Distance float64 `json:"distance"`
	Percent  float64 `json:"percent"`
}

// DetectionResult is the structured output of one analysis.
type DetectionResult struct {
	DetectedZones            []ZoneSignal        `json:"detectedZones"`
	TotalDistanceMeters      float64             `json:"totalDistanceMeters"`
	EstimatedDurationMinutes float64             `json:"estimatedDurationMinutes"`
	ZoneDistribution         map[Zone]float64    `json:"zoneDistribution"`
	ZoneBreakdown            map[Zone]ZoneVolume `json:"zoneBreakdown"`
	DetectedStrokes          []string            `json:"detectedStrokes"`
	DetectedIntensities      []string            `json:"detectedIntensities"`
	OverallConfidence        float64             `json:"overallConfidence"`
	Suggestions              []string            `json:"suggestions"`
}

// EmptyResult returns the neutral result: no zones, zero volume, no suggestions.
// Collections are allocated so the value serializes as [] and {} rather than null.
func EmptyResult() DetectionResult {
	return DetectionResult{
		DetectedZones:       []ZoneSignal{},
		ZoneDistribution:    map[Zone]float64{},
		ZoneBreakdown:       map[Zone]ZoneVolume{},
		DetectedStrokes:     []string{},
		DetectedIntensities: []string{},
		Suggestions:         []string{},
	}
}

// Clone returns a deep copy of r. Nil collections stay nil.
func (r DetectionResult) Clone() DetectionResult {
	out := r
	if r.DetectedZones != nil {
		out.DetectedZones = make([]ZoneSignal, len(r.DetectedZones))
		for i, s := range r.DetectedZones {
			if s.Metrics != nil {
				m := *s.Metrics
				s.Metrics = &m
			}
			out.DetectedZones[i] = s
		}
	}
	if r.ZoneDistribution != nil {
		out.ZoneDistribution = make(map[Zone]float64, len(r.ZoneDistribution))
		for z, v := range r.ZoneDistribution {
			out.ZoneDistribution[z] = v
		}
	}
	if r.ZoneBreakdown != nil {
		out.ZoneBreakdown = make(map[Zone]ZoneVolume, len(r.ZoneBreakdown))
		for z, v := range r.ZoneBreakdown {
			out.ZoneBreakdown[z] = v
		}
	}
	out.DetectedStrokes = cloneStrings(r.DetectedStrokes)
	out.DetectedIntensities = cloneStrings(r.DetectedIntensities)
	out.Suggestions = cloneStrings(r.Suggestions)
	return out
}

// HasStroke reports whether label is among the detected strokes.
func (r DetectionResult) HasStroke(label string) bool { return contains(r.DetectedStrokes, label) }

// HasIntensity reports whether label is among the detected intensity descriptors.
func (r DetectionResult) HasIntensity(label string) bool {
	return contains(r.DetectedIntensities, label)
}

// Signal returns the merged signal for z, if detected.
func (r DetectionResult) Signal(z Zone) (ZoneSignal, bool) {
	for _, s := range r.DetectedZones {
		if s.Zone == z {
			return s, true
		}
	}
	return ZoneSignal{}, false
}

func cloneStrings(list []string) []string {
	if list == nil {
		return nil
	}
	return append(make([]string, 0, len(list)), list...)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Session is a training-session description submitted for batch analysis.
type Session struct {
	ID          string            `json:"id"`
	Text        string            `json:"text"`
	Context     *DetectionContext `json:"context,omitempty"`
	SubmittedAt time.Time         `json:"-"`
}

// Analysis pairs a session with its detection result.
type Analysis struct {
	SessionID  string          `json:"id"`
	Result     DetectionResult `json:"result"`
	AnalyzedAt time.Time       `json:"analyzedAt"`
}
