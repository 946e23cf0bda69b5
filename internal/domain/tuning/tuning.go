// Package tuning holds the empirically tuned constants of the zone detector.
//
// None of these values come from a physiological model; they were calibrated by
// hand against coach-written session notes and are exposed so they can be
// adjusted from configuration instead of being scattered through the algorithm.
package tuning

import "time"

// Default tuning constants.
const (
	defaultKeywordBaseWeight = 15
	defaultPatternBaseWeight = 20

	defaultSprintRepMaxMeters     = 50
	defaultVO2RepMaxMeters        = 100
	defaultSprintRepConfidence    = 80
	defaultVO2RepConfidence       = 75
	defaultThresholdRepConfidence = 70
	defaultSprintRepSeconds       = 2
	defaultVO2RepSeconds          = 3
	defaultThresholdRepSeconds    = 5

	defaultShortRest           = 30 * time.Second
	defaultMediumRest          = 60 * time.Second
	defaultShortRestConfidence = 85
	defaultMedRestConfidence   = 80

	defaultTrainingTypeConfidence = 60
	defaultPhaseConfidence        = 50

	defaultMaxZones         = 5
	defaultPaceMinutesPerKM = 25
	defaultMinTextLength    = 10

	defaultZonesWeight       = 40
	defaultDistanceWeight    = 25
	defaultStrokesWeight     = 20
	defaultIntensitiesWeight = 15

	defaultExplicitThreshold = 70
)

// Interval holds the classification of interval repeats by rep distance.
type Interval struct {
	// SprintMaxMeters: reps at or below this distance are Z5.
	SprintMaxMeters float64
	// VO2MaxMeters: reps at or below this distance (and above SprintMaxMeters) are Z4.
	// Longer reps are Z3.
	VO2MaxMeters float64

	SprintConfidence    float64
	VO2Confidence       float64
	ThresholdConfidence float64

	// Per-rep seconds used for the interval duration estimate.
	SprintRepSeconds    float64
	VO2RepSeconds       float64
	ThresholdRepSeconds float64
}

// Rest holds the classification of rest intervals.
type Rest struct {
	Short            time.Duration // at or below: Z5
	Medium           time.Duration // at or below: Z4; longer rests emit nothing
	ShortConfidence  float64
	MediumConfidence float64
}

// Overall holds the component weights of the overall confidence score.
type Overall struct {
	Zones       float64
	Distance    float64
	Strokes     float64
	Intensities float64
}

// Tuning is the complete set of detector constants.
type Tuning struct {
	// KeywordBaseWeight is the score of one literal keyword hit before the zone multiplier.
	KeywordBaseWeight float64
	// PatternBaseWeight is the score of one pattern hit; roughly 1.3x the keyword weight
	// since patterns are more specific.
	PatternBaseWeight float64

	Interval Interval
	Rest     Rest

	// Confidence of each zone implied by a training-type or phase prior.
	TrainingTypeConfidence float64
	PhaseConfidence        float64

	// MaxZones caps the merged zone list.
	MaxZones int
	// PaceMinutesPerKM converts distance to an estimated session duration.
	PaceMinutesPerKM float64
	// MinTextLength is the trimmed rune count below which analysis is skipped.
	MinTextLength int

	Overall Overall

	// ExplicitThreshold: when every detected zone scores below this, the
	// suggestion generator asks for more explicit intensity language.
	ExplicitThreshold float64
}

// Default returns the calibrated constants.
func Default() Tuning {
	return Tuning{
		KeywordBaseWeight: defaultKeywordBaseWeight,
		PatternBaseWeight: defaultPatternBaseWeight,
		Interval: Interval{
			SprintMaxMeters:     defaultSprintRepMaxMeters,
			VO2MaxMeters:        defaultVO2RepMaxMeters,
			SprintConfidence:    defaultSprintRepConfidence,
			VO2Confidence:       defaultVO2RepConfidence,
			ThresholdConfidence: defaultThresholdRepConfidence,
			SprintRepSeconds:    defaultSprintRepSeconds,
			VO2RepSeconds:       defaultVO2RepSeconds,
			ThresholdRepSeconds: defaultThresholdRepSeconds,
		},
		Rest: Rest{
			Short:            defaultShortRest,
			Medium:           defaultMediumRest,
			ShortConfidence:  defaultShortRestConfidence,
			MediumConfidence: defaultMedRestConfidence,
		},
		TrainingTypeConfidence: defaultTrainingTypeConfidence,
		PhaseConfidence:        defaultPhaseConfidence,
		MaxZones:               defaultMaxZones,
		PaceMinutesPerKM:       defaultPaceMinutesPerKM,
		MinTextLength:          defaultMinTextLength,
		Overall: Overall{
			Zones:       defaultZonesWeight,
			Distance:    defaultDistanceWeight,
			Strokes:     defaultStrokesWeight,
			Intensities: defaultIntensitiesWeight,
		},
		ExplicitThreshold: defaultExplicitThreshold,
	}
}
