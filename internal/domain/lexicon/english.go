package lexicon

import (
	"sync"

	"github.com/okian/swimzones/internal/domain/model"
)

// Stroke and intensity labels reported by the English lexicon.
const (
	StrokeFreestyle    = "freestyle"
	StrokeBackstroke   = "backstroke"
	StrokeBreaststroke = "breaststroke"
	StrokeButterfly    = "butterfly"

	IntensityEasy     = "easy"
	IntensityModerate = "moderate"
	IntensityHard     = "hard"
	IntensityMaximal  = "maximal"
)

var (
	englishOnce sync.Once
	english     *Lexicon
)

// English returns the shared English lexicon.
func English() *Lexicon {
	englishOnce.Do(func() { english = build(englishDefinition()) })
	return english
}

func englishDefinition() definition {
	return definition{
		locale: "en",
		zones: map[model.Zone]zoneDef{
			model.Z1: {
				label: "Recovery",
				keywords: []string{
					"easy", "recovery", "warm-up", "warm up", "warmup", "cool-down",
					"cool down", "cooldown", "relaxed", "loosen", "technique", "drill", "drills",
				},
				patterns: []string{
					`\bz(?:one)?\s*1\b`,
					`\b(?:easy|slow|loose)\s+(?:swim|pace|kick|pull)\b`,
				},
				weight: 1.0,
			},
			model.Z2: {
				label: "Aerobic",
				keywords: []string{
					"aerobic", "endurance", "steady", "moderate", "continuous", "long swim",
					"base", "comfortable",
				},
				patterns: []string{
					`\bz(?:one)?\s*2\b`,
					`\b(?:steady|aerobic)\s+(?:swim|pace|set|state)\b`,
				},
				weight: 1.1,
			},
			model.Z3: {
				label: "Threshold",
				keywords: []string{
					"threshold", "tempo", "css", "lactate threshold", "cruise",
				},
				patterns: []string{
					`\bz(?:one)?\s*3\b`,
					`\b(?:threshold|tempo|css)\s+(?:pace|set|swim|interval)s?\b`,
					`@\s*css\b`,
				},
				weight: 1.2,
			},
			model.Z4: {
				label: "VO2max",
				keywords: []string{
					"vo2", "vo2max", "hard", "race pace", "anaerobic", "lactate tolerance",
					"strong", "fast",
				},
				patterns: []string{
					`\bz(?:one)?\s*4\b`,
					`\b(?:race|goal)\s+pace\b`,
					`\bvo2\s*max\b`,
				},
				weight: 1.3,
			},
			model.Z5: {
				label: "Sprint",
				keywords: []string{
					"sprint", "sprints", "max", "maximal", "all out", "all-out", "explosive",
					"full speed",
				},
				patterns: []string{
					`\bz(?:one)?\s*5\b`,
					`\b(?:max|maximal|full)\s+(?:effort|speed)\b`,
					`\b100\s*%`,
				},
				weight: 1.4,
			},
		},
		strokes: []LabelTable{
			{Label: StrokeFreestyle, Keywords: []string{"freestyle", "free", "front crawl", "crawl"}},
			{Label: StrokeBackstroke, Keywords: []string{"backstroke", "back crawl", "backcrawl"}},
			{Label: StrokeBreaststroke, Keywords: []string{"breaststroke", "breast"}},
			{Label: StrokeButterfly, Keywords: []string{"butterfly", "fly"}},
		},
		intensities: []LabelTable{
			{Label: IntensityEasy, Keywords: []string{"easy", "relaxed", "gentle", "light", "recovery", "loose"}},
			{Label: IntensityModerate, Keywords: []string{"moderate", "steady", "comfortable", "controlled"}},
			{Label: IntensityHard, Keywords: []string{"hard", "strong", "fast", "tough", "threshold"}},
			{Label: IntensityMaximal, Keywords: []string{"max", "maximal", "all out", "all-out", "sprint", "sprints", "explosive", "full speed"}},
		},
		trainingTypes: map[string][]model.Zone{
			"endurance": {model.Z1, model.Z2},
			"aerobic":   {model.Z2},
			"recovery":  {model.Z1},
			"technique": {model.Z1, model.Z2},
			"threshold": {model.Z3},
			"tempo":     {model.Z3},
			"race-pace": {model.Z4},
			"vo2max":    {model.Z4},
			"speed":     {model.Z4, model.Z5},
			"sprint":    {model.Z4, model.Z5},
		},
		phases: map[string][]model.Zone{
			"general-preparation":  {model.Z1, model.Z2},
			"preparation":          {model.Z1, model.Z2},
			"specific-preparation": {model.Z2, model.Z3},
			"pre-competition":      {model.Z3, model.Z4},
			"competition":          {model.Z4, model.Z5},
			"taper":                {model.Z1, model.Z4},
			"transition":           {model.Z1},
		},
		units: units{
			meters:     []string{"m", "mts", "meter", "meters", "metre", "metres"},
			kilometers: []string{"km", "kms", "kilometer", "kilometers", "kilometre", "kilometres"},
			seconds:    []string{"s", "sec", "secs", "second", "seconds", `"`},
			minutes:    []string{"min", "mins", "minute", "minutes", "'"},
			rest:       []string{"rest", "recovery", "ri"},
			restJoin:   []string{"of"},
			decimal:    '.',
		},
		suggestions: Suggestions{
			TagZones:          "No intensity zones detected. Tag the session with zones (Z1-Z5) or words such as easy, threshold or sprint.",
			AddWarmUp:         "Consider adding an easy warm-up (Z1) before the main set.",
			AddCoolDown:       "High-intensity work detected without a cool-down. Finish with an easy Z1 swim.",
			SpecifyDistances:  "Specify distances (for example 400m or 10x100m) so volume and duration can be computed.",
			NameStrokes:       "Name the strokes used (freestyle, backstroke, breaststroke, butterfly).",
			ExplicitIntensity: "Intensity is ambiguous. Use explicit language such as Z4, threshold pace or all-out.",
		},
	}
}
