// Package lexicon provides the locale-specific keyword and pattern tables used
// by the zone detector, together with the numeric grammar (intervals,
// distances, rest periods) compiled from each locale's unit words.
//
// A Lexicon is immutable after construction. Compiled regular expressions carry
// no match state between calls, so one Lexicon may be shared by any number of
// concurrent detections.
package lexicon

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/okian/swimzones/internal/domain/model"
)

const (
	// Grouped thousands ("1,500" or "1.500,5") are tried before a plain decimal.
	numberExpr       = `(\d{1,3}(?:[.,]\d{3})+(?:[.,]\d+)?|\d+(?:[.,]\d+)?)`
	metersPerKM      = 1000
	secondsPerMinute = 60
)

// ZoneTable lists the evidence for one zone.
type ZoneTable struct {
	Label    string
	Keywords []string
	Patterns []*regexp.Regexp
	// Weight multiplies every keyword and pattern hit for this zone.
	Weight float64
}

// LabelTable maps a stroke or intensity label to its keywords.
type LabelTable struct {
	Label    string
	Keywords []string
}

// Suggestions holds the advisory messages in the locale's language.
type Suggestions struct {
	TagZones          string
	AddWarmUp         string
	AddCoolDown       string
	SpecifyDistances  string
	NameStrokes       string
	ExplicitIntensity string
}

// units lists the unit and marker words of a locale's numeric grammar.
type units struct {
	meters     []string
	kilometers []string
	seconds    []string
	minutes    []string
	rest       []string
	restJoin   []string // "of" in "30s of rest"
	repeat     []string // interval separators besides "x"
	decimal    byte     // decimal separator; the other of '.' and ',' groups thousands
}

// definition is the raw, uncompiled form of a locale.
type definition struct {
	locale        string
	zones         map[model.Zone]zoneDef
	strokes       []LabelTable
	intensities   []LabelTable
	trainingTypes map[string][]model.Zone
	phases        map[string][]model.Zone
	units         units
	suggestions   Suggestions
}

type zoneDef struct {
	label    string
	keywords []string
	patterns []string
	weight   float64
}

// Lexicon is the compiled, read-only table set for one locale.
type Lexicon struct {
	Locale        string
	Zones         map[model.Zone]ZoneTable
	Strokes       []LabelTable
	Intensities   []LabelTable
	TrainingTypes map[string][]model.Zone
	Phases        map[string][]model.Zone
	Suggestions   Suggestions

	words      map[string]*regexp.Regexp
	interval   *regexp.Regexp
	distance   *regexp.Regexp
	restAfter  *regexp.Regexp
	restBefore *regexp.Regexp
	timeAfter  *regexp.Regexp
	decimal    byte
	kmUnits    map[string]bool
	minUnits   map[string]bool
}

// Interval is one "reps x distance" expression found in a document.
type Interval struct {
	Reps   int
	Meters float64
	Start  int
	End    int
}

// Total returns the interval's volume in meters.
func (i Interval) Total() float64 { return float64(i.Reps) * i.Meters }

// Distance is one standalone "<number><unit>" expression.
type Distance struct {
	Meters float64
	Start  int
	End    int
}

// ForLocale returns the lexicon for a locale code such as "en", "en-US" or "es".
func ForLocale(code string) (*Lexicon, error) {
	lang := strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	switch lang {
	case "", "en":
		return English(), nil
	case "es":
		return Spanish(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocale, code)
	}
}

// Locales lists the supported locale codes.
func Locales() []string { return []string{"en", "es"} }

func build(def definition) *Lexicon {
	lx := &Lexicon{
		Locale:        def.locale,
		Zones:         make(map[model.Zone]ZoneTable, len(def.zones)),
		Strokes:       normalizeLabels(def.strokes),
		Intensities:   normalizeLabels(def.intensities),
		TrainingTypes: normalizePriors(def.trainingTypes),
		Phases:        normalizePriors(def.phases),
		Suggestions:   def.suggestions,
		words:         make(map[string]*regexp.Regexp),
		decimal:       def.units.decimal,
		kmUnits:       toSet(def.units.kilometers),
		minUnits:      toSet(def.units.minutes),
	}

	for zone, zd := range def.zones {
		table := ZoneTable{Label: zd.label, Weight: zd.weight}
		for _, kw := range zd.keywords {
			table.Keywords = append(table.Keywords, lx.addWord(kw))
		}
		for _, p := range zd.patterns {
			table.Patterns = append(table.Patterns, regexp.MustCompile(p))
		}
		lx.Zones[zone] = table
	}
	for _, t := range lx.Strokes {
		for _, kw := range t.Keywords {
			lx.addWord(kw)
		}
	}
	for _, t := range lx.Intensities {
		for _, kw := range t.Keywords {
			lx.addWord(kw)
		}
	}

	u := def.units
	distUnits := `(` + alternation(append(append([]string{}, u.kilometers...), u.meters...)) + `)`
	timeUnits := `(` + alternation(append(append([]string{}, u.seconds...), u.minutes...)) + `)`
	restWords := alternation(u.rest)
	sep := alternation(append([]string{"x", "×"}, u.repeat...))

	lx.interval = regexp.MustCompile(`\b(\d+)\s*` + sep + `\s*` + numberExpr + `(?:\s*` + distUnits + `\b)?`)
	lx.distance = regexp.MustCompile(`\b` + numberExpr + `\s*` + distUnits + `\b`)
	join := ""
	if len(u.restJoin) > 0 {
		join = `(?:` + alternation(u.restJoin) + `\s+)?`
	}
	lx.restAfter = regexp.MustCompile(`\b` + numberExpr + `\s*` + timeUnits + `\s*` + join + restWords + `\b`)
	lx.restBefore = regexp.MustCompile(`\b` + restWords + `\s*:?\s*` + numberExpr + `\s*` + timeUnits + `(?:\W|$)`)
	lx.timeAfter = regexp.MustCompile(`^\s*` + timeUnits + `(?:\W|$)`)
	if lx.decimal == 0 {
		lx.decimal = '.'
	}
	return lx
}

// addWord compiles a whole-word matcher for kw and returns its normalized form.
func (lx *Lexicon) addWord(kw string) string {
	n := Normalize(kw)
	if _, ok := lx.words[n]; !ok {
		lx.words[n] = regexp.MustCompile(wordPattern(n))
	}
	return n
}

// CountKeyword returns the number of whole-word occurrences of kw in doc.
// kw must be one of the lexicon's normalized keywords.
func (lx *Lexicon) CountKeyword(doc Document, kw string) int {
	re, ok := lx.words[kw]
	if !ok {
		re = regexp.MustCompile(wordPattern(Normalize(kw)))
	}
	return len(re.FindAllStringIndex(doc.Text, -1))
}

// MatchesAny reports whether any of the keywords appears as a whole word.
func (lx *Lexicon) MatchesAny(doc Document, keywords []string) bool {
	for _, kw := range keywords {
		if lx.CountKeyword(doc, kw) > 0 {
			return true
		}
	}
	return false
}

// Intervals returns every "reps x distance" expression, in text order.
// Sets written in time ("4x5min") are not intervals in meters and are skipped.
func (lx *Lexicon) Intervals(doc Document) []Interval {
	var out []Interval
	for _, m := range lx.interval.FindAllStringSubmatchIndex(doc.Text, -1) {
		reps, err := strconv.Atoi(doc.Text[m[2]:m[3]])
		if err != nil || reps <= 0 {
			continue
		}
		if m[6] < 0 && lx.timeAfter.MatchString(doc.Text[m[1]:]) {
			continue
		}
		dist := lx.parseNumber(doc.Text[m[4]:m[5]])
		if m[6] >= 0 && lx.kmUnits[doc.Text[m[6]:m[7]]] {
			dist *= metersPerKM
		}
		if dist <= 0 {
			continue
		}
		out = append(out, Interval{Reps: reps, Meters: dist, Start: m[0], End: m[1]})
	}
	return out
}

// Distances returns standalone distance expressions that are not part of an interval.
func (lx *Lexicon) Distances(doc Document) []Distance {
	intervals := lx.Intervals(doc)
	var out []Distance
	for _, m := range lx.distance.FindAllStringSubmatchIndex(doc.Text, -1) {
		if insideAny(m[0], m[1], intervals) {
			continue
		}
		meters := lx.parseNumber(doc.Text[m[2]:m[3]])
		if lx.kmUnits[doc.Text[m[4]:m[5]]] {
			meters *= metersPerKM
		}
		if meters <= 0 {
			continue
		}
		out = append(out, Distance{Meters: meters, Start: m[0], End: m[1]})
	}
	return out
}

// HasDistance reports whether doc contains any distance or interval expression.
func (lx *Lexicon) HasDistance(doc Document) bool {
	return lx.distance.MatchString(doc.Text) || len(lx.Intervals(doc)) > 0
}

// Rests returns the rest periods written as "20s rest" or "rest 1 min".
// A number with rest words on both sides is counted once.
func (lx *Lexicon) Rests(doc Document) []time.Duration {
	var out []time.Duration
	var taken [][2]int
	for _, m := range lx.restAfter.FindAllStringSubmatchIndex(doc.Text, -1) {
		out = append(out, lx.toDuration(doc.Text[m[2]:m[3]], doc.Text[m[4]:m[5]]))
		taken = append(taken, [2]int{m[2], m[3]})
	}
	for _, m := range lx.restBefore.FindAllStringSubmatchIndex(doc.Text, -1) {
		if overlapsAny(m[2], m[3], taken) {
			continue
		}
		out = append(out, lx.toDuration(doc.Text[m[2]:m[3]], doc.Text[m[4]:m[5]]))
	}
	return out
}

func overlapsAny(start, end int, spans [][2]int) bool {
	for _, sp := range spans {
		if start < sp[1] && sp[0] < end {
			return true
		}
	}
	return false
}

func (lx *Lexicon) toDuration(num, unit string) time.Duration {
	v := lx.parseNumber(num)
	if lx.minUnits[unit] {
		v *= secondsPerMinute
	}
	return time.Duration(v * float64(time.Second))
}

// TrainingTypeZones returns the expected zones for a training type.
func (lx *Lexicon) TrainingTypeZones(trainingType string) ([]model.Zone, bool) {
	zones, ok := lx.TrainingTypes[normalizeKey(trainingType)]
	return zones, ok
}

// PhaseZones returns the expected zones for a periodization phase.
func (lx *Lexicon) PhaseZones(phase string) ([]model.Zone, bool) {
	zones, ok := lx.Phases[normalizeKey(phase)]
	return zones, ok
}

// wordPattern matches kw as a whole word. Word boundaries are only asserted
// on sides where kw starts or ends with a word character.
func wordPattern(kw string) string {
	p := regexp.QuoteMeta(kw)
	if kw == "" {
		return p
	}
	if isWordByte(kw[0]) {
		p = `\b` + p
	}
	if isWordByte(kw[len(kw)-1]) {
		p += `\b`
	}
	return p
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// alternation builds a non-capturing group, longest alternative first so "km"
// wins over "m".
func alternation(words []string) string {
	sorted := make([]string, 0, len(words))
	for _, w := range words {
		sorted = append(sorted, regexp.QuoteMeta(Normalize(w)))
	}
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return `(?:` + strings.Join(sorted, "|") + `)`
}

// parseNumber reads s with the locale's decimal separator. The other
// separator is dropped when exactly three digits follow it ("1,500" in
// English, "1.500" in Spanish); otherwise it is read as a decimal point.
func (lx *Lexicon) parseNumber(s string) float64 {
	group := byte(',')
	if lx.decimal == ',' {
		group = '.'
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == group && threeDigitsAt(s, i+1):
		case c == '.' || c == ',':
			b.WriteByte('.')
		default:
			b.WriteByte(c)
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

func threeDigitsAt(s string, i int) bool {
	if i+3 > len(s) {
		return false
	}
	for _, c := range []byte(s[i : i+3]) {
		if c < '0' || c > '9' {
			return false
		}
	}
	return i+3 == len(s) || s[i+3] < '0' || s[i+3] > '9'
}

func insideAny(start, end int, intervals []Interval) bool {
	for _, iv := range intervals {
		if start >= iv.Start && end <= iv.End {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[Normalize(w)] = true
	}
	return set
}

func normalizeLabels(tables []LabelTable) []LabelTable {
	out := make([]LabelTable, len(tables))
	for i, t := range tables {
		out[i] = LabelTable{Label: t.Label, Keywords: make([]string, len(t.Keywords))}
		for j, kw := range t.Keywords {
			out[i].Keywords[j] = Normalize(kw)
		}
	}
	return out
}

func normalizePriors(priors map[string][]model.Zone) map[string][]model.Zone {
	out := make(map[string][]model.Zone, len(priors))
	for k, zones := range priors {
		out[normalizeKey(k)] = zones
	}
	return out
}
