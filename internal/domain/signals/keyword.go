package signals

import (
	"strings"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
)

// Keywords scores zones from literal keyword and pattern hits.
type Keywords struct {
	lx *lexicon.Lexicon
	t  tuning.Tuning
}

// NewKeywords returns a keyword extractor over lx.
func NewKeywords(lx *lexicon.Lexicon, t tuning.Tuning) *Keywords {
	return &Keywords{lx: lx, t: t}
}

// Name implements Extractor.
func (k *Keywords) Name() string { return "keyword" }

// Extract implements Extractor. Every occurrence counts, so "easy 200, easy 100"
// scores twice the single mention.
func (k *Keywords) Extract(doc lexicon.Document, _ *model.DetectionContext) []model.ZoneSignal {
	var out []model.ZoneSignal
	for _, zone := range model.AllZones {
		table, ok := k.lx.Zones[zone]
		if !ok {
			continue
		}
		var (
			score   float64
			matched []string
		)
		for _, kw := range table.Keywords {
			if n := k.lx.CountKeyword(doc, kw); n > 0 {
				score += float64(n) * k.t.KeywordBaseWeight * table.Weight
				matched = append(matched, kw)
			}
		}
		for _, re := range table.Patterns {
			hits := re.FindAllString(doc.Text, -1)
			if len(hits) == 0 {
				continue
			}
			score += float64(len(hits)) * k.t.PatternBaseWeight * table.Weight
			matched = append(matched, hits...)
		}
		score = Clamp(score)
		if score <= 0 {
			continue
		}
		out = append(out, model.ZoneSignal{
			Zone:       zone,
			Confidence: score,
			Context:    "keywords: " + strings.Join(matched, ", "),
		})
	}
	Sort(out)
	return out
}
