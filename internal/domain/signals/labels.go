package signals

import "github.com/okian/swimzones/internal/domain/lexicon"

// Labels returns, in table order, every label with at least one whole-word
// keyword hit. The result is never nil.
func Labels(lx *lexicon.Lexicon, doc lexicon.Document, tables []lexicon.LabelTable) []string {
	out := []string{}
	for _, t := range tables {
		if lx.MatchesAny(doc, t.Keywords) {
			out = append(out, t.Label)
		}
	}
	return out
}

// Strokes detects the swimming strokes named in doc.
func Strokes(lx *lexicon.Lexicon, doc lexicon.Document) []string {
	return Labels(lx, doc, lx.Strokes)
}

// Intensities detects the perceived-intensity descriptors named in doc.
func Intensities(lx *lexicon.Lexicon, doc lexicon.Document) []string {
	return Labels(lx, doc, lx.Intensities)
}
