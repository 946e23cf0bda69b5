package lexicon

import (
	"sync"

	"github.com/okian/swimzones/internal/domain/model"
)

// Stroke and intensity labels reported by the Spanish lexicon.
const (
	EstiloLibre    = "libre"
	EstiloEspalda  = "espalda"
	EstiloBraza    = "braza"
	EstiloMariposa = "mariposa"

	IntensidadSuave    = "suave"
	IntensidadModerada = "moderada"
	IntensidadFuerte   = "fuerte"
	IntensidadMaxima   = "maxima"
)

var (
	spanishOnce sync.Once
	spanish     *Lexicon
)

// Spanish returns the shared Spanish lexicon. Keywords are written with
// accents; matching is accent-insensitive.
func Spanish() *Lexicon {
	spanishOnce.Do(func() { spanish = build(spanishDefinition()) })
	return spanish
}

func spanishDefinition() definition {
	return definition{
		locale: "es",
		zones: map[model.Zone]zoneDef{
			model.Z1: {
				label: "Recuperación",
				keywords: []string{
					"suave", "recuperación", "calentamiento", "vuelta a la calma", "enfriamiento",
					"relajado", "soltar", "técnica", "ejercicios técnicos",
				},
				patterns: []string{
					`\bz(?:ona)?\s*1\b`,
					`\b(?:nado|ritmo|patada)\s+suave\b`,
				},
				weight: 1.0,
			},
			model.Z2: {
				label: "Aeróbico",
				keywords: []string{
					"aeróbico", "aeróbica", "resistencia", "continuo", "moderado", "constante",
					"cómodo", "base",
				},
				patterns: []string{
					`\bz(?:ona)?\s*2\b`,
					`\b(?:ritmo|nado)\s+(?:aerobico|constante)\b`,
				},
				weight: 1.1,
			},
			model.Z3: {
				label: "Umbral",
				keywords: []string{
					"umbral", "tempo", "css", "umbral anaeróbico", "crucero",
				},
				patterns: []string{
					`\bz(?:ona)?\s*3\b`,
					`\britmo\s+(?:de\s+)?(?:umbral|css|crucero)\b`,
				},
				weight: 1.2,
			},
			model.Z4: {
				label: "VO2max",
				keywords: []string{
					"vo2", "vo2max", "fuerte", "ritmo de competición", "anaeróbico",
					"tolerancia al lactato", "rápido", "intenso",
				},
				patterns: []string{
					`\bz(?:ona)?\s*4\b`,
					`\britmo\s+(?:de\s+)?(?:competicion|carrera|prueba)\b`,
					`\bvo2\s*max\b`,
				},
				weight: 1.3,
			},
			model.Z5: {
				label: "Velocidad",
				keywords: []string{
					"sprint", "sprints", "máximo", "máxima", "a tope", "explosivo",
					"velocidad máxima", "esprint",
				},
				patterns: []string{
					`\bz(?:ona)?\s*5\b`,
					`\b(?:esfuerzo|velocidad)\s+maxim[oa]\b`,
					`\b100\s*%`,
				},
				weight: 1.4,
			},
		},
		strokes: []LabelTable{
			{Label: EstiloLibre, Keywords: []string{"libre", "crol", "crawl"}},
			{Label: EstiloEspalda, Keywords: []string{"espalda"}},
			{Label: EstiloBraza, Keywords: []string{"braza", "pecho"}},
			{Label: EstiloMariposa, Keywords: []string{"mariposa", "delfín"}},
		},
		intensities: []LabelTable{
			{Label: IntensidadSuave, Keywords: []string{"suave", "relajado", "ligero", "recuperación"}},
			{Label: IntensidadModerada, Keywords: []string{"moderado", "moderada", "constante", "cómodo", "controlado"}},
			{Label: IntensidadFuerte, Keywords: []string{"fuerte", "intenso", "rápido", "umbral"}},
			{Label: IntensidadMaxima, Keywords: []string{"máximo", "máxima", "a tope", "sprint", "sprints", "explosivo"}},
		},
		trainingTypes: map[string][]model.Zone{
			"resistencia":     {model.Z1, model.Z2},
			"endurance":       {model.Z1, model.Z2},
			"aerobico":        {model.Z2},
			"recuperacion":    {model.Z1},
			"tecnica":         {model.Z1, model.Z2},
			"umbral":          {model.Z3},
			"tempo":           {model.Z3},
			"ritmo-de-prueba": {model.Z4},
			"vo2max":          {model.Z4},
			"velocidad":       {model.Z4, model.Z5},
			"sprint":          {model.Z4, model.Z5},
		},
		phases: map[string][]model.Zone{
			"preparacion-general":    {model.Z1, model.Z2},
			"preparacion":            {model.Z1, model.Z2},
			"preparacion-especifica": {model.Z2, model.Z3},
			"precompeticion":         {model.Z3, model.Z4},
			"competicion":            {model.Z4, model.Z5},
			"puesta-a-punto":         {model.Z1, model.Z4},
			"transicion":             {model.Z1},
		},
		units: units{
			meters:     []string{"m", "mts", "metro", "metros"},
			kilometers: []string{"km", "kms", "kilómetro", "kilómetros"},
			seconds:    []string{"s", "seg", "segs", "segundo", "segundos", `"`},
			minutes:    []string{"min", "mins", "minuto", "minutos", "'"},
			rest:       []string{"descanso", "pausa", "recuperación"},
			restJoin:   []string{"de"},
			repeat:     []string{"por"},
			decimal:    ',',
		},
		suggestions: Suggestions{
			TagZones:          "No se detectaron zonas de intensidad. Indica zonas (Z1-Z5) o palabras como suave, umbral o sprint.",
			AddWarmUp:         "Considera añadir un calentamiento suave (Z1) antes de la serie principal.",
			AddCoolDown:       "Se detectó trabajo de alta intensidad sin vuelta a la calma. Termina con nado suave en Z1.",
			SpecifyDistances:  "Especifica las distancias (por ejemplo 400m o 10x100m) para calcular volumen y duración.",
			NameStrokes:       "Indica los estilos utilizados (libre, espalda, braza, mariposa).",
			ExplicitIntensity: "La intensidad es ambigua. Usa términos explícitos como Z4, ritmo umbral o a tope.",
		},
	}
}
