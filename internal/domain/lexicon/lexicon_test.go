package lexicon

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/swimzones/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given text with accents and mixed case", t, func() {
		Convey("Then diacritics are folded and the text is lower-cased", func() {
			So(Normalize("Técnica SUAVE"), ShouldEqual, "tecnica suave")
			So(Normalize("Delfín, Competición"), ShouldEqual, "delfin, competicion")
		})

		Convey("Then context keys are hyphenated and stripped of phase markers", func() {
			So(normalizeKey("Competition Phase"), ShouldEqual, "competition")
			So(normalizeKey("pre_competition"), ShouldEqual, "pre-competition")
			So(normalizeKey("  Race Pace "), ShouldEqual, "race-pace")
			So(normalizeKey("Fase de Competición"), ShouldEqual, "competicion")
		})
	})
}

func TestForLocale(t *testing.T) {
	Convey("Given locale codes", t, func() {
		Convey("When the code is empty or English", func() {
			for _, code := range []string{"", "en", "en-US", "EN_gb"} {
				lx, err := ForLocale(code)
				So(err, ShouldBeNil)
				So(lx, ShouldEqual, English())
			}
		})

		Convey("When the code is Spanish", func() {
			lx, err := ForLocale("es-AR")
			So(err, ShouldBeNil)
			So(lx, ShouldEqual, Spanish())
			So(lx.Locale, ShouldEqual, "es")
		})

		Convey("When the code is unknown", func() {
			lx, err := ForLocale("fr")
			So(lx, ShouldBeNil)
			So(errors.Is(err, ErrUnknownLocale), ShouldBeTrue)
		})
	})
}

func TestZoneTables(t *testing.T) {
	Convey("Given every supported locale", t, func() {
		for _, code := range Locales() {
			lx, err := ForLocale(code)
			So(err, ShouldBeNil)

			Convey("Then "+code+" defines evidence for all five zones", func() {
				So(len(lx.Zones), ShouldEqual, len(model.AllZones))
				for _, z := range model.AllZones {
					table := lx.Zones[z]
					So(table.Label, ShouldNotBeEmpty)
					So(table.Keywords, ShouldNotBeEmpty)
					So(table.Patterns, ShouldNotBeEmpty)
					So(table.Weight, ShouldBeGreaterThanOrEqualTo, 1.0)
				}
			})

			Convey("Then "+code+" weights grow with intensity", func() {
				for i := 1; i < len(model.AllZones); i++ {
					So(lx.Zones[model.AllZones[i]].Weight, ShouldBeGreaterThan, lx.Zones[model.AllZones[i-1]].Weight)
				}
			})

			Convey("Then "+code+" has every suggestion message", func() {
				s := lx.Suggestions
				for _, msg := range []string{s.TagZones, s.AddWarmUp, s.AddCoolDown, s.SpecifyDistances, s.NameStrokes, s.ExplicitIntensity} {
					So(msg, ShouldNotBeEmpty)
				}
			})
		}
	})
}

func TestCountKeyword(t *testing.T) {
	Convey("Given the English lexicon", t, func() {
		lx := English()

		Convey("When a keyword appears several times", func() {
			doc := Prepare("Easy 200 then EASY 100 kick")
			So(lx.CountKeyword(doc, "easy"), ShouldEqual, 2)
		})

		Convey("When a keyword only appears inside a longer word", func() {
			doc := Prepare("400 freestyle")
			So(lx.CountKeyword(doc, "free"), ShouldEqual, 0)
			So(lx.CountKeyword(doc, "freestyle"), ShouldEqual, 1)
		})

		Convey("When a keyword is hyphenated", func() {
			doc := Prepare("Warm-up 300, cool-down 200")
			So(lx.CountKeyword(doc, "warm-up"), ShouldEqual, 1)
			So(lx.MatchesAny(doc, []string{"cooldown", "cool-down"}), ShouldBeTrue)
		})
	})

	Convey("Given the Spanish lexicon", t, func() {
		lx := Spanish()

		Convey("When the text omits accents the keyword still matches", func() {
			doc := Prepare("Tecnica de brazada y nado suave")
			So(lx.CountKeyword(doc, Normalize("técnica")), ShouldEqual, 1)
			So(lx.CountKeyword(doc, "suave"), ShouldEqual, 1)
		})
	})
}

func TestIntervalsAndDistances(t *testing.T) {
	Convey("Given the English lexicon", t, func() {
		lx := English()

		Convey("When the text holds an interval set", func() {
			doc := Prepare("10x50m sprint")
			intervals := lx.Intervals(doc)
			So(intervals, ShouldHaveLength, 1)
			So(intervals[0].Reps, ShouldEqual, 10)
			So(intervals[0].Meters, ShouldEqual, 50)
			So(intervals[0].Total(), ShouldEqual, 500)
		})

		Convey("When the interval is written in kilometers", func() {
			intervals := lx.Intervals(Prepare("4 x 1km steady"))
			So(intervals, ShouldHaveLength, 1)
			So(intervals[0].Meters, ShouldEqual, 1000)
		})

		Convey("When standalone distances sit next to an interval", func() {
			doc := Prepare("400m easy then 10 x 50m hard")
			distances := lx.Distances(doc)
			So(distances, ShouldHaveLength, 1)
			So(distances[0].Meters, ShouldEqual, 400)
			So(lx.HasDistance(doc), ShouldBeTrue)
		})

		Convey("When a distance uses a decimal comma", func() {
			distances := lx.Distances(Prepare("1,5 km continuous"))
			So(distances, ShouldHaveLength, 1)
			So(distances[0].Meters, ShouldEqual, 1500)
		})

		Convey("When minutes follow a number", func() {
			So(lx.Distances(Prepare("swim 20 min steady")), ShouldBeEmpty)
		})

		Convey("When the repeats are timed", func() {
			So(lx.Intervals(Prepare("4x5min")), ShouldBeEmpty)
			So(lx.Intervals(Prepare("3 x 10 min easy")), ShouldBeEmpty)
			So(lx.Intervals(Prepare("6x30 sec hard")), ShouldBeEmpty)
			So(lx.Intervals(Prepare("8x50 sprint")), ShouldHaveLength, 1)
		})

		Convey("When thousands are grouped with a comma", func() {
			distances := lx.Distances(Prepare("1,500m steady"))
			So(distances, ShouldHaveLength, 1)
			So(distances[0].Meters, ShouldEqual, 1500)

			intervals := lx.Intervals(Prepare("3 x 1,000 pull"))
			So(intervals, ShouldHaveLength, 1)
			So(intervals[0].Meters, ShouldEqual, 1000)
		})

		Convey("When the text has no numbers", func() {
			So(lx.HasDistance(Prepare("just swim easily")), ShouldBeFalse)
		})
	})

	Convey("Given the Spanish lexicon", t, func() {
		lx := Spanish()

		Convey("When the interval uses the word separator", func() {
			intervals := lx.Intervals(Prepare("4 por 100 metros fuerte"))
			So(intervals, ShouldHaveLength, 1)
			So(intervals[0].Reps, ShouldEqual, 4)
			So(intervals[0].Meters, ShouldEqual, 100)
		})

		Convey("When the comma is the decimal separator", func() {
			distances := lx.Distances(Prepare("1,5km suave y 1.500m continuo"))
			So(distances, ShouldHaveLength, 2)
			So(distances[0].Meters, ShouldEqual, 1500)
			So(distances[1].Meters, ShouldEqual, 1500)
		})
	})
}

func TestRests(t *testing.T) {
	Convey("Given the English lexicon", t, func() {
		lx := English()

		Convey("When rest follows the duration", func() {
			So(lx.Rests(Prepare("10x50m sprint 20s rest")), ShouldResemble, []time.Duration{20 * time.Second})
			So(lx.Rests(Prepare("8x100 on 30 sec of rest")), ShouldResemble, []time.Duration{30 * time.Second})
		})

		Convey("When rest precedes the duration", func() {
			So(lx.Rests(Prepare("5x200 threshold, rest: 1 min")), ShouldResemble, []time.Duration{time.Minute})
		})

		Convey("When rest words sit on both sides of one duration", func() {
			So(lx.Rests(Prepare("rest 20s rest")), ShouldResemble, []time.Duration{20 * time.Second})
			So(lx.Rests(Prepare("20s rest, rest 1 min")), ShouldResemble, []time.Duration{20 * time.Second, time.Minute})
		})

		Convey("When no rest is written", func() {
			So(lx.Rests(Prepare("400 easy freestyle")), ShouldBeEmpty)
		})
	})

	Convey("Given the Spanish lexicon", t, func() {
		So(Spanish().Rests(Prepare("6x50 a tope, 45 segundos de descanso")), ShouldResemble, []time.Duration{45 * time.Second})
	})
}

func TestContextPriors(t *testing.T) {
	Convey("Given training types and phases", t, func() {
		Convey("Then English lookups ignore case and phase markers", func() {
			zones, ok := English().TrainingTypeZones("Sprint")
			So(ok, ShouldBeTrue)
			So(zones, ShouldResemble, []model.Zone{model.Z4, model.Z5})

			zones, ok = English().PhaseZones("Competition Phase")
			So(ok, ShouldBeTrue)
			So(zones, ShouldResemble, []model.Zone{model.Z4, model.Z5})
		})

		Convey("Then Spanish lookups ignore accents", func() {
			zones, ok := Spanish().PhaseZones("Fase de Competición")
			So(ok, ShouldBeTrue)
			So(zones, ShouldResemble, []model.Zone{model.Z4, model.Z5})

			zones, ok = Spanish().TrainingTypeZones("Técnica")
			So(ok, ShouldBeTrue)
			So(zones, ShouldResemble, []model.Zone{model.Z1, model.Z2})
		})

		Convey("Then unknown values report no prior", func() {
			_, ok := English().TrainingTypeZones("underwater hockey")
			So(ok, ShouldBeFalse)
		})
	})
}
