package suggest_test

import (
	"testing"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/suggest"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given the English messages", t, func() {
		msgs := lexicon.English().Suggestions

		Convey("When nothing was detected", func() {
			got := suggest.Generate(msgs, suggest.Input{ExplicitThreshold: 70})

			Convey("Then zones, distances and strokes are requested", func() {
				So(got, ShouldResemble, []string{msgs.TagZones, msgs.SpecifyDistances, msgs.NameStrokes})
			})
		})

		Convey("When only high-intensity zones were detected", func() {
			got := suggest.Generate(msgs, suggest.Input{
				Zones: []model.ZoneSignal{
					{Zone: model.Z4, Confidence: 26},
					{Zone: model.Z3, Confidence: 24},
				},
				HasDistance:       true,
				Strokes:           []string{lexicon.StrokeFreestyle},
				ExplicitThreshold: 70,
			})

			Convey("Then a warm-up, a cool-down and clearer language are suggested", func() {
				So(got, ShouldResemble, []string{msgs.AddWarmUp, msgs.AddCoolDown, msgs.ExplicitIntensity})
			})
		})

		Convey("When a complete session was detected", func() {
			got := suggest.Generate(msgs, suggest.Input{
				Zones: []model.ZoneSignal{
					{Zone: model.Z5, Confidence: 85},
					{Zone: model.Z1, Confidence: 30},
				},
				HasDistance:       true,
				Strokes:           []string{lexicon.StrokeFreestyle},
				ExplicitThreshold: 70,
			})

			Convey("Then nothing is suggested", func() {
				So(got, ShouldNotBeNil)
				So(got, ShouldBeEmpty)
			})
		})

		Convey("When only Z2 was detected", func() {
			got := suggest.Generate(msgs, suggest.Input{
				Zones:             []model.ZoneSignal{{Zone: model.Z2, Confidence: 80}},
				HasDistance:       true,
				Strokes:           []string{lexicon.StrokeBackstroke},
				ExplicitThreshold: 70,
			})

			Convey("Then a warm-up is suggested but no cool-down", func() {
				So(got, ShouldResemble, []string{msgs.AddWarmUp})
			})
		})
	})
}
