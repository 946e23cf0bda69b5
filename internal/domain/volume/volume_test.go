package volume_test

import (
	"testing"

	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
	"github.com/okian/swimzones/internal/domain/volume"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTotalDistance(t *testing.T) {
	Convey("Given the English lexicon", t, func() {
		lx := lexicon.English()

		Convey("When the text has an interval set", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("10x50m sprint, 20s rest")), ShouldEqual, 500)
		})

		Convey("When intervals and standalone distances are mixed", func() {
			doc := lexicon.Prepare("400m warm-up, 8 x 100m threshold, 1.5km steady, 200 m cool-down")
			So(volume.TotalDistance(lx, doc), ShouldEqual, 400+800+1500+200)
		})

		Convey("When no distances are written", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("swim until tired")), ShouldEqual, 0)
		})

		Convey("When thousands are grouped with a comma", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("1,500m steady")), ShouldEqual, 1500)
			So(volume.TotalDistance(lx, lexicon.Prepare("2 x 1,000m threshold")), ShouldEqual, 2000)
		})

		Convey("When sets are timed in minutes", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("3 x 10 min easy, 200m cool-down")), ShouldEqual, 200)
		})
	})

	Convey("Given the Spanish lexicon", t, func() {
		lx := lexicon.Spanish()

		Convey("When a distance uses a decimal comma", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("1,5km suave")), ShouldEqual, 1500)
		})

		Convey("When thousands are grouped with a point", func() {
			So(volume.TotalDistance(lx, lexicon.Prepare("1.500m continuo")), ShouldEqual, 1500)
		})
	})
}

func TestDistribution(t *testing.T) {
	Convey("Given merged zones", t, func() {
		zones := []model.ZoneSignal{
			{Zone: model.Z5, Confidence: 60},
			{Zone: model.Z4, Confidence: 30},
			{Zone: model.Z1, Confidence: 10},
		}

		Convey("When the distribution is computed", func() {
			dist := volume.Distribution(zones)

			Convey("Then shares are proportional and sum to 100", func() {
				So(dist[model.Z5], ShouldAlmostEqual, 60, 1e-9)
				So(dist[model.Z4], ShouldAlmostEqual, 30, 1e-9)
				So(dist[model.Z1], ShouldAlmostEqual, 10, 1e-9)
				var sum float64
				for _, pct := range dist {
					sum += pct
				}
				So(sum, ShouldAlmostEqual, 100, 1e-6)
			})

			Convey("Then the breakdown splits the distance by share", func() {
				bd := volume.Breakdown(2000, dist)
				So(bd[model.Z5].Distance, ShouldAlmostEqual, 1200, 1e-9)
				So(bd[model.Z5].Percent, ShouldAlmostEqual, 60, 1e-9)
				So(bd[model.Z1].Distance, ShouldAlmostEqual, 200, 1e-9)
			})
		})

		Convey("When there are no zones", func() {
			dist := volume.Distribution(nil)
			So(dist, ShouldNotBeNil)
			So(dist, ShouldBeEmpty)
			So(volume.Breakdown(1000, dist), ShouldBeEmpty)
		})
	})
}

func TestEstimateDuration(t *testing.T) {
	Convey("Given a 25 min/km pace", t, func() {
		So(volume.EstimateDuration(2000, 25), ShouldEqual, 50)
		So(volume.EstimateDuration(500, 25), ShouldEqual, 13)
		So(volume.EstimateDuration(0, 25), ShouldEqual, 0)
		So(volume.EstimateDuration(1000, 0), ShouldEqual, 0)
	})
}

func TestOverallConfidence(t *testing.T) {
	Convey("Given the default weights", t, func() {
		w := tuning.Default().Overall

		Convey("Then each kind of evidence adds its weight", func() {
			So(volume.OverallConfidence(volume.Evidence{}, w), ShouldEqual, 0)
			So(volume.OverallConfidence(volume.Evidence{Zones: true}, w), ShouldEqual, 40)
			So(volume.OverallConfidence(volume.Evidence{Zones: true, Distance: true}, w), ShouldEqual, 65)
			So(volume.OverallConfidence(volume.Evidence{Zones: true, Distance: true, Strokes: true, Intensities: true}, w), ShouldEqual, 100)
		})

		Convey("Then oversized weights are capped", func() {
			big := tuning.Overall{Zones: 90, Distance: 90}
			So(volume.OverallConfidence(volume.Evidence{Zones: true, Distance: true}, big), ShouldEqual, 100)
		})
	})
}
