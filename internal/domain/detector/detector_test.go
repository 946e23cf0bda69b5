package detector_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/okian/swimzones/internal/domain/detector"
	"github.com/okian/swimzones/internal/domain/lexicon"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/internal/domain/tuning"
	. "github.com/smartystreets/goconvey/convey"
)

var samples = []string{
	"10x50m sprint, 20s rest",
	"easy warm-up 400m freestyle",
	"banana apple orange grape melon kiwi pear",
	"main set 6x200 threshold then 4x100 hard",
	"Warm-up 400 easy free, 8x100m @CSS 15s rest, 4x50 fly all-out, 200 cool-down backstroke",
	"Zone 2 steady 3km continuous swim, breaststroke drills, z1 easy 200m to finish",
	"sprint sprint sprint sprint sprint sprint sprint max effort, z5 z5 z5, 100%",
	"calentamiento 400m suave, 10x100 a tope, 30 segundos de descanso, vuelta a la calma",
}

type panicking struct{}

func (panicking) Name() string { return "panicking" }
func (panicking) Extract(lexicon.Document, *model.DetectionContext) []model.ZoneSignal {
	panic("table corrupted")
}

func TestDetectScenarios(t *testing.T) {
	Convey("Given an English detector", t, func() {
		ctx := context.Background()
		d := detector.New()

		Convey("When an interval sprint set with short rest is analyzed", func() {
			res := d.Detect(ctx, "10x50m sprint, 20s rest", nil)

			Convey("Then Z5 carries the interval distance with high confidence", func() {
				z5, ok := res.Signal(model.Z5)
				So(ok, ShouldBeTrue)
				So(z5.Confidence, ShouldBeGreaterThanOrEqualTo, 80)
				So(z5.Metrics, ShouldNotBeNil)
				So(z5.Metrics.Distance, ShouldEqual, 500)
				So(res.HasIntensity(lexicon.IntensityMaximal), ShouldBeTrue)
				So(res.TotalDistanceMeters, ShouldBeGreaterThanOrEqualTo, 500)
			})
		})

		Convey("When an easy freestyle warm-up is analyzed", func() {
			res := d.Detect(ctx, "easy warm-up 400m freestyle", nil)

			Convey("Then Z1 and freestyle are detected", func() {
				_, ok := res.Signal(model.Z1)
				So(ok, ShouldBeTrue)
				So(res.HasStroke(lexicon.StrokeFreestyle), ShouldBeTrue)
				So(res.TotalDistanceMeters, ShouldBeGreaterThanOrEqualTo, 400)
				So(res.EstimatedDurationMinutes, ShouldEqual, 10)
				So(res.OverallConfidence, ShouldEqual, 100)
			})
		})

		Convey("When the input is too short", func() {
			res, err := d.Analyze(ctx, "hi", nil)

			Convey("Then the empty result comes back without suggestions", func() {
				So(errors.Is(err, detector.ErrInputTooShort), ShouldBeTrue)
				So(res.DetectedZones, ShouldBeEmpty)
				So(res.OverallConfidence, ShouldEqual, 0)
				So(res.Suggestions, ShouldBeEmpty)
				So(res.Suggestions, ShouldNotBeNil)
			})

			Convey("And surrounding whitespace does not count", func() {
				_, err := d.Analyze(ctx, "   short    ", nil)
				So(errors.Is(err, detector.ErrInputTooShort), ShouldBeTrue)
			})
		})

		Convey("When unrelated words are analyzed", func() {
			res, err := d.Analyze(ctx, "banana apple orange grape melon kiwi pear", nil)

			Convey("Then no zones are found but tagging is suggested", func() {
				So(err, ShouldBeNil)
				So(res.DetectedZones, ShouldBeEmpty)
				So(res.ZoneDistribution, ShouldBeEmpty)
				So(res.Suggestions, ShouldContain, d.Lexicon().Suggestions.TagZones)
			})
		})

		Convey("When only threshold and hard work is described", func() {
			res := d.Detect(ctx, "main set 6x200 threshold then 4x100 hard", nil)

			Convey("Then a warm-up and a cool-down are suggested", func() {
				_, hasZ1 := res.Signal(model.Z1)
				So(hasZ1, ShouldBeFalse)
				So(res.Suggestions, ShouldContain, d.Lexicon().Suggestions.AddWarmUp)
				So(res.Suggestions, ShouldContain, d.Lexicon().Suggestions.AddCoolDown)
			})
		})

		Convey("When a training context is supplied", func() {
			dc := &model.DetectionContext{TrainingType: "Endurance", Phase: "general preparation"}
			res := d.Detect(ctx, "steady 3000m continuous", dc)

			Convey("Then the prior zones join the result", func() {
				z1, ok := res.Signal(model.Z1)
				So(ok, ShouldBeTrue)
				So(z1.Confidence, ShouldEqual, 60)
				So(z1.Context, ShouldContainSubstring, "training type Endurance")
				So(z1.Context, ShouldContainSubstring, "phase general preparation")
			})
		})
	})
}

func TestDetectProperties(t *testing.T) {
	Convey("Given detectors for every locale", t, func() {
		ctx := context.Background()
		for _, code := range lexicon.Locales() {
			lx, err := lexicon.ForLocale(code)
			So(err, ShouldBeNil)
			d := detector.New(detector.WithLexicon(lx))

			for _, text := range samples {
				res := d.Detect(ctx, text, &model.DetectionContext{TrainingType: "sprint"})

				So(res.OverallConfidence, ShouldBeBetweenOrEqual, 0, 100)
				So(len(res.DetectedZones), ShouldBeLessThanOrEqualTo, 5)
				So(res.TotalDistanceMeters, ShouldBeGreaterThanOrEqualTo, 0)
				for i, z := range res.DetectedZones {
					So(z.Confidence, ShouldBeBetweenOrEqual, 0, 100)
					if i > 0 {
						So(res.DetectedZones[i-1].Confidence, ShouldBeGreaterThanOrEqualTo, z.Confidence)
					}
				}

				var sum float64
				for _, pct := range res.ZoneDistribution {
					sum += pct
				}
				if len(res.DetectedZones) > 0 {
					So(math.Abs(sum-100), ShouldBeLessThan, 1e-6)
				} else {
					So(res.ZoneDistribution, ShouldBeEmpty)
				}

				So(d.Detect(ctx, text, &model.DetectionContext{TrainingType: "sprint"}), ShouldResemble, res)
			}
		}
	})
}

func TestDetectSpanish(t *testing.T) {
	Convey("Given a Spanish detector", t, func() {
		d := detector.New(detector.WithLexicon(lexicon.Spanish()))

		Convey("When a session written without accents is analyzed", func() {
			res := d.Detect(context.Background(), "calentamiento 400m suave en crol, 8x50 a tope con 20 segundos de descanso", nil)

			Convey("Then zones, strokes and volume are found", func() {
				_, hasZ1 := res.Signal(model.Z1)
				z5, hasZ5 := res.Signal(model.Z5)
				So(hasZ1, ShouldBeTrue)
				So(hasZ5, ShouldBeTrue)
				So(z5.Confidence, ShouldEqual, 85)
				So(res.HasStroke(lexicon.EstiloLibre), ShouldBeTrue)
				So(res.TotalDistanceMeters, ShouldEqual, 800)
			})

			Convey("Then nothing needs suggesting", func() {
				So(res.Suggestions, ShouldBeEmpty)
			})
		})

		Convey("When the session lacks a warm-up and strokes", func() {
			res := d.Detect(context.Background(), "serie principal 6x200 umbral y 4x100 fuerte", nil)

			Convey("Then the suggestions are in Spanish", func() {
				msgs := lexicon.Spanish().Suggestions
				So(res.Suggestions, ShouldContain, msgs.AddWarmUp)
				So(res.Suggestions, ShouldContain, msgs.AddCoolDown)
				So(res.Suggestions, ShouldContain, msgs.NameStrokes)
				So(res.Suggestions, ShouldNotContain, lexicon.English().Suggestions.NameStrokes)
			})
		})
	})
}

func TestDetectRecovers(t *testing.T) {
	Convey("Given a detector whose extractor panics", t, func() {
		d := detector.New(detector.WithExtractors(panicking{}))

		Convey("When text is analyzed", func() {
			res, err := d.Analyze(context.Background(), "10x50m sprint, 20s rest", nil)

			Convey("Then the failure becomes the empty result", func() {
				So(errors.Is(err, detector.ErrInternalAnalysis), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "table corrupted")
				So(res, ShouldResemble, model.EmptyResult())
			})

			Convey("And Detect never panics", func() {
				So(func() { d.Detect(context.Background(), "10x50m sprint, 20s rest", nil) }, ShouldNotPanic)
			})
		})
	})
}

func TestDetectTuning(t *testing.T) {
	Convey("Given a detector with a longer minimum length and slower pace", t, func() {
		tn := tuning.Default()
		tn.MinTextLength = 30
		tn.PaceMinutesPerKM = 30
		d := detector.New(detector.WithTuning(tn))

		Convey("Then the guard and the duration follow the tuning", func() {
			_, err := d.Analyze(context.Background(), "easy 400m freestyle", nil)
			So(errors.Is(err, detector.ErrInputTooShort), ShouldBeTrue)

			res, err := d.Analyze(context.Background(), "easy warm-up 2000m freestyle with drills", nil)
			So(err, ShouldBeNil)
			So(res.EstimatedDurationMinutes, ShouldEqual, 60)
		})
	})
}

func TestDetectConcurrent(t *testing.T) {
	Convey("Given one detector shared by many goroutines", t, func() {
		d := detector.New()
		want := d.Detect(context.Background(), samples[4], nil)

		var wg sync.WaitGroup
		results := make([]model.DetectionResult, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = d.Detect(context.Background(), samples[4], nil)
			}(i)
		}
		wg.Wait()

		Convey("Then every call sees the same result", func() {
			for _, got := range results {
				So(got, ShouldResemble, want)
			}
		})
	})
}
