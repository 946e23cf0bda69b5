package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	dedupe "github.com/okian/swimzones/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()

		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it starts empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording sessions", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the session is new", func() {
				So(d.SeenAndRecord(ctx, "session-1"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)

				Convey("Then a second submission is reported as seen", func() {
					So(d.SeenAndRecord(ctx, "session-1"), ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})

				Convey("Then an unrecorded session can be submitted again", func() {
					d.Unrecord(ctx, "session-1")
					So(d.Size(), ShouldEqual, 0)
					So(d.SeenAndRecord(ctx, "session-1"), ShouldBeFalse)
				})
			})

			Convey("And an unknown session is unrecorded", func() {
				d.Unrecord(ctx, "never-seen")
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When the deduper is bounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 1; i <= 4; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("session-%d", i))
			}

			Convey("Then the oldest session is forgotten", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "session-4"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "session-1"), ShouldBeFalse)
			})
		})

		Convey("When the deduper is unbounded", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("session-%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(ctx, "session-0"), ShouldBeTrue)
			})
		})

		Convey("When many goroutines record the same id", func() {
			d := dedupe.NewInMemoryDeduper()
			var fresh atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if !d.SeenAndRecord(ctx, "shared") {
						fresh.Add(1)
					}
				}()
			}
			wg.Wait()

			Convey("Then exactly one wins", func() {
				So(fresh.Load(), ShouldEqual, 1)
			})
		})
	})
}
