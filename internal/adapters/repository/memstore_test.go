package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/swimzones/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func analysis(id string, distance float64) model.Analysis {
	res := model.EmptyResult()
	res.TotalDistanceMeters = distance
	return model.Analysis{SessionID: id, Result: res}
}

func TestMemoryStore(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		s := NewMemoryStore()

		Convey("When analyses are stored", func() {
			So(s.Put(ctx, analysis("b", 100)), ShouldBeNil)
			So(s.Put(ctx, analysis("a", 200)), ShouldBeNil)

			Convey("Then they can be read back by id", func() {
				got, err := s.Get(ctx, "a")
				So(err, ShouldBeNil)
				So(got.Result.TotalDistanceMeters, ShouldEqual, 200)
				So(s.Count(ctx), ShouldEqual, 2)
			})

			Convey("Then All keeps the order they were first stored", func() {
				all := s.All(ctx)
				So(all, ShouldHaveLength, 2)
				So(all[0].SessionID, ShouldEqual, "b")
				So(all[1].SessionID, ShouldEqual, "a")
			})

			Convey("And a session is stored again", func() {
				So(s.Put(ctx, analysis("b", 300)), ShouldBeNil)

				Convey("Then it is replaced in place", func() {
					all := s.All(ctx)
					So(all, ShouldHaveLength, 2)
					So(all[0].SessionID, ShouldEqual, "b")
					So(all[0].Result.TotalDistanceMeters, ShouldEqual, 300)
				})
			})
		})

		Convey("When an unknown session is requested", func() {
			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})

		Convey("When an analysis has no id", func() {
			So(errors.Is(s.Put(ctx, analysis("", 1)), ErrMissingID), ShouldBeTrue)
			So(s.Count(ctx), ShouldEqual, 0)
		})
	})

	Convey("Given a bounded store", t, func() {
		ctx := context.Background()
		s := NewMemoryStore(WithMaxEntries(2))

		Convey("When more analyses than the bound are stored", func() {
			for _, id := range []string{"s1", "s2", "s3"} {
				So(s.Put(ctx, analysis(id, 1)), ShouldBeNil)
			}

			Convey("Then the oldest is evicted", func() {
				So(s.Count(ctx), ShouldEqual, 2)
				_, err := s.Get(ctx, "s1")
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(s.All(ctx)[0].SessionID, ShouldEqual, "s2")
			})
		})
	})

	Convey("Given concurrent writers", t, func() {
		ctx := context.Background()
		s := NewMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = s.Put(ctx, analysis(fmt.Sprintf("s%d", i), float64(i)))
				_ = s.All(ctx)
			}(i)
		}
		wg.Wait()

		So(s.Count(ctx), ShouldEqual, 50)
		So(s.All(ctx), ShouldHaveLength, 50)
	})
}
