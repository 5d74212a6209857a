package model_test

import (
	"testing"
	"time"

	model "github.com/okian/hiredw/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDate(t *testing.T) {
	convey.Convey("Given a Date", t, func() {
		convey.Convey("When it is valid", func() {
			d := model.Date{Time: time.Date(2021, time.March, 7, 0, 0, 0, 0, time.UTC), Valid: true}

			convey.Convey("Then ISO renders the canonical form", func() {
				convey.So(d.ISO(), convey.ShouldEqual, "2021-03-07")
			})
		})

		convey.Convey("When it failed to parse", func() {
			convey.So(model.Date{}.ISO(), convey.ShouldEqual, "unknown")
		})
	})
}

func TestScore(t *testing.T) {
	convey.Convey("Given a Score", t, func() {
		convey.Convey("When it is present", func() {
			p := model.Score{Value: 7.5, Present: true}.Ptr()

			convey.Convey("Then Ptr carries the value", func() {
				convey.So(p, convey.ShouldNotBeNil)
				convey.So(*p, convey.ShouldEqual, 7.5)
			})
		})

		convey.Convey("When it is absent", func() {
			convey.So(model.Score{Value: 9}.Ptr(), convey.ShouldBeNil)
		})
	})
}

func TestRequiredColumns(t *testing.T) {
	convey.Convey("Given the required column set", t, func() {
		seen := map[string]bool{}
		for _, c := range model.RequiredColumns {
			seen[c] = true
		}
		convey.So(len(model.RequiredColumns), convey.ShouldEqual, 10)
		convey.So(len(seen), convey.ShouldEqual, 10)
		convey.So(seen[model.ColYOE], convey.ShouldBeTrue)
	})
}
