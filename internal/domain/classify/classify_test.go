package classify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/hiredw/internal/domain/classify"
	"github.com/okian/hiredw/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func score(v float64) model.Score { return model.Score{Value: v, Present: true} }

func TestHired(t *testing.T) {
	Convey("Given pairs of scores", t, func() {
		So(classify.Hired(score(7), score(7)), ShouldBeTrue)
		So(classify.Hired(score(10), score(8.5)), ShouldBeTrue)
		So(classify.Hired(score(6), score(9)), ShouldBeFalse)
		So(classify.Hired(score(9), score(6.99)), ShouldBeFalse)

		Convey("Then an absent score is never a hire", func() {
			So(classify.Hired(score(9), model.Score{}), ShouldBeFalse)
			So(classify.Hired(model.Score{}, score(9)), ShouldBeFalse)
			So(classify.Hired(model.Score{Value: 10}, score(10)), ShouldBeFalse)
		})
	})
}

func TestBand(t *testing.T) {
	Convey("Given band boundaries", t, func() {
		cases := map[int]string{
			-1: classify.BandJunior,
			0:  classify.BandJunior,
			2:  classify.BandJunior,
			3:  classify.BandMid,
			5:  classify.BandMid,
			6:  classify.BandSenior,
			10: classify.BandSenior,
			11: classify.BandVeteran,
			40: classify.BandVeteran,
		}
		for yoe, want := range cases {
			So(classify.Band(yoe), ShouldEqual, want)
		}
		So(classify.Bands, ShouldResemble, []string{"0-2", "3-5", "6-10", "11+"})
	})
}

func TestDateKey(t *testing.T) {
	Convey("Given dates", t, func() {
		d := model.Date{Time: time.Date(2021, time.March, 7, 0, 0, 0, 0, time.UTC), Valid: true}
		So(classify.DateKey(d), ShouldEqual, 20210307)
		So(classify.DateKey(model.Date{}), ShouldEqual, classify.UnknownDateKey)
	})
}

func TestClassifier_Classify(t *testing.T) {
	Convey("Given a normalized record", t, func() {
		rec := model.CandidateRecord{
			Line:                    4,
			Email:                   "a@x.io",
			YearsOfExperience:       7,
			CodeChallengeScore:      score(8),
			TechnicalInterviewScore: score(7),
		}

		Convey("When the date did not parse in lenient mode", func() {
			c, err := classify.New().Classify(rec)

			Convey("Then it is keyed to the unknown date", func() {
				So(err, ShouldBeNil)
				So(c.Hired, ShouldBeTrue)
				So(c.ExperienceBand, ShouldEqual, classify.BandSenior)
				So(c.DateKey, ShouldEqual, classify.UnknownDateKey)
				So(c.Email, ShouldEqual, "a@x.io")
			})
		})

		Convey("When the date did not parse in strict mode", func() {
			_, err := classify.New(classify.WithStrictDates(true)).Classify(rec)

			Convey("Then the record is rejected with its line", func() {
				So(errors.Is(err, classify.ErrUnparseableDate), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 4")
			})
		})

		Convey("When the date is valid in strict mode", func() {
			rec.ApplicationDate = model.Date{Time: time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC), Valid: true}
			c, err := classify.New(classify.WithStrictDates(true)).Classify(rec)
			So(err, ShouldBeNil)
			So(c.DateKey, ShouldEqual, 20191231)
		})
	})
}
