package dedupe_test

import (
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/okian/hiredw/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDeduper(t *testing.T) {
	Convey("Given a new Deduper", t, func() {
		d := dedupe.New()

		Convey("When a key is new", func() {
			seen := d.SeenAndRecord("a@x.io")

			Convey("Then it is recorded", func() {
				So(seen, ShouldBeFalse)
				So(d.Keys(), ShouldResemble, []string{"a@x.io"})
			})
		})

		Convey("When a key repeats", func() {
			d.SeenAndRecord("a@x.io")
			seen := d.SeenAndRecord("a@x.io")

			Convey("Then it reports seen and is recorded once", func() {
				So(seen, ShouldBeTrue)
				So(len(d.Keys()), ShouldEqual, 1)
			})
		})

		Convey("When keys differ only by case", func() {
			So(d.SeenAndRecord("A@x.io"), ShouldBeFalse)
			So(d.SeenAndRecord("a@x.io"), ShouldBeFalse)
			So(len(d.Keys()), ShouldEqual, 2)
		})

		Convey("When keys are recorded out of order", func() {
			for _, k := range []string{"c", "a", "b", "a"} {
				d.SeenAndRecord(k)
			}

			Convey("Then Keys keeps first-seen order and Sorted sorts", func() {
				So(d.Keys(), ShouldResemble, []string{"c", "a", "b"})
				So(d.Sorted(), ShouldResemble, []string{"a", "b", "c"})
			})
		})
	})

	Convey("Given a presized Deduper", t, func() {
		d := dedupe.New(dedupe.WithCapacity(4), dedupe.WithCapacity(-1))
		So(d.SeenAndRecord("ada@example.com"), ShouldBeFalse)
		So(d.SeenAndRecord("ada@example.com"), ShouldBeTrue)
		So(d.Keys(), ShouldResemble, []string{"ada@example.com"})
	})
}

func TestDistinct(t *testing.T) {
	Convey("Given values with blanks and repeats", t, func() {
		got := dedupe.Distinct([]string{"Python", "", "Go", "Python", "Java"})
		So(got, ShouldResemble, []string{"Go", "Java", "Python"})
		So(dedupe.Distinct(nil), ShouldBeEmpty)
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given concurrent writers", t, func() {
		d := dedupe.New()
		const workers, perWorker = 8, 100
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					d.SeenAndRecord(fmt.Sprintf("k-%d-%d", id, j))
					d.SeenAndRecord("shared")
				}
			}(i)
		}
		wg.Wait()
		So(len(d.Keys()), ShouldEqual, workers*perWorker+1)
	})
}
