package worker_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	worker "github.com/okian/hiredw/internal/adapters/mq/worker"
	logging "github.com/okian/hiredw/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewPool(t *testing.T) {
	convey.Convey("Given pool options", t, func() {
		convey.Convey("Then defaults give at least one worker", func() {
			convey.So(worker.NewPool().Workers(), convey.ShouldBeGreaterThan, 0)
		})

		convey.Convey("Then explicit sizing is honored and bad values ignored", func() {
			p := worker.NewPool(worker.WithWorkers(3), worker.WithQueueSize(8), worker.WithLogger(logging.Nop()))
			convey.So(p.Workers(), convey.ShouldEqual, 3)
			convey.So(worker.NewPool(worker.WithWorkers(3), worker.WithWorkers(-1)).Workers(), convey.ShouldEqual, 3)
		})
	})
}

func TestMap(t *testing.T) {
	convey.Convey("Given a pool of four workers", t, func() {
		ctx := context.Background()
		p := worker.NewPool(worker.WithWorkers(4), worker.WithQueueSize(2))

		convey.Convey("When mapping many items", func() {
			items := make([]int, 1000)
			for i := range items {
				items[i] = i
			}
			var calls atomic.Int64
			out, err := worker.Map(ctx, p, items, func(_ context.Context, v int) (string, error) {
				calls.Add(1)
				return fmt.Sprintf("n%d", v), nil
			})

			convey.Convey("Then every result lands at its input position", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(calls.Load(), convey.ShouldEqual, 1000)
				convey.So(len(out), convey.ShouldEqual, 1000)
				convey.So(out[0], convey.ShouldEqual, "n0")
				convey.So(out[517], convey.ShouldEqual, "n517")
				convey.So(out[999], convey.ShouldEqual, "n999")
			})
		})

		convey.Convey("When the input is empty", func() {
			out, err := worker.Map(ctx, p, nil, func(_ context.Context, v int) (int, error) { return v, nil })
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldBeEmpty)
		})

		convey.Convey("When several items fail", func() {
			items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
			_, err := worker.Map(ctx, p, items, func(_ context.Context, v int) (int, error) {
				if v == 3 || v == 8 {
					return 0, fmt.Errorf("item %d", v)
				}
				return v, nil
			})

			convey.Convey("Then the earliest failure is reported", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldEqual, "item 3")
			})
		})

		convey.Convey("When the context is already canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := worker.Map(cctx, p, []int{1, 2, 3}, func(_ context.Context, v int) (int, error) { return v, nil })
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}
