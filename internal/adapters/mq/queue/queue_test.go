package queue_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/adapters/mq/queue"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given a queue with default capacity", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue()

		Convey("When a job is enqueued", func() {
			ok := q.Enqueue(ctx, queue.Job{EventID: "e1"})

			Convey("Then the queue accepts it", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})

			Convey("And a consumer receives it", func() {
				jobs := q.Dequeue(ctx)
				select {
				case job := <-jobs:
					So(job.EventID, ShouldEqual, "e1")
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for job")
				}
			})
		})

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then IsClosed reports it", func() {
				So(q.IsClosed(), ShouldBeTrue)
			})

			Convey("And enqueue is refused", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "e2"}), ShouldBeFalse)
			})

			Convey("And closing again reports the closed state", func() {
				So(q.Close(), ShouldEqual, queue.ErrClosed)
			})

			Convey("And the dequeue channel drains then closes", func() {
				jobs := q.Dequeue(ctx)
				select {
				case _, open := <-jobs:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("timed out waiting for channel close")
				}
			})
		})
	})

	Convey("Given a queue with capacity two", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))

		Convey("When the queue is filled", func() {
			So(q.Enqueue(ctx, queue.Job{EventID: "e1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{EventID: "e2"}), ShouldBeTrue)

			Convey("Then a further enqueue is dropped instead of blocking", func() {
				So(q.Enqueue(ctx, queue.Job{EventID: "e3"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("And jobs come out in FIFO order", func() {
				jobs := q.Dequeue(ctx)
				first := <-jobs
				second := <-jobs
				So(first.EventID, ShouldEqual, "e1")
				So(second.EventID, ShouldEqual, "e2")
			})
		})
	})
}
