package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/adapters/mq/queue"
	"github.com/amiri/dayplan/internal/adapters/mq/worker"
	"github.com/amiri/dayplan/internal/adapters/repository"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// recordingArchiver records which event ids were archived and can be primed
// to fail for specific ids.
type recordingArchiver struct {
	mu       sync.Mutex
	archived []string
	failWith map[string]error
}

func newRecordingArchiver() *recordingArchiver {
	return &recordingArchiver{failWith: make(map[string]error)}
}

func (a *recordingArchiver) Archive(ctx context.Context, id string) (model.Event, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err, ok := a.failWith[id]; ok {
		return model.Event{}, err
	}
	a.archived = append(a.archived, id)
	return model.Event{ID: id, Archived: true}, nil
}

func (a *recordingArchiver) archivedIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.archived...)
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWorker(t *testing.T) {
	Convey("Given a worker attached to a queue", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		archiver := newRecordingArchiver()
		w := worker.NewWorker(q, archiver, worker.WithName("test-worker"))
		go w.Run(ctx)

		Convey("When jobs are enqueued", func() {
			So(q.Enqueue(ctx, worker.Job{EventID: "e1", Due: time.Now()}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Job{EventID: "e2", Due: time.Now()}), ShouldBeTrue)

			Convey("Then the worker archives them", func() {
				ok := waitFor(2*time.Second, func() bool { return len(archiver.archivedIDs()) == 2 })
				So(ok, ShouldBeTrue)
				So(archiver.archivedIDs(), ShouldResemble, []string{"e1", "e2"})
			})
		})

		Convey("When a job points at a deleted event", func() {
			archiver.failWith["gone"] = repository.ErrNotFound
			So(q.Enqueue(ctx, worker.Job{EventID: "gone", Due: time.Now()}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Job{EventID: "e3", Due: time.Now()}), ShouldBeTrue)

			Convey("Then the stale job is skipped and processing continues", func() {
				ok := waitFor(2*time.Second, func() bool { return len(archiver.archivedIDs()) == 1 })
				So(ok, ShouldBeTrue)
				So(archiver.archivedIDs(), ShouldResemble, []string{"e3"})
			})
		})

		Convey("When the archiver fails with an unexpected error", func() {
			archiver.failWith["bad"] = errors.New("boom")
			So(q.Enqueue(ctx, worker.Job{EventID: "bad", Due: time.Now()}), ShouldBeTrue)
			So(q.Enqueue(ctx, worker.Job{EventID: "e4", Due: time.Now()}), ShouldBeTrue)

			Convey("Then the worker logs and moves on", func() {
				ok := waitFor(2*time.Second, func() bool { return len(archiver.archivedIDs()) == 1 })
				So(ok, ShouldBeTrue)
				So(archiver.archivedIDs(), ShouldResemble, []string{"e4"})
			})
		})

		Convey("When the worker is shut down", func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
			defer stop()

			Convey("Then shutdown completes before the deadline", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a pool of workers", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		archiver := newRecordingArchiver()

		Convey("When created with an explicit count", func() {
			pool := worker.NewPool(3, q, archiver)
			So(pool.Size(), ShouldEqual, 3)

			Convey("And started, it drains the queue", func() {
				pool.Start(ctx)
				for i := 0; i < 20; i++ {
					So(q.Enqueue(ctx, worker.Job{EventID: "e", Due: time.Now()}), ShouldBeTrue)
				}
				ok := waitFor(2*time.Second, func() bool { return len(archiver.archivedIDs()) == 20 })
				So(ok, ShouldBeTrue)
				pool.Stop()
			})
		})

		Convey("When created with a non-positive count", func() {
			pool := worker.NewPool(0, q, archiver)

			Convey("Then the default size applies", func() {
				So(pool.Size(), ShouldEqual, 4)
			})
		})
	})
}
