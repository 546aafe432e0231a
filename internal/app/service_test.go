package service_test

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/amiri/dayplan/internal/adapters/repository"
	service "github.com/amiri/dayplan/internal/app"
	"github.com/amiri/dayplan/internal/domain/category"
	"github.com/amiri/dayplan/internal/domain/model"
	"github.com/amiri/dayplan/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startService(ctx context.Context, opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	if err := svc.Start(ctx); err != nil {
		panic(err)
	}
	return svc
}

func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := service.New()

		Convey("When started", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then stats report it running", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["autoArchive"], ShouldBeFalse)
				So(stats["totalEvents"], ShouldEqual, 0)
			})

			Convey("And starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping twice is safe", func() {
				svc.Stop()
				svc.Stop()
				So(svc.GetStats()["started"], ShouldBeFalse)
			})
		})
	})
}

func TestServiceEvents(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := startService(ctx)
		defer svc.Stop()

		Convey("When an event is created", func() {
			event, err := svc.CreateEvent(ctx, model.NewEvent{
				Title: "Sprint planning",
				Date:  "2026-09-03",
				Time:  "09:30",
				Notes: "bring estimates",
			})

			Convey("Then it carries an id and the Work category", func() {
				So(err, ShouldBeNil)
				So(event.ID, ShouldNotBeEmpty)
				So(event.Category, ShouldEqual, category.Work)
				So(event.Archived, ShouldBeFalse)
			})

			Convey("And it can be fetched back by id", func() {
				got, err := svc.GetEvent(ctx, event.ID)
				So(err, ShouldBeNil)
				So(got, ShouldResemble, event)
			})
		})

		Convey("When several events are created out of order", func() {
			late, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "late", Date: "2026-09-05", Time: "10:00"})
			early, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "early", Date: "2026-09-04", Time: "10:00"})

			Convey("Then the listing is sorted by date and time", func() {
				events, err := svc.ListEvents(ctx)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 2)
				So(events[0].ID, ShouldEqual, early.ID)
				So(events[1].ID, ShouldEqual, late.ID)
			})
		})

		Convey("When an event is archived", func() {
			event, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "x", Date: "2026-09-04", Time: "10:00"})
			got, err := svc.ArchiveEvent(ctx, event.ID)

			Convey("Then the flag flips and stays flipped", func() {
				So(err, ShouldBeNil)
				So(got.Archived, ShouldBeTrue)

				again, err := svc.ArchiveEvent(ctx, event.ID)
				So(err, ShouldBeNil)
				So(again.Archived, ShouldBeTrue)
			})

			Convey("And archived events still show up in listings", func() {
				events, err := svc.ListEvents(ctx)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 1)
				So(events[0].Archived, ShouldBeTrue)
			})
		})

		Convey("When an event is deleted", func() {
			event, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "x", Date: "2026-09-04", Time: "10:00"})
			err := svc.DeleteEvent(ctx, event.ID)

			Convey("Then it disappears for good", func() {
				So(err, ShouldBeNil)
				_, err := svc.GetEvent(ctx, event.ID)
				So(err, ShouldEqual, repository.ErrNotFound)
				So(svc.DeleteEvent(ctx, event.ID), ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When operating on an unknown id", func() {
			_, getErr := svc.GetEvent(ctx, "nope")
			_, archiveErr := svc.ArchiveEvent(ctx, "nope")
			deleteErr := svc.DeleteEvent(ctx, "nope")

			Convey("Then every operation reports not found", func() {
				So(getErr, ShouldEqual, repository.ErrNotFound)
				So(archiveErr, ShouldEqual, repository.ErrNotFound)
				So(deleteErr, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("Then stats reflect store contents", func() {
			e1, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "a", Date: "2026-09-04", Time: "10:00"})
			_, _ = svc.CreateEvent(ctx, model.NewEvent{Title: "b", Date: "2026-09-04", Time: "11:00"})
			_, err := svc.ArchiveEvent(ctx, e1.ID)
			So(err, ShouldBeNil)

			stats := svc.GetStats()
			So(stats["totalEvents"], ShouldEqual, 2)
			So(stats["archivedEvents"], ShouldEqual, 1)
		})
	})

	Convey("Given a service with custom keyword lists", t, func() {
		ctx := context.Background()
		svc := startService(ctx,
			service.WithWorkKeywords([]string{"standup"}),
			service.WithPersonalKeywords([]string{"gig"}),
		)
		defer svc.Stop()

		Convey("Then categorization follows the configured lists", func() {
			work, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "daily standup", Date: "2026-09-04", Time: "09:00"})
			personal, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "gig tickets", Date: "2026-09-04", Time: "20:00"})
			other, _ := svc.CreateEvent(ctx, model.NewEvent{Title: "Team meeting", Date: "2026-09-04", Time: "10:00"})

			So(work.Category, ShouldEqual, category.Work)
			So(personal.Category, ShouldEqual, category.Personal)
			So(other.Category, ShouldEqual, category.Other)
		})
	})
}

func TestServiceIdempotency(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := startService(ctx, service.WithIdempotencyCacheSize(2))
		defer svc.Stop()

		Convey("When a key is recorded", func() {
			svc.RecordIdempotent(ctx, "key-1", "event-1")

			Convey("Then lookups hit", func() {
				id, ok := svc.LookupIdempotent(ctx, "key-1")
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "event-1")
			})

			Convey("And forgetting makes them miss again", func() {
				svc.ForgetIdempotent(ctx, "key-1")
				_, ok := svc.LookupIdempotent(ctx, "key-1")
				So(ok, ShouldBeFalse)
			})

			Convey("And the cache bound evicts the oldest key", func() {
				svc.RecordIdempotent(ctx, "key-2", "event-2")
				svc.RecordIdempotent(ctx, "key-3", "event-3")

				_, ok := svc.LookupIdempotent(ctx, "key-1")
				So(ok, ShouldBeFalse)
				_, ok = svc.LookupIdempotent(ctx, "key-3")
				So(ok, ShouldBeTrue)
			})
		})
	})
}

func TestServiceAutoArchive(t *testing.T) {
	Convey("Given a service sweeping every 20ms with zero grace", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		svc := startService(ctx,
			service.WithAutoArchive(true, 20*time.Millisecond, 0),
			service.WithWorkerCount(2),
			service.WithQueueSize(16),
		)
		defer svc.Stop()

		Convey("When a past event exists", func() {
			past, err := svc.CreateEvent(ctx, model.NewEvent{Title: "old", Date: "2020-01-01", Time: "09:00"})
			So(err, ShouldBeNil)
			future, err := svc.CreateEvent(ctx, model.NewEvent{Title: "new", Date: "2099-01-01", Time: "09:00"})
			So(err, ShouldBeNil)

			Convey("Then the sweeper archives it", func() {
				ok := waitFor(2*time.Second, func() bool {
					got, err := svc.GetEvent(ctx, past.ID)
					return err == nil && got.Archived
				})
				So(ok, ShouldBeTrue)

				Convey("And leaves future events alone", func() {
					got, err := svc.GetEvent(ctx, future.ID)
					So(err, ShouldBeNil)
					So(got.Archived, ShouldBeFalse)
				})
			})
		})
	})
}
