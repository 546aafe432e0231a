package model_test

import (
	"sort"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/domain/model"
)

func TestSortKey(t *testing.T) {
	Convey("Given events in their canonical textual forms", t, func() {
		events := []model.Event{
			{Date: "2026-09-02", Time: "09:00"},
			{Date: "2026-09-01", Time: "18:00"},
			{Date: "2026-09-02", Time: "08:30"},
			{Date: "2026-12-01", Time: "07:00"},
		}

		Convey("When sorted lexically on the combined key", func() {
			sort.Slice(events, func(i, j int) bool {
				return events[i].SortKey() < events[j].SortKey()
			})

			Convey("Then the order is chronological", func() {
				So(events[0].SortKey(), ShouldEqual, "2026-09-01 18:00")
				So(events[1].SortKey(), ShouldEqual, "2026-09-02 08:30")
				So(events[2].SortKey(), ShouldEqual, "2026-09-02 09:00")
				So(events[3].SortKey(), ShouldEqual, "2026-12-01 07:00")
			})
		})
	})
}

func TestStartsAt(t *testing.T) {
	Convey("Given an event with valid date and time", t, func() {
		e := model.Event{Date: "2026-09-01", Time: "14:30"}

		Convey("When parsing its start instant", func() {
			at, err := e.StartsAt()

			Convey("Then the instant matches the textual forms", func() {
				So(err, ShouldBeNil)
				So(at.Year(), ShouldEqual, 2026)
				So(at.Month(), ShouldEqual, time.September)
				So(at.Day(), ShouldEqual, 1)
				So(at.Hour(), ShouldEqual, 14)
				So(at.Minute(), ShouldEqual, 30)
			})
		})
	})

	Convey("Given an event with a malformed date", t, func() {
		e := model.Event{Date: "09/01/2026", Time: "14:30"}

		Convey("Then parsing fails", func() {
			_, err := e.StartsAt()
			So(err, ShouldNotBeNil)
		})
	})
}
