package seed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/adapters/http/api"
	service "github.com/amiri/dayplan/internal/app"
	"github.com/amiri/dayplan/internal/seed"
	"github.com/amiri/dayplan/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	Convey("Given a running events API", t, func() {
		ctx := context.Background()

		svc := service.New()
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		server := httptest.NewServer(mux)
		defer server.Close()

		Convey("When seeding against it", func() {
			err := seed.Run(ctx, &seed.Config{
				BaseURL:   server.URL,
				NumEvents: 30,
				Workers:   4,
				Timeout:   5 * time.Second,
			})

			Convey("Then the run submits and verifies cleanly", func() {
				So(err, ShouldBeNil)
				events, err := svc.ListEvents(ctx)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 30)
			})
		})

		Convey("When the target is unreachable", func() {
			err := seed.Run(ctx, &seed.Config{
				BaseURL:   "http://127.0.0.1:1",
				NumEvents: 2,
				Workers:   1,
				Timeout:   time.Second,
			})

			Convey("Then the run reports the failure", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
