package site_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/adapters/http/site"
)

func TestRegister(t *testing.T) {
	Convey("Given the client routes are registered", t, func() {
		mux := http.NewServeMux()
		site.Register(context.Background(), mux)

		Convey("When fetching the root page", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the embedded client is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "text/html")
				So(rec.Body.String(), ShouldContainSubstring, "<form")
			})
		})

		Convey("When registering against a nil mux", func() {
			So(func() { site.Register(context.Background(), nil) }, ShouldPanic)
		})
	})
}
