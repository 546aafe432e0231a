package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/amiri/dayplan/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults come through", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5000")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.QueueSize, ShouldEqual, 1024)
			So(cfg.WorkerCount, ShouldEqual, 4)
			So(cfg.IdempotencyCacheSize, ShouldEqual, 10_000)
			So(cfg.AutoArchiveEnabled, ShouldBeFalse)
			So(cfg.SweepIntervalSeconds, ShouldEqual, 60)
			So(cfg.ArchiveGraceMinutes, ShouldEqual, 1440)
			So(cfg.WorkKeywords, ShouldContain, "meeting")
			So(cfg.PersonalKeywords, ShouldContain, "birthday")
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("DAYPLAN_ADDR", ":8080")
		t.Setenv("DAYPLAN_LOG_LEVEL", "debug")
		t.Setenv("DAYPLAN_QUEUE_SIZE", "64")
		t.Setenv("DAYPLAN_AUTO_ARCHIVE_ENABLED", "true")

		cfg, err := config.Load(context.Background())

		Convey("Then the overrides win over defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.QueueSize, ShouldEqual, 64)
			So(cfg.AutoArchiveEnabled, ShouldBeTrue)

			Convey("And untouched fields keep their defaults", func() {
				So(cfg.WorkerCount, ShouldEqual, 4)
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "dayplan.yaml")
		yaml := []byte("addr: \":7070\"\nworker_count: 2\nwork_keywords:\n  - standup\n")
		So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)
		t.Setenv("DAYPLAN_CONFIG", path)

		Convey("When loading", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.WorkerCount, ShouldEqual, 2)
				So(cfg.WorkKeywords, ShouldResemble, []string{"standup"})
			})
		})

		Convey("When the environment also overrides", func() {
			t.Setenv("DAYPLAN_ADDR", ":6060")
			cfg, err := config.Load(context.Background())

			Convey("Then env wins over the file", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.WorkerCount, ShouldEqual, 2)
			})
		})
	})

	Convey("Given a missing config file path", t, func() {
		t.Setenv("DAYPLAN_CONFIG", "/does/not/exist.yaml")

		_, err := config.Load(context.Background())

		Convey("Then loading fails with a load error", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid overrides", t, func() {
		cases := map[string]string{
			"DAYPLAN_ADDR":                   "",
			"DAYPLAN_QUEUE_SIZE":             "0",
			"DAYPLAN_WORKER_COUNT":           "-1",
			"DAYPLAN_SWEEP_INTERVAL_SECONDS": "0",
			"DAYPLAN_ARCHIVE_GRACE_MINUTES":  "-5",
		}

		for key, val := range cases {
			Convey("Then "+key+"="+val+" is rejected", func() {
				t.Setenv(key, val)
				_, err := config.Load(context.Background())
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		}
	})
}
