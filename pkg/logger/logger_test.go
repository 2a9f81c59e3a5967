package logger_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/morgan-franklin/swimmeet-api-testing/pkg/logger"
)

func TestLogger(t *testing.T) {
	ctx := context.Background()

	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching the global logger", func() {
			l := logger.Get()

			Convey("Then it logs at every level without panicking", func() {
				So(l, ShouldNotBeNil)
				So(func() {
					l.Debug(ctx, "debug message", logger.String("k", "v"))
					l.Info(ctx, "info message", logger.Int("n", 1))
					l.Warn(ctx, "warn message", logger.Bool("flag", true))
					l.Error(ctx, "error message", logger.Error(errors.New("boom")))
				}, ShouldNotPanic)
			})
		})

		Convey("When deriving a named logger", func() {
			named := logger.Named("ledger")

			Convey("Then it is a distinct usable logger", func() {
				So(named, ShouldNotBeNil)
				So(func() { named.Info(ctx, "scoped message") }, ShouldNotPanic)
			})
		})

		Convey("When setting the level from a string", func() {
			Convey("Then known names parse case-insensitively", func() {
				So(logger.SetLevelString("DEBUG"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("And unknown names are rejected", func() {
				So(logger.SetLevelString("loud"), ShouldNotBeNil)
			})
		})

		Convey("When syncing", func() {
			Convey("Then it is a no-op that never fails", func() {
				So(logger.Sync(), ShouldBeNil)
			})
		})
	})
}

func TestFields(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("When building fields of each kind", func() {
			Convey("Then keys and values are carried as given", func() {
				So(logger.String("s", "v").Key, ShouldEqual, "s")
				So(logger.Int("n", 4).Value, ShouldEqual, 4)
				So(logger.Float64("f", 2.5).Value, ShouldEqual, 2.5)
				So(logger.Bool("b", true).Value, ShouldEqual, true)
				So(logger.Any("a", []int{1}).Key, ShouldEqual, "a")

				err := errors.New("boom")
				f := logger.Error(err)
				So(f.Key, ShouldEqual, "error")
				So(f.Value, ShouldEqual, err)
			})
		})
	})
}
