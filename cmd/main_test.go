package main

import (
	"context"
	"os"
	"testing"

	app "github.com/okian/rinkfeed/internal/app"
	"github.com/okian/rinkfeed/internal/config"
	"github.com/okian/rinkfeed/internal/domain/gameid"
	"github.com/okian/rinkfeed/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestCommandDispatch(t *testing.T) {
	convey.Convey("Given the command dispatcher", t, func() {
		svc := app.New(app.WithWait(0))

		convey.Convey("When dispatching an unknown command", func() {
			err := run(context.Background(), svc, "frobnicate")

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "frobnicate")
			})
		})
	})
}

func TestStartupConfiguration(t *testing.T) {
	convey.Convey("Given the startup environment", t, func() {
		convey.Convey("When loading configuration with overrides", func() {
			_ = os.Setenv("RINKFEED_START_SEASON", "2015")
			_ = os.Setenv("RINKFEED_GAME_KIND", "playoff")
			defer func() {
				_ = os.Unsetenv("RINKFEED_START_SEASON")
				_ = os.Unsetenv("RINKFEED_GAME_KIND")
			}()

			cfg, err := config.Load(context.Background())

			convey.Convey("Then the overrides should apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.StartSeason, convey.ShouldEqual, 2015)
				convey.So(cfg.GameKind, convey.ShouldEqual, "playoff")
			})

			convey.Convey("And the configured kind should parse", func() {
				convey.So(err, convey.ShouldBeNil)
				kind, kerr := gameid.ParseKind(cfg.GameKind)
				convey.So(kerr, convey.ShouldBeNil)
				convey.So(kind, convey.ShouldEqual, gameid.Playoff)
			})
		})

		convey.Convey("When the configured kind is garbage", func() {
			_, err := gameid.ParseKind("shinny")

			convey.Convey("Then parsing should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
