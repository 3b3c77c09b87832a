package fixtures_test

import (
	"testing"

	"github.com/okian/rinkfeed/internal/domain/extract"
	fixtures "github.com/okian/rinkfeed/internal/fixtures"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator_Game(t *testing.T) {
	Convey("Given a deterministic generator", t, func() {
		gen := fixtures.New()

		Convey("When generating a game payload", func() {
			payload, err := gen.Game(1)

			Convey("Then it extracts cleanly", func() {
				So(err, ShouldBeNil)
				away, home, xerr := extract.Game(payload)
				So(xerr, ShouldBeNil)
				So(away.GameID, ShouldEqual, int64(2016020001))
				So(home.GameID, ShouldEqual, int64(2016020001))
				So(away.Season, ShouldEqual, "20162017")
				So(away.Team, ShouldNotEqual, home.Team)
			})
		})

		Convey("When generating the same game twice", func() {
			a, err1 := gen.Game(1)
			b, err2 := fixtures.New().Game(1)

			Convey("Then the output is reproducible", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(string(a), ShouldEqual, string(b))
			})
		})

		Convey("When the game number cannot be encoded", func() {
			_, err := gen.Game(10000)

			Convey("Then generation fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGenerator_Season(t *testing.T) {
	Convey("Given a generator with a custom season", t, func() {
		gen := fixtures.New(fixtures.WithSeason(2018), fixtures.WithSeed(7))

		Convey("When generating a short season", func() {
			payloads, err := gen.Season(10)

			Convey("Then every payload extracts and the schedule advances", func() {
				So(err, ShouldBeNil)
				So(payloads, ShouldHaveLength, 10)

				var lastStart string
				for _, payload := range payloads {
					away, _, xerr := extract.Game(payload)
					So(xerr, ShouldBeNil)
					So(away.Season, ShouldEqual, "20182019")
					So(away.StartUTC, ShouldBeGreaterThan, lastStart)
					lastStart = away.StartUTC
				}
			})
		})
	})
}
