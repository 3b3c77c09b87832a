package gameid_test

import (
	"errors"
	"testing"

	gameid "github.com/okian/rinkfeed/internal/domain/gameid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestID_Encode(t *testing.T) {
	Convey("Given a regular-season game id", t, func() {
		id := gameid.ID{Season: 2016, Kind: gameid.Regular, Number: 1}

		Convey("When encoding it", func() {
			encoded, err := id.Encode()

			Convey("Then it should pack season, kind, and number", func() {
				So(err, ShouldBeNil)
				So(encoded, ShouldEqual, int64(2016020001))
			})
		})

		Convey("When encoding the last valid game number", func() {
			id.Number = 9999
			encoded, err := id.Encode()

			Convey("Then it should still encode", func() {
				So(err, ShouldBeNil)
				So(encoded, ShouldEqual, int64(2016029999))
			})
		})

		Convey("When the number overflows its four digits", func() {
			id.Number = 10000
			_, err := id.Encode()

			Convey("Then it should fail with ErrInvalidSequence", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, gameid.ErrInvalidSequence), ShouldBeTrue)
			})
		})

		Convey("When the number is zero", func() {
			id.Number = 0
			_, err := id.Encode()

			Convey("Then it should fail with ErrInvalidSequence", func() {
				So(errors.Is(err, gameid.ErrInvalidSequence), ShouldBeTrue)
			})
		})

		Convey("When the kind is outside the known codes", func() {
			id.Kind = 7
			_, err := id.Encode()

			Convey("Then it should fail with ErrInvalidKind", func() {
				So(errors.Is(err, gameid.ErrInvalidKind), ShouldBeTrue)
			})
		})
	})

	Convey("Given the other game kinds", t, func() {
		Convey("When encoding a preseason game", func() {
			encoded, err := gameid.ID{Season: 2016, Kind: gameid.Preseason, Number: 12}.Encode()
			So(err, ShouldBeNil)
			So(encoded, ShouldEqual, int64(2016010012))
		})

		Convey("When encoding a playoff game", func() {
			encoded, err := gameid.ID{Season: 2017, Kind: gameid.Playoff, Number: 111}.Encode()
			So(err, ShouldBeNil)
			So(encoded, ShouldEqual, int64(2017030111))
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given encoded ids across seasons, kinds, and numbers", t, func() {
		ids := []gameid.ID{
			{Season: 2016, Kind: gameid.Regular, Number: 1},
			{Season: 2016, Kind: gameid.Regular, Number: 9999},
			{Season: 2017, Kind: gameid.Preseason, Number: 42},
			{Season: 1999, Kind: gameid.Playoff, Number: 416},
		}

		Convey("When decoding each one's encoded form", func() {
			Convey("Then decode should invert encode exactly", func() {
				for _, id := range ids {
					encoded, err := id.Encode()
					So(err, ShouldBeNil)
					decoded, err := gameid.Decode(encoded)
					So(err, ShouldBeNil)
					So(decoded, ShouldResemble, id)
				}
			})
		})
	})

	Convey("Given an encoded value with an invalid embedded number", t, func() {
		Convey("When decoding it", func() {
			_, err := gameid.Decode(2016020000)

			Convey("Then it should fail with ErrInvalidSequence", func() {
				So(errors.Is(err, gameid.ErrInvalidSequence), ShouldBeTrue)
			})
		})
	})

	Convey("Given an encoded value with an unknown kind code", t, func() {
		Convey("When decoding it", func() {
			_, err := gameid.Decode(2016090001)

			Convey("Then it should fail with ErrInvalidKind", func() {
				So(errors.Is(err, gameid.ErrInvalidKind), ShouldBeTrue)
			})
		})
	})
}

func TestID_Next(t *testing.T) {
	Convey("Given a mid-season id", t, func() {
		id := gameid.ID{Season: 2016, Kind: gameid.Regular, Number: 1270}

		Convey("When taking the next game", func() {
			next := id.Next()

			Convey("Then only the number should advance", func() {
				So(next, ShouldResemble, gameid.ID{Season: 2016, Kind: gameid.Regular, Number: 1271})
			})
		})

		Convey("When rolling to the next season", func() {
			next := id.NextSeason()

			Convey("Then the season advances and the number resets to 1", func() {
				So(next, ShouldResemble, gameid.ID{Season: 2017, Kind: gameid.Regular, Number: 1})
			})
		})
	})
}

func TestParseKind(t *testing.T) {
	Convey("Given kind labels and codes", t, func() {
		Convey("When parsing labels", func() {
			for label, want := range map[string]gameid.Kind{
				"preseason": gameid.Preseason,
				"regular":   gameid.Regular,
				"playoff":   gameid.Playoff,
				"playoffs":  gameid.Playoff,
				"01":        gameid.Preseason,
				"02":        gameid.Regular,
				"03":        gameid.Playoff,
			} {
				k, err := gameid.ParseKind(label)
				So(err, ShouldBeNil)
				So(k, ShouldEqual, want)
			}
		})

		Convey("When parsing an unknown label", func() {
			_, err := gameid.ParseKind("exhibition")

			Convey("Then it should fail with ErrInvalidKind", func() {
				So(errors.Is(err, gameid.ErrInvalidKind), ShouldBeTrue)
			})
		})
	})
}

func TestID_String(t *testing.T) {
	Convey("Given a valid id", t, func() {
		id := gameid.ID{Season: 2016, Kind: gameid.Regular, Number: 7}

		Convey("When rendering it", func() {
			Convey("Then it should show the encoded form", func() {
				So(id.String(), ShouldEqual, "2016020007")
			})
		})
	})

	Convey("Given an unencodable id", t, func() {
		id := gameid.ID{Season: 2016, Kind: gameid.Regular, Number: 0}

		Convey("When rendering it", func() {
			Convey("Then it should fall back to the debug form", func() {
				So(id.String(), ShouldContainSubstring, "invalid")
			})
		})
	})
}
