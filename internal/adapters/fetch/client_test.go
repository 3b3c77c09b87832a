package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fetch "github.com/okian/rinkfeed/internal/adapters/fetch"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClient_FetchGame(t *testing.T) {
	Convey("Given a stats API server", t, func() {
		var gotPath string
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`{"gamePk": 2016020001}`))
		}))
		defer srv.Close()

		client := fetch.New(fetch.WithBaseURL(srv.URL))

		Convey("When fetching a game", func() {
			body, err := client.FetchGame(context.Background(), 2016020001)

			Convey("Then the feed/live path is requested", func() {
				So(err, ShouldBeNil)
				So(gotPath, ShouldEqual, "/game/2016020001/feed/live")
			})

			Convey("And the body comes back verbatim", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `{"gamePk": 2016020001}`)
			})

			Convey("And the request identifies as a browser", func() {
				So(err, ShouldBeNil)
				So(gotUA, ShouldContainSubstring, "Mozilla/5.0")
			})
		})
	})

	Convey("Given a server that answers 404 with an error document", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Game data couldn't be found"}`))
		}))
		defer srv.Close()

		client := fetch.New(fetch.WithBaseURL(srv.URL))

		Convey("When fetching a game", func() {
			body, err := client.FetchGame(context.Background(), 2016029999)

			Convey("Then the status is not an error and the body still returns", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldContainSubstring, "couldn't be found")
			})
		})
	})

	Convey("Given an unreachable server", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		client := fetch.New(fetch.WithBaseURL(srv.URL))

		Convey("When fetching a game", func() {
			_, err := client.FetchGame(context.Background(), 2016020001)

			Convey("Then it fails with ErrTransport", func() {
				So(errors.Is(err, fetch.ErrTransport), ShouldBeTrue)
			})
		})
	})

	Convey("Given a cancelled context", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := fetch.New(fetch.WithBaseURL(srv.URL))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When fetching a game", func() {
			_, err := client.FetchGame(ctx, 2016020001)

			Convey("Then the fetch aborts", func() {
				So(errors.Is(err, fetch.ErrTransport), ShouldBeTrue)
			})
		})
	})

	Convey("Given a custom user agent", t, func() {
		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := fetch.New(fetch.WithBaseURL(srv.URL), fetch.WithUserAgent("rinkfeed-test/1.0"))

		Convey("When fetching a game", func() {
			_, err := client.FetchGame(context.Background(), 2016020001)

			Convey("Then the override is sent", func() {
				So(err, ShouldBeNil)
				So(gotUA, ShouldEqual, "rinkfeed-test/1.0")
			})
		})
	})
}
