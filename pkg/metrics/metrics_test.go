package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a metrics manager", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("When recording walk metrics", func() {
			So(func() {
				RecordGameFetched()
				RecordGameNotFound()
				RecordGamePersisted()
				RecordGameSkipped()
				RecordSeasonFinished()
				RecordFetchError()
				RecordPersistError()
				RecordFetchLatency(12.5)
				UpdateWalkCursor(2016, 42)
			}, ShouldNotPanic)
		})

		Convey("When recording extraction metrics", func() {
			So(func() {
				RecordGameExtracted()
				RecordMalformedRecord()
				UpdateCorpusEntries(1230)
			}, ShouldNotPanic)
		})

		Convey("When recording edge values", func() {
			So(func() {
				RecordFetchLatency(0)
				UpdateWalkCursor(0, 0)
				UpdateCorpusEntries(-1)
			}, ShouldNotPanic)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Given the custom registry", t, func() {
		Convey("When gathering after recording", func() {
			RecordGameFetched()
			families, err := GetRegistry().Gather()

			Convey("Then the walk metrics should be present", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["rinkfeed_scrape_games_fetched_total"], ShouldBeTrue)
				So(names["rinkfeed_extract_records_extracted_total"], ShouldBeTrue)
			})
		})
	})
}
