// Package metrics provides Prometheus metrics for the rinkfeed scraper.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the scraper.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Acquisition walk metrics
	gamesFetched    prometheus.Counter
	gamesNotFound   prometheus.Counter
	gamesPersisted  prometheus.Counter
	gamesSkipped    prometheus.Counter
	seasonsFinished prometheus.Counter
	fetchErrors     prometheus.Counter
	persistErrors   prometheus.Counter
	fetchLatency    prometheus.Histogram
	walkSeason      prometheus.Gauge
	walkGameNumber  prometheus.Gauge

	// Extraction metrics
	recordsExtracted prometheus.Counter
	malformedRecords prometheus.Counter
	corpusEntries    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rinkfeed",
		subsystem:        "scrape",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_fetched_total",
		Help:      "Total number of game probes that returned a payload",
	})

	m.gamesNotFound = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_not_found_total",
		Help:      "Total number of probes whose payload did not echo the requested game id",
	})

	m.gamesPersisted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_persisted_total",
		Help:      "Total number of raw game files written",
	})

	m.gamesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_skipped_total",
		Help:      "Total number of probes skipped because the raw file already existed",
	})

	m.seasonsFinished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_finished_total",
		Help:      "Total number of seasons walked to exhaustion",
	})

	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of transport-level fetch failures (fatal to the walk)",
	})

	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of raw-file write failures (fatal to the walk)",
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Histogram of game fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.walkSeason = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "walk_season",
		Help:      "Season currently being walked",
	})

	m.walkGameNumber = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "walk_game_number",
		Help:      "Game number currently being probed",
	})

	m.recordsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "extract",
		Name:      "records_extracted_total",
		Help:      "Total number of raw records projected into team-game summaries",
	})

	m.malformedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "extract",
		Name:      "malformed_records_total",
		Help:      "Total number of raw records skipped as malformed",
	})

	m.corpusEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "extract",
		Name:      "corpus_entries",
		Help:      "Number of team-game entries in the last written corpus",
	})
}

// RecordGameFetched increments the fetched-games counter.
func RecordGameFetched() {
	globalManager.gamesFetched.Inc()
}

// RecordGameNotFound increments the not-found counter.
func RecordGameNotFound() {
	globalManager.gamesNotFound.Inc()
}

// RecordGamePersisted increments the persisted-games counter.
func RecordGamePersisted() {
	globalManager.gamesPersisted.Inc()
}

// RecordGameSkipped increments the skipped-games counter.
func RecordGameSkipped() {
	globalManager.gamesSkipped.Inc()
}

// RecordSeasonFinished increments the finished-seasons counter.
func RecordSeasonFinished() {
	globalManager.seasonsFinished.Inc()
}

// RecordFetchError increments the transport failure counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordPersistError increments the write failure counter.
func RecordPersistError() {
	globalManager.persistErrors.Inc()
}

// RecordFetchLatency records one fetch round trip in milliseconds.
func RecordFetchLatency(latencyMs float64) {
	globalManager.fetchLatency.Observe(latencyMs)
}

// UpdateWalkCursor sets the current walk position gauges.
func UpdateWalkCursor(season, gameNumber int) {
	globalManager.walkSeason.Set(float64(season))
	globalManager.walkGameNumber.Set(float64(gameNumber))
}

// RecordGameExtracted increments the extracted-records counter.
func RecordGameExtracted() {
	globalManager.recordsExtracted.Inc()
}

// RecordMalformedRecord increments the malformed-records counter.
func RecordMalformedRecord() {
	globalManager.malformedRecords.Inc()
}

// UpdateCorpusEntries sets the corpus size gauge.
func UpdateCorpusEntries(count int) {
	globalManager.corpusEntries.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
