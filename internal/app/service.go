// Package service wires the adapters and domain engines into the four
// commands the CLI exposes: scrape, extract, standings, rest-days.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/rinkfeed/internal/adapters/fetch"
	"github.com/okian/rinkfeed/internal/adapters/store"
	"github.com/okian/rinkfeed/internal/domain/extract"
	"github.com/okian/rinkfeed/internal/domain/gameid"
	"github.com/okian/rinkfeed/internal/domain/model"
	"github.com/okian/rinkfeed/internal/domain/restdays"
	"github.com/okian/rinkfeed/internal/domain/standings"
	"github.com/okian/rinkfeed/internal/domain/walk"
	"github.com/okian/rinkfeed/pkg/logger"
	"github.com/okian/rinkfeed/pkg/metrics"
)

// Service implements the scraper's commands over shared collaborators.
type Service struct {
	// Walk configuration
	startSeason  int
	endSeason    int
	kind         gameid.Kind
	startGame    int
	wait         time.Duration
	skipExisting bool

	// Adapters
	fetcher walk.Fetcher
	store   *store.Store

	baseURL      string
	fetchTimeout time.Duration
	rawDir       string
	corpusPath   string

	// Analysis configuration
	teams      []string
	windowDays int

	runID  string
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSeasons sets the inclusive season range to walk.
func WithSeasons(start, end int) Option {
	return func(s *Service) {
		s.startSeason = start
		s.endSeason = end
	}
}

// WithKind sets the game category to walk.
func WithKind(k gameid.Kind) Option {
	return func(s *Service) {
		s.kind = k
	}
}

// WithStartGame sets the first game number probed.
func WithStartGame(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.startGame = n
		}
	}
}

// WithWait sets the politeness delay between successful probes.
func WithWait(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.wait = d
		}
	}
}

// WithSkipExisting enables resuming over already-persisted games.
func WithSkipExisting(skip bool) Option {
	return func(s *Service) {
		s.skipExisting = skip
	}
}

// WithBaseURL points the fetch client at a different API root.
func WithBaseURL(base string) Option {
	return func(s *Service) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithFetchTimeout bounds a single fetch round trip.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithFetcher injects a fetch collaborator, replacing the HTTP client.
func WithFetcher(f walk.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithRawDir sets the raw game file directory.
func WithRawDir(dir string) Option {
	return func(s *Service) {
		if dir != "" {
			s.rawDir = dir
		}
	}
}

// WithCorpusPath sets the corpus file location.
func WithCorpusPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.corpusPath = path
		}
	}
}

// WithTeams filters the rest-days analysis; empty means every team.
func WithTeams(teams []string) Option {
	return func(s *Service) {
		s.teams = teams
	}
}

// WithWindowDays sets the rolling-window length for rest-days analysis.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		startSeason:  2016,
		endSeason:    2017,
		kind:         gameid.Regular,
		startGame:    1,
		wait:         2 * time.Second,
		baseURL:      fetch.DefaultBaseURL,
		fetchTimeout: 30 * time.Second,
		rawDir:       ".",
		corpusPath:   "nhl_api_bulk_data_processing_results.json",
		windowDays:   10,
		runID:        uuid.New().String(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("run")

	s.store = store.New(
		store.WithRawDir(s.rawDir),
		store.WithCorpusPath(s.corpusPath),
	)
	if s.fetcher == nil {
		s.fetcher = fetch.New(
			fetch.WithBaseURL(s.baseURL),
			fetch.WithTimeout(s.fetchTimeout),
		)
	}
	return s
}

// RunID returns this service instance's run identifier.
func (s *Service) RunID() string {
	return s.runID
}

// Scrape walks the configured seasons, persisting every discovered game.
func (s *Service) Scrape(ctx context.Context) (walk.Report, error) {
	s.logger.Info(ctx, "starting acquisition walk",
		logger.String("runID", s.runID),
		logger.Int("startSeason", s.startSeason),
		logger.Int("endSeason", s.endSeason),
		logger.String("kind", s.kind.Name()),
		logger.Duration("wait", s.wait),
	)

	walker := walk.New(s.fetcher, s.store,
		walk.WithEndSeason(s.endSeason),
		walk.WithWait(s.wait),
		walk.WithSkipExisting(s.skipExisting),
		walk.WithLogger(s.logger),
	)
	start := gameid.ID{Season: s.startSeason, Kind: s.kind, Number: s.startGame}
	return walker.Run(ctx, start)
}

// ExtractReport summarizes one extraction pass.
type ExtractReport struct {
	Files     int `json:"files"`
	Extracted int `json:"extracted"`
	Malformed int `json:"malformed"`
	Entries   int `json:"entries"`
}

// Extract projects every raw game file into the corpus. Malformed
// records are skipped and logged; one badly shaped file never aborts the
// pass. A data-integrity fault such as a regulation tie does abort it:
// the corpus cannot be trusted once impossible data shows up.
func (s *Service) Extract(ctx context.Context) (ExtractReport, error) {
	paths, err := s.store.ListRaw(ctx)
	if err != nil {
		return ExtractReport{}, err
	}

	report := ExtractReport{Files: len(paths)}
	corpus := make(map[string]model.TeamGame, 2*len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("extract interrupted: %w", err)
		}
		raw, err := s.store.ReadRaw(ctx, path)
		if err != nil {
			return report, err
		}

		away, home, err := extract.Game(raw)
		if err != nil {
			if errors.Is(err, extract.ErrMalformedRecord) {
				report.Malformed++
				metrics.RecordMalformedRecord()
				s.logger.Warn(ctx, "skipping malformed record",
					logger.String("file", path),
					logger.Error(err),
				)
				continue
			}
			return report, fmt.Errorf("extract %s: %w", path, err)
		}

		corpus[away.Key().String()] = away
		corpus[home.Key().String()] = home
		report.Extracted++
		metrics.RecordGameExtracted()
	}

	if err := s.store.WriteCorpus(ctx, corpus); err != nil {
		return report, err
	}
	report.Entries = len(corpus)
	metrics.UpdateCorpusEntries(len(corpus))
	s.logger.Info(ctx, "extraction finished",
		logger.String("runID", s.runID),
		logger.Int("files", report.Files),
		logger.Int("extracted", report.Extracted),
		logger.Int("malformed", report.Malformed),
	)
	return report, nil
}

// corpusGames loads the corpus as a flat slice.
func (s *Service) corpusGames(ctx context.Context) ([]model.TeamGame, error) {
	corpus, err := s.store.ReadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	games := make([]model.TeamGame, 0, len(corpus))
	for _, g := range corpus {
		games = append(games, g)
	}
	return games, nil
}

// Standings folds the corpus into season point totals and writes the
// CSV report.
func (s *Service) Standings(ctx context.Context, w io.Writer) error {
	games, err := s.corpusGames(ctx)
	if err != nil {
		return err
	}
	for _, g := range games {
		// The fold buckets these under season 0; make sure the bad data is
		// visible beyond the odd CSV row.
		if _, err := strconv.Atoi(g.Season); err != nil {
			s.logger.Warn(ctx, "unparsable season code in corpus",
				logger.String("season", g.Season),
				logger.Int64("gameID", g.GameID),
				logger.String("team", g.Team),
			)
		}
	}
	return standings.WriteCSV(w, standings.Fold(games))
}

// RestDays derives each configured team's rest-interval series.
func (s *Service) RestDays(ctx context.Context) (map[string][]restdays.Stats, error) {
	games, err := s.corpusGames(ctx)
	if err != nil {
		return nil, err
	}
	engine := restdays.New(restdays.WithWindowDays(s.windowDays))
	return engine.Analyze(games, s.teams)
}

// WriteRestDays runs the rest-days analysis and writes it as pretty JSON.
func (s *Service) WriteRestDays(ctx context.Context, w io.Writer) error {
	series, err := s.RestDays(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(series); err != nil {
		return fmt.Errorf("encode rest-days report: %w", err)
	}
	return nil
}
