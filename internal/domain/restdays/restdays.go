// Package restdays computes rest-interval analytics over one team's
// chronological game series: hours since the previous game, a categorical
// rest class, and a rolling count of games in the trailing window.
//
// Every derived value depends on the full ordered series, never on a game
// in isolation.
package restdays

import (
	"fmt"
	"sort"
	"time"

	"github.com/okian/rinkfeed/internal/domain/extract"
	"github.com/okian/rinkfeed/internal/domain/model"
)

// Rest classification thresholds, in hours.
const (
	// openerThreshold separates a season opener from an in-season break:
	// more than 20 days without a game only happens across seasons.
	openerThreshold = 480.0
	// breakThreshold separates a scheduling break (bye week, all-star)
	// from a regular rest interval.
	breakThreshold = 120.0

	defaultWindowDays = 10

	hoursPerDay = 24.0
)

// GapClass labels the rest interval preceding a game.
type GapClass string

// Rest classes, from longest layoff to shortest.
const (
	Opener  GapClass = "opener"
	Break   GapClass = "break"
	Regular GapClass = "regular"
)

// Stats carries the derived fields for one game of one team's series.
type Stats struct {
	Key           model.Key `json:"-"`
	GameID        int64     `json:"game_id"`
	Team          string    `json:"team"`
	StartLocal    string    `json:"game_datetime_pst"`
	Points        int       `json:"points"`
	HoursOff      float64   `json:"time_off_hours"`
	DaysOff       float64   `json:"time_off_days"`
	Class         GapClass  `json:"time_off_note"`
	GamesInWindow int       `json:"games_in_window"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWindowDays sets the length of the trailing rolling window.
func WithWindowDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.windowDays = days
		}
	}
}

// Engine computes rest-interval series. Zero-value configuration uses a
// 10-day rolling window.
type Engine struct {
	windowDays int
}

// New creates an Engine with the provided options.
func New(opts ...Option) *Engine {
	e := &Engine{windowDays: defaultWindowDays}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WindowDays reports the configured rolling-window length.
func (e *Engine) WindowDays() int {
	return e.windowDays
}

// TeamSeries derives Stats for all games of a single team. Input games
// must all belong to the same team; they are sorted by local start time
// before processing. Timestamps must be strictly increasing once sorted;
// a duplicate start time is a data-integrity fault that aborts the series
// with ErrNonMonotonicTimestamp.
func (e *Engine) TeamSeries(games []model.TeamGame) ([]Stats, error) {
	ordered := make([]model.TeamGame, len(games))
	copy(ordered, games)

	starts := make([]time.Time, len(ordered))
	for i, g := range ordered {
		t, err := g.LocalTime()
		if err != nil {
			return nil, err
		}
		starts[i] = t
	}
	sort.Sort(&byStart{games: ordered, starts: starts})

	// Game days are tracked at calendar-day granularity, matching the
	// corpus's one-game-per-team-per-day shape. Two games on the same day
	// would collapse into one window hit; see DESIGN.md.
	days := make(map[int]struct{}, len(ordered))
	for _, t := range starts {
		days[dayKey(t)] = struct{}{}
	}

	// Sentinel earlier than any real game anchors the first gap, which
	// always classifies as an opener.
	prev := time.Date(1990, time.January, 1, 0, 0, 0, 0, extract.Location())

	out := make([]Stats, 0, len(ordered))
	for i, g := range ordered {
		cur := starts[i]
		if !cur.After(prev) {
			return nil, fmt.Errorf("%w: %s then %s for %s",
				ErrNonMonotonicTimestamp, prev.Format(model.LocalTimeLayout), g.StartLocal, g.Team)
		}

		hoursOff := cur.Sub(prev).Hours()
		class := Regular
		switch {
		case hoursOff > openerThreshold:
			class = Opener
		case hoursOff > breakThreshold:
			class = Break
		}

		out = append(out, Stats{
			Key:           g.Key(),
			GameID:        g.GameID,
			Team:          g.Team,
			StartLocal:    g.StartLocal,
			Points:        g.Points,
			HoursOff:      hoursOff,
			DaysOff:       hoursOff / hoursPerDay,
			Class:         class,
			GamesInWindow: e.countWindow(days, cur),
		})
		prev = cur
	}
	return out, nil
}

// countWindow counts game days inside the half-open window [t-window, t),
// probing each calendar day once.
func (e *Engine) countWindow(days map[int]struct{}, t time.Time) int {
	start := t.AddDate(0, 0, -e.windowDays)
	count := 0
	for i := 0; i < e.windowDays; i++ {
		if _, ok := days[dayKey(start.AddDate(0, 0, i))]; ok {
			count++
		}
	}
	return count
}

// Analyze groups the corpus by team, filters to the requested teams (empty
// filter means every team present), and derives each team's series. Teams
// are independent, but any failing team aborts the analysis: a broken
// series means the corpus itself is suspect.
func (e *Engine) Analyze(games []model.TeamGame, teams []string) (map[string][]Stats, error) {
	byTeam := make(map[string][]model.TeamGame)
	for _, g := range games {
		byTeam[g.Team] = append(byTeam[g.Team], g)
	}

	if len(teams) == 0 {
		teams = make([]string, 0, len(byTeam))
		for team := range byTeam {
			teams = append(teams, team)
		}
		sort.Strings(teams)
	}

	out := make(map[string][]Stats, len(teams))
	for _, team := range teams {
		series, err := e.TeamSeries(byTeam[team])
		if err != nil {
			return nil, fmt.Errorf("team %s: %w", team, err)
		}
		out[team] = series
	}
	return out, nil
}

// dayKey collapses a timestamp to its calendar day as yyyymmdd.
func dayKey(t time.Time) int {
	return t.Year()*10_000 + int(t.Month())*100 + t.Day()
}

type byStart struct {
	games  []model.TeamGame
	starts []time.Time
}

func (b *byStart) Len() int           { return len(b.games) }
func (b *byStart) Less(i, j int) bool { return b.starts[i].Before(b.starts[j]) }
func (b *byStart) Swap(i, j int) {
	b.games[i], b.games[j] = b.games[j], b.games[i]
	b.starts[i], b.starts[j] = b.starts[j], b.starts[i]
}
