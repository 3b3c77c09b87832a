// Package walk drives the sequential discovery of the game-id space.
//
// The stats API offers no listing operation, so existence is discovered by
// probing ids in order: the first id whose payload does not echo the
// requested gamePk ends the season. The walk is an explicit state machine
// threaded through each step; there is no other walk state.
package walk

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/rinkfeed/internal/domain/gameid"
	"github.com/okian/rinkfeed/pkg/logger"
	"github.com/okian/rinkfeed/pkg/metrics"
)

// Default walker configuration.
const (
	defaultWait = 2 * time.Second
)

// Phase names the walk's position in its lifecycle.
type Phase int

// Walk phases. SeasonDone and Fatal are terminal.
const (
	Active Phase = iota
	SeasonDone
	Fatal
)

// String returns the phase label.
func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case SeasonDone:
		return "season-done"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// State is the complete walk state between steps. Err is set only in the
// Fatal phase.
type State struct {
	Phase  Phase
	Cursor gameid.ID
	Err    error
}

// Fetcher retrieves the raw payload for an encoded game id. A returned
// error means the probe itself failed; "no such game" is expressed through
// the payload, not the error.
type Fetcher interface {
	FetchGame(ctx context.Context, id int64) ([]byte, error)
}

// Persister stores raw payloads. HasRaw supports resuming an interrupted
// walk without refetching.
type Persister interface {
	SaveRaw(ctx context.Context, id int64, payload []byte) error
	HasRaw(ctx context.Context, id int64) bool
}

// Report summarizes a finished walk.
type Report struct {
	Fetched         int `json:"fetched"`
	Saved           int `json:"saved"`
	Skipped         int `json:"skipped"`
	NotFound        int `json:"not_found"`
	SeasonsFinished int `json:"seasons_finished"`
}

// Option applies a configuration option to the Walker.
type Option func(*Walker)

// WithEndSeason sets the last season to walk (inclusive).
func WithEndSeason(season int) Option {
	return func(w *Walker) {
		w.endSeason = season
	}
}

// WithWait sets the politeness delay between successful probes.
func WithWait(d time.Duration) Option {
	return func(w *Walker) {
		if d >= 0 {
			w.wait = d
		}
	}
}

// WithSkipExisting makes the walker treat an already-persisted id as a
// success without refetching it.
func WithSkipExisting(skip bool) Option {
	return func(w *Walker) {
		w.skipExisting = skip
	}
}

// WithLogger sets a custom logger for the walker.
func WithLogger(l logger.Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// Walker advances the acquisition state machine one probe at a time.
type Walker struct {
	fetch   Fetcher
	persist Persister

	endSeason    int
	wait         time.Duration
	skipExisting bool

	logger logger.Logger
	report Report
}

// New creates a Walker over the given collaborators.
func New(fetch Fetcher, persist Persister, opts ...Option) *Walker {
	w := &Walker{
		fetch:   fetch,
		persist: persist,
		wait:    defaultWait,
		logger:  logger.Get().Named("walk"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run steps the machine from start until a terminal phase and returns the
// walk report. A Fatal phase surfaces its error.
func (w *Walker) Run(ctx context.Context, start gameid.ID) (Report, error) {
	w.report = Report{}
	state := State{Phase: Active, Cursor: start}

	for state.Phase == Active {
		state = w.Step(ctx, state)
	}

	if state.Phase == Fatal {
		return w.report, state.Err
	}
	w.logger.Info(ctx, "walk finished",
		logger.Int("fetched", w.report.Fetched),
		logger.Int("saved", w.report.Saved),
		logger.Int("notFound", w.report.NotFound),
	)
	return w.report, nil
}

// Step performs one transition from an Active state: probe the cursor id,
// persist a hit and advance the number, roll the season on the first miss,
// or finish once the last configured season has been exhausted. Calling
// Step on a terminal state returns it unchanged.
func (w *Walker) Step(ctx context.Context, s State) State {
	if s.Phase != Active {
		return s
	}
	if err := ctx.Err(); err != nil {
		return State{Phase: Fatal, Cursor: s.Cursor, Err: fmt.Errorf("walk interrupted: %w", err)}
	}

	encoded, err := s.Cursor.Encode()
	if err != nil {
		return State{Phase: Fatal, Cursor: s.Cursor, Err: err}
	}
	metrics.UpdateWalkCursor(s.Cursor.Season, s.Cursor.Number)

	if w.skipExisting && w.persist.HasRaw(ctx, encoded) {
		w.report.Skipped++
		metrics.RecordGameSkipped()
		w.logger.Debug(ctx, "already persisted, skipping", logger.String("gameID", s.Cursor.String()))
		return State{Phase: Active, Cursor: s.Cursor.Next()}
	}

	start := time.Now()
	payload, err := w.fetch.FetchGame(ctx, encoded)
	metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		// A failed probe leaves the id's existence unknown; the walk cannot
		// continue without breaking sequential coverage.
		metrics.RecordFetchError()
		return State{Phase: Fatal, Cursor: s.Cursor, Err: fmt.Errorf("fetch game %d: %w", encoded, err)}
	}
	w.report.Fetched++
	metrics.RecordGameFetched()

	match, err := payloadMatches(payload, encoded)
	if err != nil {
		// An unreadable body is a transport-level fault, not evidence the
		// game does not exist. Mistaking one for the other would end a
		// season on a server hiccup.
		metrics.RecordFetchError()
		return State{Phase: Fatal, Cursor: s.Cursor, Err: fmt.Errorf("probe game %d: %w", encoded, err)}
	}
	if !match {
		w.report.NotFound++
		metrics.RecordGameNotFound()
		return w.rollover(ctx, s)
	}

	if err := w.persist.SaveRaw(ctx, encoded, payload); err != nil {
		metrics.RecordPersistError()
		return State{Phase: Fatal, Cursor: s.Cursor, Err: err}
	}
	w.report.Saved++
	metrics.RecordGamePersisted()
	w.logger.Info(ctx, "saved game", logger.String("gameID", s.Cursor.String()))

	if err := w.sleep(ctx); err != nil {
		return State{Phase: Fatal, Cursor: s.Cursor, Err: err}
	}
	return State{Phase: Active, Cursor: s.Cursor.Next()}
}

// rollover handles a miss: the season's games are exhausted.
func (w *Walker) rollover(ctx context.Context, s State) State {
	w.report.SeasonsFinished++
	metrics.RecordSeasonFinished()
	if s.Cursor.Season < w.endSeason {
		next := s.Cursor.NextSeason()
		w.logger.Info(ctx, "season exhausted, rolling over",
			logger.Int("season", s.Cursor.Season),
			logger.Int("nextSeason", next.Season),
		)
		return State{Phase: Active, Cursor: next}
	}
	w.logger.Info(ctx, "last season exhausted", logger.Int("season", s.Cursor.Season))
	return State{Phase: SeasonDone, Cursor: s.Cursor}
}

// sleep applies the politeness delay, aborting early on cancellation.
func (w *Walker) sleep(ctx context.Context) error {
	if w.wait <= 0 {
		return nil
	}
	timer := time.NewTimer(w.wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("walk interrupted: %w", ctx.Err())
	}
}

// payloadMatches reports whether the payload's embedded gamePk equals the
// requested id. A JSON document without a matching gamePk (the API's
// error document) reads as "no such game"; a body that is not JSON at
// all fails with ErrUndecodablePayload, leaving existence undecided.
func payloadMatches(payload []byte, id int64) (bool, error) {
	var probe struct {
		GamePk *int64 `json:"gamePk"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return false, fmt.Errorf("%w: %v", ErrUndecodablePayload, err)
	}
	return probe.GamePk != nil && *probe.GamePk == id, nil
}
