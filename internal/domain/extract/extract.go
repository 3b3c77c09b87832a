// Package extract projects raw feed/live payloads into canonical
// per-team game summaries.
//
// Extraction is a pure function of the payload. A malformed payload fails
// with ErrMalformedRecord and is expected to be skipped by the caller; it
// must never abort a batch.
package extract

import (
	"encoding/json"
	"fmt"
	"time"
	_ "time/tzdata" // game-day math depends on America/Los_Angeles being loadable

	"github.com/okian/rinkfeed/internal/domain/model"
)

// Feed timestamp and localization parameters.
const (
	feedTimeLayout = "2006-01-02T15:04:05Z"
	localZone      = "America/Los_Angeles"

	// Games that reach a fourth period went to overtime. Only correct for
	// the post-1999 rule set.
	regulationPeriods = 3
)

var pacific *time.Location

func init() {
	loc, err := time.LoadLocation(localZone)
	if err != nil {
		panic("extract: load " + localZone + ": " + err.Error())
	}
	pacific = loc
}

// feed mirrors the subset of the NHL feed/live document we read. Pointer
// fields distinguish "absent" from zero values.
type feed struct {
	GameData struct {
		Game struct {
			Pk     *int64  `json:"pk"`
			Season *string `json:"season"`
		} `json:"game"`
		Datetime struct {
			DateTime *string `json:"dateTime"`
		} `json:"datetime"`
		Teams struct {
			Away struct {
				Abbreviation *string `json:"abbreviation"`
			} `json:"away"`
			Home struct {
				Abbreviation *string `json:"abbreviation"`
			} `json:"home"`
		} `json:"teams"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			Teams struct {
				Away sideScore `json:"away"`
				Home sideScore `json:"home"`
			} `json:"teams"`
			CurrentPeriod *int  `json:"currentPeriod"`
			HasShootout   *bool `json:"hasShootout"`
		} `json:"linescore"`
	} `json:"liveData"`
}

type sideScore struct {
	Goals       *int `json:"goals"`
	ShotsOnGoal *int `json:"shotsOnGoal"`
}

// Game extracts both sides of a raw feed/live payload.
func Game(raw []byte) (away, home model.TeamGame, err error) {
	var f feed
	if uerr := json.Unmarshal(raw, &f); uerr != nil {
		return model.TeamGame{}, model.TeamGame{}, fmt.Errorf("%w: %v", ErrMalformedRecord, uerr)
	}

	g := f.GameData
	ls := f.LiveData.Linescore
	if g.Game.Pk == nil || g.Game.Season == nil || g.Datetime.DateTime == nil ||
		g.Teams.Away.Abbreviation == nil || g.Teams.Home.Abbreviation == nil ||
		ls.Teams.Away.Goals == nil || ls.Teams.Away.ShotsOnGoal == nil ||
		ls.Teams.Home.Goals == nil || ls.Teams.Home.ShotsOnGoal == nil ||
		ls.CurrentPeriod == nil || ls.HasShootout == nil {
		return model.TeamGame{}, model.TeamGame{}, fmt.Errorf("%w: required field missing", ErrMalformedRecord)
	}

	overtime := *ls.CurrentPeriod > regulationPeriods
	awayPts, homePts, err := CalcPoints(overtime, *ls.Teams.Away.Goals, *ls.Teams.Home.Goals)
	if err != nil {
		return model.TeamGame{}, model.TeamGame{}, err
	}

	local, err := Localize(*g.Datetime.DateTime)
	if err != nil {
		return model.TeamGame{}, model.TeamGame{}, err
	}

	away = model.TeamGame{
		Season:       *g.Game.Season,
		GameID:       *g.Game.Pk,
		StartUTC:     *g.Datetime.DateTime,
		StartLocal:   local,
		Team:         *g.Teams.Away.Abbreviation,
		Goals:        *ls.Teams.Away.Goals,
		Points:       awayPts,
		Shots:        *ls.Teams.Away.ShotsOnGoal,
		Opponent:     *g.Teams.Home.Abbreviation,
		GoalsAgainst: *ls.Teams.Home.Goals,
		ShotsAgainst: *ls.Teams.Home.ShotsOnGoal,
		Overtime:     overtime,
		Shootout:     *ls.HasShootout,
	}
	home = model.TeamGame{
		Season:       *g.Game.Season,
		GameID:       *g.Game.Pk,
		StartUTC:     *g.Datetime.DateTime,
		StartLocal:   local,
		Team:         *g.Teams.Home.Abbreviation,
		Goals:        *ls.Teams.Home.Goals,
		Points:       homePts,
		Shots:        *ls.Teams.Home.ShotsOnGoal,
		Opponent:     *g.Teams.Away.Abbreviation,
		GoalsAgainst: *ls.Teams.Away.Goals,
		ShotsAgainst: *ls.Teams.Away.ShotsOnGoal,
		Overtime:     overtime,
		Shootout:     *ls.HasShootout,
	}
	return away, home, nil
}

// CalcPoints applies the league point rules to a final score. Two points
// to the winner; an overtime loss is still worth one. A regulation tie is
// impossible under the rule set this table models and fails with
// ErrTieWithoutOvertime.
func CalcPoints(overtime bool, awayGoals, homeGoals int) (awayPts, homePts int, err error) {
	switch {
	case awayGoals > homeGoals && !overtime:
		return 2, 0, nil
	case awayGoals < homeGoals && !overtime:
		return 0, 2, nil
	case awayGoals > homeGoals:
		return 2, 1, nil
	case awayGoals < homeGoals:
		return 1, 2, nil
	case overtime:
		// old-rules overtime tie
		return 1, 1, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d-%d", ErrTieWithoutOvertime, awayGoals, homeGoals)
	}
}

// Localize converts a feed UTC timestamp to its Pacific rendering. Game
// days are Pacific days; a late east-coast start must not roll into the
// next game day.
func Localize(utc string) (string, error) {
	t, err := time.Parse(feedTimeLayout, utc)
	if err != nil {
		return "", fmt.Errorf("%w: bad dateTime %q: %v", ErrMalformedRecord, utc, err)
	}
	return t.In(pacific).Format(model.LocalTimeLayout), nil
}

// Location returns the fixed local zone used for game-day math.
func Location() *time.Location {
	return pacific
}
