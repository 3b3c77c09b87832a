// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// LocalTimeLayout is the rendering of localized game timestamps, carrying
// the zone offset so the corpus file stays self-describing.
const LocalTimeLayout = "2006-01-02 15:04:05-07:00"

// TeamGame is one side of a completed game: everything one team needs to
// know about a single appearance. Exactly two TeamGame values exist per
// valid raw record. JSON tags define the corpus file format.
type TeamGame struct {
	Season       string `json:"season"`
	GameID       int64  `json:"game_id"`
	StartUTC     string `json:"game_datetime_z"`
	StartLocal   string `json:"game_datetime_pst"`
	Team         string `json:"team"`
	Goals        int    `json:"goals"`
	Points       int    `json:"points"`
	Shots        int    `json:"shots"`
	Opponent     string `json:"team_against"`
	GoalsAgainst int    `json:"goals_against"`
	ShotsAgainst int    `json:"shots_against"`
	Overtime     bool   `json:"overtime"`
	Shootout     bool   `json:"shootout"`
}

// Key returns the structured corpus key for this entry.
func (g TeamGame) Key() Key {
	return Key{GameID: g.GameID, Team: g.Team}
}

// LocalTime parses the localized start timestamp.
func (g TeamGame) LocalTime() (time.Time, error) {
	t, err := time.Parse(LocalTimeLayout, g.StartLocal)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse local start of game %d: %w", g.GameID, err)
	}
	return t, nil
}

// Key identifies one TeamGame in the corpus: the game plus which side of
// it. A structured key avoids re-parsing the legacy string form.
type Key struct {
	GameID int64
	Team   string
}

// String renders the legacy corpus-file key, "<game_id>_<team>".
func (k Key) String() string {
	return fmt.Sprintf("%d_%s", k.GameID, k.Team)
}
