// Package standings folds per-team game summaries into season point
// totals and renders them as CSV.
package standings

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/okian/rinkfeed/internal/domain/model"
)

// Table maps season code (e.g. 20162017) to team to cumulative points.
type Table map[int]map[string]int

// Fold accumulates points per (season, team). It is order-independent:
// every summary contributes exactly its point value, increment only.
func Fold(games []model.TeamGame) Table {
	t := make(Table)
	for _, g := range games {
		season, err := strconv.Atoi(g.Season)
		if err != nil {
			// Season codes come from the extractor and are numeric by
			// construction; an unparsable one lands in bucket 0 rather
			// than silently vanishing.
			season = 0
		}
		if t[season] == nil {
			t[season] = make(map[string]int)
		}
		t[season][g.Team] += g.Points
	}
	return t
}

// Row is one rendered standings line.
type Row struct {
	Team   string
	Points int
	Season int
}

// Rows flattens the table for display: seasons ascending, then points
// descending, ties broken by team tag ascending so output is stable.
func (t Table) Rows() []Row {
	seasons := make([]int, 0, len(t))
	for season := range t {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	var rows []Row
	for _, season := range seasons {
		teams := t[season]
		seasonRows := make([]Row, 0, len(teams))
		for team, points := range teams {
			seasonRows = append(seasonRows, Row{Team: team, Points: points, Season: season})
		}
		sort.Slice(seasonRows, func(i, j int) bool {
			if seasonRows[i].Points != seasonRows[j].Points {
				return seasonRows[i].Points > seasonRows[j].Points
			}
			return seasonRows[i].Team < seasonRows[j].Team
		})
		rows = append(rows, seasonRows...)
	}
	return rows
}

// WriteCSV renders the table with header "team,points,season". The season
// code is split into its year pair, 20162017 -> 2016-2017.
func WriteCSV(w io.Writer, t Table) error {
	if _, err := fmt.Fprintln(w, "team,points,season"); err != nil {
		return fmt.Errorf("write standings header: %w", err)
	}
	for _, r := range t.Rows() {
		if _, err := fmt.Fprintf(w, "%s,%d,%s\n", r.Team, r.Points, formatSeason(r.Season)); err != nil {
			return fmt.Errorf("write standings row: %w", err)
		}
	}
	return nil
}

func formatSeason(season int) string {
	s := strconv.Itoa(season)
	if len(s) != 8 {
		return s
	}
	return s[:4] + "-" + s[4:]
}
