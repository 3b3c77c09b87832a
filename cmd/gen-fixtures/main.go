package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/okian/rinkfeed/internal/adapters/store"
	"github.com/okian/rinkfeed/internal/domain/gameid"
	"github.com/okian/rinkfeed/internal/fixtures"
)

// Default configuration constants.
const (
	defaultSeason  = 2016
	defaultGames   = 82
	defaultSeed    = 42
	defaultTimeout = 1 * time.Minute
)

func main() {
	var (
		season = flag.Int("season", defaultSeason, "Season the fixtures belong to (2016 for 2016-2017)")
		games  = flag.Int("games", defaultGames, "Number of games to generate")
		dir    = flag.String("dir", ".", "Directory to write raw game files into")
		seed   = flag.Int64("seed", defaultSeed, "Random seed for reproducible fixtures")
		teams  = flag.String("teams", "", "Comma-separated team tags (default: built-in rotation)")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	opts := []fixtures.Option{
		fixtures.WithSeason(*season),
		fixtures.WithSeed(*seed),
	}
	if *teams != "" {
		opts = append(opts, fixtures.WithTeams(strings.Split(*teams, ",")))
	}
	gen := fixtures.New(opts...)
	st := store.New(store.WithRawDir(*dir))

	for i := 1; i <= *games; i++ {
		payload, err := gen.Game(i)
		if err != nil {
			os.Stderr.WriteString("generate failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		id := gameid.ID{Season: *season, Kind: gameid.Regular, Number: i}
		encoded, err := id.Encode()
		if err != nil {
			os.Stderr.WriteString("encode failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		if err := st.SaveRaw(ctx, encoded, payload); err != nil {
			os.Stderr.WriteString("write failed: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stdout, "wrote %d games for season %d-%d to %s\n", *games, *season, *season+1, *dir)
}
