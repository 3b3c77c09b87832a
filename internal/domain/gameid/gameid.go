// Package gameid encodes and decodes NHL game identifiers.
//
// A game id packs a season, a game kind, and a per-season game number into
// a single integer: season*10^6 + kind*10^4 + number, with the number
// zero-padded to four digits (e.g. 2016020001 is game 1 of the 2016-2017
// regular season). The game number resets to 1 at each season boundary.
package gameid

import (
	"fmt"
	"strconv"
)

// Kind is the game-category code embedded in the identifier.
type Kind int

// Known game kinds, matching the two-digit codes used by the stats API.
const (
	Preseason Kind = 1
	Regular   Kind = 2
	Playoff   Kind = 3
)

// Limits of the number field inside an encoded id.
const (
	minNumber = 1
	maxNumber = 9999

	kindBase   = 10_000
	seasonBase = 1_000_000
)

// String returns the two-digit API code for the kind.
func (k Kind) String() string {
	return fmt.Sprintf("%02d", int(k))
}

// Name returns a human-readable label for the kind.
func (k Kind) Name() string {
	switch k {
	case Preseason:
		return "preseason"
	case Regular:
		return "regular"
	case Playoff:
		return "playoff"
	default:
		return "unknown"
	}
}

// ParseKind maps a label or a two-digit code to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "preseason", "01", "1":
		return Preseason, nil
	case "regular", "02", "2":
		return Regular, nil
	case "playoff", "playoffs", "03", "3":
		return Playoff, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// ID identifies one game within the season-structured id space.
// Season is the starting year of the season (2016 for 2016-2017).
type ID struct {
	Season int
	Kind   Kind
	Number int
}

// Encode packs the id into its integer wire form.
// The number field must fit in four digits.
func (id ID) Encode() (int64, error) {
	if id.Number < minNumber || id.Number > maxNumber {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSequence, id.Number)
	}
	if id.Kind < Preseason || id.Kind > Playoff {
		return 0, fmt.Errorf("%w: %d", ErrInvalidKind, int(id.Kind))
	}
	return int64(id.Season)*seasonBase + int64(id.Kind)*kindBase + int64(id.Number), nil
}

// Decode is the exact inverse of Encode for every encodable ID.
func Decode(encoded int64) (ID, error) {
	number := int(encoded % kindBase)
	kind := Kind(encoded / kindBase % 100)
	season := int(encoded / seasonBase)

	id := ID{Season: season, Kind: kind, Number: number}
	if _, err := id.Encode(); err != nil {
		return ID{}, fmt.Errorf("decode %d: %w", encoded, err)
	}
	return id, nil
}

// Next returns the id of the following game in the same season.
func (id ID) Next() ID {
	return ID{Season: id.Season, Kind: id.Kind, Number: id.Number + 1}
}

// NextSeason returns the first game of the following season.
func (id ID) NextSeason() ID {
	return ID{Season: id.Season + 1, Kind: id.Kind, Number: 1}
}

// String renders the encoded form, or a debug form when unencodable.
func (id ID) String() string {
	encoded, err := id.Encode()
	if err != nil {
		return fmt.Sprintf("invalid(%d/%s/%d)", id.Season, id.Kind, id.Number)
	}
	return strconv.FormatInt(encoded, 10)
}
