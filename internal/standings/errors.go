// Package standings implements the league table engine: a deterministic fold
// of an ordered match sequence into per-team aggregates, ranked snapshots, and
// season-long rank progressions. The package is pure; storage and transport
// live in internal/logic and internal/handlers.
package standings

import (
	"fmt"
	"strings"
)

// InvalidMatchError reports a single malformed match record.
type InvalidMatchError struct {
	Reason   string
	HomeTeam string
	AwayTeam string
}

func (e *InvalidMatchError) Error() string {
	return fmt.Sprintf("invalid match %q vs %q: %s", e.HomeTeam, e.AwayTeam, e.Reason)
}

// EmptyStandingsError reports a ranking request over zero accumulated teams.
type EmptyStandingsError struct{}

func (e *EmptyStandingsError) Error() string {
	return "cannot rank empty standings"
}

// NoMatchesError reports that a league+season combination yielded zero rows.
// Leagues and Seasons carry the sorted valid identifiers known to the match
// store so callers can see what they could have asked for.
type NoMatchesError struct {
	League  string
	Season  string
	Leagues []string
	Seasons []string
}

func (e *NoMatchesError) Error() string {
	return fmt.Sprintf("no matches found for league %q and season %q (available leagues: %s; available seasons: %s)",
		e.League, e.Season,
		strings.Join(e.Leagues, ", "),
		strings.Join(e.Seasons, ", "))
}
