package standings

import (
	"github.com/footstats/standings-api/internal/models"
)

// Map holds the running aggregates for every team seen so far,
// keyed by team id, within a single league+season replay.
type Map map[string]*models.TeamStanding

// NewMap returns an empty standings map for one replay.
func NewMap() Map {
	return make(Map)
}

// Apply folds one match into the standings map. Both participants are
// zero-initialized on first sight, Played/GF/GA are updated unconditionally,
// and the 3/1/0 points rule decides the win/draw/loss columns.
// The map is the only state touched; replaying the same ordered sequence into
// a fresh map always produces the same aggregates.
func (s Map) Apply(m models.Match) error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return &InvalidMatchError{Reason: "empty team id", HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
	}
	if m.HomeTeam == m.AwayTeam {
		return &InvalidMatchError{Reason: "home and away team are identical", HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return &InvalidMatchError{Reason: "negative goal count", HomeTeam: m.HomeTeam, AwayTeam: m.AwayTeam}
	}

	for _, team := range []string{m.HomeTeam, m.AwayTeam} {
		if _, ok := s[team]; !ok {
			s[team] = &models.TeamStanding{}
		}
	}

	home, away := s[m.HomeTeam], s[m.AwayTeam]

	home.Played++
	away.Played++

	home.GoalsFor += m.HomeGoals
	home.GoalsAgainst += m.AwayGoals
	away.GoalsFor += m.AwayGoals
	away.GoalsAgainst += m.HomeGoals

	switch {
	case m.HomeGoals > m.AwayGoals:
		home.Points += 3
		home.Wins++
		away.Losses++
	case m.HomeGoals < m.AwayGoals:
		away.Points += 3
		away.Wins++
		home.Losses++
	default:
		home.Points++
		away.Points++
		home.Draws++
		away.Draws++
	}

	return nil
}
