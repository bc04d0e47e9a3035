package standings

import (
	"sort"

	"github.com/footstats/standings-api/internal/models"
)

// TrackProgression replays the given matches in chronological order and emits
// the per-team rank curve for the season.
//
// Emission semantics: every replayed match emits exactly two entries, one per
// participant, carrying that team's aggregates after the match and its rank in
// a full re-rank of all teams seen so far. Matchday is team-local (the number
// of matches that team has played), so each team's matchday sequence is
// contiguous from 1 and strictly increasing with replay order.
//
// Matches with equal dates keep their input order: the sort is stable, which
// makes the whole replay deterministic for a given input sequence.
func TrackProgression(matches []models.Match) ([]models.ProgressionEntry, error) {
	if len(matches) == 0 {
		return nil, &NoMatchesError{}
	}

	ordered := make([]models.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	s := NewMap()
	progression := make([]models.ProgressionEntry, 0, 2*len(ordered))

	for _, m := range ordered {
		if err := s.Apply(m); err != nil {
			return nil, err
		}

		table, err := Rank(s)
		if err != nil {
			return nil, err
		}

		ranks := make(map[string]int, len(table))
		for _, row := range table {
			ranks[row.Team] = row.Rank
		}

		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			st := s[team]
			progression = append(progression, models.ProgressionEntry{
				Team:         team,
				Matchday:     st.Played,
				Date:         m.Date,
				Points:       st.Points,
				GoalsFor:     st.GoalsFor,
				GoalsAgainst: st.GoalsAgainst,
				GoalDiff:     st.GoalDiff(),
				Rank:         ranks[team],
			})
		}
	}

	return progression, nil
}
