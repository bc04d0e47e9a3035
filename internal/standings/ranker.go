package standings

import (
	"sort"

	"github.com/footstats/standings-api/internal/models"
)

// Rank converts the standings map into a strictly ordered table.
// Sort key: points desc, goal difference desc, goals for desc, then team id
// ascending so that full-key ties still order deterministically across runs.
// Ranks are assigned by position: equal-key teams get distinct consecutive
// ranks rather than a shared rank. The map itself is never mutated.
func Rank(s Map) ([]models.TableRow, error) {
	if len(s) == 0 {
		return nil, &EmptyStandingsError{}
	}

	rows := make([]models.TableRow, 0, len(s))
	for team, st := range s {
		rows = append(rows, models.TableRow{
			Team:         team,
			Played:       st.Played,
			Wins:         st.Wins,
			Draws:        st.Draws,
			Losses:       st.Losses,
			GoalsFor:     st.GoalsFor,
			GoalsAgainst: st.GoalsAgainst,
			GoalDiff:     st.GoalDiff(),
			Points:       st.Points,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff != b.GoalDiff {
			return a.GoalDiff > b.GoalDiff
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}

	return rows, nil
}

// BuildTable folds an entire match sequence and ranks the result.
// Match order does not affect the final table, only the progression does.
func BuildTable(matches []models.Match) ([]models.TableRow, error) {
	s := NewMap()
	for _, m := range matches {
		if err := s.Apply(m); err != nil {
			return nil, err
		}
	}
	return Rank(s)
}
