package models

import "time"

// TeamStanding is the running aggregate for one team within a league+season.
// Invariants: Played = Wins + Draws + Losses; all counters non-negative.
type TeamStanding struct {
	Points       int `json:"points"`
	Played       int `json:"played"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
}

// GoalDiff is derived, never stored.
func (s TeamStanding) GoalDiff() int {
	return s.GoalsFor - s.GoalsAgainst
}

// TableRow is one line of a ranked standings table.
// Ranks are 1-based and contiguous; full-key ties still get distinct ranks.
type TableRow struct {
	Rank         int    `json:"rank"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

// ProgressionEntry is one team's snapshot taken right after one of its matches.
// Matchday is team-local: the count of matches that team has played so far.
type ProgressionEntry struct {
	Team         string    `json:"team"`
	Matchday     int       `json:"matchday"`
	Date         time.Time `json:"date"`
	Points       int       `json:"points"`
	GoalsFor     int       `json:"goals_for"`
	GoalsAgainst int       `json:"goals_against"`
	GoalDiff     int       `json:"goal_diff"`
	Rank         int       `json:"rank"`
}

// LeagueComparison is one league's row in the cross-league comparison table.
// Averages are per match over all loaded seasons of that league.
type LeagueComparison struct {
	League         string  `json:"league"`
	Matches        uint64  `json:"matches"`
	Teams          uint64  `json:"teams"`
	AvgHomeGoals   float64 `json:"avg_home_goals"`
	AvgAwayGoals   float64 `json:"avg_away_goals"`
	AvgTotalGoals  float64 `json:"avg_total_goals"`
	AvgXG          float64 `json:"avg_xg"`
	AvgFouls       float64 `json:"avg_fouls"`
	AvgYellowCards float64 `json:"avg_yellow_cards"`
	AvgRedCards    float64 `json:"avg_red_cards"`
	AvgMarketValue float64 `json:"avg_market_value"`
	AvgSquadAge    float64 `json:"avg_squad_age"`
}

// DatasetInfo summarizes what is currently loaded.
type DatasetInfo struct {
	Rows          uint64            `json:"rows"`
	Leagues       []string          `json:"leagues"`
	Seasons       []string          `json:"seasons"`
	MissingValues map[string]uint64 `json:"missing_values"`
}
