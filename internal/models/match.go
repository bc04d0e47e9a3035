package models

import (
	"time"
)

// Match is one completed fixture inside a league+season.
// The core engine assumes the loader has already validated the record shape.
type Match struct {
	League    string    `json:"league"`
	Season    string    `json:"season"`
	Date      time.Time `json:"date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeGoals int       `json:"fthg"`
	AwayGoals int       `json:"ftag"`
}

// MatchRow is the incoming ingest payload for a single match.
// Statistical columns are optional; football-data CSVs only carry them in
// later seasons, so they map to Nullable columns in ClickHouse.
type MatchRow struct {
	League    string `json:"league" validate:"required"`
	Season    string `json:"season" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	HomeTeam  string `json:"home_team" validate:"required"`
	AwayTeam  string `json:"away_team" validate:"required,nefield=HomeTeam"`
	HomeGoals int    `json:"fthg" validate:"min=0"`
	AwayGoals int    `json:"ftag" validate:"min=0"`

	XGHome          *float64 `json:"xg_home,omitempty"`
	XGAway          *float64 `json:"xg_away,omitempty"`
	FoulsHome       *float64 `json:"fouls_home,omitempty"`
	FoulsAway       *float64 `json:"fouls_away,omitempty"`
	YellowHome      *float64 `json:"yellow_home,omitempty"`
	YellowAway      *float64 `json:"yellow_away,omitempty"`
	RedHome         *float64 `json:"red_home,omitempty"`
	RedAway         *float64 `json:"red_away,omitempty"`
	MarketValueHome *float64 `json:"market_value_home,omitempty"`
	MarketValueAway *float64 `json:"market_value_away,omitempty"`
	AgeHome         *float64 `json:"age_home,omitempty"`
	AgeAway         *float64 `json:"age_away,omitempty"`
}

// ParsedDate converts the wire date into a calendar date.
func (r *MatchRow) ParsedDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

// LeagueSeasons is one catalog entry: a league and the seasons loaded for it.
type LeagueSeasons struct {
	League  string   `json:"league"`
	Seasons []string `json:"seasons"`
}
