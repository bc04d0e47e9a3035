package standings

import (
	"errors"
	"testing"
	"time"

	"github.com/footstats/standings-api/internal/models"
)

func match(home, away string, hg, ag int) models.Match {
	return models.Match{
		League:    "epl",
		Season:    "2021-2022",
		Date:      time.Date(2021, 8, 14, 0, 0, 0, 0, time.UTC),
		HomeTeam:  home,
		AwayTeam:  away,
		HomeGoals: hg,
		AwayGoals: ag,
	}
}

func TestApply_Outcomes(t *testing.T) {
	tests := []struct {
		name       string
		m          models.Match
		wantHome   models.TeamStanding
		wantAway   models.TeamStanding
		wantPoints int // total points awarded by this match
	}{
		{
			name:       "HomeWin",
			m:          match("Arsenal", "Chelsea", 2, 0),
			wantHome:   models.TeamStanding{Points: 3, Played: 1, Wins: 1, GoalsFor: 2},
			wantAway:   models.TeamStanding{Played: 1, Losses: 1, GoalsAgainst: 2},
			wantPoints: 3,
		},
		{
			name:       "AwayWin",
			m:          match("Arsenal", "Chelsea", 1, 3),
			wantHome:   models.TeamStanding{Played: 1, Losses: 1, GoalsFor: 1, GoalsAgainst: 3},
			wantAway:   models.TeamStanding{Points: 3, Played: 1, Wins: 1, GoalsFor: 3, GoalsAgainst: 1},
			wantPoints: 3,
		},
		{
			name:       "Draw",
			m:          match("Arsenal", "Chelsea", 1, 1),
			wantHome:   models.TeamStanding{Points: 1, Played: 1, Draws: 1, GoalsFor: 1, GoalsAgainst: 1},
			wantAway:   models.TeamStanding{Points: 1, Played: 1, Draws: 1, GoalsFor: 1, GoalsAgainst: 1},
			wantPoints: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMap()
			if err := s.Apply(tt.m); err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got := *s[tt.m.HomeTeam]; got != tt.wantHome {
				t.Errorf("home standing = %+v, want %+v", got, tt.wantHome)
			}
			if got := *s[tt.m.AwayTeam]; got != tt.wantAway {
				t.Errorf("away standing = %+v, want %+v", got, tt.wantAway)
			}
			if total := s[tt.m.HomeTeam].Points + s[tt.m.AwayTeam].Points; total != tt.wantPoints {
				t.Errorf("points awarded = %d, want %d", total, tt.wantPoints)
			}
		})
	}
}

func TestApply_InvalidMatch(t *testing.T) {
	tests := []struct {
		name string
		m    models.Match
	}{
		{"EmptyHome", match("", "Chelsea", 1, 0)},
		{"EmptyAway", match("Arsenal", "", 1, 0)},
		{"SameTeam", match("Arsenal", "Arsenal", 1, 0)},
		{"NegativeHomeGoals", match("Arsenal", "Chelsea", -1, 0)},
		{"NegativeAwayGoals", match("Arsenal", "Chelsea", 0, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMap()
			err := s.Apply(tt.m)
			var invalid *InvalidMatchError
			if !errors.As(err, &invalid) {
				t.Fatalf("Apply() error = %v, want InvalidMatchError", err)
			}
			if len(s) != 0 {
				t.Errorf("standings mutated on invalid match: %v", s)
			}
		})
	}
}

func TestApply_Invariants(t *testing.T) {
	// A small season: every team's record must stay internally consistent
	// after every applied match.
	season := []models.Match{
		match("Arsenal", "Chelsea", 2, 0),
		match("Liverpool", "Arsenal", 1, 1),
		match("Chelsea", "Liverpool", 0, 3),
		match("Chelsea", "Arsenal", 2, 2),
		match("Arsenal", "Liverpool", 4, 1),
		match("Liverpool", "Chelsea", 0, 0),
	}

	s := NewMap()
	for _, m := range season {
		if err := s.Apply(m); err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		for team, st := range s {
			if st.Played != st.Wins+st.Draws+st.Losses {
				t.Errorf("%s: played %d != W%d+D%d+L%d", team, st.Played, st.Wins, st.Draws, st.Losses)
			}
			if st.Points < 0 || st.GoalsFor < 0 || st.GoalsAgainst < 0 {
				t.Errorf("%s: negative aggregate %+v", team, st)
			}
		}
	}

	if got := s["Arsenal"].Points; got != 8 {
		t.Errorf("Arsenal points = %d, want 8", got)
	}
	if got := s["Liverpool"].GoalDiff(); got != 0 {
		t.Errorf("Liverpool GD = %d, want 0", got)
	}
	if got := s["Chelsea"].Points; got != 2 {
		t.Errorf("Chelsea points = %d, want 2", got)
	}
}
