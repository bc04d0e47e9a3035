package logic

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/footstats/standings-api/internal/models"
)

func seasonFixture() []models.Match {
	day := func(d int) time.Time { return time.Date(2021, 8, d, 0, 0, 0, 0, time.UTC) }
	return []models.Match{
		{League: "epl", Season: "2021-2022", Date: day(1), HomeTeam: "A", AwayTeam: "B", HomeGoals: 2, AwayGoals: 0},
		{League: "epl", Season: "2021-2022", Date: day(8), HomeTeam: "B", AwayTeam: "A", HomeGoals: 1, AwayGoals: 1},
	}
}

func TestGetTable_ComputesAndCaches(t *testing.T) {
	matches := &MockMatchService{Matches: seasonFixture()}
	cache := NewMockRedis()
	svc := NewTableService(matches, cache, zap.NewNop(), time.Minute)

	table, err := svc.GetTable(context.Background(), "epl", "2021-2022")
	if err != nil {
		t.Fatalf("GetTable() error = %v", err)
	}

	if len(table) != 2 {
		t.Fatalf("table rows = %d, want 2", len(table))
	}
	if table[0].Team != "A" || table[0].Points != 4 || table[0].Rank != 1 {
		t.Errorf("top row = %+v", table[0])
	}
	if table[1].Team != "B" || table[1].Points != 1 || table[1].Rank != 2 {
		t.Errorf("bottom row = %+v", table[1])
	}

	if cache.Sets != 1 {
		t.Errorf("cache writes = %d, want 1", cache.Sets)
	}

	// Second call must be served from cache without touching the store.
	if _, err := svc.GetTable(context.Background(), "epl", "2021-2022"); err != nil {
		t.Fatalf("cached GetTable() error = %v", err)
	}
	if matches.Calls != 1 {
		t.Errorf("match store calls = %d, want 1", matches.Calls)
	}
}

func TestGetTable_CacheHitDecodes(t *testing.T) {
	cached := []models.TableRow{{Rank: 1, Team: "Cached", Points: 99}}
	payload, _ := json.Marshal(cached)

	cache := NewMockRedis()
	cache.Store["table:epl:2021-2022"] = string(payload)

	matches := &MockMatchService{}
	svc := NewTableService(matches, cache, zap.NewNop(), time.Minute)

	table, err := svc.GetTable(context.Background(), "epl", "2021-2022")
	if err != nil {
		t.Fatalf("GetTable() error = %v", err)
	}
	if table[0].Team != "Cached" || matches.Calls != 0 {
		t.Errorf("cache was not used: table = %+v, store calls = %d", table, matches.Calls)
	}
}

func TestGetProgression_TeamFilter(t *testing.T) {
	matches := &MockMatchService{Matches: seasonFixture()}
	cache := NewMockRedis()
	svc := NewProgressionService(matches, cache, zap.NewNop(), time.Minute)

	all, err := svc.GetProgression(context.Background(), "epl", "2021-2022", "")
	if err != nil {
		t.Fatalf("GetProgression() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("entries = %d, want 4", len(all))
	}

	only, err := svc.GetProgression(context.Background(), "epl", "2021-2022", "B")
	if err != nil {
		t.Fatalf("filtered GetProgression() error = %v", err)
	}
	if len(only) != 2 {
		t.Fatalf("filtered entries = %d, want 2", len(only))
	}
	for i, entry := range only {
		if entry.Team != "B" {
			t.Errorf("entry %d team = %s, want B", i, entry.Team)
		}
		if entry.Matchday != i+1 {
			t.Errorf("entry %d matchday = %d, want %d", i, entry.Matchday, i+1)
		}
	}

	// Both calls share one cached season.
	if matches.Calls != 1 {
		t.Errorf("match store calls = %d, want 1", matches.Calls)
	}
}
