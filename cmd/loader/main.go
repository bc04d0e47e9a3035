// Command loader walks a directory of per-league, per-season CSV files
// (data/top5/<league>/<season>.csv), validates and converts the rows, and
// loads them into ClickHouse with the league/season catalog kept in Postgres.
// Column mismatches between files and missing values are reported at the end
// of the run; a load_jobs audit row is written per file.
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const matchesDDL = `
CREATE TABLE IF NOT EXISTS football_stats.matches (
	league            String,
	season            String,
	match_date        Date,
	home_team         String,
	away_team         String,
	fthg              Int32,
	ftag              Int32,
	xg_home           Nullable(Float64),
	xg_away           Nullable(Float64),
	fouls_home        Nullable(Float64),
	fouls_away        Nullable(Float64),
	yellow_home       Nullable(Float64),
	yellow_away       Nullable(Float64),
	red_home          Nullable(Float64),
	red_away          Nullable(Float64),
	market_value_home Nullable(Float64),
	market_value_away Nullable(Float64),
	age_home          Nullable(Float64),
	age_away          Nullable(Float64),
	loaded_at         DateTime
) ENGINE = MergeTree()
ORDER BY (league, season, match_date)
`

var catalogDDL = []string{
	`CREATE TABLE IF NOT EXISTS leagues (
		id   SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS seasons (
		id        SERIAL PRIMARY KEY,
		league_id INT NOT NULL REFERENCES leagues(id),
		name      TEXT NOT NULL,
		UNIQUE (league_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS load_jobs (
		id          UUID PRIMARY KEY,
		league      TEXT NOT NULL,
		season      TEXT NOT NULL,
		source_file TEXT NOT NULL,
		row_count   INT NOT NULL,
		status      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// columnAliases maps the header spellings seen across seasons onto canonical
// field names. Older files only carry the first seven.
var columnAliases = map[string]string{
	"date":              "date",
	"hometeam":          "home_team",
	"home_team":         "home_team",
	"awayteam":          "away_team",
	"away_team":         "away_team",
	"fthg":              "fthg",
	"hg":                "fthg",
	"ftag":              "ftag",
	"ag":                "ftag",
	"xg_home":           "xg_home",
	"xg_away":           "xg_away",
	"hf":                "fouls_home",
	"fouls_home":        "fouls_home",
	"af":                "fouls_away",
	"fouls_away":        "fouls_away",
	"hy":                "yellow_home",
	"yellow_home":       "yellow_home",
	"ay":                "yellow_away",
	"yellow_away":       "yellow_away",
	"hr":                "red_home",
	"red_home":          "red_home",
	"ar":                "red_away",
	"red_away":          "red_away",
	"market_value_home": "market_value_home",
	"market_value_away": "market_value_away",
	"age_home":          "age_home",
	"age_away":          "age_away",
}

var dateFormats = []string{"02/01/2006", "02/01/06", "2006-01-02"}

type fileReport struct {
	league  string
	season  string
	path    string
	rows    int
	skipped int
	missing map[string]int
}

func main() {
	dataDir := flag.String("data", "data/top5", "directory of <league>/<season>.csv files")
	pgURL := flag.String("postgres", os.Getenv("POSTGRES_URL"), "Postgres URL for the catalog")
	chURL := flag.String("clickhouse", os.Getenv("CLICKHOUSE_URL"), "ClickHouse URL for match facts")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if *pgURL == "" || *chURL == "" {
		sugar.Fatal("Both -postgres and -clickhouse (or POSTGRES_URL / CLICKHOUSE_URL) are required")
	}

	ctx := context.Background()

	pg, err := sql.Open("postgres", *pgURL)
	if err != nil {
		sugar.Fatalw("Failed to open Postgres", "error", err)
	}
	defer pg.Close()
	if err := pg.PingContext(ctx); err != nil {
		sugar.Fatalw("Postgres ping failed", "error", err)
	}
	for _, ddl := range catalogDDL {
		if _, err := pg.ExecContext(ctx, ddl); err != nil {
			sugar.Fatalw("Catalog DDL failed", "error", err)
		}
	}

	chOpts, err := clickhouse.ParseDSN(*chURL)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse URL", "error", err)
	}
	ch, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer ch.Close()
	if err := ch.Exec(ctx, matchesDDL); err != nil {
		sugar.Fatalw("Matches DDL failed", "error", err)
	}

	leagues, err := os.ReadDir(*dataDir)
	if err != nil {
		sugar.Fatalw("Failed to read data directory", "dir", *dataDir, "error", err)
	}

	var reports []fileReport
	var referenceColumns []string
	columnMismatches := make(map[string][]string)
	totalRows := 0

	for _, leagueEntry := range leagues {
		if !leagueEntry.IsDir() {
			continue
		}
		league := leagueEntry.Name()
		leaguePath := filepath.Join(*dataDir, league)

		files, err := os.ReadDir(leaguePath)
		if err != nil {
			sugar.Fatalw("Failed to read league directory", "dir", leaguePath, "error", err)
		}

		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".csv") {
				continue
			}
			season := strings.TrimSuffix(file.Name(), ".csv")
			path := filepath.Join(leaguePath, file.Name())

			report, columns, err := loadFile(ctx, ch, league, season, path)
			if err != nil {
				recordJob(ctx, pg, sugar, report, "failed")
				sugar.Fatalw("Failed to load file", "file", path, "error", err)
			}

			if referenceColumns == nil {
				referenceColumns = columns
			} else if !sameColumnSet(referenceColumns, columns) {
				columnMismatches[league+"/"+file.Name()] = columns
			}

			if err := upsertCatalog(ctx, pg, league, season); err != nil {
				sugar.Fatalw("Catalog upsert failed", "league", league, "season", season, "error", err)
			}
			recordJob(ctx, pg, sugar, report, "loaded")

			reports = append(reports, report)
			totalRows += report.rows
			sugar.Infow("Loaded file", "league", league, "season", season, "rows", report.rows, "skipped", report.skipped)
		}
	}

	if len(reports) == 0 {
		sugar.Fatalw("No CSV files found", "dir", *dataDir)
	}

	if len(columnMismatches) > 0 {
		sugar.Warn("Column mismatches between CSV files:")
		for file, cols := range columnMismatches {
			sugar.Warnw("Mismatched columns", "file", file, "columns", cols)
		}
	}

	missingTotals := make(map[string]int)
	for _, report := range reports {
		for col, n := range report.missing {
			missingTotals[col] += n
		}
	}
	if len(missingTotals) > 0 {
		sugar.Infow("Missing values detected", "counts", missingTotals)
	} else {
		sugar.Info("No missing values found")
	}

	sugar.Infow("Data loading successful", "files", len(reports), "rows", totalRows)
}

// loadFile parses one season CSV and writes its rows as a single ClickHouse
// batch. It returns the canonical column list seen in the header so the
// caller can detect mismatches across files.
func loadFile(ctx context.Context, ch driver.Conn, league, season, path string) (fileReport, []string, error) {
	report := fileReport{league: league, season: season, path: path, missing: make(map[string]int)}

	f, err := os.Open(path)
	if err != nil {
		return report, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return report, nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int) // canonical name -> column position
	var columns []string
	for i, name := range header {
		canonical, ok := columnAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		index[canonical] = i
		columns = append(columns, canonical)
	}
	for _, required := range []string{"date", "home_team", "away_team", "fthg", "ftag"} {
		if _, ok := index[required]; !ok {
			return report, columns, fmt.Errorf("missing required column %q", required)
		}
	}

	batch, err := ch.PrepareBatch(ctx, `
		INSERT INTO football_stats.matches (
			league, season, match_date, home_team, away_team, fthg, ftag,
			xg_home, xg_away, fouls_home, fouls_away,
			yellow_home, yellow_away, red_home, red_away,
			market_value_home, market_value_away, age_home, age_away,
			loaded_at
		)
	`)
	if err != nil {
		return report, columns, err
	}

	loadedAt := time.Now().UTC()
	for {
		record, err := reader.Read()
		if err != nil {
			break // io.EOF or a short trailing line; both end the file
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		date, err := parseDate(field("date"))
		if err != nil {
			report.skipped++
			continue
		}
		home, away := field("home_team"), field("away_team")
		if home == "" || away == "" {
			report.skipped++
			continue
		}
		fthg, err1 := strconv.Atoi(field("fthg"))
		ftag, err2 := strconv.Atoi(field("ftag"))
		if err1 != nil || err2 != nil || fthg < 0 || ftag < 0 {
			report.skipped++
			continue
		}

		stat := func(name string) *float64 {
			raw := field(name)
			if raw == "" {
				if _, present := index[name]; present {
					report.missing[name]++
				}
				return nil
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				report.missing[name]++
				return nil
			}
			return &v
		}

		if err := batch.Append(
			league, season, date, home, away,
			int32(fthg), int32(ftag),
			stat("xg_home"), stat("xg_away"),
			stat("fouls_home"), stat("fouls_away"),
			stat("yellow_home"), stat("yellow_away"),
			stat("red_home"), stat("red_away"),
			stat("market_value_home"), stat("market_value_away"),
			stat("age_home"), stat("age_away"),
			loadedAt,
		); err != nil {
			return report, columns, err
		}
		report.rows++
	}

	if err := batch.Send(); err != nil {
		return report, columns, err
	}
	return report, columns, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func sameColumnSet(a, b []string) bool {
	set := make(map[string]bool, len(a))
	for _, col := range a {
		set[col] = true
	}
	if len(set) != len(b) {
		return false
	}
	for _, col := range b {
		if !set[col] {
			return false
		}
	}
	return true
}

func upsertCatalog(ctx context.Context, pg *sql.DB, league, season string) error {
	_, err := pg.ExecContext(ctx, `
		WITH league AS (
			INSERT INTO leagues (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		)
		INSERT INTO seasons (league_id, name)
		SELECT id, $2 FROM league
		ON CONFLICT (league_id, name) DO NOTHING
	`, league, season)
	return err
}

func recordJob(ctx context.Context, pg *sql.DB, sugar *zap.SugaredLogger, report fileReport, status string) {
	_, err := pg.ExecContext(ctx, `
		INSERT INTO load_jobs (id, league, season, source_file, row_count, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), report.league, report.season, report.path, report.rows, status)
	if err != nil {
		sugar.Warnw("Failed to record load job", "file", report.path, "error", err)
	}
}
