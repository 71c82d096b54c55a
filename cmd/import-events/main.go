// Command import-events bulk-loads civic events from a CSV export,
// upserting on source_url. Useful for backfilling from a spreadsheet
// or another deployment's dump.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lib/pq"

	"github.com/het-sheth/fulcrumai/internal/civic"
)

// CLI flags
var (
	csvPath = flag.String("csv", "", "Path to the source CSV (required)")
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun  = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
)

// CSV contract
// source_url,title,summary,impact_tags,urgency,event_date,source_type,location
// impact_tags are semicolon-separated; event_date is YYYY-MM-DD or empty

type EventCSV struct {
	SourceURL  string
	Title      string
	Summary    string
	ImpactTags []string
	Urgency    civic.Urgency
	EventDate  *time.Time
	SourceType string
	Location   string
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()
	if *csvPath == "" {
		fatalf("--csv is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	rows, err := loadCSV(*csvPath)
	if err != nil {
		fatalf("CSV error: %v", err)
	}
	if err := validateRows(rows); err != nil {
		fatalf("CSV validation failed: %v", err)
	}

	fmt.Printf("Loaded %d events from %s\n", len(rows), *csvPath)

	if *dryRun {
		printPlan(rows)
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer pool.Close()

	if err := pool.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	var before int64
	if err := pool.QueryRowContext(ctx, `SELECT count(*) FROM fulcrum.civic_events`).Scan(&before); err != nil {
		fatalf("pre-count: %v", err)
	}

	upserted := 0
	for _, row := range rows {
		_, err := pool.ExecContext(ctx, `
			INSERT INTO fulcrum.civic_events
				(id, source_url, title, summary, impact_tags, urgency, event_date, source_type, location, created_at, updated_at)
			VALUES (uuid_generate_v4(), $1, $2, $3, $4, $5, $6, $7, $8, now(), now())
			ON CONFLICT (source_url) DO UPDATE SET
				title = EXCLUDED.title,
				summary = EXCLUDED.summary,
				impact_tags = EXCLUDED.impact_tags,
				urgency = EXCLUDED.urgency,
				event_date = EXCLUDED.event_date,
				source_type = EXCLUDED.source_type,
				location = EXCLUDED.location,
				updated_at = now()`,
			row.SourceURL, row.Title, row.Summary, pq.Array(row.ImpactTags),
			string(row.Urgency), row.EventDate, row.SourceType, row.Location,
		)
		if err != nil {
			fatalf("upsert %s: %v", row.SourceURL, err)
		}
		upserted++
	}

	var after int64
	if err := pool.QueryRowContext(ctx, `SELECT count(*) FROM fulcrum.civic_events`).Scan(&after); err != nil {
		fatalf("post-count: %v", err)
	}

	fmt.Printf("Upserted %d events (table: %d before, %d after)\n", upserted, before, after)
}

func loadCSV(path string) ([]EventCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	r := csv.NewReader(br)
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := map[string]int{}
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	required := []string{"source_url", "title", "summary", "impact_tags", "urgency", "event_date", "source_type", "location"}
	for _, k := range required {
		if _, ok := idx[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	var out []EventCSV
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}

		row := EventCSV{
			SourceURL:  strings.TrimSpace(rec[idx["source_url"]]),
			Title:      strings.TrimSpace(rec[idx["title"]]),
			Summary:    strings.TrimSpace(rec[idx["summary"]]),
			Urgency:    civic.ParseUrgency(rec[idx["urgency"]]),
			SourceType: strings.TrimSpace(rec[idx["source_type"]]),
			Location:   strings.TrimSpace(rec[idx["location"]]),
		}
		if row.SourceType == "" {
			row.SourceType = civic.SourceImport
		}

		for _, p := range strings.Split(rec[idx["impact_tags"]], ";") {
			if tag := strings.TrimSpace(p); tag != "" {
				row.ImpactTags = append(row.ImpactTags, tag)
			}
		}

		if d := strings.TrimSpace(rec[idx["event_date"]]); d != "" {
			t, err := time.Parse("2006-01-02", d)
			if err != nil {
				return nil, fmt.Errorf("bad event_date %q: %w", d, err)
			}
			row.EventDate = &t
		}

		out = append(out, row)
	}
	return out, nil
}

func validateRows(rows []EventCSV) error {
	if len(rows) == 0 {
		return fmt.Errorf("CSV has no data rows")
	}
	seen := make(map[string]struct{}, len(rows))
	for i, r := range rows {
		if r.SourceURL == "" {
			return fmt.Errorf("row %d: source_url is empty", i+2)
		}
		if r.Title == "" {
			return fmt.Errorf("row %d: title is empty", i+2)
		}
		if _, dup := seen[r.SourceURL]; dup {
			return fmt.Errorf("row %d: duplicate source_url '%s'", i+2, r.SourceURL)
		}
		seen[r.SourceURL] = struct{}{}
	}
	return nil
}

func printPlan(rows []EventCSV) {
	distinctTags := map[string]struct{}{}
	for _, r := range rows {
		for _, t := range r.ImpactTags {
			distinctTags[t] = struct{}{}
		}
	}
	fmt.Println("Plan preview:")
	fmt.Printf("  Events to upsert: %d\n", len(rows))
	fmt.Printf("  Distinct impact tags: %d\n", len(distinctTags))
	fmt.Println("  Table affected: fulcrum.civic_events (upsert on source_url)")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
