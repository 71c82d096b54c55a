// Command refresh-events pulls the latest civic events from every
// configured source and upserts them. Intended for a daily cron.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/het-sheth/fulcrumai/internal/civic"
	"github.com/het-sheth/fulcrumai/internal/civic/legistar"
	"github.com/het-sheth/fulcrumai/internal/civic/websearch"
	"github.com/het-sheth/fulcrumai/internal/config"
	"github.com/het-sheth/fulcrumai/internal/db"
	"github.com/het-sheth/fulcrumai/internal/profile/llm"
)

var (
	purge        = flag.Bool("purge", false, "Also purge events past the retention window")
	useWebsearch = flag.Bool("websearch", false, "Include the LLM web-search source (needs OPENAI_API_KEY)")
	timeout      = flag.Duration("timeout", 10*time.Minute, "Overall run timeout")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	gdb, err := db.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := civic.Init(gdb); err != nil {
		log.Fatal("Failed to init civic schema: ", err)
	}

	sources := []civic.EventSource{
		legistar.NewSource(legistar.NewClient(cfg.LegistarBaseURL)),
	}
	if *useWebsearch {
		if errors.Is(cfg.Validate(), config.ErrMissingOpenAIKey) {
			log.Fatal("--websearch requires OPENAI_API_KEY")
		}
		sources = append(sources, websearch.NewSearcher(llm.NewClient(cfg)))
	}

	store := civic.NewEventStore(gdb)
	refresher := civic.NewRefresher(store, sources...)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	purgeDays := 0
	if *purge {
		purgeDays = cfg.EventRetentionDays
	}

	report := refresher.Refresh(ctx, purgeDays)

	fmt.Printf("Fetched %d events, upserted %d (%d errors)\n", report.Fetched, report.Upserted, report.Errors)
	if report.Purged > 0 {
		fmt.Printf("Purged %d events older than %d days\n", report.Purged, purgeDays)
	}
	for _, e := range report.SourceErrs {
		fmt.Printf("Source error: %s\n", e)
	}

	if report.Upserted == 0 && len(report.SourceErrs) > 0 {
		os.Exit(1)
	}
}
