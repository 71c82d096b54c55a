package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/het-sheth/fulcrumai/internal/civic"
	"github.com/het-sheth/fulcrumai/internal/civic/legistar"
	"github.com/het-sheth/fulcrumai/internal/civic/websearch"
	"github.com/het-sheth/fulcrumai/internal/config"
	"github.com/het-sheth/fulcrumai/internal/db"
	"github.com/het-sheth/fulcrumai/internal/middleware"
	"github.com/het-sheth/fulcrumai/internal/profile"
	"github.com/het-sheth/fulcrumai/internal/profile/llm"
	"github.com/het-sheth/fulcrumai/internal/profile/nyne"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	gdb, err := db.Connect()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := profile.Init(gdb); err != nil {
		log.Fatal("Failed to init profile schema: ", err)
	}
	if err := civic.Init(gdb); err != nil {
		log.Fatal("Failed to init civic schema: ", err)
	}

	// Enrichment collaborators degrade to nil when unconfigured; the
	// pipeline then serves mock profiles and skips LLM fusion.
	credErr := cfg.Validate()

	var fetcher profile.EnrichmentFetcher
	if errors.Is(credErr, config.ErrMissingNyneCredentials) {
		log.Println("Nyne credentials missing; onboarding will serve mock profiles")
	} else {
		fetcher = nyne.NewClient(cfg)
	}

	var insights profile.InsightsGenerator
	var llmClient *llm.Client
	if errors.Is(credErr, config.ErrMissingOpenAIKey) {
		log.Println("OpenAI key missing; insight fusion and web search disabled")
	} else {
		llmClient = llm.NewClient(cfg)
		insights = llm.NewGenerator(llmClient)
	}

	users := profile.NewStore(gdb)
	enricher := profile.NewEnricher(fetcher, insights, cfg.FallbackCity)

	events := civic.NewEventStore(gdb)
	sources := []civic.EventSource{
		legistar.NewSource(legistar.NewClient(cfg.LegistarBaseURL)),
	}
	if llmClient != nil {
		sources = append(sources, websearch.NewSearcher(llmClient))
	}
	refresher := civic.NewRefresher(events, sources...)

	profileHandler := profile.NewHandler(enricher, users)
	civicHandler := civic.NewHandler(users, events, refresher, cfg.DashboardPageSize, cfg.EventRetentionDays)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	profile.Routes(r, profileHandler)
	civic.Routes(r, civicHandler, middleware.AdminTokenMiddleware(cfg.AdminTokenHash))

	fmt.Printf("Server listening on port :%s...\n", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
