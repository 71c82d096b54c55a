package profile

import (
	"context"
	"log"
	"time"
)

// EnrichmentFetcher fetches a raw profile payload for an email and
// optional LinkedIn URL. Implemented by the Nyne client; the payload
// shape varies by provider and response version.
type EnrichmentFetcher interface {
	Fetch(ctx context.Context, email, linkedinURL string) (map[string]any, error)
}

// InsightsGenerator produces LLM civic insights for a normalized
// profile. Implemented by the OpenAI client.
type InsightsGenerator interface {
	QuickInterests(ctx context.Context, p *CanonicalProfile) (*Insights, error)
	CivicNarrative(ctx context.Context, p *CanonicalProfile) (string, error)
}

// Enricher runs the full enrichment pipeline: fetch, normalize, infer
// interests, fuse LLM insights. Collaborators are injected; either may
// be nil, in which case the corresponding stage degrades gracefully.
type Enricher struct {
	fetcher      EnrichmentFetcher
	insights     InsightsGenerator
	fallbackCity string
	now          func() time.Time
}

// NewEnricher creates an Enricher. fetcher and insights may be nil:
// a nil fetcher always yields the mock fallback profile, a nil insights
// generator skips fusion.
func NewEnricher(fetcher EnrichmentFetcher, insights InsightsGenerator, fallbackCity string) *Enricher {
	return &Enricher{
		fetcher:      fetcher,
		insights:     insights,
		fallbackCity: fallbackCity,
		now:          time.Now,
	}
}

// Enrich builds a profile for the given email. It never returns a hard
// failure: upstream problems degrade to the mock fallback profile and
// are reported through the outcome status.
func (e *Enricher) Enrich(ctx context.Context, email, linkedinURL string) EnrichmentOutcome {
	outcome := EnrichmentOutcome{Status: StatusSucceeded}

	var raw map[string]any
	var err error
	if e.fetcher != nil {
		raw, err = e.fetcher.Fetch(ctx, email, linkedinURL)
	}

	switch {
	case e.fetcher == nil:
		outcome.Status = StatusDegraded
		outcome.Reason = "enrichment provider not configured"
	case err != nil:
		log.Printf("[enrich] upstream error for %s: %v", email, err)
		outcome.Status = StatusDegraded
		outcome.Reason = "enrichment provider unavailable"
	case len(raw) == 0:
		outcome.Status = StatusDegraded
		outcome.Reason = "enrichment returned no data"
	}

	if outcome.Status == StatusDegraded {
		outcome.Profile = MockProfile(email, e.fallbackCity)
		return outcome
	}

	p := Normalize(raw, e.now())
	p.Interests = InferInterests(p)

	if e.insights != nil {
		// The LLM sees the profile minus the raw audit payload to
		// bound token usage.
		trimmed := *p
		trimmed.RawData = nil

		ins, insErr := e.insights.QuickInterests(ctx, &trimmed)
		if insErr != nil {
			log.Printf("[enrich] insight generation skipped for %s: %v", email, insErr)
		} else if ins != nil {
			if narrative, narErr := e.insights.CivicNarrative(ctx, &trimmed); narErr == nil {
				ins.CivicAnalysis = narrative
			}
			FuseInsights(p, ins)
			outcome.InsightsApplied = true
		}
	}

	outcome.Profile = p
	return outcome
}
