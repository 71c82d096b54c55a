package profile

import (
	"context"
	"errors"
	"testing"
)

// mockFetcher implements EnrichmentFetcher without any network dependency.
type mockFetcher struct {
	payload map[string]any
	err     error
}

func (m mockFetcher) Fetch(ctx context.Context, email, linkedinURL string) (map[string]any, error) {
	return m.payload, m.err
}

// mockInsights implements InsightsGenerator.
type mockInsights struct {
	insights  *Insights
	narrative string
	err       error

	sawRawData bool
}

func (m *mockInsights) QuickInterests(ctx context.Context, p *CanonicalProfile) (*Insights, error) {
	if p.RawData != nil {
		m.sawRawData = true
	}
	return m.insights, m.err
}

func (m *mockInsights) CivicNarrative(ctx context.Context, p *CanonicalProfile) (string, error) {
	return m.narrative, m.err
}

func TestEnrichSucceedsAndFuses(t *testing.T) {
	fetcher := mockFetcher{payload: map[string]any{
		"firstname": "Ada",
		"job_title": "Software Engineer",
	}}
	insights := &mockInsights{
		insights:  &Insights{PrimaryInterests: []string{"transit"}},
		narrative: "A civic-minded engineer.",
	}

	e := NewEnricher(fetcher, insights, "San Francisco")
	outcome := e.Enrich(context.Background(), "ada@example.com", "")

	if outcome.Status != StatusSucceeded {
		t.Fatalf("status = %q (%s)", outcome.Status, outcome.Reason)
	}
	if !outcome.InsightsApplied {
		t.Error("insights not applied")
	}
	if insights.sawRawData {
		t.Error("raw payload leaked to the LLM")
	}

	hasTransit := false
	for _, tag := range outcome.Profile.Interests {
		if tag == "transit" {
			hasTransit = true
		}
	}
	if !hasTransit {
		t.Errorf("fused interests missing LLM tag: %v", outcome.Profile.Interests)
	}
	if outcome.Profile.Insights.CivicAnalysis != "A civic-minded engineer." {
		t.Errorf("civic analysis = %q", outcome.Profile.Insights.CivicAnalysis)
	}
}

func TestEnrichDegradesOnFetchError(t *testing.T) {
	e := NewEnricher(mockFetcher{err: errors.New("boom")}, nil, "San Francisco")

	outcome := e.Enrich(context.Background(), "ada@google.com", "")

	if outcome.Status != StatusDegraded {
		t.Fatalf("status = %q", outcome.Status)
	}
	if outcome.Profile.DataSource != "mock" {
		t.Errorf("data source = %q", outcome.Profile.DataSource)
	}
	if outcome.Profile.LikelyLocation != "San Francisco" {
		t.Errorf("fallback city = %q", outcome.Profile.LikelyLocation)
	}
	// Tech domain drives the mock profession guess.
	if outcome.Profile.Profession != "Software Engineer" {
		t.Errorf("mock profession = %q", outcome.Profile.Profession)
	}
}

func TestEnrichDegradesOnEmptyPayload(t *testing.T) {
	e := NewEnricher(mockFetcher{payload: map[string]any{}}, nil, "San Francisco")

	outcome := e.Enrich(context.Background(), "nobody@example.com", "")

	if outcome.Status != StatusDegraded {
		t.Fatalf("status = %q", outcome.Status)
	}
	if outcome.Reason == "" {
		t.Error("degraded outcome must carry a reason")
	}
}

func TestEnrichDegradesWithoutFetcher(t *testing.T) {
	e := NewEnricher(nil, nil, "San Francisco")

	outcome := e.Enrich(context.Background(), "ada@example.com", "")

	if outcome.Status != StatusDegraded {
		t.Fatalf("status = %q", outcome.Status)
	}
}

func TestEnrichInsightFailureIsNotFatal(t *testing.T) {
	fetcher := mockFetcher{payload: map[string]any{"job_title": "Teacher"}}
	insights := &mockInsights{err: errors.New("rate limited")}

	e := NewEnricher(fetcher, insights, "San Francisco")
	outcome := e.Enrich(context.Background(), "t@school.org", "")

	if outcome.Status != StatusSucceeded {
		t.Fatalf("status = %q", outcome.Status)
	}
	if outcome.InsightsApplied {
		t.Error("insights marked applied despite failure")
	}
	if len(outcome.Profile.Interests) == 0 {
		t.Error("rule-derived interests missing")
	}
}
