// Package websearch sources civic events from LLM-driven web research
// on state legislation. Results are parsed into the shared civic event
// shape; everything the model volunteers beyond that lands in the raw
// payload.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/het-sheth/fulcrumai/internal/civic"
	"github.com/het-sheth/fulcrumai/internal/profile/llm"
	"github.com/het-sheth/fulcrumai/internal/provider"
)

const maxTitleLen = 200

const searchTemperature = 0.5
const searchMaxTokens = 4000

const parseTemperature = 0.1
const parseMaxTokens = 8000

const searchPromptTemplate = `Today is %s. Report on current California state
legislation from the 2025-2026 session that affects San Francisco
residents. Cover housing and tenant protections, transportation and
transit funding, AI and data privacy regulation, public safety reform,
labor, healthcare, education, and tax policy. For each bill give the
bill number (AB/SB), official title, authors, current status, a 2-4
sentence summary, how it affects San Francisco, key upcoming dates,
and the LegiScan URL.`

const parsePromptTemplate = `Parse the following legislation data into a JSON array.

RAW DATA:
%s

For EACH bill mentioned, create an object with these EXACT fields:
{
    "bill_number": "AB 123 or SB 456",
    "title": "Official bill title",
    "summary": "Detailed 2-4 sentence summary of what the bill does",
    "authors": "Legislator names",
    "status": "Current status",
    "source_url": "LegiScan URL for the bill",
    "impact_tags": ["tag1", "tag2"],
    "urgency": "High" or "Medium" or "Low",
    "event_date": "YYYY-MM-DD if known, null if not",
    "sf_impact": "How this specifically affects San Francisco residents"
}

Use these tags: housing, transportation, environment, technology,
public_safety, healthcare, education, budget, labor, small_business,
tenants, police, transit, zoning, families, seniors, homelessness,
mental_health, climate, ai_policy, privacy, gig_workers, legislation.
Set urgency to "High" if a vote is imminent, "Medium" if in active
committee, "Low" if just introduced.
Return ONLY a valid JSON array, no markdown.`

// bill is the parse-step output for one piece of legislation.
type bill struct {
	BillNumber string   `json:"bill_number"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Authors    string   `json:"authors"`
	Status     string   `json:"status"`
	SourceURL  string   `json:"source_url"`
	ImpactTags []string `json:"impact_tags"`
	Urgency    string   `json:"urgency"`
	EventDate  string   `json:"event_date"`
	SFImpact   string   `json:"sf_impact"`
}

// Searcher finds state legislation through the LLM and normalizes it
// into civic events.
type Searcher struct {
	client *llm.Client
	now    func() time.Time
}

func NewSearcher(client *llm.Client) *Searcher {
	return &Searcher{client: client, now: time.Now}
}

func (s *Searcher) Name() string { return "websearch" }

// Events satisfies the refresh pipeline's source interface.
func (s *Searcher) Events(ctx context.Context) ([]civic.CivicEvent, error) {
	return s.Search(ctx)
}

// Search runs the two-step flow: research, then parse to structured
// bills. A parse that yields no bills is not an error; the refresh
// just gets nothing from this source.
func (s *Searcher) Search(ctx context.Context) ([]civic.CivicEvent, error) {
	today := s.now().Format("January 2, 2006")

	report, err := s.client.Complete(ctx, "", fmt.Sprintf(searchPromptTemplate, today), searchTemperature, searchMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("legislation search: %w", err)
	}

	out, err := s.client.Complete(ctx, "", fmt.Sprintf(parsePromptTemplate, report), parseTemperature, parseMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("legislation parse: %w", err)
	}

	var bills []bill
	if err := json.Unmarshal([]byte(llm.StripFences(out)), &bills); err != nil {
		provider.LogError("websearch", "parse", err)
		return nil, fmt.Errorf("parse bills: %w", err)
	}

	return s.toEvents(bills), nil
}

func (s *Searcher) toEvents(bills []bill) []civic.CivicEvent {
	events := make([]civic.CivicEvent, 0, len(bills))
	for _, b := range bills {
		title := capTitle(fmt.Sprintf("[CA] %s: %s", b.BillNumber, orDefault(b.Title, "Untitled")))

		sfImpact := orDefault(b.SFImpact, "Affects California residents including San Francisco.")

		tags := b.ImpactTags
		if len(tags) == 0 {
			tags = []string{"legislation"}
		}

		events = append(events, civic.CivicEvent{
			Title:      title,
			Summary:    fmt.Sprintf("%s SF Impact: %s", b.Summary, sfImpact),
			SourceURL:  s.sourceURL(b),
			ImpactTags: tags,
			Urgency:    civic.ParseUrgency(b.Urgency),
			EventDate:  parseDate(b.EventDate),
			SourceType: civic.SourceWebSearch,
			Location:   "California State Legislature",
			RawData: map[string]any{
				"bill_number": b.BillNumber,
				"authors":     b.Authors,
				"status":      b.Status,
				"sf_impact":   b.SFImpact,
			},
		})
	}
	return events
}

// sourceURL falls back to a constructed LegiScan URL when the model
// did not return one. The bill number keys dedup either way.
func (s *Searcher) sourceURL(b bill) string {
	if b.SourceURL != "" {
		return b.SourceURL
	}
	num := strings.ReplaceAll(b.BillNumber, " ", "")
	return fmt.Sprintf("https://legiscan.com/CA/bill/%s/%d", num, s.now().Year())
}

// capTitle trims an over-long title, backing off to a rune boundary
// so a multi-byte character is never split.
func capTitle(s string) string {
	if len(s) <= maxTitleLen {
		return s
	}
	cut := maxTitleLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func parseDate(s string) *time.Time {
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
