package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/het-sheth/fulcrumai/internal/profile"
)

var _ profile.InsightsGenerator = (*Generator)(nil)

const (
	quickTemperature = 0.3
	quickMaxTokens   = 500

	narrativeTemperature = 0.7
	narrativeMaxTokens   = 2000
)

const quickSystem = "You are a civic engagement analyst. Answer with a single JSON object and nothing else."

const quickPromptTemplate = `Given this resident profile, infer their civic interests.

%s

Return JSON with exactly these keys:
- "primary_interests": 3-5 local civic topics they most likely care about (lowercase snake_case tags)
- "secondary_interests": 2-3 additional topics worth surfacing
- "likely_stance": object mapping topic to a one-phrase likely position
- "engagement_level": one of "high", "medium", "low"
- "summary": two sentences describing this person as a civic participant`

const narrativePromptTemplate = `Write a short civic engagement analysis for this resident. Cover what
local government activity would matter to them and why, grounded in
their work and interests. Three paragraphs, plain prose, no headings.

%s`

// Generator produces profile insights through the OpenAI API. It
// implements the insight stage of the enrichment pipeline.
type Generator struct {
	client *Client
}

// NewGenerator wraps an OpenAI client as an insights generator.
func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

// QuickInterests asks the model for a compact JSON read of the
// profile: interest tags, stances, and engagement level.
func (g *Generator) QuickInterests(ctx context.Context, p *profile.CanonicalProfile) (*profile.Insights, error) {
	prompt := fmt.Sprintf(quickPromptTemplate, profileDigest(p))

	out, err := g.client.Complete(ctx, quickSystem, prompt, quickTemperature, quickMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("quick interests: %w", err)
	}

	var ins profile.Insights
	if err := json.Unmarshal([]byte(StripFences(out)), &ins); err != nil {
		return nil, fmt.Errorf("parse quick interests: %w", err)
	}
	ins.Model = g.client.Model()
	return &ins, nil
}

// CivicNarrative asks the model for a longer free-text analysis used
// on the dashboard.
func (g *Generator) CivicNarrative(ctx context.Context, p *profile.CanonicalProfile) (string, error) {
	prompt := fmt.Sprintf(narrativePromptTemplate, profileDigest(p))

	out, err := g.client.Complete(ctx, "", prompt, narrativeTemperature, narrativeMaxTokens)
	if err != nil {
		return "", fmt.Errorf("civic narrative: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// profileDigest renders the fields the model needs as a compact text
// block. Raw payload data is already stripped by the caller.
func profileDigest(p *profile.CanonicalProfile) string {
	var b strings.Builder

	writeLine := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}

	writeLine("Name", p.FullName)
	writeLine("Profession", p.Profession)
	writeLine("Company", p.Company)
	writeLine("Industry", p.Industry)
	writeLine("Headline", p.Headline)
	writeLine("Bio", p.Bio)
	writeLine("Location", firstNonEmpty(p.City, p.LikelyLocation))
	writeLine("Skills", strings.Join(capped(p.Skills, 15), ", "))
	writeLine("Causes", strings.Join(p.Causes, ", "))
	writeLine("Current interests", strings.Join(p.Interests, ", "))

	if len(p.WorkHistory) > 0 {
		b.WriteString("Recent roles:\n")
		for _, w := range p.WorkHistory[:min(3, len(p.WorkHistory))] {
			fmt.Fprintf(&b, "- %s at %s\n", w.Title, w.Company)
		}
	}
	if len(p.Volunteering) > 0 {
		b.WriteString("Volunteering:\n")
		for _, v := range p.Volunteering[:min(3, len(p.Volunteering))] {
			fmt.Fprintf(&b, "- %s (%s)\n", v.Organization, v.Cause)
		}
	}
	if len(p.RecentPosts) > 0 {
		b.WriteString("Recent posts:\n")
		for _, post := range p.RecentPosts[:min(5, len(p.RecentPosts))] {
			fmt.Fprintf(&b, "- [%s] %s\n", post.Platform, truncate(post.Content, 200))
		}
	}

	return strings.TrimSpace(b.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func capped(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
