package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/het-sheth/fulcrumai/internal/config"
	"github.com/het-sheth/fulcrumai/internal/profile"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := StripFences(tc.in); got != tc.want {
			t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateKeepsRuneBoundary(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}

	// 2-byte runes; an odd cap lands mid-rune and must back off.
	got := truncate(strings.Repeat("é", 20), 15)
	if !utf8.ValidString(got) {
		t.Errorf("truncate split a rune: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate suffix missing: %q", got)
	}
	if len(got) > 15+len("...") {
		t.Errorf("truncate len = %d", len(got))
	}
}

func TestQuickInterestsParsesFencedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Temperature != quickTemperature {
			t.Errorf("temperature = %v, want %v", req.Temperature, quickTemperature)
		}

		answer := "```json\n" + `{
			"primary_interests": ["housing", "transit"],
			"secondary_interests": ["parks"],
			"likely_stance": {"housing": "pro-density"},
			"engagement_level": "medium",
			"summary": "Engaged urbanist."
		}` + "\n```"
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": answer}},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(config.Config{OpenAIKey: "key", OpenAIModel: "gpt-4o-mini"})
	client.baseURL = srv.URL

	p := profile.NewCanonicalProfile()
	p.Profession = "Urban Planner"

	ins, err := NewGenerator(client).QuickInterests(context.Background(), p)
	if err != nil {
		t.Fatalf("QuickInterests: %v", err)
	}
	if len(ins.PrimaryInterests) != 2 || ins.PrimaryInterests[0] != "housing" {
		t.Errorf("primary interests = %v", ins.PrimaryInterests)
	}
	if ins.EngagementLevel != "medium" {
		t.Errorf("engagement level = %q", ins.EngagementLevel)
	}
	if ins.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", ins.Model)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid api key", "type": "auth"},
		})
	}))
	defer srv.Close()

	client := NewClient(config.Config{OpenAIKey: "bad", OpenAIModel: "gpt-4o-mini"})
	client.baseURL = srv.URL

	if _, err := client.Complete(context.Background(), "", "hi", 0, 0); err == nil {
		t.Fatal("expected error for unauthorized response")
	}
}
