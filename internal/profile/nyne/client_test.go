package nyne

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/het-sheth/fulcrumai/internal/config"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.Config{
		NyneAPIKey:    "key",
		NyneAPISecret: "secret",
		NyneBaseURL:   srv.URL,
		PollInterval:  5 * time.Millisecond,
		PollTimeout:   100 * time.Millisecond,
	})
}

func writeEnvelope(w http.ResponseWriter, success bool, data map[string]any) {
	json.NewEncoder(w).Encode(map[string]any{"success": success, "data": data})
}

func TestFetchCombinesFollowups(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/person/enrichment", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "key" {
			t.Errorf("X-API-Key = %q, want %q", got, "key")
		}
		writeEnvelope(w, true, map[string]any{
			"full_name": "Ada Lovelace",
			"company":   "Analytical Engines",
			"social_profiles": map[string]any{
				"twitter": "https://twitter.com/ada",
			},
		})
	})
	mux.HandleFunc("/person/interactions", func(w http.ResponseWriter, r *http.Request) {
		var req interactionsRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Type != "following" || req.MaxResults != 500 {
			t.Errorf("interactions request = %+v", req)
		}
		writeEnvelope(w, true, map[string]any{
			"following": []any{map[string]any{"name": "SF Planning"}},
		})
	})
	mux.HandleFunc("/person/articlesearch", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, true, map[string]any{
			"articles": []any{map[string]any{"title": "Profile piece"}},
		})
	})

	c := testClient(t, mux)
	got, err := c.Fetch(context.Background(), "ada@example.com", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got["full_name"] != "Ada Lovelace" {
		t.Errorf("full_name = %v", got["full_name"])
	}
	if _, ok := got["social_interactions"]; !ok {
		t.Error("missing social_interactions in combined payload")
	}
	if _, ok := got["press_mentions"]; !ok {
		t.Error("missing press_mentions in combined payload")
	}
}

func TestFetchSkipsFollowupsWithoutIdentity(t *testing.T) {
	var followups int
	mux := http.NewServeMux()
	mux.HandleFunc("/person/enrichment", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, true, map[string]any{"first_name": "Ada"})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		followups++
		writeEnvelope(w, true, map[string]any{})
	})

	c := testClient(t, mux)
	got, err := c.Fetch(context.Background(), "ada@example.com", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if followups != 0 {
		t.Errorf("follow-up calls = %d, want 0", followups)
	}
	if _, ok := got["social_interactions"]; ok {
		t.Error("unexpected social_interactions key")
	}
}

func TestPollQueuedUntilCompleted(t *testing.T) {
	var polls int
	mux := http.NewServeMux()
	mux.HandleFunc("/person/enrichment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			writeEnvelope(w, true, map[string]any{"status": "queued", "request_id": "abc123"})
			return
		}
		if got := r.URL.Query().Get("request_id"); got != "abc123" {
			t.Errorf("request_id = %q", got)
		}
		polls++
		if polls < 3 {
			writeEnvelope(w, true, map[string]any{"status": "processing"})
			return
		}
		writeEnvelope(w, true, map[string]any{"status": "completed", "full_name": "Ada Lovelace"})
	})

	c := testClient(t, mux)
	got, err := c.Fetch(context.Background(), "ada@example.com", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got["full_name"] != "Ada Lovelace" {
		t.Errorf("full_name = %v, after %d polls", got["full_name"], polls)
	}
}

func TestPollFailureReturnsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/person/enrichment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			writeEnvelope(w, true, map[string]any{"status": "queued", "request_id": "abc123"})
			return
		}
		writeEnvelope(w, false, map[string]any{"status": "not_found"})
	})

	c := testClient(t, mux)
	got, err := c.Fetch(context.Background(), "nobody@example.com", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("payload = %v, want empty", got)
	}
}

func TestPollTimeoutReturnsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/person/enrichment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			writeEnvelope(w, true, map[string]any{"status": "queued", "request_id": "abc123"})
			return
		}
		writeEnvelope(w, true, map[string]any{"status": "queued"})
	})

	c := testClient(t, mux)
	start := time.Now()
	got, err := c.Fetch(context.Background(), "slow@example.com", "")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("payload = %v, want empty after timeout", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("poll ran %s past its window", elapsed)
	}
}
