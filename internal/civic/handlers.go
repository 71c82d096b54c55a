package civic

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/het-sheth/fulcrumai/internal/profile"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Handler serves the dashboard and the admin event endpoints.
type Handler struct {
	users     *profile.Store
	events    *EventStore
	refresher *Refresher

	// pageSize bounds the event page matching filters in memory.
	pageSize int

	// retentionDays is how long dated events live before an opt-in
	// purge removes them.
	retentionDays int
}

func NewHandler(users *profile.Store, events *EventStore, refresher *Refresher, pageSize, retentionDays int) *Handler {
	return &Handler{
		users:         users,
		events:        events,
		refresher:     refresher,
		pageSize:      pageSize,
		retentionDays: retentionDays,
	}
}

type dashboardResponse struct {
	User             *profile.User  `json:"user"`
	Events           []MatchedEvent `json:"events"`
	MatchExplanation string         `json:"match_explanation"`
}

// Dashboard returns the user's profile with their matched civic
// events, most urgent first.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(chi.URLParam(r, "email"))

	user, err := h.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, profile.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("[dashboard] lookup %s: %v", email, err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	interests := DerivedInterests(user)

	recent, err := h.events.Recent(fetchPageSize(h.pageSize))
	if err != nil {
		log.Printf("[dashboard] events for %s: %v", email, err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	matched := Match(recent, interests, h.pageSize)

	explanation := "Showing all upcoming civic events"
	if interests.Len() > 0 {
		explanation = fmt.Sprintf("Showing events matching your interests: %s",
			strings.Join(interests.SortedCapped(5), ", "))
	}

	writeJSON(w, dashboardResponse{
		User:             user,
		Events:           matched,
		MatchExplanation: explanation,
	})
}

type refreshRequest struct {
	ClearOld bool `json:"clear_old"`
}

// RefreshEvents pulls every event source and upserts the results. An
// empty body is fine; clear_old additionally purges stale events.
func (h *Handler) RefreshEvents(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	// Body is optional.
	_ = json.NewDecoder(r.Body).Decode(&req)

	purgeDays := 0
	if req.ClearOld {
		purgeDays = h.retentionDays
	}

	report := h.refresher.Refresh(r.Context(), purgeDays)
	writeJSON(w, report)
}

// EventStats reports stored event counts for monitoring.
func (h *Handler) EventStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.events.Stats()
	if err != nil {
		log.Printf("[admin] stats: %v", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, stats)
}

// fetchPageSize oversizes the DB page relative to the response page so
// tag filtering has headroom. Events older than this page are never
// considered.
func fetchPageSize(pageSize int) int {
	return pageSize * 10
}
