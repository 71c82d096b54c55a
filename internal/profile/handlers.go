package profile

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Handler serves the onboarding and profile endpoints.
type Handler struct {
	enricher *Enricher
	store    *Store
}

func NewHandler(enricher *Enricher, store *Store) *Handler {
	return &Handler{enricher: enricher, store: store}
}

type onboardRequest struct {
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
}

type onboardResponse struct {
	Status            EnrichmentStatus  `json:"status"`
	Reason            string            `json:"reason,omitempty"`
	Profile           *CanonicalProfile `json:"profile"`
	FollowupQuestions []string          `json:"followup_questions"`
}

// Onboard runs the enrichment pipeline for an email, persists the
// result, and returns the profile with follow-up questions. Upstream
// failures degrade to a fallback profile rather than erroring.
func (h *Handler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req onboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		http.Error(w, "A valid email is required", http.StatusBadRequest)
		return
	}

	outcome := h.enricher.Enrich(r.Context(), req.Email, req.LinkedInURL)

	if _, err := h.store.SaveEnrichment(req.Email, req.LinkedInURL, outcome.Profile); err != nil {
		log.Printf("[onboard] save %s: %v", req.Email, err)
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, onboardResponse{
		Status:            outcome.Status,
		Reason:            outcome.Reason,
		Profile:           outcome.Profile,
		FollowupQuestions: FollowupQuestions(outcome.Profile),
	})
}

type confirmRequest struct {
	Email      string   `json:"email"`
	ZipCode    *string  `json:"zip_code"`
	HasCar     *bool    `json:"has_car"`
	HasKids    *bool    `json:"has_kids"`
	Profession *string  `json:"profession"`
	Interests  []string `json:"interests"`
}

// ConfirmProfile applies the user-reviewed answers from the onboarding
// flow. Fields absent from the request are left unchanged.
func (h *Handler) ConfirmProfile(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" {
		http.Error(w, "Email is required", http.StatusBadRequest)
		return
	}

	user, err := h.store.SaveConfirmation(req.Email, Confirmation{
		ZipCode:    req.ZipCode,
		HasCar:     req.HasCar,
		HasKids:    req.HasKids,
		Profession: req.Profession,
		Interests:  req.Interests,
	})
	if err != nil {
		log.Printf("[confirm] save %s: %v", req.Email, err)
		http.Error(w, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

// GetUser returns the stored user row for an email.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(chi.URLParam(r, "email"))

	user, err := h.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("[user] lookup %s: %v", email, err)
		http.Error(w, "Failed to fetch user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}
