package profile

import (
	"github.com/go-chi/chi/v5"
)

// Routes registers the onboarding and profile endpoints on the parent
// router. They live at the API root.
func Routes(r chi.Router, h *Handler) {
	r.Post("/onboard", h.Onboard)
	// Legacy alias kept for older frontend builds.
	r.Post("/enrich", h.Onboard)
	r.Post("/confirm-profile", h.ConfirmProfile)
	r.Get("/user/{email}", h.GetUser)
}
