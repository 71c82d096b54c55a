package civic

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the dashboard and the admin endpoints on the parent
// router. The admin subtree is wrapped by the supplied middleware,
// typically the bearer token check.
func Routes(r chi.Router, h *Handler, adminAuth func(http.Handler) http.Handler) {
	r.Get("/dashboard/{email}", h.Dashboard)

	r.Route("/admin", func(ar chi.Router) {
		if adminAuth != nil {
			ar.Use(adminAuth)
		}
		ar.Post("/refresh-events", h.RefreshEvents)
		ar.Get("/events-stats", h.EventStats)
	})
}
