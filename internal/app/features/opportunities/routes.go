// internal/app/features/opportunities/routes.go
package opportunities

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the opportunity endpoints, mounted
// under /opportunities. Reads are open; writes require a caller
// identity.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{opportunityID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireCaller)
		r.Post("/", h.Create)
		r.Post("/{opportunityID}/close", h.Close)
		r.Post("/{opportunityID}/interests", h.SubmitInterest)
		r.Get("/{opportunityID}/interests", h.ListInterests)
	})

	return r
}
