// internal/app/features/interests/routes.go
package interests

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the interest request endpoints,
// mounted under /interests. Everything here needs a caller identity.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireCaller)

	r.Get("/mine", h.Mine)
	r.Post("/{requestID}/decide", h.Decide)

	return r
}
