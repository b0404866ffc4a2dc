// internal/app/features/groups/routes.go
package groups

import (
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the group endpoints, mounted under
// /groups. Everything here needs a caller identity; membership and
// creator checks happen in the engine.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireCaller)

	r.Get("/", h.List)
	r.Get("/{groupID}", h.Get)
	r.Post("/{groupID}/members", h.AddMember)
	r.Delete("/{groupID}/members/{userID}", h.RemoveMember)
	r.Post("/{groupID}/complete", h.Complete)
	r.Delete("/{groupID}", h.Delete)

	r.Post("/{groupID}/messages", h.PostMessage)
	r.Get("/{groupID}/messages", h.ListMessages)
	r.Post("/{groupID}/documents", h.UploadDocument)
	r.Get("/{groupID}/documents", h.ListDocuments)
	r.Delete("/{groupID}/documents/{documentID}", h.DeleteDocument)

	return r
}
