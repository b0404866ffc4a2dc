// internal/app/features/groups/handler.go
package groups

import (
	"net/http"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	apierr "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the collaboration group endpoints: membership
// management plus each group's message log and document registry.
type Handler struct {
	Engine *collab.Engine
	Errors *apierr.Writer
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler.
func NewHandler(engine *collab.Engine, errw *apierr.Writer, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Errors: errw, Log: logger}
}

type groupResponse struct {
	Group   models.CollabGroup       `json:"group"`
	Members []models.GroupMembership `json:"members"`
}

// List handles GET /groups: the caller's groups, most recently active
// first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.list")
	defer cancel()

	groups, err := h.Engine.Groups.ListForUser(ctx, caller.OID)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

// Get handles GET /groups/{groupID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "groups.get")
	defer cancel()

	group, members, err := h.Engine.Groups.Get(ctx, id)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, groupResponse{Group: group, Members: members})
}

type memberRequest struct {
	UserID string `json:"user_id"`
}

// AddMember handles POST /groups/{groupID}/members.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	var req memberRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		apierr.WriteBadRequest(w, "user_id must be a valid id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.add_member")
	defer cancel()

	if err := h.Engine.Groups.AddMember(ctx, id, caller.OID, userID); err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember handles DELETE /groups/{groupID}/members/{userID}.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userID"))
	if err != nil {
		apierr.WriteNotFound(w, "no such resource")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.remove_member")
	defer cancel()

	if err := h.Engine.Groups.RemoveMember(ctx, id, caller.OID, userID); err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete handles POST /groups/{groupID}/complete.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "groups.complete")
	defer cancel()

	group, err := h.Engine.Groups.MarkCompleted(ctx, id, caller.OID)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, group)
}

// Delete handles DELETE /groups/{groupID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := h.groupID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "groups.delete")
	defer cancel()

	if err := h.Engine.Groups.Delete(ctx, id, caller.OID); err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) groupID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		apierr.WriteNotFound(w, "no such resource")
		return primitive.NilObjectID, false
	}
	return id, true
}
