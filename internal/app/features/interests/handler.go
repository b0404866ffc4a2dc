// internal/app/features/interests/handler.go
package interests

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

// Handler serves the interest request endpoints keyed by request id.
type Handler struct {
	Engine *collab.Engine
	Errors *apierr.Writer
	Log    *zap.Logger
}

// NewHandler constructs an interests Handler.
func NewHandler(engine *collab.Engine, errw *apierr.Writer, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Errors: errw, Log: logger}
}

type decideRequest struct {
	Decision string `json:"decision"`
}

type decideResponse struct {
	Request models.InterestRequest `json:"request"`
	Group   *models.CollabGroup    `json:"group,omitempty"`
}

// Decide handles POST /interests/{requestID}/decide. On accept the
// response carries the freshly created group.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		apierr.WriteNotFound(w, "no such resource")
		return
	}

	var req decideRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "interests.decide")
	defer cancel()

	decided, group, err := h.Engine.Tracker.Decide(ctx, id, caller.OID, req.Decision)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, decideResponse{Request: decided, Group: group})
}

// Mine handles GET /interests/mine: the caller's own requests,
// newest first.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "interests.mine")
	defer cancel()

	reqs, err := h.Engine.Tracker.ListByApplicant(ctx, caller.OID)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"interest_requests": reqs})
}
