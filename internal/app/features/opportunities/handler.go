// internal/app/features/opportunities/handler.go
package opportunities

import (
	"net/http"
	"strconv"
	"time"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	apierr "github.com/dalemusser/collabhub/internal/app/features/errors"
	"github.com/dalemusser/collabhub/internal/app/system/auth"
	"github.com/dalemusser/collabhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// defaultListLimit bounds unpaginated list responses.
const defaultListLimit = 50

// Handler serves the opportunity endpoints, plus the interest
// submission and listing that hang off an opportunity's path.
type Handler struct {
	Engine *collab.Engine
	Errors *apierr.Writer
	Log    *zap.Logger
}

// NewHandler constructs an opportunities Handler.
func NewHandler(engine *collab.Engine, errw *apierr.Writer, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Errors: errw, Log: logger}
}

type createRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Industry      string   `json:"industry"`
	ClientSector  string   `json:"client_sector"`
	RegionsNeeded []string `json:"regions_needed"`
	BudgetRange   string   `json:"budget_range"`
	Deadline      string   `json:"deadline"`
	Priority      string   `json:"priority"`
}

// Create handles POST /opportunities.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}

	var req createRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	// Deadline is a calendar date.
	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		apierr.WriteBadRequest(w, "deadline must be a YYYY-MM-DD date")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "opportunities.create")
	defer cancel()

	opp, err := h.Engine.Registry.Create(ctx, collab.CreateOpportunityInput{
		Title:         req.Title,
		Description:   req.Description,
		Industry:      req.Industry,
		ClientSector:  req.ClientSector,
		RegionsNeeded: req.RegionsNeeded,
		OwnerID:       caller.OID,
		BudgetRange:   req.BudgetRange,
		Deadline:      deadline,
		Priority:      req.Priority,
	})
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, opp)
}

// Get handles GET /opportunities/{opportunityID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "opportunityID")
	if !ok {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "opportunities.get")
	defer cancel()

	opp, err := h.Engine.Registry.Get(ctx, id)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, opp)
}

// List handles GET /opportunities with optional industry, region,
// status and limit query parameters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			apierr.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "opportunities.list")
	defer cancel()

	opps, err := h.Engine.Registry.List(ctx, collab.ListOpportunitiesInput{
		Industry: r.URL.Query().Get("industry"),
		Region:   r.URL.Query().Get("region"),
		Status:   r.URL.Query().Get("status"),
		Limit:    limit,
	})
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"opportunities": opps})
}

// Close handles POST /opportunities/{opportunityID}/close.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := pathID(w, r, "opportunityID")
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "opportunities.close")
	defer cancel()

	opp, err := h.Engine.Registry.Close(ctx, id, caller.OID)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, opp)
}

type submitInterestRequest struct {
	Message string `json:"message"`
}

// SubmitInterest handles POST /opportunities/{opportunityID}/interests.
func (h *Handler) SubmitInterest(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := pathID(w, r, "opportunityID")
	if !ok {
		return
	}

	var req submitInterestRequest
	if err := apierr.DecodeJSON(w, r, &req); err != nil {
		apierr.WriteBadRequest(w, "invalid JSON body")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "interests.submit")
	defer cancel()

	created, err := h.Engine.Tracker.Submit(ctx, id, caller.OID, req.Message)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusCreated, created)
}

// ListInterests handles GET /opportunities/{opportunityID}/interests.
// Owner-only: requests carry applicant messages meant for the owner.
func (h *Handler) ListInterests(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentCaller(r)
	if !ok {
		apierr.WriteBadRequest(w, "caller identity required")
		return
	}
	id, ok := pathID(w, r, "opportunityID")
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "interests.list_by_opportunity")
	defer cancel()

	opp, err := h.Engine.Registry.Get(ctx, id)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	if opp.OwnerID != caller.OID {
		h.Errors.WriteError(w, r, collab.NewError(collab.KindForbidden, "only the owner may list an opportunity's requests"))
		return
	}

	reqs, err := h.Engine.Tracker.ListByOpportunity(ctx, id)
	if err != nil {
		h.Errors.WriteError(w, r, err)
		return
	}
	apierr.WriteJSON(w, http.StatusOK, map[string]any{"interest_requests": reqs})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		apierr.WriteNotFound(w, "no such resource")
		return primitive.NilObjectID, false
	}
	return id, true
}
