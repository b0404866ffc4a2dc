// internal/app/engine/collab/registry.go
package collab

import (
	"context"
	"errors"
	"strings"
	"time"

	opportunitystore "github.com/dalemusser/collabhub/internal/app/store/opportunities"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Registry owns the opportunity lifecycle: creation, lookup, listing,
// and the open → in-progress → closed status progression. Status moves
// forward only; a group completing or being deleted later never
// reopens its source opportunity.
type Registry struct {
	opps *opportunitystore.Store
	log  *zap.Logger
}

// CreateOpportunityInput carries caller-supplied fields for a new
// opportunity. OwnerID is the pre-authenticated caller.
type CreateOpportunityInput struct {
	Title         string
	Description   string
	Industry      string
	ClientSector  string
	RegionsNeeded []string
	OwnerID       primitive.ObjectID
	BudgetRange   string
	Deadline      time.Time
	Priority      string
}

// ListOpportunitiesInput narrows List. Empty fields match everything.
type ListOpportunitiesInput struct {
	Industry string
	Region   string
	Status   string
	Limit    int64
}

// Create validates and stores a new open opportunity.
func (r *Registry) Create(ctx context.Context, in CreateOpportunityInput) (models.Opportunity, error) {
	title := htmlsanitize.StripTags(strings.TrimSpace(in.Title))
	if title == "" {
		return models.Opportunity{}, NewError(KindValidation, "title is required")
	}
	desc := htmlsanitize.Sanitize(strings.TrimSpace(in.Description))
	if desc == "" {
		return models.Opportunity{}, NewError(KindValidation, "description is required")
	}

	regions := make([]string, 0, len(in.RegionsNeeded))
	for _, region := range in.RegionsNeeded {
		region = strings.TrimSpace(region)
		if region != "" {
			regions = append(regions, region)
		}
	}
	if len(regions) == 0 {
		return models.Opportunity{}, NewError(KindValidation, "at least one region is required")
	}

	// Deadline is a date: today counts as valid.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if in.Deadline.Before(today) {
		return models.Opportunity{}, NewError(KindValidation, "deadline must be today or later")
	}

	priority := in.Priority
	if priority == "" {
		priority = status.PriorityMedium
	}
	if !status.ValidPriority(priority) {
		return models.Opportunity{}, Errorf(KindValidation, "unknown priority %q", priority)
	}

	return r.opps.Create(ctx, models.Opportunity{
		Title:         title,
		Description:   desc,
		Industry:      strings.TrimSpace(in.Industry),
		ClientSector:  strings.TrimSpace(in.ClientSector),
		RegionsNeeded: regions,
		OwnerID:       in.OwnerID,
		BudgetRange:   strings.TrimSpace(in.BudgetRange),
		Deadline:      in.Deadline,
		Priority:      priority,
	})
}

// Get returns one opportunity.
func (r *Registry) Get(ctx context.Context, id primitive.ObjectID) (models.Opportunity, error) {
	opp, err := r.opps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Opportunity{}, NewError(KindNotFound, "opportunity not found")
		}
		return models.Opportunity{}, err
	}
	return opp, nil
}

// List returns matching opportunities, newest first.
func (r *Registry) List(ctx context.Context, in ListOpportunitiesInput) ([]models.Opportunity, error) {
	return r.opps.List(ctx, opportunitystore.ListFilter{
		Industry: in.Industry,
		Region:   in.Region,
		Status:   in.Status,
		Limit:    in.Limit,
	})
}

// Close moves an opportunity to closed. Owner-only; closing is
// terminal for new interest requests but leaves accepted requests and
// their groups alone.
func (r *Registry) Close(ctx context.Context, id, callerID primitive.ObjectID) (models.Opportunity, error) {
	opp, err := r.Get(ctx, id)
	if err != nil {
		return models.Opportunity{}, err
	}
	if opp.OwnerID != callerID {
		return models.Opportunity{}, NewError(KindForbidden, "only the owner may close an opportunity")
	}
	if opp.Status == status.OpportunityClosed {
		return models.Opportunity{}, NewError(KindInvalidTransition, "opportunity is already closed")
	}

	changed, err := r.opps.Close(ctx, id)
	if err != nil {
		return models.Opportunity{}, err
	}
	if !changed {
		// Lost a race with another close.
		return models.Opportunity{}, NewError(KindInvalidTransition, "opportunity is already closed")
	}

	r.log.Info("opportunity closed",
		zap.String("opportunity_id", id.Hex()),
		zap.String("caller_id", callerID.Hex()))
	return r.Get(ctx, id)
}

// markInProgress advances an open opportunity when a group is formed
// from one of its requests. No-op for in-progress or closed.
func (r *Registry) markInProgress(ctx context.Context, id primitive.ObjectID) error {
	return r.opps.MarkInProgress(ctx, id)
}
