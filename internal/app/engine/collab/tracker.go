// internal/app/engine/collab/tracker.go
package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	intereststore "github.com/dalemusser/collabhub/internal/app/store/interests"
	opportunitystore "github.com/dalemusser/collabhub/internal/app/store/opportunities"
	"github.com/dalemusser/collabhub/internal/app/system/events"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/app/system/txn"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Decision values accepted by Decide.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// Tracker owns the interest request lifecycle. A request is pending
// until the opportunity owner decides it; accept and reject are both
// terminal. Acceptance and group creation commit as one unit.
type Tracker struct {
	client    *mongo.Client
	opps      *opportunitystore.Store
	interests *intereststore.Store
	registry  *Registry
	groups    *Groups
	emitter   events.Emitter
	log       *zap.Logger
}

// Submit records a pending interest request from applicantID on an
// open opportunity and notifies the owner. At most one pending request
// per (opportunity, applicant) pair exists at any time; a rejected
// applicant may submit again.
func (t *Tracker) Submit(ctx context.Context, opportunityID, applicantID primitive.ObjectID, message string) (models.InterestRequest, error) {
	opp, err := t.opps.GetByID(ctx, opportunityID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.InterestRequest{}, NewError(KindNotFound, "opportunity not found")
		}
		return models.InterestRequest{}, err
	}
	if opp.Status != status.OpportunityOpen {
		return models.InterestRequest{}, Errorf(KindInvalidState, "opportunity is %s and not accepting requests", opp.Status)
	}

	message = htmlsanitize.Sanitize(strings.TrimSpace(message))
	if message == "" {
		return models.InterestRequest{}, NewError(KindValidation, "message is required")
	}

	var req models.InterestRequest
	err = txn.Run(ctx, t.client, t.log, func(ctx context.Context) error {
		var err error
		req, err = t.interests.Create(ctx, models.InterestRequest{
			OpportunityID: opp.ID,
			ApplicantID:   applicantID,
			Message:       message,
		})
		if err != nil {
			return err
		}
		// The increment only matches while the opportunity is still
		// open, so a close that landed after the check above aborts
		// the whole submit.
		bumped, err := t.opps.IncrementApplicantCount(ctx, opp.ID)
		if err != nil {
			return err
		}
		if !bumped {
			return NewError(KindInvalidState, "opportunity is no longer accepting requests")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, intereststore.ErrDuplicatePending) {
			return models.InterestRequest{}, NewError(KindDuplicatePending, "a pending request for this opportunity already exists")
		}
		return models.InterestRequest{}, err
	}

	t.emitter.Emit(ctx, events.Event{
		Type:          events.InterestSubmitted,
		TargetUserID:  opp.OwnerID,
		OpportunityID: &opp.ID,
		Summary:       fmt.Sprintf("New expression of interest in %q", opp.Title),
		OccurredAt:    time.Now().UTC(),
	})
	return req, nil
}

// Decide resolves a pending request. Owner-only. Accepting creates the
// collaboration group and advances the opportunity to in-progress as
// one atomic unit; the returned group is non-nil only on accept.
// Racing decisions on one request serialize on the pending status:
// exactly one wins, the rest observe InvalidTransition.
func (t *Tracker) Decide(ctx context.Context, requestID, callerID primitive.ObjectID, decision string) (models.InterestRequest, *models.CollabGroup, error) {
	var terminal string
	switch decision {
	case DecisionAccept:
		terminal = status.RequestAccepted
	case DecisionReject:
		terminal = status.RequestRejected
	default:
		return models.InterestRequest{}, nil, Errorf(KindValidation, "decision must be %q or %q", DecisionAccept, DecisionReject)
	}

	req, err := t.interests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.InterestRequest{}, nil, NewError(KindNotFound, "interest request not found")
		}
		return models.InterestRequest{}, nil, err
	}

	opp, err := t.opps.GetByID(ctx, req.OpportunityID)
	if err != nil {
		return models.InterestRequest{}, nil, fmt.Errorf("load opportunity for request %s: %w", requestID.Hex(), err)
	}
	if opp.OwnerID != callerID {
		return models.InterestRequest{}, nil, NewError(KindForbidden, "only the opportunity owner may decide a request")
	}
	if req.Status != status.RequestPending {
		return models.InterestRequest{}, nil, Errorf(KindInvalidTransition, "request is already %s", req.Status)
	}

	var (
		decided models.InterestRequest
		group   *models.CollabGroup
	)
	err = txn.Run(ctx, t.client, t.log, func(ctx context.Context) error {
		var err error
		decided, err = t.interests.Decide(ctx, requestID, terminal)
		if err != nil {
			return err
		}
		switch terminal {
		case status.RequestAccepted:
			g, err := t.groups.materializeAcceptance(ctx, opp, decided)
			if err != nil {
				return err
			}
			group = &g
			return t.registry.markInProgress(ctx, opp.ID)
		default:
			// The applicant counter mirrors pending+accepted requests,
			// so a rejection releases the slot.
			return t.opps.DecrementApplicantCount(ctx, opp.ID)
		}
	})
	if err != nil {
		if errors.Is(err, intereststore.ErrNotPending) {
			return models.InterestRequest{}, nil, Errorf(KindInvalidTransition, "request is already decided")
		}
		return models.InterestRequest{}, nil, err
	}

	event := events.Event{
		TargetUserID:  decided.ApplicantID,
		OpportunityID: &opp.ID,
		OccurredAt:    time.Now().UTC(),
	}
	if terminal == status.RequestAccepted {
		event.Type = events.InterestAccepted
		event.GroupID = &group.ID
		event.Summary = fmt.Sprintf("Your interest in %q was accepted", opp.Title)
	} else {
		event.Type = events.InterestRejected
		event.Summary = fmt.Sprintf("Your interest in %q was declined", opp.Title)
	}
	t.emitter.Emit(ctx, event)

	t.log.Info("interest request decided",
		zap.String("request_id", requestID.Hex()),
		zap.String("decision", terminal),
		zap.String("caller_id", callerID.Hex()))
	return decided, group, nil
}

// ListByOpportunity returns an opportunity's requests, newest first.
func (t *Tracker) ListByOpportunity(ctx context.Context, opportunityID primitive.ObjectID) ([]models.InterestRequest, error) {
	if _, err := t.opps.GetByID(ctx, opportunityID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewError(KindNotFound, "opportunity not found")
		}
		return nil, err
	}
	return t.interests.ListByOpportunity(ctx, opportunityID)
}

// ListByApplicant returns an applicant's requests, newest first.
func (t *Tracker) ListByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.InterestRequest, error) {
	return t.interests.ListByApplicant(ctx, applicantID)
}
