// internal/app/engine/collab/groups.go
package collab

import (
	"context"
	"errors"
	"fmt"

	documentstore "github.com/dalemusser/collabhub/internal/app/store/documents"
	groupstore "github.com/dalemusser/collabhub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	messagestore "github.com/dalemusser/collabhub/internal/app/store/messages"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/app/system/txn"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Groups manages collaboration groups. Groups are only born from an
// accepted interest request; the opportunity owner becomes the
// creator and stays a member for the group's whole life.
type Groups struct {
	client      *mongo.Client
	groups      *groupstore.Store
	memberships *membershipstore.Store
	messages    *messagestore.Store
	documents   *documentstore.Store
	log         *zap.Logger
}

// materializeAcceptance builds the group for a freshly accepted
// request: creator = opportunity owner, members = {creator, applicant}.
// Runs inside the tracker's decide transaction.
func (g *Groups) materializeAcceptance(ctx context.Context, opp models.Opportunity, req models.InterestRequest) (models.CollabGroup, error) {
	group, err := g.groups.Create(ctx, models.CollabGroup{
		Name:                 opp.Title + " Working Group",
		Description:          fmt.Sprintf("Collaboration on %q", opp.Title),
		CreatorID:            opp.OwnerID,
		SourceOpportunityIDs: []primitive.ObjectID{opp.ID},
	})
	if err != nil {
		return models.CollabGroup{}, err
	}
	if err := g.memberships.Add(ctx, group.ID, opp.OwnerID, status.RoleCreator); err != nil {
		return models.CollabGroup{}, err
	}
	if err := g.memberships.Add(ctx, group.ID, req.ApplicantID, status.RoleMember); err != nil {
		return models.CollabGroup{}, err
	}
	return group, nil
}

// Get returns a group and its members in join order (creator first).
func (g *Groups) Get(ctx context.Context, groupID primitive.ObjectID) (models.CollabGroup, []models.GroupMembership, error) {
	group, err := g.load(ctx, groupID)
	if err != nil {
		return models.CollabGroup{}, nil, err
	}
	members, err := g.memberships.ListByGroup(ctx, groupID)
	if err != nil {
		return models.CollabGroup{}, nil, err
	}
	return group, members, nil
}

// ListForUser returns every group the user belongs to, most recently
// active first.
func (g *Groups) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.CollabGroup, error) {
	ids, err := g.memberships.GroupIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.groups.ListByIDs(ctx, ids)
}

// AddMember appends a member. Creator-only.
func (g *Groups) AddMember(ctx context.Context, groupID, callerID, userID primitive.ObjectID) error {
	group, err := g.load(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != callerID {
		return NewError(KindForbidden, "only the group creator may add members")
	}

	if err := g.memberships.Add(ctx, groupID, userID, status.RoleMember); err != nil {
		if errors.Is(err, membershipstore.ErrDuplicateMembership) {
			return NewError(KindAlreadyMember, "user is already a member of this group")
		}
		return err
	}
	g.log.Info("group member added",
		zap.String("group_id", groupID.Hex()),
		zap.String("user_id", userID.Hex()))
	return nil
}

// RemoveMember removes a member. Creator-only; the creator can never
// be removed, so every group always has its creator in the member
// list.
func (g *Groups) RemoveMember(ctx context.Context, groupID, callerID, userID primitive.ObjectID) error {
	group, err := g.load(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != callerID {
		return NewError(KindForbidden, "only the group creator may remove members")
	}
	if userID == group.CreatorID {
		return NewError(KindCannotRemoveCreator, "the group creator cannot be removed")
	}

	removed, err := g.memberships.Remove(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return NewError(KindNotMember, "user is not a member of this group")
	}
	g.log.Info("group member removed",
		zap.String("group_id", groupID.Hex()),
		zap.String("user_id", userID.Hex()))
	return nil
}

// MarkCompleted sets the group's status to completed. Creator-only.
// History is retained; the source opportunity's status is unaffected.
func (g *Groups) MarkCompleted(ctx context.Context, groupID, callerID primitive.ObjectID) (models.CollabGroup, error) {
	group, err := g.load(ctx, groupID)
	if err != nil {
		return models.CollabGroup{}, err
	}
	if group.CreatorID != callerID {
		return models.CollabGroup{}, NewError(KindForbidden, "only the group creator may complete the group")
	}

	if err := g.groups.SetStatus(ctx, groupID, status.GroupCompleted); err != nil {
		return models.CollabGroup{}, err
	}
	group.Status = status.GroupCompleted
	return group, nil
}

// Delete removes the group together with its memberships, messages and
// documents. Creator-only and irreversible. The source opportunity
// keeps whatever status it has.
func (g *Groups) Delete(ctx context.Context, groupID, callerID primitive.ObjectID) error {
	group, err := g.load(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != callerID {
		return NewError(KindForbidden, "only the group creator may delete the group")
	}

	// The group document goes first: on deployments without
	// transactions the group vanishes in one write and the history
	// sweep follows.
	err = txn.Run(ctx, g.client, g.log, func(ctx context.Context) error {
		if _, err := g.groups.Delete(ctx, groupID); err != nil {
			return err
		}
		if _, err := g.memberships.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		if _, err := g.messages.DeleteByGroup(ctx, groupID); err != nil {
			return err
		}
		_, err := g.documents.DeleteByGroup(ctx, groupID)
		return err
	})
	if err != nil {
		return err
	}
	g.log.Info("group deleted",
		zap.String("group_id", groupID.Hex()),
		zap.String("caller_id", callerID.Hex()))
	return nil
}

// IsMember reports whether userID currently belongs to the group.
func (g *Groups) IsMember(ctx context.Context, groupID, userID primitive.ObjectID) (bool, error) {
	return g.memberships.IsMember(ctx, groupID, userID)
}

func (g *Groups) load(ctx context.Context, groupID primitive.ObjectID) (models.CollabGroup, error) {
	group, err := g.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.CollabGroup{}, NewError(KindNotFound, "group not found")
		}
		return models.CollabGroup{}, err
	}
	return group, nil
}
