// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// CreateOpportunity inserts an open opportunity owned by ownerID.
func (f *Fixtures) CreateOpportunity(ctx context.Context, title string, ownerID primitive.ObjectID) models.Opportunity {
	f.t.Helper()
	return f.CreateOpportunityWithStatus(ctx, title, ownerID, status.OpportunityOpen)
}

// CreateOpportunityWithStatus inserts an opportunity in the given status.
func (f *Fixtures) CreateOpportunityWithStatus(ctx context.Context, title string, ownerID primitive.ObjectID, stat string) models.Opportunity {
	f.t.Helper()

	now := time.Now().UTC()
	opp := models.Opportunity{
		ID:            primitive.NewObjectID(),
		Title:         title,
		TitleCI:       text.Fold(title),
		Description:   "A test opportunity description",
		Industry:      "Technology",
		IndustryCI:    text.Fold("Technology"),
		ClientSector:  "Finance",
		RegionsNeeded: []string{"EMEA"},
		OwnerID:       ownerID,
		BudgetRange:   "50k-100k",
		Deadline:      now.Add(30 * 24 * time.Hour),
		Priority:      status.PriorityMedium,
		Status:        stat,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("opportunities").InsertOne(ctx, opp); err != nil {
		f.t.Fatalf("failed to create test opportunity: %v", err)
	}
	return opp
}

// CreateInterestRequest inserts a request in the given status and, for
// pending/accepted requests, bumps the opportunity's applicant counter
// the way the engine would have.
func (f *Fixtures) CreateInterestRequest(ctx context.Context, oppID, applicantID primitive.ObjectID, stat string) models.InterestRequest {
	f.t.Helper()

	now := time.Now().UTC()
	req := models.InterestRequest{
		ID:            primitive.NewObjectID(),
		OpportunityID: oppID,
		ApplicantID:   applicantID,
		Message:       "We would like to collaborate on this.",
		Status:        stat,
		CreatedAt:     now,
	}
	if stat != status.RequestPending {
		req.DecidedAt = &now
	}

	if _, err := f.db.Collection("interest_requests").InsertOne(ctx, req); err != nil {
		f.t.Fatalf("failed to create test interest request: %v", err)
	}

	if stat == status.RequestPending || stat == status.RequestAccepted {
		_, err := f.db.Collection("opportunities").UpdateByID(ctx, oppID,
			bson.M{"$inc": bson.M{"applicant_count": 1}})
		if err != nil {
			f.t.Fatalf("failed to bump applicant count: %v", err)
		}
	}
	return req
}

// CreateGroup inserts an active group with the creator plus any extra
// members, mirroring what acceptance materializes.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID, memberIDs ...primitive.ObjectID) models.CollabGroup {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.CollabGroup{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		Description:          "A test collaboration group",
		CreatorID:            creatorID,
		SourceOpportunityIDs: []primitive.ObjectID{primitive.NewObjectID()},
		Status:               status.GroupActive,
		CreatedAt:            now,
		LastActivityAt:       now,
	}
	if _, err := f.db.Collection("collab_groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	f.AddMembership(ctx, group.ID, creatorID, status.RoleCreator)
	for _, id := range memberIDs {
		f.AddMembership(ctx, group.ID, id, status.RoleMember)
	}
	return group
}

// AddMembership inserts one membership document.
func (f *Fixtures) AddMembership(ctx context.Context, groupID, userID primitive.ObjectID, role string) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:       primitive.NewObjectID(),
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}
