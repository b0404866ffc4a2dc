package collab_test

import (
	"context"
	"testing"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T) (*collab.Engine, *mongo.Database, *testutil.CaptureEmitter) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	emitter := testutil.NewCaptureEmitter()
	return collab.New(db, emitter, zap.NewNop()), db, emitter
}

// acceptedGroup runs the full submit/accept flow and returns the
// resulting group with its owner and applicant.
func acceptedGroup(t *testing.T, ctx context.Context, eng *collab.Engine) (primitive.ObjectID, primitive.ObjectID, models.CollabGroup) {
	t.Helper()

	owner := primitive.NewObjectID()
	applicant := primitive.NewObjectID()

	opp, err := eng.Registry.Create(ctx, validOpportunityInput(owner))
	if err != nil {
		t.Fatalf("Create opportunity failed: %v", err)
	}
	req, err := eng.Tracker.Submit(ctx, opp.ID, applicant, "interested")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	_, group, err := eng.Tracker.Decide(ctx, req.ID, owner, collab.DecisionAccept)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if group == nil {
		t.Fatal("expected a group from acceptance")
	}
	return owner, applicant, *group
}
