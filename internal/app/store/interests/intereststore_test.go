package intereststore_test

import (
	"testing"

	intereststore "github.com/dalemusser/collabhub/internal/app/store/interests"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Interesting", primitive.NewObjectID())
	applicant := primitive.NewObjectID()

	created, err := store.Create(ctx, models.InterestRequest{
		OpportunityID: opp.ID,
		ApplicantID:   applicant,
		Message:       "We have EMEA delivery capacity.",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Status != status.RequestPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if created.DecidedAt != nil {
		t.Error("expected DecidedAt to be unset")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicatePending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Popular", primitive.NewObjectID())
	applicant := primitive.NewObjectID()

	req := models.InterestRequest{
		OpportunityID: opp.ID,
		ApplicantID:   applicant,
		Message:       "first",
	}
	if _, err := store.Create(ctx, req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	req.Message = "second"
	if _, err := store.Create(ctx, req); err != intereststore.ErrDuplicatePending {
		t.Errorf("expected ErrDuplicatePending, got %v", err)
	}

	// A different applicant on the same opportunity is fine.
	req.ApplicantID = primitive.NewObjectID()
	if _, err := store.Create(ctx, req); err != nil {
		t.Errorf("Create for second applicant failed: %v", err)
	}
}

func TestStore_Create_AllowedAfterDecision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Second Chance", primitive.NewObjectID())
	applicant := primitive.NewObjectID()

	first, err := store.Create(ctx, models.InterestRequest{
		OpportunityID: opp.ID,
		ApplicantID:   applicant,
		Message:       "first attempt",
	})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Decide(ctx, first.ID, status.RequestRejected); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	// The partial unique index only covers pending requests, so a
	// rejected applicant may submit again.
	if _, err := store.Create(ctx, models.InterestRequest{
		OpportunityID: opp.ID,
		ApplicantID:   applicant,
		Message:       "second attempt",
	}); err != nil {
		t.Errorf("Create after rejection failed: %v", err)
	}
}

func TestStore_Decide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Decidable", primitive.NewObjectID())
	req := fixtures.CreateInterestRequest(ctx, opp.ID, primitive.NewObjectID(), status.RequestPending)

	decided, err := store.Decide(ctx, req.ID, status.RequestAccepted)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != status.RequestAccepted {
		t.Errorf("expected status accepted, got %q", decided.Status)
	}
	if decided.DecidedAt == nil {
		t.Error("expected DecidedAt to be set")
	}

	// Terminal: a second decision finds nothing pending.
	if _, err := store.Decide(ctx, req.ID, status.RequestRejected); err != intereststore.ErrNotPending {
		t.Errorf("expected ErrNotPending on second decision, got %v", err)
	}

	found, err := store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Status != status.RequestAccepted {
		t.Errorf("expected status to remain accepted, got %q", found.Status)
	}
}

func TestStore_Decide_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Contested", primitive.NewObjectID())
	req := fixtures.CreateInterestRequest(ctx, opp.ID, primitive.NewObjectID(), status.RequestPending)

	// An accept and a reject land at the same time; the conditional
	// update on status=pending lets exactly one through.
	outcomes := make(chan error, 2)
	for _, terminal := range []string{status.RequestAccepted, status.RequestRejected} {
		go func(terminal string) {
			_, err := store.Decide(ctx, req.ID, terminal)
			outcomes <- err
		}(terminal)
	}

	var wins, losses int
	for i := 0; i < 2; i++ {
		switch err := <-outcomes; err {
		case nil:
			wins++
		case intereststore.ErrNotPending:
			losses++
		default:
			t.Fatalf("Decide failed: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected one winner and one loser, got %d wins and %d losses", wins, losses)
	}

	found, err := store.GetByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.Status == status.RequestPending {
		t.Error("expected the request to be decided")
	}
	if found.DecidedAt == nil {
		t.Error("expected DecidedAt to be set")
	}
}

func TestStore_Decide_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Decide(ctx, primitive.NewObjectID(), status.RequestAccepted); err != intereststore.ErrNotPending {
		t.Errorf("expected ErrNotPending for missing request, got %v", err)
	}
}

func TestStore_Lists_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Listed", primitive.NewObjectID())
	applicant := primitive.NewObjectID()

	var lastID primitive.ObjectID
	for i := 0; i < 3; i++ {
		created, err := store.Create(ctx, models.InterestRequest{
			OpportunityID: opp.ID,
			ApplicantID:   primitive.NewObjectID(),
			Message:       "hello",
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		lastID = created.ID
	}
	if _, err := store.Create(ctx, models.InterestRequest{
		OpportunityID: primitive.NewObjectID(),
		ApplicantID:   applicant,
		Message:       "elsewhere",
	}); err != nil {
		t.Fatalf("Create on other opportunity failed: %v", err)
	}

	byOpp, err := store.ListByOpportunity(ctx, opp.ID)
	if err != nil {
		t.Fatalf("ListByOpportunity failed: %v", err)
	}
	if len(byOpp) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(byOpp))
	}
	if byOpp[0].ID != lastID {
		t.Error("expected newest request first")
	}

	byApplicant, err := store.ListByApplicant(ctx, applicant)
	if err != nil {
		t.Fatalf("ListByApplicant failed: %v", err)
	}
	if len(byApplicant) != 1 {
		t.Errorf("expected 1 request for applicant, got %d", len(byApplicant))
	}
}

func TestStore_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := intereststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	opp := fixtures.CreateOpportunity(ctx, "Counted", primitive.NewObjectID())
	fixtures.CreateInterestRequest(ctx, opp.ID, primitive.NewObjectID(), status.RequestPending)
	fixtures.CreateInterestRequest(ctx, opp.ID, primitive.NewObjectID(), status.RequestAccepted)
	fixtures.CreateInterestRequest(ctx, opp.ID, primitive.NewObjectID(), status.RequestRejected)

	n, err := store.CountActive(ctx, opp.ID)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 active requests, got %d", n)
	}
}
