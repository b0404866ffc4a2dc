// internal/app/store/interests/intereststore.go
package intereststore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicatePending is returned when the applicant already has a
	// pending request on the same opportunity. Enforced by the partial
	// unique index uniq_pending_request.
	ErrDuplicatePending = errors.New("a pending request for this opportunity already exists")

	// ErrNotPending is returned by Decide when no pending request with
	// the given id exists; the caller distinguishes missing from
	// already-decided with a follow-up read.
	ErrNotPending = errors.New("request is not pending")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("interest_requests")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.InterestRequest, error) {
	var r models.InterestRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		return models.InterestRequest{}, err
	}
	return r, nil
}

// Create inserts a new pending request. The unique index translates a
// racing duplicate into ErrDuplicatePending.
func (s *Store) Create(ctx context.Context, r models.InterestRequest) (models.InterestRequest, error) {
	r.ID = primitive.NewObjectID()
	r.Status = status.RequestPending
	r.CreatedAt = time.Now().UTC()
	r.DecidedAt = nil
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		if wafflemongo.IsDup(err) {
			return models.InterestRequest{}, ErrDuplicatePending
		}
		return models.InterestRequest{}, err
	}
	return r, nil
}

// Decide moves a pending request to the given terminal status. The
// filter on status=pending makes racing decisions serialize: exactly
// one caller wins, the rest get ErrNotPending.
func (s *Store) Decide(ctx context.Context, id primitive.ObjectID, terminal string) (models.InterestRequest, error) {
	now := time.Now().UTC()
	var r models.InterestRequest
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": status.RequestPending},
		bson.M{"$set": bson.M{"status": terminal, "decided_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.InterestRequest{}, ErrNotPending
		}
		return models.InterestRequest{}, err
	}
	return r, nil
}

func (s *Store) ListByOpportunity(ctx context.Context, opportunityID primitive.ObjectID) ([]models.InterestRequest, error) {
	return s.list(ctx, bson.M{"opportunity_id": opportunityID})
}

func (s *Store) ListByApplicant(ctx context.Context, applicantID primitive.ObjectID) ([]models.InterestRequest, error) {
	return s.list(ctx, bson.M{"applicant_id": applicantID})
}

// CountActive counts requests on an opportunity that are pending or
// accepted, the population the opportunity's applicant counter mirrors.
func (s *Store) CountActive(ctx context.Context, opportunityID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{
		"opportunity_id": opportunityID,
		"status":         bson.M{"$in": []string{status.RequestPending, status.RequestAccepted}},
	})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.InterestRequest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.InterestRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
