// internal/app/store/opportunities/opportunitystore.go
package opportunitystore

import (
	"context"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("opportunities")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Opportunity, error) {
	var o models.Opportunity
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// Create stores a new opportunity with status=open and a zero applicant
// counter. Input validation is the engine's job; this only normalizes
// derived fields.
func (s *Store) Create(ctx context.Context, o models.Opportunity) (models.Opportunity, error) {
	now := time.Now().UTC()
	o.ID = primitive.NewObjectID()
	o.TitleCI = text.Fold(o.Title)
	o.IndustryCI = text.Fold(o.Industry)
	o.Status = status.OpportunityOpen
	o.ApplicantCount = 0
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Opportunity{}, err
	}
	return o, nil
}

// ListFilter narrows List results. Zero-valued fields match everything.
type ListFilter struct {
	Industry string
	Region   string
	Status   string
	Limit    int64
}

// List returns matching opportunities, most recently created first with
// a stable id tie-break.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Opportunity, error) {
	filter := bson.M{}
	if f.Industry != "" {
		filter["industry_ci"] = text.Fold(f.Industry)
	}
	if f.Region != "" {
		filter["regions_needed"] = f.Region
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Opportunity
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close transitions the opportunity to closed. Returns false when the
// document was already closed (or absent); the caller decides which.
func (s *Store) Close(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": status.OpportunityClosed}},
		bson.M{"$set": bson.M{
			"status":     status.OpportunityClosed,
			"updated_at": time.Now().UTC(),
		}})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// MarkInProgress moves an open opportunity to in-progress. Idempotent:
// a no-op when the opportunity is already in-progress or closed.
func (s *Store) MarkInProgress(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": status.OpportunityOpen},
		bson.M{"$set": bson.M{
			"status":     status.OpportunityInProgress,
			"updated_at": time.Now().UTC(),
		}})
	return err
}

// IncrementApplicantCount bumps the maintained applicant counter. The
// counter tracks requests that are pending or accepted; rejecting a
// pending request decrements it again via DecrementApplicantCount.
// The filter on status=open makes this the commit point for a submit
// racing a close: false means the opportunity stopped accepting.
func (s *Store) IncrementApplicantCount(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": status.OpportunityOpen},
		bson.M{
			"$inc": bson.M{"applicant_count": 1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DecrementApplicantCount is for the interest tracker only, when a
// pending request is rejected. It is not part of the public surface
// and never drives the counter below zero.
func (s *Store) DecrementApplicantCount(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "applicant_count": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"applicant_count": -1},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		})
	return err
}
