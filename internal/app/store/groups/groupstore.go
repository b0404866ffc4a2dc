// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"time"

	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("collab_groups")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.CollabGroup, error) {
	var g models.CollabGroup
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.CollabGroup{}, err
	}
	return g, nil
}

func (s *Store) Create(ctx context.Context, g models.CollabGroup) (models.CollabGroup, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Status == "" {
		g.Status = status.GroupActive
	}
	g.CreatedAt = now
	g.LastActivityAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.CollabGroup{}, err
	}
	return g, nil
}

// SetStatus overwrites the group status. Transition rules live in the
// engine; the store applies whatever it is told.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": stat}})
	return err
}

// TouchActivity advances last_activity_at. $max keeps the field
// monotonic when writes land out of order.
func (s *Store) TouchActivity(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$max": bson.M{"last_activity_at": at.UTC()}})
	return err
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByIDs returns the groups with the given ids ordered by most
// recent activity first.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.CollabGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "last_activity_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CollabGroup
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
