// internal/app/store/documents/documentstore.go
package documentstore

import (
	"context"
	"time"

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
	return &Store{c: db.Collection("group_documents")}
}

func (s *Store) Create(ctx context.Context, d models.GroupDocument) (models.GroupDocument, error) {
	d.ID = primitive.NewObjectID()
	d.UploadedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.GroupDocument{}, err
	}
	return d, nil
}

// GetByID is scoped to a group so a document id from one group cannot
// be read through another group's channel.
func (s *Store) GetByID(ctx context.Context, groupID, docID primitive.ObjectID) (models.GroupDocument, error) {
	var d models.GroupDocument
	err := s.c.FindOne(ctx, bson.M{"_id": docID, "group_id": groupID}).Decode(&d)
	if err != nil {
		return models.GroupDocument{}, err
	}
	return d, nil
}

// Delete removes one document. Returns the number deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, groupID, docID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": docID, "group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListByGroup returns a group's documents newest-first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GroupDocument
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByGroup removes all documents of a group. Returns the number
// of documents deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
