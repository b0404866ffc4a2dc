// internal/app/store/messages/messagestore.go
package messagestore

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
	c        *mongo.Collection
	counters *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("group_messages"),
		counters: db.Collection("counters"),
	}
}

// Append stores a message with a server-assigned timestamp and the
// next sequence number for the group. Sequence numbers start at 1 and
// never repeat within a group; ties in created_at are ordered by seq.
func (s *Store) Append(ctx context.Context, m models.GroupMessage) (models.GroupMessage, error) {
	seq, err := s.nextSeq(ctx, m.GroupID)
	if err != nil {
		return models.GroupMessage{}, err
	}
	m.ID = primitive.NewObjectID()
	if m.Kind == "" {
		m.Kind = status.MessageText
	}
	m.Seq = seq
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.GroupMessage{}, err
	}
	return m, nil
}

// ListSince returns messages with seq greater than sinceSeq, ascending.
// sinceSeq=0 returns the whole history. A limit of 0 means no limit.
func (s *Store) ListSince(ctx context.Context, groupID primitive.ObjectID, sinceSeq, limit int64) ([]models.GroupMessage, error) {
	filter := bson.M{"group_id": groupID}
	if sinceSeq > 0 {
		filter["seq"] = bson.M{"$gt": sinceSeq}
	}
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GroupMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByGroup removes a group's whole message history plus its
// sequence counter. Returns the number of messages deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	if _, err := s.counters.DeleteOne(ctx, bson.M{"_id": counterKey(groupID)}); err != nil {
		return res.DeletedCount, err
	}
	return res.DeletedCount, nil
}

// nextSeq allocates the next per-group sequence number with an upsert
// increment on the counters collection, so concurrent appenders each
// get a distinct value.
func (s *Store) nextSeq(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": counterKey(groupID)},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}

func counterKey(groupID primitive.ObjectID) string {
	return "group_messages:" + groupID.Hex()
}
