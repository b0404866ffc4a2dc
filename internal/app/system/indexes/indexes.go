// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The partial and unique indexes here are load-bearing: they are what
make the engine's invariants hold under concurrent writers
(one pending interest request per (opportunity, applicant), one
membership per (group, user), one sequence slot per message).
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureOpportunities(ctx, db); err != nil {
		problems = append(problems, "opportunities: "+err.Error())
	}
	if err := ensureInterestRequests(ctx, db); err != nil {
		problems = append(problems, "interest_requests: "+err.Error())
	}
	if err := ensureCollabGroups(ctx, db); err != nil {
		problems = append(problems, "collab_groups: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensureGroupMessages(ctx, db); err != nil {
		problems = append(problems, "group_messages: "+err.Error())
	}
	if err := ensureGroupDocuments(ctx, db); err != nil {
		problems = append(problems, "group_documents: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensure(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	zap.L().Info("indexes ensured",
		zap.String("collection", coll),
		zap.Strings("names", names))
	return nil
}

func ensureOpportunities(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "opportunities", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_opportunity_status_created"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_opportunity_owner"),
		},
		{
			Keys:    bson.D{{Key: "industry_ci", Value: 1}},
			Options: options.Index().SetName("idx_opportunity_industry"),
		},
		{
			Keys:    bson.D{{Key: "regions_needed", Value: 1}},
			Options: options.Index().SetName("idx_opportunity_regions"),
		},
	})
}

func ensureInterestRequests(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "interest_requests", []mongo.IndexModel{
		// At most one pending request per (opportunity, applicant).
		{
			Keys: bson.D{{Key: "opportunity_id", Value: 1}, {Key: "applicant_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_pending_request").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": "pending"}),
		},
		{
			Keys:    bson.D{{Key: "opportunity_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_request_opportunity_created"),
		},
		{
			Keys:    bson.D{{Key: "applicant_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_request_applicant_created"),
		},
	})
}

func ensureCollabGroups(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "collab_groups", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("idx_group_creator"),
		},
		{
			Keys:    bson.D{{Key: "last_activity_at", Value: -1}},
			Options: options.Index().SetName("idx_group_activity"),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "group_memberships", []mongo.IndexModel{
		// One membership per (group, user).
		{
			Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_group_user").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_membership_user"),
		},
	})
}

func ensureGroupMessages(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "group_messages", []mongo.IndexModel{
		// Seq is assigned from the per-group counter, so it is unique
		// within a group; the index both enforces that and serves the
		// ascending list/polling queries.
		{
			Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "seq", Value: 1}},
			Options: options.Index().
				SetName("uniq_message_seq").
				SetUnique(true),
		},
	})
}

func ensureGroupDocuments(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "group_documents", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "uploaded_at", Value: -1}},
			Options: options.Index().SetName("idx_document_group_uploaded"),
		},
	})
}
