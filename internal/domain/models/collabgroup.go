// internal/domain/models/collabgroup.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollabGroup is the working group materialized when an InterestRequest
// is accepted.
//
// NOTE:
//   - Membership is not embedded on the group document. All membership
//     lives in the group_memberships collection, exactly one document
//     per (group_id, user_id).
//   - The creator (the opportunity owner at acceptance time) is always
//     a member and can never be removed.
//   - LastActivityAt is monotonically non-decreasing; stores update it
//     with $max on every message or document event.
type CollabGroup struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	CreatorID   primitive.ObjectID `bson:"creator_id" json:"creator_id"`

	SourceOpportunityIDs []primitive.ObjectID `bson:"source_opportunity_ids" json:"source_opportunity_ids"`

	Status string `bson:"status" json:"status"` // "active" | "completed"

	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	LastActivityAt time.Time `bson:"last_activity_at" json:"last_activity_at"`
}
