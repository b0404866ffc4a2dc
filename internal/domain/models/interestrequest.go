// internal/domain/models/interestrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterestRequest is an applicant's expression of interest in an
// Opportunity, subject to the opportunity owner's decision.
//
// Exactly one request per (opportunity_id, applicant_id) pair may be
// pending at a time; a partial unique index on the interest_requests
// collection enforces this at the write boundary. Once status leaves
// "pending" the request is immutable.
type InterestRequest struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	OpportunityID primitive.ObjectID `bson:"opportunity_id" json:"opportunity_id"`
	ApplicantID   primitive.ObjectID `bson:"applicant_id" json:"applicant_id"`
	Message       string             `bson:"message" json:"message"`

	Status string `bson:"status" json:"status"` // "pending" | "accepted" | "rejected"

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	DecidedAt *time.Time `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
}
