// internal/domain/models/opportunity.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Opportunity is a posted cross-organization engagement seeking
// collaborators. It is never physically deleted; lifecycle is soft
// (status only).
//
// NOTE:
//   - ApplicantCount is a maintained counter, updated atomically
//     alongside interest_request writes. It always equals the number
//     of requests on this opportunity whose status is pending or
//     accepted.
//   - Status is one of "open", "in-progress", "closed".
type Opportunity struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Industry    string             `bson:"industry" json:"industry"`
	IndustryCI  string             `bson:"industry_ci" json:"-"`

	ClientSector  string   `bson:"client_sector" json:"client_sector"`
	RegionsNeeded []string `bson:"regions_needed" json:"regions_needed"`

	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	BudgetRange string             `bson:"budget_range" json:"budget_range"`
	Deadline    time.Time          `bson:"deadline" json:"deadline"`
	Priority    string             `bson:"priority" json:"priority"` // "low" | "medium" | "high"

	Status         string `bson:"status" json:"status"`
	ApplicantCount int    `bson:"applicant_count" json:"applicant_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
