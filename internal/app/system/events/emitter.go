// internal/app/system/events/emitter.go

// Package events is the engine's boundary to the notification platform.
// The engine emits lifecycle events; delivery, preference filtering and
// display belong to the notification component, so emission is
// fire-and-forget: implementations log failures and never surface them
// to the operation that produced the event.
package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lifecycle event types.
const (
	InterestSubmitted = "interest.submitted"
	InterestAccepted  = "interest.accepted"
	InterestRejected  = "interest.rejected"
	DocumentUploaded  = "document.uploaded"
)

// Event is the payload handed to the notification platform.
type Event struct {
	Type          string              `json:"type"`
	TargetUserID  primitive.ObjectID  `json:"target_user_id"`
	OpportunityID *primitive.ObjectID `json:"opportunity_id,omitempty"`
	GroupID       *primitive.ObjectID `json:"group_id,omitempty"`
	Summary       string              `json:"summary"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// Emitter delivers lifecycle events downstream. Emit must not block on
// delivery acknowledgement beyond the producer's own timeout and must
// swallow delivery errors, logging them; a failed emit never rolls back
// the state transition that produced it.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}
