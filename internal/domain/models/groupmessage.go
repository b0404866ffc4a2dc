// internal/domain/models/groupmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupMessage is one entry in a collab group's append-only message
// log. No edits, no deletes.
//
// Seq is a per-group monotonically increasing sequence assigned at the
// serialization point; it defines message order (and breaks timestamp
// ties) and serves as the incremental polling cursor.
type GroupMessage struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	GroupID  primitive.ObjectID `bson:"group_id" json:"group_id"`
	SenderID primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Body     string             `bson:"body" json:"body"`
	Kind     string             `bson:"kind" json:"kind"` // "text" | "file-notice"

	// DocumentID is set only on "file-notice" messages and references
	// the uploaded document. It is retained even after the document is
	// deleted (history is never rewritten).
	DocumentID *primitive.ObjectID `bson:"document_id,omitempty" json:"document_id,omitempty"`

	Seq       int64     `bson:"seq" json:"seq"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
