// internal/domain/models/groupdocument.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupDocument is the metadata record for a file shared with a collab
// group. The bytes live in external storage; ContentRef is the opaque
// reference handed to the storage collaborator.
type GroupDocument struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	GroupID      primitive.ObjectID `bson:"group_id" json:"group_id"`
	UploaderID   primitive.ObjectID `bson:"uploader_id" json:"uploader_id"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	MimeCategory string             `bson:"mime_category" json:"mime_category"`
	SizeBytes    int64              `bson:"size_bytes" json:"size_bytes"`
	ContentRef   string             `bson:"content_ref" json:"content_ref"`
	UploadedAt   time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
