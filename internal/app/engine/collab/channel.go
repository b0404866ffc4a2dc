// internal/app/engine/collab/channel.go
package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	documentstore "github.com/dalemusser/collabhub/internal/app/store/documents"
	groupstore "github.com/dalemusser/collabhub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/collabhub/internal/app/store/memberships"
	messagestore "github.com/dalemusser/collabhub/internal/app/store/messages"
	"github.com/dalemusser/collabhub/internal/app/system/events"
	"github.com/dalemusser/collabhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Channel is a group's message log and document registry. Members
// interact with their group exclusively through it; non-members are
// turned away on reads and writes alike. Timestamps and sequence
// numbers are server-assigned, so message order is the store's order.
type Channel struct {
	groups      *groupstore.Store
	memberships *membershipstore.Store
	messages    *messagestore.Store
	documents   *documentstore.Store
	emitter     events.Emitter
	log         *zap.Logger
}

// UploadDocumentInput carries caller-supplied metadata for a document.
// The engine stores metadata plus an opaque content reference; byte
// storage belongs to the platform's file service.
type UploadDocumentInput struct {
	DisplayName  string
	MimeCategory string
	SizeBytes    int64
}

// PostMessage appends a message to the group log and refreshes the
// group's activity timestamp.
func (c *Channel) PostMessage(ctx context.Context, groupID, senderID primitive.ObjectID, body, kind string) (models.GroupMessage, error) {
	if _, err := c.requireMember(ctx, groupID, senderID); err != nil {
		return models.GroupMessage{}, err
	}

	body = htmlsanitize.Sanitize(strings.TrimSpace(body))
	if body == "" {
		return models.GroupMessage{}, NewError(KindValidation, "message body is required")
	}
	if kind == "" {
		kind = status.MessageText
	}
	if kind != status.MessageText && kind != status.MessageFileNotice {
		return models.GroupMessage{}, Errorf(KindValidation, "unknown message kind %q", kind)
	}

	return c.append(ctx, models.GroupMessage{
		GroupID:  groupID,
		SenderID: senderID,
		Body:     body,
		Kind:     kind,
	})
}

// UploadDocument stores document metadata, posts the file notice into
// the message log, and notifies the group creator. The content
// reference is minted here; the caller uploads bytes against it out of
// band.
func (c *Channel) UploadDocument(ctx context.Context, groupID, uploaderID primitive.ObjectID, in UploadDocumentInput) (models.GroupDocument, error) {
	group, err := c.requireMember(ctx, groupID, uploaderID)
	if err != nil {
		return models.GroupDocument{}, err
	}

	name := htmlsanitize.StripTags(strings.TrimSpace(in.DisplayName))
	if name == "" {
		return models.GroupDocument{}, NewError(KindValidation, "display name is required")
	}
	if in.SizeBytes <= 0 {
		return models.GroupDocument{}, NewError(KindValidation, "size must be positive")
	}

	doc, err := c.documents.Create(ctx, models.GroupDocument{
		GroupID:      groupID,
		UploaderID:   uploaderID,
		DisplayName:  name,
		MimeCategory: strings.TrimSpace(in.MimeCategory),
		SizeBytes:    in.SizeBytes,
		ContentRef:   uuid.NewString(),
	})
	if err != nil {
		return models.GroupDocument{}, err
	}

	// The notice stays in the log even if the document is deleted
	// later; history is never rewritten.
	if _, err := c.append(ctx, models.GroupMessage{
		GroupID:    groupID,
		SenderID:   uploaderID,
		Body:       fmt.Sprintf("Uploaded %q", name),
		Kind:       status.MessageFileNotice,
		DocumentID: &doc.ID,
	}); err != nil {
		return models.GroupDocument{}, err
	}

	c.emitter.Emit(ctx, events.Event{
		Type:         events.DocumentUploaded,
		TargetUserID: group.CreatorID,
		GroupID:      &group.ID,
		Summary:      fmt.Sprintf("%q was uploaded to %s", name, group.Name),
		OccurredAt:   time.Now().UTC(),
	})
	return doc, nil
}

// DeleteDocument removes a document's registry entry. Creator-only.
// Messages referencing the document are retained.
func (c *Channel) DeleteDocument(ctx context.Context, groupID, callerID, documentID primitive.ObjectID) error {
	group, err := c.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.CreatorID != callerID {
		return NewError(KindForbidden, "only the group creator may delete documents")
	}

	removed, err := c.documents.Delete(ctx, groupID, documentID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return NewError(KindNotFound, "document not found")
	}
	c.log.Info("group document deleted",
		zap.String("group_id", groupID.Hex()),
		zap.String("document_id", documentID.Hex()))
	return nil
}

// ListMessages returns messages in sequence order. sinceSeq supports
// incremental polling: pass the last seen sequence number to get only
// what followed it. Member-only.
func (c *Channel) ListMessages(ctx context.Context, groupID, callerID primitive.ObjectID, sinceSeq, limit int64) ([]models.GroupMessage, error) {
	if _, err := c.requireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}
	return c.messages.ListSince(ctx, groupID, sinceSeq, limit)
}

// ListDocuments returns the group's documents newest-first. Member-only.
func (c *Channel) ListDocuments(ctx context.Context, groupID, callerID primitive.ObjectID) ([]models.GroupDocument, error) {
	if _, err := c.requireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}
	return c.documents.ListByGroup(ctx, groupID)
}

func (c *Channel) append(ctx context.Context, m models.GroupMessage) (models.GroupMessage, error) {
	msg, err := c.messages.Append(ctx, m)
	if err != nil {
		return models.GroupMessage{}, err
	}
	// The message is committed at this point; the activity timestamp
	// is advisory and must not fail the post.
	if err := c.groups.TouchActivity(ctx, m.GroupID, msg.CreatedAt); err != nil {
		c.log.Warn("activity touch failed",
			zap.String("group_id", m.GroupID.Hex()),
			zap.Error(err))
	}
	return msg, nil
}

func (c *Channel) requireMember(ctx context.Context, groupID, userID primitive.ObjectID) (models.CollabGroup, error) {
	group, err := c.loadGroup(ctx, groupID)
	if err != nil {
		return models.CollabGroup{}, err
	}
	ok, err := c.memberships.IsMember(ctx, groupID, userID)
	if err != nil {
		return models.CollabGroup{}, err
	}
	if !ok {
		return models.CollabGroup{}, NewError(KindNotMember, "caller is not a member of this group")
	}
	return group, nil
}

func (c *Channel) loadGroup(ctx context.Context, groupID primitive.ObjectID) (models.CollabGroup, error) {
	group, err := c.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.CollabGroup{}, NewError(KindNotFound, "group not found")
		}
		return models.CollabGroup{}, err
	}
	return group, nil
}
