package collab_test

import (
	"strings"
	"testing"

	collab "github.com/dalemusser/collabhub/internal/app/engine/collab"
	"github.com/dalemusser/collabhub/internal/app/system/events"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestChannel_PostMessage(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner, applicant, group := acceptedGroup(t, ctx, eng)

	first, err := eng.Channel.PostMessage(ctx, group.ID, applicant, "Kicking things off", "")
	if err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	if first.Seq != 1 {
		t.Errorf("expected seq 1, got %d", first.Seq)
	}
	if first.Kind != status.MessageText {
		t.Errorf("expected kind text, got %q", first.Kind)
	}
	if first.CreatedAt.IsZero() {
		t.Error("expected server-assigned timestamp")
	}

	second, err := eng.Channel.PostMessage(ctx, group.ID, owner, "Welcome aboard", "")
	if err != nil {
		t.Fatalf("second PostMessage failed: %v", err)
	}
	if second.Seq != 2 {
		t.Errorf("expected seq 2, got %d", second.Seq)
	}

	// Posting bumps the group's activity timestamp.
	got, _, err := eng.Groups.Get(ctx, group.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.LastActivityAt.Before(second.CreatedAt) {
		t.Error("expected LastActivityAt to be at or after the last message")
	}
}

func TestChannel_PostMessage_NonMember(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)
	stranger := primitive.NewObjectID()

	if _, err := eng.Channel.PostMessage(ctx, group.ID, stranger, "let me in", ""); !collab.IsKind(err, collab.KindNotMember) {
		t.Errorf("expected not member, got %v", err)
	}

	// The log is unchanged.
	msgs, err := eng.Channel.ListMessages(ctx, group.ID, applicant, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("expected empty log, got %d messages", len(msgs))
	}
}

func TestChannel_PostMessage_Validation(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)

	if _, err := eng.Channel.PostMessage(ctx, group.ID, applicant, "   ", ""); !collab.IsKind(err, collab.KindValidation) {
		t.Errorf("expected validation error for empty body, got %v", err)
	}
	if _, err := eng.Channel.PostMessage(ctx, group.ID, applicant, "hello", "voice"); !collab.IsKind(err, collab.KindValidation) {
		t.Errorf("expected validation error for unknown kind, got %v", err)
	}
	if _, err := eng.Channel.PostMessage(ctx, primitive.NewObjectID(), applicant, "hello", ""); !collab.IsKind(err, collab.KindNotFound) {
		t.Errorf("expected not found for missing group, got %v", err)
	}
}

func TestChannel_PostMessage_SanitizesBody(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)

	msg, err := eng.Channel.PostMessage(ctx, group.ID, applicant,
		`see <script>alert(1)</script><b>the plan</b>`, "")
	if err != nil {
		t.Fatalf("PostMessage failed: %v", err)
	}
	if strings.Contains(msg.Body, "<script>") {
		t.Errorf("expected script tags to be stripped, got %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "<b>the plan</b>") {
		t.Errorf("expected basic formatting to survive, got %q", msg.Body)
	}
}

func TestChannel_ListMessages_SinceCursor(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)

	for i := 0; i < 4; i++ {
		if _, err := eng.Channel.PostMessage(ctx, group.ID, applicant, "msg", ""); err != nil {
			t.Fatalf("PostMessage failed: %v", err)
		}
	}

	tail, err := eng.Channel.ListMessages(ctx, group.ID, applicant, 2, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(tail) != 2 {
		t.Fatalf("expected 2 messages after seq 2, got %d", len(tail))
	}
	if tail[0].Seq != 3 || tail[1].Seq != 4 {
		t.Errorf("expected seqs 3,4 got %d,%d", tail[0].Seq, tail[1].Seq)
	}

	stranger := primitive.NewObjectID()
	if _, err := eng.Channel.ListMessages(ctx, group.ID, stranger, 0, 0); !collab.IsKind(err, collab.KindNotMember) {
		t.Errorf("expected not member for stranger's read, got %v", err)
	}
}

func TestChannel_UploadDocument(t *testing.T) {
	eng, _, emitter := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner, applicant, group := acceptedGroup(t, ctx, eng)

	doc, err := eng.Channel.UploadDocument(ctx, group.ID, applicant, collab.UploadDocumentInput{
		DisplayName:  "proposal.pdf",
		MimeCategory: "application/pdf",
		SizeBytes:    4096,
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}
	if doc.ContentRef == "" {
		t.Error("expected a content reference to be minted")
	}

	// The upload posts a file notice into the log.
	msgs, err := eng.Channel.ListMessages(ctx, group.ID, applicant, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	notice := msgs[0]
	if notice.Kind != status.MessageFileNotice {
		t.Errorf("expected file-notice, got %q", notice.Kind)
	}
	if notice.DocumentID == nil || *notice.DocumentID != doc.ID {
		t.Error("expected the notice to reference the document")
	}

	// The creator is notified.
	emitted := emitter.ByType(events.DocumentUploaded)
	if len(emitted) != 1 {
		t.Fatalf("expected 1 document.uploaded event, got %d", len(emitted))
	}
	if emitted[0].TargetUserID != owner {
		t.Errorf("event target: got %v, want creator %v", emitted[0].TargetUserID, owner)
	}
}

func TestChannel_UploadDocument_Validation(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)

	if _, err := eng.Channel.UploadDocument(ctx, group.ID, applicant, collab.UploadDocumentInput{
		DisplayName: "", SizeBytes: 10,
	}); !collab.IsKind(err, collab.KindValidation) {
		t.Errorf("expected validation error for empty name, got %v", err)
	}
	if _, err := eng.Channel.UploadDocument(ctx, group.ID, applicant, collab.UploadDocumentInput{
		DisplayName: "x.pdf", SizeBytes: 0,
	}); !collab.IsKind(err, collab.KindValidation) {
		t.Errorf("expected validation error for zero size, got %v", err)
	}
	if _, err := eng.Channel.UploadDocument(ctx, group.ID, primitive.NewObjectID(), collab.UploadDocumentInput{
		DisplayName: "x.pdf", SizeBytes: 10,
	}); !collab.IsKind(err, collab.KindNotMember) {
		t.Errorf("expected not member for stranger, got %v", err)
	}
}

func TestChannel_DeleteDocument(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner, applicant, group := acceptedGroup(t, ctx, eng)

	doc, err := eng.Channel.UploadDocument(ctx, group.ID, applicant, collab.UploadDocumentInput{
		DisplayName:  "draft.docx",
		MimeCategory: "application/msword",
		SizeBytes:    2048,
	})
	if err != nil {
		t.Fatalf("UploadDocument failed: %v", err)
	}

	// Uploader is not the creator, so even they cannot delete it.
	if err := eng.Channel.DeleteDocument(ctx, group.ID, applicant, doc.ID); !collab.IsKind(err, collab.KindForbidden) {
		t.Errorf("expected forbidden for non-creator, got %v", err)
	}

	if err := eng.Channel.DeleteDocument(ctx, group.ID, owner, doc.ID); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}

	docs, err := eng.Channel.ListDocuments(ctx, group.ID, owner)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents after delete, got %d", len(docs))
	}

	// The file notice stays in the log, still pointing at the old id.
	msgs, err := eng.Channel.ListMessages(ctx, group.ID, owner, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Kind != status.MessageFileNotice {
		t.Fatalf("expected the file notice to survive, got %+v", msgs)
	}
	if msgs[0].DocumentID == nil || *msgs[0].DocumentID != doc.ID {
		t.Error("expected the notice to retain the document reference")
	}

	if err := eng.Channel.DeleteDocument(ctx, group.ID, owner, doc.ID); !collab.IsKind(err, collab.KindNotFound) {
		t.Errorf("expected not found on repeat delete, got %v", err)
	}
}

func TestChannel_ListDocuments_NewestFirst(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, applicant, group := acceptedGroup(t, ctx, eng)

	var lastID primitive.ObjectID
	for _, name := range []string{"a.pdf", "b.pdf"} {
		doc, err := eng.Channel.UploadDocument(ctx, group.ID, applicant, collab.UploadDocumentInput{
			DisplayName:  name,
			MimeCategory: "application/pdf",
			SizeBytes:    64,
		})
		if err != nil {
			t.Fatalf("UploadDocument %s failed: %v", name, err)
		}
		lastID = doc.ID
	}

	docs, err := eng.Channel.ListDocuments(ctx, group.ID, applicant)
	if err != nil {
		t.Fatalf("ListDocuments failed: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != lastID {
		t.Error("expected the newest document first")
	}
}
