package messagestore_test

import (
	"testing"

	messagestore "github.com/dalemusser/collabhub/internal/app/store/messages"
	"github.com/dalemusser/collabhub/internal/app/system/status"
	"github.com/dalemusser/collabhub/internal/domain/models"
	"github.com/dalemusser/collabhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Append_AssignsSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	for want := int64(1); want <= 3; want++ {
		m, err := store.Append(ctx, models.GroupMessage{
			GroupID:  groupID,
			SenderID: sender,
			Body:     "hello",
		})
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if m.Seq != want {
			t.Errorf("Seq: got %d, want %d", m.Seq, want)
		}
		if m.Kind != status.MessageText {
			t.Errorf("Kind: got %q, want %q", m.Kind, status.MessageText)
		}
		if m.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	}

	// Sequences are per group.
	other, err := store.Append(ctx, models.GroupMessage{
		GroupID:  primitive.NewObjectID(),
		SenderID: sender,
		Body:     "elsewhere",
	})
	if err != nil {
		t.Fatalf("Append to other group failed: %v", err)
	}
	if other.Seq != 1 {
		t.Errorf("expected other group to start at seq 1, got %d", other.Seq)
	}
}

func TestStore_ListSince(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	for i := 0; i < 5; i++ {
		if _, err := store.Append(ctx, models.GroupMessage{
			GroupID:  groupID,
			SenderID: sender,
			Body:     "msg",
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	all, err := store.ListSince(ctx, groupID, 0, 0)
	if err != nil {
		t.Fatalf("ListSince failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(all))
	}
	for i, m := range all {
		if m.Seq != int64(i+1) {
			t.Errorf("message %d: Seq got %d, want %d", i, m.Seq, i+1)
		}
	}

	tail, err := store.ListSince(ctx, groupID, 3, 0)
	if err != nil {
		t.Fatalf("ListSince with cursor failed: %v", err)
	}
	if len(tail) != 2 {
		t.Fatalf("expected 2 messages after seq 3, got %d", len(tail))
	}
	if tail[0].Seq != 4 {
		t.Errorf("expected first tail message seq 4, got %d", tail[0].Seq)
	}

	limited, err := store.ListSince(ctx, groupID, 0, 2)
	if err != nil {
		t.Fatalf("ListSince with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 messages with limit, got %d", len(limited))
	}
}

func TestStore_DeleteByGroup_ResetsSequence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if _, err := store.Append(ctx, models.GroupMessage{
			GroupID:  groupID,
			SenderID: sender,
			Body:     "msg",
		}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	n, err := store.DeleteByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("DeleteByGroup failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	// With the counter gone, a reused group id starts over.
	m, err := store.Append(ctx, models.GroupMessage{
		GroupID:  groupID,
		SenderID: sender,
		Body:     "fresh",
	})
	if err != nil {
		t.Fatalf("Append after delete failed: %v", err)
	}
	if m.Seq != 1 {
		t.Errorf("expected seq to restart at 1, got %d", m.Seq)
	}
}
