package progressstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	progressstore "github.com/skillforge/skillforge/internal/app/store/progress"
	"github.com/skillforge/skillforge/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()

	created, err := store.Create(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(created.CompletedVideos) != 0 {
		t.Errorf("CompletedVideos = %v, want empty", created.CompletedVideos)
	}

	// The unique compound index rejects a second record for the same pair.
	if _, err := store.Create(ctx, userID, courseID); err != progressstore.ErrDuplicate {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_MarkComplete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()
	if _, err := store.Create(ctx, userID, courseID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	video := primitive.NewObjectID()
	if err := store.MarkComplete(ctx, userID, courseID, video); err != nil {
		t.Fatalf("MarkComplete failed: %v", err)
	}

	// Completing the same video again is rejected, and the set stays a set.
	if err := store.MarkComplete(ctx, userID, courseID, video); err != progressstore.ErrAlreadyCompleteOrMissing {
		t.Errorf("expected ErrAlreadyCompleteOrMissing, got %v", err)
	}

	p, err := store.Get(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.CompletedVideos) != 1 || p.CompletedVideos[0] != video {
		t.Errorf("CompletedVideos = %v, want [%v]", p.CompletedVideos, video)
	}
}

func TestStore_MarkComplete_Concurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	courseID := primitive.NewObjectID()
	if _, err := store.Create(ctx, userID, courseID); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Two racing completions of the same lecture: the conditional update
	// lets exactly one through.
	video := primitive.NewObjectID()
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			errs <- store.MarkComplete(ctx, userID, courseID, video)
		}()
	}

	var won, lost int
	for i := 0; i < 2; i++ {
		switch err := <-errs; err {
		case nil:
			won++
		case progressstore.ErrAlreadyCompleteOrMissing:
			lost++
		default:
			t.Fatalf("MarkComplete failed: %v", err)
		}
	}
	if won != 1 || lost != 1 {
		t.Errorf("won = %d, lost = %d, want exactly one of each", won, lost)
	}

	p, err := store.Get(ctx, userID, courseID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(p.CompletedVideos) != 1 || p.CompletedVideos[0] != video {
		t.Errorf("CompletedVideos = %v, want [%v]", p.CompletedVideos, video)
	}
}

func TestStore_MarkComplete_NoRecord(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.MarkComplete(ctx, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID())
	if err != progressstore.ErrAlreadyCompleteOrMissing {
		t.Errorf("expected ErrAlreadyCompleteOrMissing, got %v", err)
	}
}

func TestStore_DeleteForCourse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := progressstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	courseID := primitive.NewObjectID()
	userA := primitive.NewObjectID()
	userB := primitive.NewObjectID()
	for _, u := range []primitive.ObjectID{userA, userB} {
		if _, err := store.Create(ctx, u, courseID); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	// A record for another course must survive.
	otherCourse := primitive.NewObjectID()
	if _, err := store.Create(ctx, userA, otherCourse); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := store.DeleteForCourse(ctx, courseID)
	if err != nil {
		t.Fatalf("DeleteForCourse failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deleted, got %d", count)
	}

	if _, err := store.Get(ctx, userA, otherCourse); err != nil {
		t.Errorf("unrelated record should survive: %v", err)
	}
	if _, err := store.Get(ctx, userA, courseID); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
