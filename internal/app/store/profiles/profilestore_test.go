package profilestore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	profilestore "github.com/skillforge/skillforge/internal/app/store/profiles"
	"github.com/skillforge/skillforge/internal/domain/models"
	"github.com/skillforge/skillforge/internal/testutil"
)

func TestStore_CreateAndUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Profile{})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	upd := profilestore.Update{
		Gender:        "female",
		DateOfBirth:   "1815-12-10",
		About:         "First programmer",
		ContactNumber: "+44 1234 567890",
	}
	if err := store.Update(ctx, created.ID, upd); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	found, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if found.About != "First programmer" || found.Gender != "female" {
		t.Errorf("profile = %+v", found)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := profilestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Profile{About: "temp"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	count, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 deleted, got %d", count)
	}

	if _, err := store.GetByID(ctx, created.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments after delete, got %v", err)
	}
}
