package categorystore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	categorystore "github.com/skillforge/skillforge/internal/app/store/categories"
	"github.com/skillforge/skillforge/internal/domain/models"
	"github.com/skillforge/skillforge/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Category{
		Name:        "  Web Development ",
		Description: "Frontend and backend",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Name != "Web Development" {
		t.Errorf("Name = %q, want trimmed", created.Name)
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Courses == nil {
		t.Error("expected Courses to be initialized")
	}
}

func TestStore_Create_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Category{Name: "Data Science"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Folded name must collide regardless of case.
	_, err := store.Create(ctx, models.Category{Name: "DATA SCIENCE"})
	if err != categorystore.ErrDuplicateName {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestStore_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, name := range []string{"Zoology", "Algorithms"} {
		if _, err := store.Create(ctx, models.Category{Name: name}); err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	cats, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("got %d categories, want 2", len(cats))
	}
	if cats[0].Name != "Algorithms" {
		t.Errorf("expected sorted order, first = %q", cats[0].Name)
	}
}

func TestStore_ListOthers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, models.Category{Name: "First"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Category{Name: "Second"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	others, err := store.ListOthers(ctx, first.ID)
	if err != nil {
		t.Fatalf("ListOthers failed: %v", err)
	}
	if len(others) != 1 || others[0].Name != "Second" {
		t.Errorf("others = %v", others)
	}
}

func TestStore_CourseReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := categorystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cat, err := store.Create(ctx, models.Category{Name: "Refs"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	courseID := primitive.NewObjectID()
	if err := store.AddCourse(ctx, cat.ID, courseID); err != nil {
		t.Fatalf("AddCourse failed: %v", err)
	}

	found, err := store.GetByID(ctx, cat.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Courses) != 1 || found.Courses[0] != courseID {
		t.Errorf("Courses = %v, want [%v]", found.Courses, courseID)
	}

	if err := store.RemoveCourse(ctx, cat.ID, courseID); err != nil {
		t.Fatalf("RemoveCourse failed: %v", err)
	}
	found, err = store.GetByID(ctx, cat.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(found.Courses) != 0 {
		t.Errorf("Courses = %v, want empty", found.Courses)
	}
}
