package sections_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/skillforge/skillforge/internal/app/features/sections"
	"github.com/skillforge/skillforge/internal/domain/models"
	"github.com/skillforge/skillforge/internal/testutil"
)

func ownerUser(u models.User) testutil.TestUser {
	return testutil.TestUser{ID: u.ID.Hex(), Name: u.FullName(), Email: u.Email, Role: "instructor"}
}

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sections.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go Basics", instructor.ID, cat.ID, 400)

	body := `{"course_id": "` + course.ID.Hex() + `", "name": "Getting Started"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data models.Section `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Name != "Getting Started" {
		t.Errorf("section = %+v", env.Data)
	}

	got, err := h.Courses.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	if len(got.Content) != 1 || got.Content[0] != env.Data.ID {
		t.Errorf("course content = %v", got.Content)
	}
}

func TestHandleCreate_CourseNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sections.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach2@example.com")

	body := `{"course_id": "64b000000000000000000000", "name": "Orphan"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleCreate_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sections.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateInstructor(ctx, "Own", "Er", "owner@example.com")
	other := fixtures.CreateInstructor(ctx, "Oth", "Er", "other@example.com")
	cat := fixtures.CreateCategory(ctx, "Design")
	course := fixtures.CreateCourse(ctx, "Type Theory", owner.ID, cat.ID, 300)

	body := `{"course_id": "` + course.ID.Hex() + `", "name": "Intro"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req = testutil.WithUser(req, ownerUser(other))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestHandleRename(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sections.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach3@example.com")
	cat := fixtures.CreateCategory(ctx, "Music")
	course := fixtures.CreateCourse(ctx, "Piano", instructor.ID, cat.ID, 200)
	sec := fixtures.CreateSection(ctx, "Scales", course.ID)

	body := `{"course_id": "` + course.ID.Hex() + `", "name": "Major Scales"}`
	req := httptest.NewRequest("PATCH", "/", strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", sec.ID.Hex())
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleRename(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("rename failed: %d %s", rec.Code, rec.Body.String())
	}

	got, err := h.Sections.GetByID(ctx, sec.ID)
	if err != nil {
		t.Fatalf("load section: %v", err)
	}
	if got.Name != "Major Scales" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := sections.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach4@example.com")
	cat := fixtures.CreateCategory(ctx, "History")
	course := fixtures.CreateCourse(ctx, "Rome", instructor.ID, cat.ID, 350)
	sec := fixtures.CreateSection(ctx, "The Republic", course.ID)
	lecture := fixtures.CreateSubSection(ctx, "Founding", "120", sec.ID)

	body := `{"course_id": "` + course.ID.Hex() + `"}`
	req := httptest.NewRequest("DELETE", "/", strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", sec.ID.Hex())
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	if _, err := h.Sections.GetByID(ctx, sec.ID); err == nil {
		t.Errorf("section still exists")
	}
	if _, err := h.SubSections.GetByID(ctx, lecture.ID); err == nil {
		t.Errorf("lecture still exists")
	}
	got, err := h.Courses.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	if len(got.Content) != 0 {
		t.Errorf("course content = %v, want empty", got.Content)
	}
}
