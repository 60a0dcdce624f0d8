package subsections_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/skillforge/skillforge/internal/app/features/subsections"
	"github.com/skillforge/skillforge/internal/domain/models"
	"github.com/skillforge/skillforge/internal/testutil"
)

type fakeUploader struct {
	uploads int
}

func (f *fakeUploader) Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error) {
	f.uploads++
	return "https://media.test/" + folder + "/" + filename, nil
}

func ownerUser(u models.User) testutil.TestUser {
	return testutil.TestUser{ID: u.ID.Hex(), Name: u.FullName(), Email: u.Email, Role: "instructor"}
}

func lectureForm(t *testing.T, fields map[string]string, withVideo bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if withVideo {
		fw, err := mw.CreateFormFile("video", "lecture.mp4")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		fw.Write([]byte("fake video bytes"))
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHandleCreate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uploader := &fakeUploader{}
	h := subsections.NewHandler(db, uploader, "videos", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go Basics", instructor.ID, cat.ID, 400)
	sec := fixtures.CreateSection(ctx, "Getting Started", course.ID)

	body, contentType := lectureForm(t, map[string]string{
		"course_id":  course.ID.Hex(),
		"section_id": sec.ID.Hex(),
		"title":      "Installing Go",
		"duration":   "300",
	}, true)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	if uploader.uploads != 1 {
		t.Errorf("uploads = %d, want 1", uploader.uploads)
	}

	var env struct {
		Data models.SubSection `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Title != "Installing Go" || env.Data.Duration != "300" {
		t.Errorf("lecture = %+v", env.Data)
	}
	if !strings.HasPrefix(env.Data.VideoURL, "https://media.test/videos/") {
		t.Errorf("video url = %q", env.Data.VideoURL)
	}

	got, err := h.Sections.GetByID(ctx, sec.ID)
	if err != nil {
		t.Fatalf("load section: %v", err)
	}
	if len(got.SubSections) != 1 || got.SubSections[0] != env.Data.ID {
		t.Errorf("section lectures = %v", got.SubSections)
	}
}

func TestHandleCreate_MissingVideo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subsections.NewHandler(db, &fakeUploader{}, "videos", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach2@example.com")
	cat := fixtures.CreateCategory(ctx, "Art")
	course := fixtures.CreateCourse(ctx, "Sketching", instructor.ID, cat.ID, 150)
	sec := fixtures.CreateSection(ctx, "Lines", course.ID)

	body, contentType := lectureForm(t, map[string]string{
		"course_id":  course.ID.Hex(),
		"section_id": sec.ID.Hex(),
		"title":      "Straight Lines",
		"duration":   "60",
	}, false)
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdate_PartialFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	uploader := &fakeUploader{}
	h := subsections.NewHandler(db, uploader, "videos", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach3@example.com")
	cat := fixtures.CreateCategory(ctx, "Music")
	course := fixtures.CreateCourse(ctx, "Piano", instructor.ID, cat.ID, 200)
	sec := fixtures.CreateSection(ctx, "Scales", course.ID)
	lecture := fixtures.CreateSubSection(ctx, "C major", "90", sec.ID)

	body, contentType := lectureForm(t, map[string]string{
		"course_id": course.ID.Hex(),
		"duration":  "120",
	}, false)
	req := httptest.NewRequest("PATCH", "/", body)
	req.Header.Set("Content-Type", contentType)
	req = testutil.WithChiURLParam(req, "id", lecture.ID.Hex())
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	if uploader.uploads != 0 {
		t.Errorf("uploads = %d, want 0", uploader.uploads)
	}

	got, err := h.SubSections.GetByID(ctx, lecture.ID)
	if err != nil {
		t.Fatalf("load lecture: %v", err)
	}
	if got.Duration != "120" {
		t.Errorf("duration = %q, want 120", got.Duration)
	}
	if got.Title != lecture.Title || got.VideoURL != lecture.VideoURL {
		t.Errorf("untouched fields changed: %+v", got)
	}
}

func TestHandleDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := subsections.NewHandler(db, &fakeUploader{}, "videos", zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach4@example.com")
	cat := fixtures.CreateCategory(ctx, "History")
	course := fixtures.CreateCourse(ctx, "Rome", instructor.ID, cat.ID, 350)
	sec := fixtures.CreateSection(ctx, "The Republic", course.ID)
	lecture := fixtures.CreateSubSection(ctx, "Founding", "120", sec.ID)

	body := `{"course_id": "` + course.ID.Hex() + `", "section_id": "` + sec.ID.Hex() + `"}`
	req := httptest.NewRequest("DELETE", "/", strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", lecture.ID.Hex())
	req = testutil.WithUser(req, ownerUser(instructor))
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	if _, err := h.SubSections.GetByID(ctx, lecture.ID); err == nil {
		t.Errorf("lecture still exists")
	}
	got, err := h.Sections.GetByID(ctx, sec.ID)
	if err != nil {
		t.Fatalf("load section: %v", err)
	}
	if len(got.SubSections) != 0 {
		t.Errorf("section lectures = %v, want empty", got.SubSections)
	}

	// A second delete of the same lecture 404s.
	req = httptest.NewRequest("DELETE", "/", strings.NewReader(body))
	req = testutil.WithChiURLParam(req, "id", lecture.ID.Hex())
	req = testutil.WithUser(req, ownerUser(instructor))
	rec = httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
