package profile_test

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

	"github.com/skillforge/skillforge/internal/app/features/profile"
	"github.com/skillforge/skillforge/internal/domain/models"
	"github.com/skillforge/skillforge/internal/testutil"
)

type fakeUploader struct{}

func (fakeUploader) Upload(ctx context.Context, folder, filename string, r io.Reader, size int64, contentType string) (string, error) {
	return "https://media.test/" + folder + "/" + filename, nil
}

func userAs(u models.User, role string) testutil.TestUser {
	return testutil.TestUser{ID: u.ID.Hex(), Name: u.FullName(), Email: u.Email, Role: role}
}

func newHandler(t *testing.T) (*profile.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := profile.NewHandler(db, fakeUploader{}, "images", nil, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestHandleMeAndUpdate(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Stu", "Dent", "stu@example.com")

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), userAs(student, "student"))
	h.HandleMe(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me failed: %d %s", rec.Code, rec.Body.String())
	}

	// Partial update: last name and about only; first name untouched.
	body := `{"last_name": "Denton", "about": "Lifelong learner"}`
	req = httptest.NewRequest("PATCH", "/", strings.NewReader(body))
	req = testutil.WithUser(req, userAs(student, "student"))
	rec = httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data struct {
			User    models.User    `json:"user"`
			Profile models.Profile `json:"profile"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.User.FirstName != "Stu" || env.Data.User.LastName != "Denton" {
		t.Errorf("user = %+v", env.Data.User)
	}
	if env.Data.Profile.About != "Lifelong learner" {
		t.Errorf("profile = %+v", env.Data.Profile)
	}
}

func TestHandleUpdate_EmptyFirstName(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Stu", "Dent", "stu2@example.com")

	req := httptest.NewRequest("PATCH", "/", strings.NewReader(`{"first_name": ""}`))
	req = testutil.WithUser(req, userAs(student, "student"))
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleUpdatePicture(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Stu", "Dent", "stu3@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("picture", "me.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("fake png"))
	mw.Close()

	req := httptest.NewRequest("PUT", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = testutil.WithUser(req, userAs(student, "student"))
	rec := httptest.NewRecorder()
	h.HandleUpdatePicture(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("picture failed: %d %s", rec.Code, rec.Body.String())
	}

	got, err := h.Users.GetByID(ctx, student.ID)
	if err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !strings.HasPrefix(got.Image, "https://media.test/images/") {
		t.Errorf("image = %q", got.Image)
	}
}

func TestHandleEnrolledCourses(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach@example.com")
	student := fixtures.CreateStudent(ctx, "Stu", "Dent", "stu4@example.com")
	cat := fixtures.CreateCategory(ctx, "Programming")
	course := fixtures.CreateCourse(ctx, "Go Basics", instructor.ID, cat.ID, 400)
	sec := fixtures.CreateSection(ctx, "Intro", course.ID)
	lecture := fixtures.CreateSubSection(ctx, "Hello", "120", sec.ID)
	fixtures.CreateSubSection(ctx, "World", "60", sec.ID)
	fixtures.Enroll(ctx, student.ID, course.ID)
	fixtures.CreateProgress(ctx, student.ID, course.ID)
	if err := h.Progress.MarkComplete(ctx, student.ID, course.ID, lecture.ID); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), userAs(student, "student"))
	h.HandleEnrolledCourses(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("enrolled courses failed: %d %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data []struct {
			Course          models.Course `json:"course"`
			TotalDuration   string        `json:"total_duration"`
			TotalLectures   int           `json:"total_lectures"`
			CompletedCount  int           `json:"completed_count"`
			ProgressPercent int           `json:"progress_percent"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 {
		t.Fatalf("courses = %d, want 1", len(env.Data))
	}
	got := env.Data[0]
	if got.Course.ID != course.ID || got.TotalDuration != "3m 0s" {
		t.Errorf("view = %+v", got)
	}
	if got.TotalLectures != 2 || got.CompletedCount != 1 || got.ProgressPercent != 50 {
		t.Errorf("progress = %+v", got)
	}
}

func TestHandleDashboard(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach2@example.com")
	s1 := fixtures.CreateStudent(ctx, "A", "One", "a@example.com")
	s2 := fixtures.CreateStudent(ctx, "B", "Two", "b@example.com")
	cat := fixtures.CreateCategory(ctx, "Design")
	course := fixtures.CreateCourse(ctx, "Figma", instructor.ID, cat.ID, 300)
	fixtures.Enroll(ctx, s1.ID, course.ID)
	fixtures.Enroll(ctx, s2.ID, course.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("GET", "/", nil), userAs(instructor, "instructor"))
	h.HandleDashboard(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard failed: %d %s", rec.Code, rec.Body.String())
	}

	var env struct {
		Data []struct {
			TotalStudents int `json:"total_students"`
			TotalRevenue  int `json:"total_revenue"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].TotalStudents != 2 || env.Data[0].TotalRevenue != 600 {
		t.Errorf("dashboard = %+v", env.Data)
	}
}

func TestHandleDelete_LeavesEnrollmentData(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := fixtures.CreateInstructor(ctx, "Teach", "Er", "teach3@example.com")
	student := fixtures.CreateStudent(ctx, "Stu", "Dent", "stu5@example.com")
	cat := fixtures.CreateCategory(ctx, "Music")
	course := fixtures.CreateCourse(ctx, "Piano", instructor.ID, cat.ID, 200)
	fixtures.Enroll(ctx, student.ID, course.ID)
	fixtures.CreateProgress(ctx, student.ID, course.ID)

	rec := httptest.NewRecorder()
	req := testutil.WithUser(httptest.NewRequest("DELETE", "/", nil), userAs(student, "student"))
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	if _, err := h.Users.GetByID(ctx, student.ID); err == nil {
		t.Errorf("user still exists")
	}
	if _, err := h.Profiles.GetByID(ctx, student.AdditionalDetails); err == nil {
		t.Errorf("profile still exists")
	}

	// The enrolled-set and progress record stay behind.
	gotCourse, err := h.Courses.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	if !gotCourse.HasStudent(student.ID) {
		t.Errorf("enrolled set was cleaned; deletion should leave it")
	}
	if _, err := h.Progress.Get(ctx, student.ID, course.ID); err != nil {
		t.Errorf("progress record missing: %v", err)
	}
}
