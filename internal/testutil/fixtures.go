package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with an empty profile reference.
func (f *Fixtures) CreateUser(ctx context.Context, firstName, lastName, email, accountType string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	profile := models.Profile{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("profiles").InsertOne(ctx, profile); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}

	user := models.User{
		ID:                primitive.NewObjectID(),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             email,
		EmailCI:           text.Fold(email),
		PasswordHash:      "not-a-real-hash",
		AccountType:       accountType,
		AdditionalDetails: profile.ID,
		Courses:           []primitive.ObjectID{},
		CourseProgress:    []primitive.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateStudent creates a test user with the student account type.
func (f *Fixtures) CreateStudent(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, firstName, lastName, email, models.AccountStudent)
}

// CreateInstructor creates a test user with the instructor account type.
func (f *Fixtures) CreateInstructor(ctx context.Context, firstName, lastName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, firstName, lastName, email, models.AccountInstructor)
}

// CreateCategory creates a test category with the given name.
func (f *Fixtures) CreateCategory(ctx context.Context, name string) models.Category {
	f.t.Helper()

	now := time.Now().UTC()
	cat := models.Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "Test category description",
		Courses:     []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateCourse creates a published test course owned by instructorID in
// categoryID, and records the back-references the real create path writes.
func (f *Fixtures) CreateCourse(ctx context.Context, name string, instructorID, categoryID primitive.ObjectID, price int) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:               primitive.NewObjectID(),
		Name:             name,
		NameCI:           text.Fold(name),
		Description:      "Test course description",
		Instructor:       instructorID,
		Content:          []primitive.ObjectID{},
		Price:            price,
		Category:         categoryID,
		StudentsEnrolled: []primitive.ObjectID{},
		Status:           models.CoursePublished,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}

	if _, err := f.db.Collection("categories").UpdateByID(ctx, categoryID,
		bson.M{"$push": bson.M{"courses": course.ID}}); err != nil {
		f.t.Fatalf("failed to link course to category: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, instructorID,
		bson.M{"$push": bson.M{"courses": course.ID}}); err != nil {
		f.t.Fatalf("failed to link course to instructor: %v", err)
	}
	return course
}

// CreateSection creates a test section and appends it to the course's
// content list.
func (f *Fixtures) CreateSection(ctx context.Context, name string, courseID primitive.ObjectID) models.Section {
	f.t.Helper()

	now := time.Now().UTC()
	section := models.Section{
		ID:          primitive.NewObjectID(),
		Name:        name,
		SubSections: []primitive.ObjectID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("sections").InsertOne(ctx, section); err != nil {
		f.t.Fatalf("failed to create test section: %v", err)
	}
	if _, err := f.db.Collection("courses").UpdateByID(ctx, courseID,
		bson.M{"$push": bson.M{"course_content": section.ID}}); err != nil {
		f.t.Fatalf("failed to link section to course: %v", err)
	}
	return section
}

// CreateSubSection creates a test lecture and appends it to the section's
// sub-section list. duration is the author-supplied seconds string.
func (f *Fixtures) CreateSubSection(ctx context.Context, title, duration string, sectionID primitive.ObjectID) models.SubSection {
	f.t.Helper()

	now := time.Now().UTC()
	sub := models.SubSection{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Duration:  duration,
		VideoURL:  "https://media.test/videos/" + title + ".mp4",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("sub_sections").InsertOne(ctx, sub); err != nil {
		f.t.Fatalf("failed to create test sub-section: %v", err)
	}
	if _, err := f.db.Collection("sections").UpdateByID(ctx, sectionID,
		bson.M{"$push": bson.M{"sub_sections": sub.ID}}); err != nil {
		f.t.Fatalf("failed to link sub-section to section: %v", err)
	}
	return sub
}

// CreateProgress creates a progress record for (userID, courseID) and
// records the back-reference on the user.
func (f *Fixtures) CreateProgress(ctx context.Context, userID, courseID primitive.ObjectID) models.CourseProgress {
	f.t.Helper()

	now := time.Now().UTC()
	progress := models.CourseProgress{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		CourseID:        courseID,
		CompletedVideos: []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("course_progress").InsertOne(ctx, progress); err != nil {
		f.t.Fatalf("failed to create test progress record: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, userID,
		bson.M{"$push": bson.M{"course_progress": progress.ID}}); err != nil {
		f.t.Fatalf("failed to link progress to user: %v", err)
	}
	return progress
}

// Enroll records userID in the course's students_enrolled list and the
// user's courses list, mirroring the enrollment side effects.
func (f *Fixtures) Enroll(ctx context.Context, userID, courseID primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("courses").UpdateByID(ctx, courseID,
		bson.M{"$push": bson.M{"students_enrolled": userID}}); err != nil {
		f.t.Fatalf("failed to enroll user in course: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, userID,
		bson.M{"$push": bson.M{"courses": courseID}}); err != nil {
		f.t.Fatalf("failed to record enrollment on user: %v", err)
	}
}
