package coursestore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillforge/skillforge/internal/app/system/normalize"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

// GetByID loads a course by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var course models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, err
	}
	return &course, nil
}

// ListPublished returns all published courses, newest first.
func (s *Store) ListPublished(ctx context.Context) ([]models.Course, error) {
	return s.find(ctx, bson.M{"status": models.CoursePublished},
		mongooptions.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByInstructor returns the instructor's own courses, drafts included,
// newest first.
func (s *Store) ListByInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.Course, error) {
	return s.find(ctx, bson.M{"instructor": instructorID},
		mongooptions.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// ListByIDs loads the published courses among the given ids.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}, "status": models.CoursePublished}, nil)
}

// Search matches published courses whose name, description, or tags contain
// the query, case-insensitively.
func (s *Store) Search(ctx context.Context, query string) ([]models.Course, error) {
	folded := text.Fold(query)
	pattern := primitive.Regex{Pattern: regexQuote(folded), Options: "i"}
	return s.find(ctx, bson.M{
		"status": models.CoursePublished,
		"$or": []bson.M{
			{"name_ci": pattern},
			{"description": primitive.Regex{Pattern: regexQuote(query), Options: "i"}},
			{"tags": primitive.Regex{Pattern: regexQuote(query), Options: "i"}},
		},
	}, nil)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *mongooptions.FindOptions) ([]models.Course, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = s.c.Find(ctx, filter, opts)
	} else {
		cur, err = s.c.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// Create inserts a course after normalizing the name. Status defaults to
// draft when unset.
func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	course.ID = primitive.NewObjectID()
	course.Name = normalize.Name(course.Name)
	course.NameCI = text.Fold(course.Name)
	if course.Status == "" {
		course.Status = models.CourseDraft
	}
	if course.Content == nil {
		course.Content = []primitive.ObjectID{}
	}
	if course.StudentsEnrolled == nil {
		course.StudentsEnrolled = []primitive.ObjectID{}
	}

	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Patch holds the optional fields an edit may change. Nil fields are left
// untouched.
type Patch struct {
	Name             *string
	Description      *string
	WhatYouWillLearn *string
	Price            *int
	Tags             *[]string
	Category         *primitive.ObjectID
	Instructions     *[]string
	Status           *string
	Thumbnail        *string
}

// Update applies the non-nil patch fields to the course.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) error {
	set := bson.M{"updated_at": time.Now()}
	if p.Name != nil {
		name := normalize.Name(*p.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.WhatYouWillLearn != nil {
		set["what_you_will_learn"] = *p.WhatYouWillLearn
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Instructions != nil {
		set["instructions"] = *p.Instructions
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Thumbnail != nil {
		set["thumbnail"] = *p.Thumbnail
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// AddSection appends a section id to the course's ordered content list.
func (s *Store) AddSection(ctx context.Context, courseID, sectionID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$push": bson.M{"course_content": sectionID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveSection pulls a section id from the course's content list.
func (s *Store) RemoveSection(ctx context.Context, courseID, sectionID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$pull": bson.M{"course_content": sectionID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// AddStudent records an enrollment only if the student is not already in
// the enrolled set. Returns true when the course was modified.
func (s *Store) AddStudent(ctx context.Context, courseID, userID primitive.ObjectID) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": courseID, "students_enrolled": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"students_enrolled": userID},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveStudent pulls a student from the enrolled set.
func (s *Store) RemoveStudent(ctx context.Context, courseID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": courseID}, bson.M{
		"$pull": bson.M{"students_enrolled": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// Delete removes the course document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// regexQuote escapes regex metacharacters so user queries match literally.
func regexQuote(s string) string {
	const meta = `\.+*?()|[]{}^$`
	out := make([]rune, 0, len(s))
	for _, r := range s {
		for _, m := range meta {
			if r == m {
				out = append(out, '\\')
				break
			}
		}
		out = append(out, r)
	}
	return string(out)
}
