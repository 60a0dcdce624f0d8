package progressstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("course_progress")}
}

var (
	// ErrDuplicate is returned when a progress record already exists for the (user, course) pair.
	ErrDuplicate = errors.New("progress record already exists for this user and course")
	// ErrAlreadyCompleteOrMissing is returned by MarkComplete when no record
	// matched, either because the pair has no record or the video is already
	// in the completed set.
	ErrAlreadyCompleteOrMissing = errors.New("no progress record matched, or video already completed")
)

// Get loads the progress record for one (user, course) pair.
func (s *Store) Get(ctx context.Context, userID, courseID primitive.ObjectID) (*models.CourseProgress, error) {
	var p models.CourseProgress
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID, "course_id": courseID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a fresh progress record with no completed videos. The
// unique (user_id, course_id) index rejects duplicates.
func (s *Store) Create(ctx context.Context, userID, courseID primitive.ObjectID) (models.CourseProgress, error) {
	now := time.Now()
	p := models.CourseProgress{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		CourseID:        courseID,
		CompletedVideos: []primitive.ObjectID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.CourseProgress{}, ErrDuplicate
		}
		return models.CourseProgress{}, err
	}
	return p, nil
}

// MarkComplete appends subSectionID to the completed set with a single
// conditional update. The filter excludes records that already hold the id,
// so completion is exactly-once and the append is atomic.
func (s *Store) MarkComplete(ctx context.Context, userID, courseID, subSectionID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"user_id":          userID,
			"course_id":        courseID,
			"completed_videos": bson.M{"$ne": subSectionID},
		},
		bson.M{
			"$push": bson.M{"completed_videos": subSectionID},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyCompleteOrMissing
	}
	return nil
}

// DeleteForCourse removes every progress record of one course. Used by
// course cascade delete.
func (s *Store) DeleteForCourse(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"course_id": courseID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

