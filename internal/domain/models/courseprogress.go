// internal/domain/models/courseprogress.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseProgress tracks which sub-sections a user has completed in one
// course. There is at most one record per (user, course) pair, enforced by
// a unique compound index. CompletedVideos is a set: the store only appends
// an id with a conditional update that excludes documents already holding it.
type CourseProgress struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID   `bson:"user_id" json:"user_id"`
	CourseID        primitive.ObjectID   `bson:"course_id" json:"course_id"`
	CompletedVideos []primitive.ObjectID `bson:"completed_videos" json:"completed_videos"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
