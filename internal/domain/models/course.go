// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course lifecycle states.
const (
	CourseDraft     = "draft"
	CoursePublished = "published"
)

// Course is owned by exactly one instructor. Content is the ordered list of
// Section ids; order is significant and determines presentation order.
// StudentsEnrolled and the owning User/Category back-reference lists are
// maintained by the enrollment workflow and cascade delete.
type Course struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name             string               `bson:"name" json:"name"`
	NameCI           string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description      string               `bson:"description" json:"description"`
	Instructor       primitive.ObjectID   `bson:"instructor" json:"instructor"`
	WhatYouWillLearn string               `bson:"what_you_will_learn" json:"what_you_will_learn"`
	Content          []primitive.ObjectID `bson:"course_content" json:"course_content"`
	Price            int                  `bson:"price" json:"price"`
	Thumbnail        string               `bson:"thumbnail" json:"thumbnail"`
	Tags             []string             `bson:"tags" json:"tags"`
	Category         primitive.ObjectID   `bson:"category" json:"category"`
	StudentsEnrolled []primitive.ObjectID `bson:"students_enrolled" json:"students_enrolled"`
	Instructions     []string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	RatingAndReviews []primitive.ObjectID `bson:"rating_and_reviews,omitempty" json:"rating_and_reviews,omitempty"`
	Status           string               `bson:"status" json:"status"` // draft | published

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasStudent reports whether the given user id is in the enrolled set.
func (c Course) HasStudent(userID primitive.ObjectID) bool {
	for _, id := range c.StudentsEnrolled {
		if id == userID {
			return true
		}
	}
	return false
}

// IsValidCourseStatus reports whether s is a known lifecycle state.
func IsValidCourseStatus(s string) bool {
	return s == CourseDraft || s == CoursePublished
}
