// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account types. A user holds exactly one.
const (
	AccountStudent    = "student"
	AccountInstructor = "instructor"
	AccountAdmin      = "admin"
)

// User represents students, instructors, and admins.
//
// NOTE:
//   - Personal detail fields (about, gender, contact number, …) live on the
//     Profile record referenced by AdditionalDetails, not on User.
//   - Courses and CourseProgress hold back-references kept in sync by the
//     enrollment workflow and course cascade delete.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"first_name" json:"first_name"`
	LastName     string             `bson:"last_name" json:"last_name"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string             `bson:"password_hash" json:"-"`
	AccountType  string             `bson:"account_type" json:"account_type"` // student | instructor | admin
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`

	AdditionalDetails primitive.ObjectID   `bson:"additional_details" json:"additional_details"`
	Courses           []primitive.ObjectID `bson:"courses" json:"courses"`
	CourseProgress    []primitive.ObjectID `bson:"course_progress" json:"course_progress"`

	// Password reset state. Token is valid only before ResetTokenExpires.
	ResetToken        *string    `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExpires *time.Time `bson:"reset_token_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// FullName joins first and last names for display and email templates.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsValidAccountType reports whether t is one of the known account types.
func IsValidAccountType(t string) bool {
	switch t {
	case AccountStudent, AccountInstructor, AccountAdmin:
		return true
	}
	return false
}
