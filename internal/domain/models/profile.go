// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the mutable personal details owned by exactly one User.
// Name fields live on User itself.
type Profile struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Gender        string             `bson:"gender,omitempty" json:"gender,omitempty"`
	DateOfBirth   string             `bson:"date_of_birth,omitempty" json:"date_of_birth,omitempty"`
	About         string             `bson:"about,omitempty" json:"about,omitempty"`
	ContactNumber string             `bson:"contact_number,omitempty" json:"contact_number,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
