// internal/domain/models/section.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Section is owned by exactly one Course via the Course's content list.
// SubSections is the ordered list of SubSection ids.
type Section struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	SubSections []primitive.ObjectID `bson:"sub_sections" json:"sub_sections"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
