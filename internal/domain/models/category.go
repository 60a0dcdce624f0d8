// internal/domain/models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups published courses. Courses is a back-reference list kept
// in sync by course create/delete; the Course's own Category field is the
// authoritative link.
type Category struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	NameCI      string               `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	Courses     []primitive.ObjectID `bson:"courses" json:"courses"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
