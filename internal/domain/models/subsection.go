// internal/domain/models/subsection.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubSection is a single lecture owned by exactly one Section.
//
// Duration is stored as the string the author supplied (a number of
// seconds). Aggregation parses it and treats non-numeric values as zero
// rather than failing the whole course view.
type SubSection struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Duration    string             `bson:"duration" json:"duration"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL    string             `bson:"video_url" json:"video_url"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
