package subsectionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/normalize"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sub_sections")}
}

// GetByID loads one lecture by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.SubSection, error) {
	var sub models.SubSection
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByIDs loads lectures by id, keyed by id so callers can walk the
// section's ordered list.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.SubSection, error) {
	out := map[primitive.ObjectID]models.SubSection{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sub models.SubSection
		if err := cur.Decode(&sub); err != nil {
			return nil, err
		}
		out[sub.ID] = sub
	}
	return out, cur.Err()
}

// Create inserts a lecture.
func (s *Store) Create(ctx context.Context, sub models.SubSection) (models.SubSection, error) {
	sub.ID = primitive.NewObjectID()
	sub.Title = normalize.Name(sub.Title)

	now := time.Now()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sub); err != nil {
		return models.SubSection{}, err
	}
	return sub, nil
}

// Update holds the optional lecture fields an edit may change.
type Update struct {
	Title       *string
	Duration    *string
	Description *string
	VideoURL    *string
}

// Update applies the non-nil fields to the lecture.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now()}
	if upd.Title != nil {
		set["title"] = normalize.Name(*upd.Title)
	}
	if upd.Duration != nil {
		set["duration"] = *upd.Duration
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.VideoURL != nil {
		set["video_url"] = *upd.VideoURL
	}

	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes one lecture document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes all the given lectures. Used by section and course
// cascade deletes.
func (s *Store) DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
