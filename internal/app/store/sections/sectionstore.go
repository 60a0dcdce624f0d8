package sectionstore

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
	return &Store{c: db.Collection("sections")}
}

// GetByID loads a section by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Section, error) {
	var sec models.Section
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sec); err != nil {
		return nil, err
	}
	return &sec, nil
}

// GetByIDs loads sections by id, returned keyed by id so callers can walk
// the course's ordered content list.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Section, error) {
	out := map[primitive.ObjectID]models.Section{}
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var sec models.Section
		if err := cur.Decode(&sec); err != nil {
			return nil, err
		}
		out[sec.ID] = sec
	}
	return out, cur.Err()
}

// Create inserts a section.
func (s *Store) Create(ctx context.Context, sec models.Section) (models.Section, error) {
	sec.ID = primitive.NewObjectID()
	sec.Name = normalize.Name(sec.Name)
	if sec.SubSections == nil {
		sec.SubSections = []primitive.ObjectID{}
	}

	now := time.Now()
	sec.CreatedAt = now
	sec.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sec); err != nil {
		return models.Section{}, err
	}
	return sec, nil
}

// Rename changes the section's name.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       normalize.Name(name),
		"updated_at": time.Now(),
	}})
	return err
}

// AddSubSection appends a lecture id to the section's ordered list.
func (s *Store) AddSubSection(ctx context.Context, sectionID, subID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": sectionID}, bson.M{
		"$push": bson.M{"sub_sections": subID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveSubSection pulls a lecture id from the section's list.
func (s *Store) RemoveSubSection(ctx context.Context, sectionID, subID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": sectionID}, bson.M{
		"$pull": bson.M{"sub_sections": subID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// Delete removes one section document.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteMany removes all the given sections. Used by course cascade delete.
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
