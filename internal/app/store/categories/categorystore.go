package categorystore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillforge/skillforge/internal/app/system/normalize"
	"github.com/skillforge/skillforge/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

// ErrDuplicateName is returned when a category with the same folded name already exists.
var ErrDuplicateName = errors.New("a category with this name already exists")

// GetByID loads a category by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var cat models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// List returns all categories sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{}, mongooptions.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cats := []models.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// ListOthers returns every category except the one given, used for the
// "different category" suggestions on the catalog page.
func (s *Store) ListOthers(ctx context.Context, excludeID primitive.ObjectID) ([]models.Category, error) {
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$ne": excludeID}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	cats := []models.Category{}
	if err := cur.All(ctx, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create inserts a category after normalizing the name.
func (s *Store) Create(ctx context.Context, cat models.Category) (models.Category, error) {
	cat.ID = primitive.NewObjectID()
	cat.Name = normalize.Name(cat.Name)
	cat.NameCI = text.Fold(cat.Name)
	if cat.Courses == nil {
		cat.Courses = []primitive.ObjectID{}
	}

	now := time.Now()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, cat); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Category{}, ErrDuplicateName
		}
		return models.Category{}, err
	}
	return cat, nil
}

// AddCourse appends a course id to the category's back-reference list.
func (s *Store) AddCourse(ctx context.Context, categoryID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": categoryID}, bson.M{
		"$push": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// RemoveCourse pulls a course id from the category's back-reference list.
func (s *Store) RemoveCourse(ctx context.Context, categoryID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": categoryID}, bson.M{
		"$pull": bson.M{"courses": courseID},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}
